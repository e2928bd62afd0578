// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package interpreter

import (
	"github.com/0xsoniclabs/evmactor/common"
	"github.com/0xsoniclabs/evmactor/evm/address"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
)

func pushActor(state *ExecutionState, id common.ActorID) error {
	return state.Stack.Push(address.FromID(id).Word())
}

// pushAmount pushes a host provided amount, where nil denotes zero.
func pushAmount(state *ExecutionState, amount *uint256.Int) error {
	if amount == nil {
		return state.Stack.Push(new(uint256.Int))
	}
	return state.Stack.Push(amount)
}

func opCaller(state *ExecutionState, system *System) error {
	return pushActor(state, system.rt.Message().Caller)
}

func opAddress(state *ExecutionState, system *System) error {
	return pushActor(state, system.rt.Message().Receiver)
}

func opOrigin(state *ExecutionState, system *System) error {
	return pushActor(state, system.rt.Message().Origin)
}

func opCallValue(state *ExecutionState, system *System) error {
	return pushAmount(state, system.rt.Message().ValueReceived)
}

func opNumber(state *ExecutionState, system *System) error {
	// Epochs are never negative on a live chain.
	return state.Stack.Push(uint256.NewInt(uint64(system.rt.CurrEpoch())))
}

func opBaseFee(state *ExecutionState, system *System) error {
	return pushAmount(state, system.rt.BaseFee())
}

// opCoinbase and opDifficulty push zero, there is no block producer address
// nor a difficulty on the host chain.
func opCoinbase(state *ExecutionState, _ *System) error {
	return state.Stack.Push(new(uint256.Int))
}

func opDifficulty(state *ExecutionState, _ *System) error {
	return state.Stack.Push(new(uint256.Int))
}

var (
	opBlockHash = notImplemented(vm.BLOCKHASH, "the hash of the inclusion tipset")
	opGasPrice  = notImplemented(vm.GASPRICE, "a priority fee syscall")
	opTimestamp = notImplemented(vm.TIMESTAMP, "a block timestamp syscall")
	opGasLimit  = notImplemented(vm.GASLIMIT, "a gas limit syscall")
	opChainID   = notImplemented(vm.CHAINID, "a registered chain id")
)
