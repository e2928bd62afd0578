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
	"fmt"

	"github.com/ethereum/go-ethereum/core/vm"
)

// Handler executes a single instruction. Handlers are independent of each
// other; a failing handler leaves the remaining effects of the call to the
// caller's discretion.
type Handler func(state *ExecutionState, system *System) error

var instructions = map[vm.OpCode]Handler{
	vm.ADDRESS:     opAddress,
	vm.BALANCE:     opBalance,
	vm.ORIGIN:      opOrigin,
	vm.CALLER:      opCaller,
	vm.CALLVALUE:   opCallValue,
	vm.EXTCODESIZE: opExtCodeSize,
	vm.EXTCODECOPY: opExtCodeCopy,
	vm.EXTCODEHASH: opExtCodeHash,

	vm.BLOCKHASH:   opBlockHash,
	vm.COINBASE:    opCoinbase,
	vm.TIMESTAMP:   opTimestamp,
	vm.NUMBER:      opNumber,
	vm.DIFFICULTY:  opDifficulty,
	vm.GASLIMIT:    opGasLimit,
	vm.CHAINID:     opChainID,
	vm.SELFBALANCE: opSelfBalance,
	vm.BASEFEE:     opBaseFee,
	vm.GASPRICE:    opGasPrice,

	vm.SLOAD:  opSload,
	vm.SSTORE: opSstore,

	vm.CREATE:       opCreate,
	vm.CREATE2:      opCreate2,
	vm.SELFDESTRUCT: opSelfDestruct,
}

func init() {
	for topics := 0; topics <= MaxLogTopics; topics++ {
		instructions[vm.LOG0+vm.OpCode(topics)] = makeLog(topics)
	}
}

// Lookup returns the handler of the given instruction, if it is covered by
// this package.
func Lookup(op vm.OpCode) (Handler, bool) {
	handler, found := instructions[op]
	return handler, found
}

// Execute runs the handler of the given instruction.
func Execute(op vm.OpCode, state *ExecutionState, system *System) error {
	handler, found := Lookup(op)
	if !found {
		return fmt.Errorf("%w: %v", ErrUndefinedInstruction, op)
	}
	return handler(state, system)
}
