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
	"testing"

	"github.com/0xsoniclabs/evmactor/database/blockstore"
	"github.com/0xsoniclabs/evmactor/database/hamt"
	"github.com/0xsoniclabs/evmactor/runtime"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sstore(t *testing.T, state *ExecutionState, system *System, slot, value *uint256.Int) {
	t.Helper()
	require.NoError(t, state.Stack.Push(value))
	require.NoError(t, state.Stack.Push(slot))
	require.NoError(t, Execute(vm.SSTORE, state, system))
}

func sload(t *testing.T, state *ExecutionState, system *System, slot *uint256.Int) *uint256.Int {
	t.Helper()
	require.NoError(t, state.Stack.Push(slot))
	require.NoError(t, Execute(vm.SLOAD, state, system))
	res, err := state.Stack.Pop()
	require.NoError(t, err)
	return res
}

func interestingWords() []*uint256.Int {
	return []*uint256.Int{
		uint256.NewInt(0),
		uint256.NewInt(1),
		uint256.NewInt(0xff),
		uint256.NewInt(1 << 40),
		new(uint256.Int).Lsh(uint256.NewInt(1), 255),
		new(uint256.Int).SetAllOne(),
	}
}

func TestStorage_StoredValuesCanBeLoaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	state := NewExecutionState()
	system := newTestSystem(t, newHost(ctrl))

	for _, slot := range interestingWords() {
		for _, value := range interestingWords() {
			if value.IsZero() {
				continue
			}
			sstore(t, state, system, slot, value)
			require.Equal(t, value, sload(t, state, system, slot), "slot %v", slot)
		}
	}
	require.Zero(t, state.Stack.Len())
}

func TestStorage_UnsetSlotsAreZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	state := NewExecutionState()
	system := newTestSystem(t, newHost(ctrl))

	for _, slot := range interestingWords() {
		require.True(t, sload(t, state, system, slot).IsZero())
	}
}

func TestStorage_StoringZeroClearsTheSlot(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	state := NewExecutionState()
	system := newTestSystem(t, newHost(ctrl))

	empty, err := system.Flush()
	require.NoError(err)

	slot := uint256.NewInt(7)
	sstore(t, state, system, slot, uint256.NewInt(12))
	sstore(t, state, system, slot, uint256.NewInt(0))
	require.True(sload(t, state, system, slot).IsZero())

	_, found, err := system.storage.Get(storageKey(slot), system.algo)
	require.NoError(err)
	require.False(found)

	root, err := system.Flush()
	require.NoError(err)
	require.Equal(empty, root)
}

func TestStorage_StoringZeroInUnsetSlotDoesNotModifyStorage(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	state := NewExecutionState()
	system := newTestSystem(t, newHost(ctrl))

	sstore(t, state, system, uint256.NewInt(1), uint256.NewInt(1))
	before, err := system.Flush()
	require.NoError(err)

	sstore(t, state, system, uint256.NewInt(2), uint256.NewInt(0))
	require.False(system.storage.IsDirty())

	after, err := system.Flush()
	require.NoError(err)
	require.Equal(before, after)
}

func TestStorage_SstoreTakesTheSlotFromTheTopOfTheStack(t *testing.T) {
	ctrl := gomock.NewController(t)
	state := NewExecutionState()
	system := newTestSystem(t, newHost(ctrl))

	sstore(t, state, system, uint256.NewInt(1), uint256.NewInt(2))
	require.Equal(t, uint256.NewInt(2), sload(t, state, system, uint256.NewInt(1)))
	require.True(t, sload(t, state, system, uint256.NewInt(2)).IsZero())
}

func TestStorage_MissingOperandsAreReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	system := newTestSystem(t, newHost(ctrl))

	state := NewExecutionState()
	require.ErrorIs(t, Execute(vm.SLOAD, state, system), ErrStackUnderflow)

	require.NoError(t, state.Stack.Push(uint256.NewInt(1)))
	require.ErrorIs(t, Execute(vm.SSTORE, state, system), ErrStackUnderflow)
	require.Equal(t, 1, state.Stack.Len())
}

func TestStorage_HashingFailuresAreStorageErrors(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	rt := runtime.NewMockRuntime(ctrl)
	rt.EXPECT().Hash(gomock.Any(), gomock.Any()).Return(nil, blockstore.ErrClosed).AnyTimes()

	state := NewExecutionState()
	system := newTestSystem(t, rt)

	require.NoError(state.Stack.Push(uint256.NewInt(1)))
	err := Execute(vm.SLOAD, state, system)
	require.ErrorIs(err, ErrStorage)
	require.ErrorIs(err, hamt.ErrHashFailed)
	require.ErrorIs(err, runtime.ErrHostDigest)

	require.NoError(state.Stack.Push(uint256.NewInt(1)))
	require.NoError(state.Stack.Push(uint256.NewInt(1)))
	err = Execute(vm.SSTORE, state, system)
	require.ErrorIs(err, ErrStorage)
	require.ErrorIs(err, hamt.ErrHashFailed)
}

func TestStorage_FlushedStorageCanBeReopened(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	rt := newHost(ctrl)
	store := blockstore.NewMemoryBlockstore()
	algo := runtime.NewRuntimeHasher(rt, runtime.Sha2_256)

	system, err := NewSystem(rt, store, cid.Undef, algo)
	require.NoError(err)
	state := NewExecutionState()
	for i := range uint64(100) {
		sstore(t, state, system, uint256.NewInt(i), uint256.NewInt(i+1))
	}
	root, err := system.Flush()
	require.NoError(err)

	reopened, err := NewSystem(rt, store, root, algo)
	require.NoError(err)
	for i := range uint64(100) {
		require.Equal(uint256.NewInt(i+1), sload(t, state, reopened, uint256.NewInt(i)))
	}
	require.Equal(rt, reopened.Runtime())
}

func TestNewSystem_MissingStorageRootIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	missing, err := blockstore.ComputeCid([]byte("missing"))
	require.NoError(t, err)

	_, err = NewSystem(runtime.NewMockRuntime(ctrl), blockstore.NewMemoryBlockstore(), missing, runtime.NewRuntimeHasher(runtime.Builtin, runtime.Sha2_256))
	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, hamt.ErrMissingNode)
}
