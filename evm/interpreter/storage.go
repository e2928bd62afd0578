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

import "github.com/holiman/uint256"

func opSload(state *ExecutionState, system *System) error {
	slot, err := state.Stack.Pop()
	if err != nil {
		return err
	}
	value, err := system.GetStorage(slot)
	if err != nil {
		return err
	}
	if value == nil {
		value = new(uint256.Int)
	}
	return state.Stack.Push(value)
}

func opSstore(state *ExecutionState, system *System) error {
	slot, value, err := state.Stack.Pop2()
	if err != nil {
		return err
	}
	return system.SetStorage(slot, value)
}
