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

import "github.com/0xsoniclabs/evmactor/common"

// ExecutionState is the per-call state mutated by instructions. It is shared
// with the dispatch loop running the instructions not covered by this package.
type ExecutionState struct {
	Stack  *Stack
	Memory *Memory

	// SelfDestructBeneficiary is the account receiving the balance of the
	// executing account once the call completed, if it self-destructed.
	SelfDestructBeneficiary *common.ActorID
}

func NewExecutionState() *ExecutionState {
	return &ExecutionState{
		Stack:  NewStack(),
		Memory: NewMemory(),
	}
}
