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

	"github.com/0xsoniclabs/evmactor/evm/address"
	"github.com/ethereum/go-ethereum/core/vm"
)

var (
	opCreate  = notImplemented(vm.CREATE, "contract creation through the init actor")
	opCreate2 = notImplemented(vm.CREATE2, "contract creation through the init actor")
)

// opSelfDestruct records the beneficiary of the executing account. The
// transfer of the balance and the removal of the account happen after the
// call completed.
func opSelfDestruct(state *ExecutionState, _ *System) error {
	word, err := state.Stack.Pop()
	if err != nil {
		return err
	}
	beneficiary, err := address.FromWord(word)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedAddress, err)
	}
	id, ok := beneficiary.ID()
	if !ok {
		return fmt.Errorf("%w: beneficiary %v is not an ID address", ErrUnsupportedAddress, beneficiary)
	}
	state.SelfDestructBeneficiary = &id
	return nil
}
