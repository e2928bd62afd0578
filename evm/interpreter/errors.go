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

	"github.com/0xsoniclabs/evmactor/common"
	"github.com/ethereum/go-ethereum/core/vm"
)

const (
	ErrStackUnderflow       = common.ConstError("stack underflow")
	ErrStackOverflow        = common.ConstError("stack overflow")
	ErrNotImplemented       = common.ConstError("not implemented")
	ErrUnsupportedAddress   = common.ConstError("unsupported address")
	ErrStorage              = common.ConstError("storage failure")
	ErrUndefinedInstruction = common.ConstError("undefined instruction")
)

// NotImplementedError is returned by instructions depending on a host
// capability that is not available yet. It matches ErrNotImplemented.
type NotImplementedError struct {
	Op      vm.OpCode
	Missing string // < the host capability the instruction is waiting for
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%v: %v requires %s", ErrNotImplemented, e.Op, e.Missing)
}

func (e *NotImplementedError) Unwrap() error {
	return ErrNotImplemented
}

// notImplemented creates a handler failing with a NotImplementedError.
func notImplemented(op vm.OpCode, missing string) Handler {
	return func(*ExecutionState, *System) error {
		return &NotImplementedError{Op: op, Missing: missing}
	}
}
