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

	"github.com/holiman/uint256"
)

// StackLimit is the maximum number of words on the stack.
const StackLimit = 1024

// Stack is the operand stack of an EVM call frame.
type Stack struct {
	data []uint256.Int
}

func NewStack() *Stack {
	return &Stack{data: make([]uint256.Int, 0, 16)}
}

// Push places a copy of the given word on top of the stack.
func (s *Stack) Push(value *uint256.Int) error {
	if len(s.data) >= StackLimit {
		return fmt.Errorf("%w: limit of %d words reached", ErrStackOverflow, StackLimit)
	}
	s.data = append(s.data, *value)
	return nil
}

// Pop removes the top word from the stack.
func (s *Stack) Pop() (*uint256.Int, error) {
	if len(s.data) == 0 {
		return nil, ErrStackUnderflow
	}
	res := s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return &res, nil
}

// Pop2 removes the two top words from the stack, returning the top one first.
// Nothing is removed if the stack holds less than two words.
func (s *Stack) Pop2() (*uint256.Int, *uint256.Int, error) {
	if len(s.data) < 2 {
		return nil, nil, fmt.Errorf("%w: need 2 words, have %d", ErrStackUnderflow, len(s.data))
	}
	first, err := s.Pop()
	if err != nil {
		return nil, nil, err
	}
	second, err := s.Pop()
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

// Peek returns the word at the given depth, where 0 is the top of the stack.
func (s *Stack) Peek(depth int) (*uint256.Int, error) {
	if depth < 0 || depth >= len(s.data) {
		return nil, ErrStackUnderflow
	}
	res := s.data[len(s.data)-1-depth]
	return &res, nil
}

func (s *Stack) Len() int {
	return len(s.data)
}
