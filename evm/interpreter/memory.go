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
	"math"

	"github.com/0xsoniclabs/evmactor/common"
)

const ErrMemoryLimit = common.ConstError("memory limit exceeded")

// maxMemorySize bounds the memory of a single call frame.
const maxMemorySize = math.MaxUint32

// Memory is the byte addressable scratch memory of an EVM call frame. It
// grows in words of 32 bytes and is zero initialized.
type Memory struct {
	store []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Len() int {
	return len(m.store)
}

// expand grows the memory so that the range [offset, offset+size) is
// addressable.
func (m *Memory) expand(offset, size uint64) error {
	if size == 0 {
		return nil
	}
	end := offset + size
	if end < offset || end > maxMemorySize {
		return fmt.Errorf("%w: range [%d, %d+%d)", ErrMemoryLimit, offset, offset, size)
	}
	words := (end + 31) / 32
	if need := int(words * 32); need > len(m.store) {
		m.store = append(m.store, make([]byte, need-len(m.store))...)
	}
	return nil
}

// Set writes the data at the given offset, growing the memory if needed.
func (m *Memory) Set(offset uint64, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := m.expand(offset, uint64(len(data))); err != nil {
		return err
	}
	copy(m.store[offset:], data)
	return nil
}

// GetCopy returns a copy of the given range, growing the memory if needed.
func (m *Memory) GetCopy(offset, size uint64) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	if err := m.expand(offset, size); err != nil {
		return nil, err
	}
	res := make([]byte, size)
	copy(res, m.store[offset:])
	return res, nil
}
