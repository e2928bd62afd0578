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

import "github.com/ethereum/go-ethereum/core/vm"

// MaxLogTopics is the number of topics of the widest log instruction.
const MaxLogTopics = 4

// makeLog creates the handler of the log instruction with the given number
// of topics.
func makeLog(topics int) Handler {
	return notImplemented(vm.LOG0+vm.OpCode(topics), "event emission")
}
