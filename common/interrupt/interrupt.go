// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package interrupt

import (
	"context"

	"github.com/0xsoniclabs/evmactor/common"
)

// ErrCanceled is returned by long running operations aborted through their
// context.
const ErrCanceled = common.ConstError("interrupted")

// IsCancelled checks without blocking whether the given context was canceled.
func IsCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
