// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

// ActorID is the compact numeric identifier the host chain assigns to an
// account.
type ActorID uint64

// ChainEpoch is the chain's discrete time step. It increases monotonically.
type ChainEpoch int64

// DealID identifies a storage deal. Deal ids are the members of the sets
// indexed by a SetMultimap.
type DealID = uint64
