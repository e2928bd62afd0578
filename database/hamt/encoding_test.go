// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package hamt

import (
	"encoding/hex"
	"testing"

	"github.com/0xsoniclabs/evmactor/database/blockstore"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestEncoding_NodesCanBeEncodedAndDecoded(t *testing.T) {
	require := require.New(t)
	link, err := blockstore.ComputeCid([]byte("child"))
	require.NoError(err)

	original := &node{}
	original.bitmap.set(1)
	original.bitmap.set(3)
	original.pointers = []*pointer{
		{bucket: []keyValue{
			{key: []byte{1}, value: []byte{10}},
			{key: []byte{2}, value: []byte{}},
		}},
		{link: link},
	}

	data, err := original.encode()
	require.NoError(err)

	restored, err := decodeNode(data, 2)
	require.NoError(err)
	require.Equal(original.bitmap, restored.bitmap)
	require.Len(restored.pointers, 2)
	require.Len(restored.pointers[0].bucket, 2)
	require.Equal([]byte{1}, restored.pointers[0].bucket[0].key)
	require.Equal([]byte{10}, restored.pointers[0].bucket[0].value)
	require.Equal([]byte{2}, restored.pointers[0].bucket[1].key)
	require.Empty(restored.pointers[0].bucket[1].value)
	require.True(restored.pointers[1].isLink())
	require.Equal(link, restored.pointers[1].link)

	again, err := restored.encode()
	require.NoError(err)
	require.Equal(data, again)
}

func TestEncoding_EmptyNodeCanBeEncoded(t *testing.T) {
	require := require.New(t)
	data, err := (&node{}).encode()
	require.NoError(err)
	restored, err := decodeNode(data, DefaultBitWidth)
	require.NoError(err)
	require.Empty(restored.pointers)
	require.False(restored.bitmap.any())
}

func TestEncoding_BlockFormatIsStable(t *testing.T) {
	empty, err := hex.DecodeString("c280c0")
	require.NoError(t, err)
	emptyId, err := blockstore.ComputeCid(empty)
	require.NoError(t, err)

	buckets := &node{}
	buckets.bitmap.set(1)
	buckets.bitmap.set(9)
	buckets.pointers = []*pointer{
		{bucket: []keyValue{{key: []byte{1}, value: []byte{0xaa}}}},
		{bucket: []keyValue{
			{key: []byte{2, 3}, value: []byte{}},
			{key: []byte{2, 4}, value: []byte("xyz")},
		}},
	}

	links := &node{}
	links.bitmap.set(0)
	links.bitmap.set(255)
	links.pointers = []*pointer{
		{link: emptyId},
		{bucket: []keyValue{{key: []byte{1}, value: []byte{}}}},
	}

	tests := map[string]struct {
		node     *node
		bitWidth int
		want     string
	}{
		"empty": {
			node:     &node{},
			bitWidth: DefaultBitWidth,
			want:     "c280c0",
		},
		"buckets": {
			node:     buckets,
			bitWidth: DefaultBitWidth,
			want:     "db820202d7c680c4c30181aacf80cdc482020380c78202048378797a",
		},
		"links": {
			node:     links,
			bitWidth: MaxBitWidth,
			want: "f851a08000000000000000000000000000000000000000000000000000000000000001" +
				"efe8a60155a0e402208ea3e4f8bc1acd55ade13612522e3589da4173515c162ab50c98fc921bd70da1c0c580c3c20180",
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			data, err := test.node.encode()
			require.NoError(err)
			require.Equal(test.want, hex.EncodeToString(data))

			restored, err := decodeNode(data, test.bitWidth)
			require.NoError(err)
			again, err := restored.encode()
			require.NoError(err)
			require.Equal(data, again)
		})
	}
}

func TestEncoding_NodesWithUnstoredChildrenCanNotBeEncoded(t *testing.T) {
	n := &node{}
	n.bitmap.set(0)
	n.pointers = []*pointer{{child: &node{}}}
	_, err := n.encode()
	require.Error(t, err)
}

func TestEncoding_MalformedNodesAreRejected(t *testing.T) {
	link, err := blockstore.ComputeCid([]byte("child"))
	require.NoError(t, err)
	entry := func(k byte) encodedEntry {
		return encodedEntry{Key: []byte{k}, Value: []byte{k}}
	}
	bucket := func(keys ...byte) encodedPointer {
		res := encodedPointer{}
		for _, k := range keys {
			res.Entries = append(res.Entries, entry(k))
		}
		return res
	}

	tests := map[string]encodedNode{
		"non-canonical bit field": {
			Bitfield: []byte{0x00, 0x01},
			Pointers: []encodedPointer{bucket(1)},
		},
		"bit field exceeding width": {
			Bitfield: []byte{0x10},
			Pointers: []encodedPointer{bucket(1)},
		},
		"too few pointers": {
			Bitfield: []byte{0x03},
			Pointers: []encodedPointer{bucket(1)},
		},
		"too many pointers": {
			Bitfield: []byte{0x01},
			Pointers: []encodedPointer{bucket(1), bucket(2)},
		},
		"empty pointer": {
			Bitfield: []byte{0x01},
			Pointers: []encodedPointer{{}},
		},
		"link and bucket": {
			Bitfield: []byte{0x01},
			Pointers: []encodedPointer{{Link: link.Bytes(), Entries: []encodedEntry{entry(1)}}},
		},
		"invalid link": {
			Bitfield: []byte{0x01},
			Pointers: []encodedPointer{{Link: []byte{0xff}}},
		},
		"unsorted bucket": {
			Bitfield: []byte{0x01},
			Pointers: []encodedPointer{bucket(2, 1)},
		},
		"duplicated keys": {
			Bitfield: []byte{0x01},
			Pointers: []encodedPointer{bucket(1, 1)},
		},
		"oversized bucket": {
			Bitfield: []byte{0x01},
			Pointers: []encodedPointer{bucket(1, 2, 3, 4)},
		},
	}

	for name, encoded := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := rlp.EncodeToBytes(&encoded)
			require.NoError(t, err)
			_, err = decodeNode(data, 2)
			require.ErrorIs(t, err, ErrMalformedNode)
		})
	}
}

func TestEncoding_InvalidRlpIsRejected(t *testing.T) {
	for _, data := range [][]byte{nil, {0x01}, {0xc0, 0x00}, []byte("garbage")} {
		_, err := decodeNode(data, DefaultBitWidth)
		require.ErrorIs(t, err, ErrMalformedNode)
	}
}
