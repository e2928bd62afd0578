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
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipfs/go-cid"
)

// The block format of a node is the RLP encoding of an encodedNode. The
// bit field is the minimal big-endian encoding of the node's bit map. Each
// pointer has either a non-empty link or a non-empty list of entries.
type encodedNode struct {
	Bitfield []byte
	Pointers []encodedPointer
}

type encodedPointer struct {
	Link    []byte
	Entries []encodedEntry
}

type encodedEntry struct {
	Key   []byte
	Value []byte
}

// encode produces the block format of this node. All links of the node must
// be defined.
func (n *node) encode() ([]byte, error) {
	res := encodedNode{
		Bitfield: n.bitmap.bytes(),
		Pointers: make([]encodedPointer, len(n.pointers)),
	}
	for i, p := range n.pointers {
		if p.isLink() {
			if !p.link.Defined() {
				return nil, fmt.Errorf("can not encode node with undefined link")
			}
			res.Pointers[i].Link = p.link.Bytes()
			continue
		}
		entries := make([]encodedEntry, len(p.bucket))
		for j, kv := range p.bucket {
			entries[j] = encodedEntry{Key: kv.key, Value: kv.value}
		}
		res.Pointers[i].Entries = entries
	}
	return rlp.EncodeToBytes(&res)
}

// decodeNode parses the block format of a node of a trie with the given bit
// width. Structurally invalid nodes are rejected with ErrMalformedNode.
func decodeNode(data []byte, bitWidth int) (*node, error) {
	var encoded encodedNode
	if err := rlp.DecodeBytes(data, &encoded); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedNode, err)
	}

	res := &node{}
	if !res.bitmap.setBytes(encoded.Bitfield) {
		return nil, fmt.Errorf("%w: invalid bit field %x", ErrMalformedNode, encoded.Bitfield)
	}
	if res.bitmap.bitLen() > 1<<bitWidth {
		return nil, fmt.Errorf("%w: bit field %x exceeds width %d", ErrMalformedNode, encoded.Bitfield, bitWidth)
	}
	if got, want := len(encoded.Pointers), res.bitmap.count(); got != want {
		return nil, fmt.Errorf("%w: bit field marks %d positions, but node has %d pointers", ErrMalformedNode, want, got)
	}

	res.pointers = make([]*pointer, len(encoded.Pointers))
	for i, p := range encoded.Pointers {
		switch {
		case len(p.Link) > 0 && len(p.Entries) == 0:
			link, err := cid.Cast(p.Link)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid link: %w", ErrMalformedNode, err)
			}
			res.pointers[i] = &pointer{link: link}
		case len(p.Link) == 0 && len(p.Entries) > 0:
			if len(p.Entries) > bucketSize {
				return nil, fmt.Errorf("%w: bucket with %d entries", ErrMalformedNode, len(p.Entries))
			}
			bucket := make([]keyValue, len(p.Entries))
			for j, entry := range p.Entries {
				if j > 0 && bytes.Compare(bucket[j-1].key, entry.Key) >= 0 {
					return nil, fmt.Errorf("%w: bucket entries not sorted", ErrMalformedNode)
				}
				bucket[j] = keyValue{key: entry.Key, value: entry.Value}
			}
			res.pointers[i] = &pointer{bucket: bucket}
		default:
			return nil, fmt.Errorf("%w: pointer must be either a link or a bucket", ErrMalformedNode)
		}
	}
	return res, nil
}
