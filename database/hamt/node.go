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
	"errors"
	"fmt"
	"slices"

	"github.com/0xsoniclabs/evmactor/database/blockstore"
	"github.com/ipfs/go-cid"
)

// bucketSize is the maximum number of entries stored in a bucket. A full
// bucket receiving another entry is converted into a child node.
const bucketSize = 3

// ---- Nodes ----

// node is a node of the trie. Each node has up to 2^bitWidth child positions,
// of which the occupied ones are marked in the bit map. For each occupied
// position, in ascending order, the node holds one pointer.
type node struct {
	bitmap   bitMap
	pointers []*pointer

	id    cid.Cid // < the id of the node's last stored encoding, valid if not dirty
	dirty bool    // < true if the node was modified since it was last stored
}

// pointer is the content of an occupied child position. It is either a
// bucket of entries or a link to a child node.
type pointer struct {
	bucket []keyValue // < sorted by key, empty for links
	link   cid.Cid    // < the stored child, undefined for children never stored
	child  *node      // < the loaded child, nil if not loaded yet
}

type keyValue struct {
	key   []byte
	value []byte
}

func (p *pointer) isLink() bool {
	return len(p.bucket) == 0
}

// find locates the given key in the bucket. If the key is not present, the
// returned position is where it would have to be inserted.
func (p *pointer) find(key []byte) (int, bool) {
	return slices.BinarySearchFunc(p.bucket, key, func(kv keyValue, key []byte) int {
		return bytes.Compare(kv.key, key)
	})
}

// loadChild returns the linked child node, fetching it from the store on
// first access.
func (p *pointer) loadChild(source nodeSource) (*node, error) {
	if p.child != nil {
		return p.child, nil
	}
	child, err := source.load(p.link)
	if err != nil {
		return nil, err
	}
	p.child = child
	return child, nil
}

func compareKeyValues(a, b keyValue) int {
	return bytes.Compare(a.key, b.key)
}

// ---- Node sources ----

// nodeSource provides access to the stored nodes of a trie.
type nodeSource struct {
	store    blockstore.Blockstore
	bitWidth int
}

func (s nodeSource) load(id cid.Cid) (*node, error) {
	data, err := s.store.Get(id)
	if errors.Is(err, blockstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrMissingNode, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load node %v: %w", id, err)
	}
	res, err := decodeNode(data, s.bitWidth)
	if err != nil {
		return nil, fmt.Errorf("node %v: %w", id, err)
	}
	res.id = id
	return res, nil
}

// storeNode writes the given node to the store. All modified children of the
// node must have been stored before.
func (s nodeSource) storeNode(n *node) error {
	for _, p := range n.pointers {
		if p.child == nil {
			continue
		}
		if p.child.dirty {
			return fmt.Errorf("modified child node was not stored")
		}
		p.link = p.child.id
	}
	data, err := n.encode()
	if err != nil {
		return err
	}
	id, err := s.store.Put(data)
	if err != nil {
		return fmt.Errorf("failed to store node: %w", err)
	}
	n.id = id
	n.dirty = false
	return nil
}

// ---- Operations ----

func (n *node) get(source nodeSource, hash *HashedKey, key []byte, depth int) ([]byte, bool, error) {
	index, err := hash.index(depth, source.bitWidth)
	if err != nil {
		return nil, false, err
	}
	if !n.bitmap.get(index) {
		return nil, false, nil
	}
	p := n.pointers[n.bitmap.rank(index)]
	if !p.isLink() {
		pos, found := p.find(key)
		if !found {
			return nil, false, nil
		}
		return p.bucket[pos].value, true, nil
	}
	child, err := p.loadChild(source)
	if err != nil {
		return nil, false, err
	}
	return child.get(source, hash, key, depth+1)
}

// set binds the key to the value in the sub-trie rooted by this node. It
// returns the previous value of the key and reports whether the sub-trie was
// modified.
func (n *node) set(
	source nodeSource,
	algo HashAlgorithm,
	hash *HashedKey,
	key, value []byte,
	depth int,
) (prev []byte, existed bool, modified bool, err error) {
	index, err := hash.index(depth, source.bitWidth)
	if err != nil {
		return nil, false, false, err
	}
	pos := n.bitmap.rank(index)
	if !n.bitmap.get(index) {
		n.pointers = slices.Insert(n.pointers, pos, &pointer{
			bucket: []keyValue{{key: key, value: value}},
		})
		n.bitmap.set(index)
		n.dirty = true
		return nil, false, true, nil
	}

	p := n.pointers[pos]
	if p.isLink() {
		child, err := p.loadChild(source)
		if err != nil {
			return nil, false, false, err
		}
		prev, existed, modified, err = child.set(source, algo, hash, key, value, depth+1)
		if modified {
			n.dirty = true
		}
		return prev, existed, modified, err
	}

	i, found := p.find(key)
	if found {
		prev = p.bucket[i].value
		if bytes.Equal(prev, value) {
			return prev, true, false, nil
		}
		p.bucket[i].value = value
		n.dirty = true
		return prev, true, true, nil
	}
	if len(p.bucket) < bucketSize {
		p.bucket = slices.Insert(p.bucket, i, keyValue{key: key, value: value})
		n.dirty = true
		return nil, false, true, nil
	}

	// The bucket is full, all its entries are pushed down into a new child.
	child := &node{dirty: true}
	for _, kv := range p.bucket {
		kvHash, err := hashKey(algo, kv.key)
		if err != nil {
			return nil, false, false, err
		}
		if _, _, _, err := child.set(source, algo, &kvHash, kv.key, kv.value, depth+1); err != nil {
			return nil, false, false, err
		}
	}
	if _, _, _, err := child.set(source, algo, hash, key, value, depth+1); err != nil {
		return nil, false, false, err
	}
	n.pointers[pos] = &pointer{child: child}
	n.dirty = true
	return nil, false, true, nil
}

// delete removes the key from the sub-trie rooted by this node and returns
// the removed value. Removing a missing key leaves the sub-trie unmodified.
func (n *node) delete(source nodeSource, hash *HashedKey, key []byte, depth int) ([]byte, bool, error) {
	index, err := hash.index(depth, source.bitWidth)
	if err != nil {
		return nil, false, err
	}
	if !n.bitmap.get(index) {
		return nil, false, nil
	}
	pos := n.bitmap.rank(index)
	p := n.pointers[pos]
	if !p.isLink() {
		i, found := p.find(key)
		if !found {
			return nil, false, nil
		}
		removed := p.bucket[i].value
		p.bucket = slices.Delete(p.bucket, i, i+1)
		if len(p.bucket) == 0 {
			n.removePointer(index, pos)
		}
		n.dirty = true
		return removed, true, nil
	}

	child, err := p.loadChild(source)
	if err != nil {
		return nil, false, err
	}
	removed, existed, err := child.delete(source, hash, key, depth+1)
	if err != nil || !existed {
		return removed, existed, err
	}
	n.dirty = true
	n.cleanChild(index, pos, child)
	return removed, true, nil
}

// cleanChild restores the canonical shape of the trie after an entry was
// removed below the child at the given position. A child without links and
// with at most bucketSize entries is replaced by a bucket holding its
// entries.
func (n *node) cleanChild(index, pos int, child *node) {
	if len(child.pointers) == 0 {
		n.removePointer(index, pos)
		return
	}
	if len(child.pointers) > bucketSize {
		return
	}
	entries := make([]keyValue, 0, bucketSize)
	for _, p := range child.pointers {
		if p.isLink() || len(entries)+len(p.bucket) > bucketSize {
			return
		}
		entries = append(entries, p.bucket...)
	}
	slices.SortFunc(entries, compareKeyValues)
	n.pointers[pos] = &pointer{bucket: entries}
}

func (n *node) removePointer(index, pos int) {
	n.pointers = slices.Delete(n.pointers, pos, pos+1)
	n.bitmap.unset(index)
}

// forEach visits all entries of the sub-trie in trie order.
func (n *node) forEach(source nodeSource, visit func(key, value []byte) error) error {
	for _, p := range n.pointers {
		if !p.isLink() {
			for _, kv := range p.bucket {
				if err := visit(kv.key, kv.value); err != nil {
					return err
				}
			}
			continue
		}
		child, err := p.loadChild(source)
		if err != nil {
			return err
		}
		if err := child.forEach(source, visit); err != nil {
			return err
		}
	}
	return nil
}

// isCollapsible reports whether the entries of this node would fit into a
// single bucket of its parent.
func (n *node) isCollapsible() bool {
	count := 0
	for _, p := range n.pointers {
		if p.isLink() {
			return false
		}
		count += len(p.bucket)
	}
	return count <= bucketSize
}
