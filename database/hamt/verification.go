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

//go:generate mockgen -source verification.go -destination verification_mocks.go -package hamt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/0xsoniclabs/evmactor/common/interrupt"
	"github.com/0xsoniclabs/evmactor/database/blockstore"
	"github.com/ipfs/go-cid"
	"golang.org/x/exp/maps"
)

// VerificationObserver is notified about the progress of a verification.
type VerificationObserver interface {
	StartVerification()
	Progress(msg string)
	EndVerification(res error)
}

// NilVerificationObserver is a VerificationObserver ignoring all events.
type NilVerificationObserver struct{}

func (NilVerificationObserver) StartVerification() {}

func (NilVerificationObserver) Progress(string) {}

func (NilVerificationObserver) EndVerification(error) {}

// Stats summarizes the shape of a stored trie.
type Stats struct {
	Nodes   int         // < number of nodes, including the root
	Buckets int         // < number of buckets
	Entries int         // < number of key/value pairs
	Depths  map[int]int // < number of entries by the depth of their node
}

func (s Stats) String() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "nodes: %d, buckets: %d, entries: %d", s.Nodes, s.Buckets, s.Entries)
	depths := maps.Keys(s.Depths)
	slices.Sort(depths)
	for _, depth := range depths {
		fmt.Fprintf(&builder, "\n  depth %2d: %d entries", depth, s.Depths[depth])
	}
	return builder.String()
}

// Verify checks the integrity of the trie with the given root. It checks
// that all reachable nodes are present, that their ids match their content,
// that they are canonically encoded and shaped, and that every key is placed
// at the position selected by its hash. The verification can be interrupted
// through the given context.
func Verify(
	ctx context.Context,
	store blockstore.Blockstore,
	root cid.Cid,
	bitWidth int,
	algo HashAlgorithm,
	observer VerificationObserver,
) error {
	observer.StartVerification()
	err := verify(ctx, store, root, bitWidth, algo, observer)
	observer.EndVerification(err)
	return err
}

func verify(
	ctx context.Context,
	store blockstore.Blockstore,
	root cid.Cid,
	bitWidth int,
	algo HashAlgorithm,
	observer VerificationObserver,
) error {
	if err := checkBitWidth(bitWidth); err != nil {
		return err
	}
	observer.Progress(fmt.Sprintf("Verifying trie with root %v ...", root))
	visitor := verifyingVisitor{
		algo:      algo,
		bitWidth:  bitWidth,
		observer:  observer,
		logWindow: 100_000,
	}
	stats, err := walk(ctx, nodeSource{store: store, bitWidth: bitWidth}, root, visitor.visit)
	if err != nil {
		return err
	}
	observer.Progress(fmt.Sprintf("Verified %d nodes holding %d entries", stats.Nodes, stats.Entries))
	return nil
}

// GetStats collects statistics on the trie with the given root.
func GetStats(ctx context.Context, store blockstore.Blockstore, root cid.Cid, bitWidth int) (Stats, error) {
	if err := checkBitWidth(bitWidth); err != nil {
		return Stats{}, err
	}
	return walk(ctx, nodeSource{store: store, bitWidth: bitWidth}, root, nil)
}

// nodeVisitor is called for every node reached by a walk, together with the
// node's stored encoding and the child positions leading to it.
type nodeVisitor func(n *node, data []byte, path []int) error

// walk loads and visits all nodes reachable from the given root in depth
// first order. Every stored node is decoded from its stored encoding, even if
// it was already loaded by a map.
func walk(ctx context.Context, source nodeSource, root cid.Cid, visit nodeVisitor) (Stats, error) {
	stats := Stats{Depths: map[int]int{}}
	counter := 0
	var visitNode func(id cid.Cid, path []int) error
	visitNode = func(id cid.Cid, path []int) error {
		if counter%100 == 0 && interrupt.IsCancelled(ctx) {
			return interrupt.ErrCanceled
		}
		counter++

		data, err := source.store.Get(id)
		if errors.Is(err, blockstore.ErrNotFound) {
			return fmt.Errorf("%w: %v at path %v", ErrMissingNode, id, path)
		}
		if err != nil {
			return fmt.Errorf("failed to load node %v at path %v: %w", id, path, err)
		}
		n, err := decodeNode(data, source.bitWidth)
		if err != nil {
			return fmt.Errorf("node %v at path %v: %w", id, path, err)
		}
		if visit != nil {
			if err := visit(n, data, path); err != nil {
				return fmt.Errorf("node %v at path %v: %w", id, path, err)
			}
		}

		stats.Nodes++
		for i, index := range n.positions() {
			p := n.pointers[i]
			if p.isLink() {
				if err := visitNode(p.link, append(slices.Clip(path), index)); err != nil {
					return err
				}
				continue
			}
			stats.Buckets++
			stats.Entries += len(p.bucket)
			stats.Depths[len(path)] += len(p.bucket)
		}
		return nil
	}
	if err := visitNode(root, nil); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// positions lists the occupied child positions of the node in ascending
// order.
func (n *node) positions() []int {
	res := make([]int, 0, len(n.pointers))
	for i := range 256 {
		if n.bitmap.get(i) {
			res = append(res, i)
		}
	}
	return res
}

type verifyingVisitor struct {
	algo      HashAlgorithm
	bitWidth  int
	observer  VerificationObserver
	logWindow int
	counter   int
}

func (v *verifyingVisitor) visit(n *node, data []byte, path []int) error {
	v.counter++
	if v.counter%v.logWindow == 0 {
		v.observer.Progress(fmt.Sprintf("  ... verified %d nodes", v.counter))
	}

	encoded, err := n.encode()
	if err != nil {
		return err
	}
	if !bytes.Equal(encoded, data) {
		return fmt.Errorf("%w: encoding is not canonical", ErrMalformedNode)
	}
	if len(path) > 0 {
		if len(n.pointers) == 0 {
			return fmt.Errorf("%w: empty inner node", ErrMalformedNode)
		}
		if n.isCollapsible() {
			return fmt.Errorf("%w: inner node should be collapsed into its parent", ErrMalformedNode)
		}
	}
	if len(path) >= maxDepth(v.bitWidth) && len(n.pointers) > 0 {
		return fmt.Errorf("%w: node below maximum depth", ErrMalformedNode)
	}

	for i, index := range n.positions() {
		p := n.pointers[i]
		if p.isLink() {
			continue
		}
		for _, kv := range p.bucket {
			hash, err := hashKey(v.algo, kv.key)
			if err != nil {
				return err
			}
			for depth, want := range append(slices.Clip(path), index) {
				got, err := hash.index(depth, v.bitWidth)
				if err != nil {
					return err
				}
				if got != want {
					return fmt.Errorf("%w: key %x misplaced at depth %d", ErrMalformedNode, kv.key, depth)
				}
			}
		}
	}
	return nil
}
