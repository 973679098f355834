// Copyright 2024 The bstree Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bstree implements an ordered multiset as an in-memory binary
// search tree.
//
// Duplicate keys are not stored as separate nodes; each node carries a
// counter of extra occurrences, so a key inserted n times occupies one node
// and is reported n times by Len and Count while iteration yields it once.
// Node storage is obtained through a pluggable allocation strategy (see the
// alloc package): the default strategy allocates every node on the heap,
// while NewWithPool binds the tree to a fixed-size block pool whose free
// list recycles removed nodes.  Multiple trees may share one pool.
//
// The tree is not self-balancing and performs no internal locking.  Write
// operations are not safe for concurrent use, and a live Iterator is
// invalidated by any mutation of the tree it was created from.
package bstree

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/knired/bstree/alloc"
)

// DefaultMaxDepth is the descent ceiling applied to Insert when no explicit
// limit is configured.  Exceeding it fails with ErrRecursionLimit instead of
// exhausting the call stack on a degenerate chain.
const DefaultMaxDepth = 1000

// node is a single key slot in the tree.  dup counts extra occurrences of
// key beyond the first.
//
// It must at all times maintain the invariant that every key in the left
// subtree is less than key and every key in the right subtree is greater;
// equal keys never occupy more than one node.
type node[K constraints.Ordered] struct {
	key   K
	dup   uint64
	left  *node[K]
	right *node[K]
}

// Tree is an ordered multiset of K.
//
// The zero value is not usable; construct trees with New or NewWithPool.
type Tree[K constraints.Ordered] struct {
	root       *node[K]
	total      int
	duplicates int
	alloc      alloc.Allocator[node[K]]
	maxDepth   int
	rejectZero bool
}

type config struct {
	maxDepth   int
	rejectZero bool
}

// Option configures a Tree at construction time.
type Option func(*config)

// WithMaxDepth sets the Insert descent ceiling.
func WithMaxDepth(limit int) Option {
	return func(c *config) {
		c.maxDepth = limit
	}
}

// RejectZero makes Insert fail with ErrInvalidArgument for the zero value
// of the key type.  Off by default; useful when the zero value is a
// sentinel in the caller's domain.
func RejectZero() Option {
	return func(c *config) {
		c.rejectZero = true
	}
}

// New creates a new tree using the heap allocation strategy.
func New[K constraints.Ordered](opts ...Option) *Tree[K] {
	return newTree[K](alloc.NewHeap[node[K]](), opts)
}

// NewWithPool creates a new tree whose nodes are carved from the given
// pool.  Trees sharing one pool recycle each other's removed nodes.
func NewWithPool[K constraints.Ordered](pool *NodePool[K], opts ...Option) *Tree[K] {
	if pool == nil {
		panic("bstree: nil pool")
	}
	return newTree[K](pool.pool, opts)
}

func newTree[K constraints.Ordered](a alloc.Allocator[node[K]], opts []Option) *Tree[K] {
	c := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&c)
	}
	if c.maxDepth <= 0 {
		panic("bstree: bad depth limit")
	}
	return &Tree[K]{
		alloc:      a,
		maxDepth:   c.maxDepth,
		rejectZero: c.rejectZero,
	}
}

// NodePool is a block pool of tree nodes.  It exists so that multiple trees
// can share one pool; see NewWithPool.
type NodePool[K constraints.Ordered] struct {
	pool *alloc.Pool[node[K]]
}

// NewNodePool creates a new node pool.  By default blocks hold
// alloc.DefaultBlockSize nodes; tune with alloc.WithBlockSize and
// alloc.WithMaxBlocks.
func NewNodePool[K constraints.Ordered](opts ...alloc.PoolOption) *NodePool[K] {
	return &NodePool[K]{pool: alloc.NewPool[node[K]](opts...)}
}

// Stats returns statistics about the underlying pool.
func (p *NodePool[K]) Stats() alloc.PoolStats {
	return p.pool.Stats()
}

// Insert adds one occurrence of key to the tree.  Inserting a key already
// present increments its duplicate counter instead of growing the tree.
// A failed Insert leaves the tree exactly as it was: allocation failures
// propagate unchanged from the allocator before any node is linked, and a
// descent deeper than the configured ceiling fails with ErrRecursionLimit.
func (t *Tree[K]) Insert(key K) error {
	var zero K
	if t.rejectZero && key == zero {
		return fmt.Errorf("%w: zero key rejected by policy", ErrInvalidArgument)
	}
	root, grew, err := t.insert(t.root, key, 0)
	if err != nil {
		return err
	}
	t.root = root
	t.total++
	if !grew {
		t.duplicates++
	}
	return nil
}

// insert descends the subtree rooted at n looking for key's position.  It
// reports whether a new node was created.  On error the original subtree is
// returned unmodified so the caller never links partial structure.
func (t *Tree[K]) insert(n *node[K], key K, depth int) (_ *node[K], grew bool, _ error) {
	if t.maxDepth <= depth {
		return n, false, fmt.Errorf("%w at depth %d", ErrRecursionLimit, depth)
	}
	if n == nil {
		p, err := t.alloc.Allocate(1)
		if err != nil {
			return nil, false, err
		}
		t.alloc.Construct(p, node[K]{key: key})
		return p, true, nil
	}
	switch {
	case key < n.key:
		left, grew, err := t.insert(n.left, key, depth+1)
		if err != nil {
			return n, false, err
		}
		n.left = left
		return n, grew, nil
	case n.key < key:
		right, grew, err := t.insert(n.right, key, depth+1)
		if err != nil {
			return n, false, err
		}
		n.right = right
		return n, grew, nil
	default:
		n.dup++
		return n, false, nil
	}
}

// Search reports whether key is present in the tree.
func (t *Tree[K]) Search(key K) bool {
	return t.find(key) != nil
}

// Count returns the number of occurrences of key, zero if absent.
func (t *Tree[K]) Count(key K) uint64 {
	if n := t.find(key); n != nil {
		return n.dup + 1
	}
	return 0
}

func (t *Tree[K]) find(key K) *node[K] {
	n := t.root
	for n != nil {
		switch {
		case key < n.key:
			n = n.left
		case n.key < key:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// Remove deletes one occurrence of key.  While duplicates remain only the
// counter shrinks; the last occurrence removes the node itself, replacing a
// node with two children by its in-order successor.  Removing an absent key
// fails with ErrNotFound and does not mutate the tree.
func (t *Tree[K]) Remove(key K) error {
	n := t.find(key)
	if n == nil {
		return fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	if 0 < n.dup {
		n.dup--
		t.total--
		t.duplicates--
		return nil
	}
	t.root = t.removeNode(t.root, key)
	t.total--
	return nil
}

// removeNode structurally removes the node holding key from the subtree
// rooted at n, returning the new subtree root.  The caller has already
// resolved duplicate accounting; this always unlinks a node.
func (t *Tree[K]) removeNode(n *node[K], key K) *node[K] {
	if n == nil {
		return nil
	}
	switch {
	case key < n.key:
		n.left = t.removeNode(n.left, key)
	case n.key < key:
		n.right = t.removeNode(n.right, key)
	default:
		switch {
		case n.left == nil:
			out := n.right
			t.freeNode(n)
			return out
		case n.right == nil:
			out := n.left
			t.freeNode(n)
			return out
		default:
			// Two children: the in-order successor takes over this
			// node's slot, moving its occurrences wholesale, and its
			// old node is removed from the right subtree.  The
			// successor has no left child, so the recursion resolves
			// in the one- or no-child case.
			succ := findMin(n.right)
			n.key, n.dup = succ.key, succ.dup
			n.right = t.removeNode(n.right, n.key)
		}
	}
	return n
}

// findMin returns the leftmost node of the subtree rooted at n.
// n must not be nil.
func findMin[K constraints.Ordered](n *node[K]) *node[K] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// freeNode releases n back to the allocator.
func (t *Tree[K]) freeNode(n *node[K]) {
	t.alloc.Destroy(n)
	// n is non-nil and a single slot, so Deallocate cannot fail here.
	_ = t.alloc.Deallocate(n, 1)
}

// Min returns the smallest key in the tree, or (zero, false) if the tree is
// empty.
func (t *Tree[K]) Min() (_ K, _ bool) {
	if t.root == nil {
		return
	}
	return findMin(t.root).key, true
}

// Max returns the largest key in the tree, or (zero, false) if the tree is
// empty.
func (t *Tree[K]) Max() (_ K, _ bool) {
	if t.root == nil {
		return
	}
	n := t.root
	for n.right != nil {
		n = n.right
	}
	return n.key, true
}

// Len returns the number of logical elements currently in the tree,
// counting every occurrence of every key.
func (t *Tree[K]) Len() int {
	return t.total
}

// Duplicates returns the number of elements beyond the first occurrence of
// their key.
func (t *Tree[K]) Duplicates() int {
	return t.duplicates
}

// Clone returns an eager deep copy of the tree sharing the source's
// allocator, and therefore its pool.  The copies are fully independent:
// mutating one never changes the other.  Should allocation fail partway,
// every node already constructed for the clone is released back to the
// allocator before the error is returned.
func (t *Tree[K]) Clone() (*Tree[K], error) {
	out := &Tree[K]{
		alloc:      t.alloc,
		maxDepth:   t.maxDepth,
		rejectZero: t.rejectZero,
	}
	root, err := out.copyFrom(t.root)
	if err != nil {
		return nil, err
	}
	out.root = root
	out.total = t.total
	out.duplicates = t.duplicates
	return out, nil
}

// copyFrom deep-copies the subtree rooted at n in pre-order: node first,
// then left, then right.  On failure the partially built subtree has
// already been released when the error returns.
func (t *Tree[K]) copyFrom(n *node[K]) (*node[K], error) {
	if n == nil {
		return nil, nil
	}
	p, err := t.alloc.Allocate(1)
	if err != nil {
		return nil, err
	}
	t.alloc.Construct(p, node[K]{key: n.key, dup: n.dup})
	if p.left, err = t.copyFrom(n.left); err != nil {
		t.clear(p)
		return nil, err
	}
	if p.right, err = t.copyFrom(n.right); err != nil {
		t.clear(p)
		return nil, err
	}
	return p, nil
}

// Move transfers the tree's contents to a new tree sharing the same
// allocator and policies.  The source is left equivalent to a freshly
// constructed empty tree.
func (t *Tree[K]) Move() *Tree[K] {
	out := &Tree[K]{
		root:       t.root,
		total:      t.total,
		duplicates: t.duplicates,
		alloc:      t.alloc,
		maxDepth:   t.maxDepth,
		rejectZero: t.rejectZero,
	}
	t.root = nil
	t.total, t.duplicates = 0, 0
	return out
}

// Clear removes all elements, releasing every node back to the allocator
// in post-order so children are freed before their parent.  Clearing an
// empty tree is a no-op.
func (t *Tree[K]) Clear() {
	t.clear(t.root)
	t.root = nil
	t.total, t.duplicates = 0, 0
}

func (t *Tree[K]) clear(n *node[K]) {
	if n == nil {
		return
	}
	t.clear(n.left)
	t.clear(n.right)
	t.freeNode(n)
}
