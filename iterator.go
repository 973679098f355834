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

package bstree

import "golang.org/x/exp/constraints"

// KeyIterator allows callers of Ascend and Descend to iterate in order over
// the tree's keys.  count is the number of occurrences of key.  When this
// function returns false, iteration stops and the associated traversal
// function immediately returns.
type KeyIterator[K constraints.Ordered] func(key K, count uint64) bool

// Ascend calls the iterator for every key in the tree in ascending order,
// until the iterator returns false.
func (t *Tree[K]) Ascend(iterator KeyIterator[K]) {
	ascend(t.root, iterator)
}

// Descend calls the iterator for every key in the tree in descending order,
// until the iterator returns false.
func (t *Tree[K]) Descend(iterator KeyIterator[K]) {
	descend(t.root, iterator)
}

func ascend[K constraints.Ordered](n *node[K], iterator KeyIterator[K]) bool {
	if n == nil {
		return true
	}
	if !ascend(n.left, iterator) {
		return false
	}
	if !iterator(n.key, n.dup+1) {
		return false
	}
	return ascend(n.right, iterator)
}

func descend[K constraints.Ordered](n *node[K], iterator KeyIterator[K]) bool {
	if n == nil {
		return true
	}
	if !descend(n.right, iterator) {
		return false
	}
	if !iterator(n.key, n.dup+1) {
		return false
	}
	return descend(n.left, iterator)
}

// Keys returns the unique keys of the tree in ascending order.
func (t *Tree[K]) Keys() []K {
	out := make([]K, 0, t.total-t.duplicates)
	t.Ascend(func(key K, _ uint64) bool {
		out = append(out, key)
		return true
	})
	return out
}

// Iterator is a lazy in-order cursor over a tree.  It holds non-owning
// references into live nodes: it must not outlive the tree it was created
// from, and any mutation of that tree invalidates it.  A finished iterator
// cannot be restarted; traverse again by constructing a new one.
type Iterator[K constraints.Ordered] struct {
	stack   []*node[K]
	current *node[K]
}

// Begin returns an iterator positioned at the smallest key of the tree.
// On an empty tree the iterator is already exhausted and equals End.
func (t *Tree[K]) Begin() *Iterator[K] {
	it := &Iterator[K]{}
	it.pushLeft(t.root)
	it.pop()
	return it
}

// End returns the exhausted iterator every traversal of the tree ends at.
func (t *Tree[K]) End() *Iterator[K] {
	return &Iterator[K]{}
}

// pushLeft pushes the left spine of the subtree rooted at n: n itself and
// every left descendant, smallest on top.
func (it *Iterator[K]) pushLeft(n *node[K]) {
	for n != nil {
		it.stack = append(it.stack, n)
		n = n.left
	}
}

// pop moves the top of the stack into current, or marks the iterator
// exhausted if the stack is empty.
func (it *Iterator[K]) pop() {
	index := len(it.stack) - 1
	if index < 0 {
		it.current = nil
		return
	}
	it.current = it.stack[index]
	it.stack[index] = nil
	it.stack = it.stack[:index]
}

// Next advances to the next key in ascending order.  Advancing an
// exhausted iterator fails with ErrIterPastEnd.
func (it *Iterator[K]) Next() error {
	if it.current == nil {
		return ErrIterPastEnd
	}
	if it.current.right != nil {
		it.pushLeft(it.current.right)
	}
	it.pop()
	return nil
}

// Key returns the key at the iterator's position.  Dereferencing an
// exhausted iterator fails with ErrDerefAtEnd.
func (it *Iterator[K]) Key() (_ K, _ error) {
	if it.current == nil {
		var zero K
		return zero, ErrDerefAtEnd
	}
	return it.current.key, nil
}

// Count returns the number of occurrences of the key at the iterator's
// position, with the same contract as Key.
func (it *Iterator[K]) Count() (uint64, error) {
	if it.current == nil {
		return 0, ErrDerefAtEnd
	}
	return it.current.dup + 1, nil
}

// Valid reports whether the iterator is positioned on a key.
func (it *Iterator[K]) Valid() bool {
	return it.current != nil
}

// Equal reports whether two iterators reference the same position.  Two
// exhausted iterators over the same tree are equal.
func (it *Iterator[K]) Equal(other *Iterator[K]) bool {
	return other != nil && it.current == other.current
}
