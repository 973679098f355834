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

package alloc

import (
	"fmt"

	"github.com/golang/glog"
)

// DefaultBlockSize is the number of object slots carved per backing block
// when no explicit block size is configured.
const DefaultBlockSize = 64

// Pool is a fixed-size block pool.  When the free list is empty, it
// allocates one backing block of blockSize slots and threads every slot
// onto the free list; Allocate pops the free-list head and Deallocate
// pushes slots back.  There is no coalescing, no compaction and no
// shrinking: the pool owns every backing block until the pool itself
// becomes unreachable.  Block allocation therefore amortizes to
// O(1/blockSize) per object while allocation and deallocation are O(1).
//
// Multiple handles to one Pool share one free list; the shared state must
// only be accessed sequentially, external synchronization is the caller's
// responsibility.
type Pool[T any] struct {
	free      []*T
	blocks    [][]T
	blockSize int
	maxBlocks int
	grows     uint64

	// onGrow, if set, runs after every successful block allocation.
	// Test instrumentation only.
	onGrow func(blocks int)
}

type poolConfig struct {
	blockSize int
	maxBlocks int
}

// PoolOption configures a Pool at construction time.
type PoolOption func(*poolConfig)

// WithBlockSize sets the number of slots carved per backing block.
func WithBlockSize(n int) PoolOption {
	return func(c *poolConfig) {
		c.blockSize = n
	}
}

// WithMaxBlocks bounds the number of backing blocks the pool may own.
// Once the budget is reached, Allocate on an empty free list fails with
// ErrAllocFailed.  Zero means unbounded.
func WithMaxBlocks(n int) PoolOption {
	return func(c *poolConfig) {
		c.maxBlocks = n
	}
}

// NewPool creates a new block pool.
func NewPool[T any](opts ...PoolOption) *Pool[T] {
	c := poolConfig{blockSize: DefaultBlockSize}
	for _, opt := range opts {
		opt(&c)
	}
	if c.blockSize <= 0 {
		panic("alloc: bad block size")
	}
	if c.maxBlocks < 0 {
		panic("alloc: bad block budget")
	}
	return &Pool[T]{
		blockSize: c.blockSize,
		maxBlocks: c.maxBlocks,
	}
}

// Allocate pops a slot off the free list, growing the pool by one backing
// block first if the free list is empty.  The returned storage is
// uninitialized; see Construct.
func (p *Pool[T]) Allocate(n int) (*T, error) {
	if n != 1 {
		return nil, ErrUnsupportedSize
	}
	if len(p.free) == 0 {
		if err := p.grow(); err != nil {
			return nil, err
		}
	}
	index := len(p.free) - 1
	out := p.free[index]
	p.free[index] = nil
	p.free = p.free[:index]
	return out, nil
}

// Deallocate pushes the given slot back onto the free-list head.  The slot
// stays owned by the pool and will be handed out again by a later Allocate.
func (p *Pool[T]) Deallocate(ptr *T, n int) error {
	if n != 1 {
		return ErrUnsupportedSize
	}
	if ptr == nil {
		return ErrInvalidArgument
	}
	p.free = append(p.free, ptr)
	return nil
}

// Construct initializes the slot at ptr with v.
func (p *Pool[T]) Construct(ptr *T, v T) {
	*ptr = v
}

// Destroy resets the slot at ptr to the zero value.
func (p *Pool[T]) Destroy(ptr *T) {
	var zero T
	*ptr = zero
}

// Equal reports whether the other handle manages the same class of storage.
// Pool handles are interchangeable for deallocation purposes, so this is
// always true; all observable state lives in the shared pool.
func (p *Pool[T]) Equal(*Pool[T]) bool {
	return true
}

// grow carves one new backing block and threads its slots onto the free
// list.  On failure the free list is left unchanged.
func (p *Pool[T]) grow() error {
	if 0 < p.maxBlocks && p.maxBlocks <= len(p.blocks) {
		return fmt.Errorf("%w: block budget of %d exhausted", ErrAllocFailed, p.maxBlocks)
	}
	block := make([]T, p.blockSize)
	for i := range block {
		p.free = append(p.free, &block[i])
	}
	p.blocks = append(p.blocks, block)
	p.grows++
	if p.onGrow != nil {
		p.onGrow(len(p.blocks))
	}
	glog.V(2).Infof("pool grew to %d blocks (%d slots)", len(p.blocks), len(p.blocks)*p.blockSize)
	return nil
}

// PoolStats is a point-in-time snapshot of a pool's bookkeeping.
type PoolStats struct {
	// Blocks is the number of backing blocks currently owned.
	Blocks int
	// BlockSize is the number of slots per backing block.
	BlockSize int
	// FreeSlots is the current length of the free list.
	FreeSlots int
	// Grows is the total number of block allocations performed.
	Grows uint64
}

// Stats returns statistics about the pool.
func (p *Pool[T]) Stats() PoolStats {
	return PoolStats{
		Blocks:    len(p.blocks),
		BlockSize: p.blockSize,
		FreeSlots: len(p.free),
		Grows:     p.grows,
	}
}
