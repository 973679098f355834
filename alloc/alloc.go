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

// Package alloc provides the node-allocation strategies used by the tree
// container: a plain heap strategy and a block pool with an internal free
// list.  Strategies are chosen at construction time through the Allocator
// interface; there is no runtime switching.
package alloc

import "errors"

var (
	// ErrAllocFailed reports that backing storage could not be obtained.
	ErrAllocFailed = errors.New("alloc: allocation failed")

	// ErrUnsupportedSize reports a request for anything other than a
	// single object.  Vectorized allocation is not supported.
	ErrUnsupportedSize = errors.New("alloc: only single-object allocation is supported")

	// ErrInvalidArgument reports a caller contract violation, such as
	// deallocating a nil pointer.
	ErrInvalidArgument = errors.New("alloc: invalid argument")
)

// Allocator abstracts storage management for objects of type T.  Allocation
// and construction are separate steps: Allocate hands out uninitialized
// storage, Construct initializes it.  Deallocate must only be given pointers
// previously returned by Allocate on an allocator sharing the same backing
// storage.
type Allocator[T any] interface {
	// Allocate returns uninitialized storage for n objects.
	// Only n == 1 is supported.
	Allocate(n int) (*T, error)

	// Deallocate returns storage for n objects obtained from Allocate.
	// Only n == 1 is supported.  Deallocating a nil pointer fails with
	// ErrInvalidArgument.
	Deallocate(p *T, n int) error

	// Construct initializes the storage at p with v.
	Construct(p *T, v T)

	// Destroy resets the storage at p to the zero value, releasing
	// anything the object referenced.
	Destroy(p *T)
}

// Heap is the default allocation strategy: every object lives in its own
// garbage-collected heap allocation and Deallocate simply drops the
// reference.
type Heap[T any] struct{}

// NewHeap creates a new heap strategy.
func NewHeap[T any]() Heap[T] {
	return Heap[T]{}
}

// Allocate returns storage for a single object.
func (Heap[T]) Allocate(n int) (*T, error) {
	if n != 1 {
		return nil, ErrUnsupportedSize
	}
	return new(T), nil
}

// Deallocate releases the given storage to the garbage collector.
func (Heap[T]) Deallocate(p *T, n int) error {
	if n != 1 {
		return ErrUnsupportedSize
	}
	if p == nil {
		return ErrInvalidArgument
	}
	return nil
}

// Construct initializes the storage at p with v.
func (Heap[T]) Construct(p *T, v T) {
	*p = v
}

// Destroy resets the storage at p to the zero value.
func (Heap[T]) Destroy(p *T) {
	var zero T
	*p = zero
}
