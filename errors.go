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

import "errors"

var (
	// ErrNotFound reports a Remove on a key absent from the tree.
	ErrNotFound = errors.New("bstree: key not found")

	// ErrInvalidArgument reports a caller contract violation, such as
	// inserting the zero key under the RejectZero policy.
	ErrInvalidArgument = errors.New("bstree: invalid argument")

	// ErrRecursionLimit reports an Insert whose descent exceeded the
	// configured depth ceiling.  The tree is left unchanged.
	ErrRecursionLimit = errors.New("bstree: recursion limit exceeded")

	// ErrIterPastEnd reports advancing an iterator that is already
	// exhausted.
	ErrIterPastEnd = errors.New("bstree: iterator advanced past end")

	// ErrDerefAtEnd reports dereferencing an exhausted iterator.
	ErrDerefAtEnd = errors.New("bstree: iterator dereferenced at end")
)

// Allocation failures surface unchanged from the alloc package; match them
// with errors.Is(err, alloc.ErrAllocFailed).
