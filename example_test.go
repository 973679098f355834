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

package bstree_test

import (
	"fmt"

	"github.com/knired/bstree"
	"github.com/knired/bstree/alloc"
)

// A caller that only needs sequential output copies the elements into its
// own slice through Ascend.
func Example() {
	tr := bstree.New[int]()
	for _, key := range []int{5, 3, 8, 3, 1} {
		if err := tr.Insert(key); err != nil {
			panic(err)
		}
	}

	var keys []int
	tr.Ascend(func(key int, count uint64) bool {
		keys = append(keys, key)
		return true
	})
	fmt.Println(keys, tr.Len(), tr.Count(3))
	// Output: [1 3 5 8] 5 2
}

// Trees created from one node pool recycle each other's removed nodes.
func ExampleNewWithPool() {
	pool := bstree.NewNodePool[string](alloc.WithBlockSize(32))
	books := bstree.NewWithPool(pool)
	authors := bstree.NewWithPool(pool)

	for _, title := range []string{"Sula", "Beloved", "Jazz"} {
		if err := books.Insert(title); err != nil {
			panic(err)
		}
	}
	if err := authors.Insert("Morrison"); err != nil {
		panic(err)
	}

	fmt.Println(books.Keys(), authors.Keys())
	// Output: [Beloved Jazz Sula] [Morrison]
}
