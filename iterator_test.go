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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIteratorEmptyTree(t *testing.T) {
	tr := New[int]()
	it := tr.Begin()

	assert.False(t, it.Valid())
	assert.True(t, it.Equal(tr.End()))

	_, err := it.Key()
	require.ErrorIs(t, err, ErrDerefAtEnd)
	_, err = it.Count()
	require.ErrorIs(t, err, ErrDerefAtEnd)
	require.ErrorIs(t, it.Next(), ErrIterPastEnd)
}

func TestIteratorTraversal(t *testing.T) {
	tr := New[int]()
	for _, key := range perm(1000) {
		require.NoError(t, tr.Insert(key))
	}

	var got []int
	for it := tr.Begin(); !it.Equal(tr.End()); {
		key, err := it.Key()
		require.NoError(t, err)
		got = append(got, key)
		require.NoError(t, it.Next())
	}
	assert.Equal(t, rang(1000), got)
}

func TestIteratorCounts(t *testing.T) {
	tr := New[int]()
	for _, key := range []int{5, 3, 8, 3, 3} {
		require.NoError(t, tr.Insert(key))
	}

	counts := map[int]uint64{}
	for it := tr.Begin(); it.Valid(); {
		key, err := it.Key()
		require.NoError(t, err)
		count, err := it.Count()
		require.NoError(t, err)
		counts[key] = count
		require.NoError(t, it.Next())
	}
	assert.Equal(t, map[int]uint64{3: 3, 5: 1, 8: 1}, counts)
}

func TestIteratorExhaustion(t *testing.T) {
	tr := New[int]()
	require.NoError(t, tr.Insert(1))

	it := tr.Begin()
	require.True(t, it.Valid())
	require.NoError(t, it.Next())

	assert.False(t, it.Valid())
	assert.True(t, it.Equal(tr.End()))
	require.ErrorIs(t, it.Next(), ErrIterPastEnd)
	_, err := it.Key()
	require.ErrorIs(t, err, ErrDerefAtEnd)
}

func TestIteratorEquality(t *testing.T) {
	tr := New[int]()
	for _, key := range []int{2, 1, 3} {
		require.NoError(t, tr.Insert(key))
	}

	a, b := tr.Begin(), tr.Begin()
	assert.True(t, a.Equal(b), "fresh iterators reference the same node")
	assert.False(t, a.Equal(tr.End()))
	assert.False(t, a.Equal(nil))

	require.NoError(t, a.Next())
	assert.False(t, a.Equal(b))

	require.NoError(t, b.Next())
	assert.True(t, a.Equal(b))
}

func TestDescend(t *testing.T) {
	tr := New[int]()
	for _, key := range perm(100) {
		require.NoError(t, tr.Insert(key))
	}

	var got []int
	tr.Descend(func(key int, _ uint64) bool {
		got = append(got, key)
		return true
	})

	want := make([]int, 0, 100)
	for i := 99; 0 <= i; i-- {
		want = append(want, i)
	}
	assert.Equal(t, want, got)
}

func TestAscendEarlyStop(t *testing.T) {
	tr := New[int]()
	for _, key := range perm(100) {
		require.NoError(t, tr.Insert(key))
	}

	var got []int
	tr.Ascend(func(key int, _ uint64) bool {
		got = append(got, key)
		return key < 9
	})
	assert.Equal(t, rang(10), got)
}
