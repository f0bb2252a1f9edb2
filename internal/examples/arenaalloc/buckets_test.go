// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package arenaalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buf.build/go/wasmalloc/internal/xunsafe"
)

func delta(p, q *byte) int {
	return xunsafe.AddrOf(q).ByteSub(xunsafe.AddrOf(p))
}

func TestNextInBucket(t *testing.T) {
	t.Parallel()

	a := NewArenaAlloc()

	p1 := a.Alloc(2, 1)
	p2 := a.Alloc(2, 1)
	require.NotNil(t, p1)
	require.NotNil(t, p2)
	assert.Equal(t, 2, delta(p1, p2))
}

func TestReuse(t *testing.T) {
	t.Parallel()

	a := NewArenaAlloc()

	p1 := a.Alloc(2, 1)
	p2 := a.Alloc(2, 1)
	p3 := a.Alloc(2, 1)
	assert.Equal(t, 2, delta(p1, p2))
	assert.Equal(t, 2, delta(p2, p3))

	a.Dealloc(p2, 2, 1)

	p4 := a.Alloc(2, 1)
	assert.Same(t, p2, p4)
}

func TestBucketOverflow(t *testing.T) {
	t.Parallel()

	a := NewArenaAlloc()

	// Fill the 2-byte bucket.
	for i := 0; i < a.Vec2().Cap(); i++ {
		require.NotNil(t, a.Alloc(2, 1), "slot %d", i)
	}

	// A 4-byte request and an overflowing 2-byte request both land in the
	// 4-byte bucket, adjacent to each other.
	p1 := a.Alloc(4, 1)
	p2 := a.Alloc(2, 1)
	require.NotNil(t, p1)
	require.NotNil(t, p2)
	assert.Equal(t, 4, delta(p1, p2))
}

func TestAlignmentDispatch(t *testing.T) {
	t.Parallel()

	a := NewArenaAlloc()

	// An 8-aligned request skips the 2- and 4-aligned buckets.
	p := a.Alloc(2, 8)
	require.NotNil(t, p)
	assert.True(t, a.Overflow().ReleaseSlotAt(p))
	a.Overflow().ClaimFirstSlot()

	// No bucket provides 128-byte alignment.
	assert.Nil(t, a.Alloc(2, 128))
}

func TestStaticInit(t *testing.T) {
	t.Parallel()

	// The package-level allocator below was built in a variable initialiser
	// and works without further setup.
	p := global.Alloc(4, 4)
	require.NotNil(t, p)
	global.Dealloc(p, 4, 4)
}

var global = NewArenaAlloc()
