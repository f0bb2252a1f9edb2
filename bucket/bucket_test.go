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

package bucket_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buf.build/go/wasmalloc/bucket"
	"buf.build/go/wasmalloc/internal/debug"
	"buf.build/go/wasmalloc/internal/xunsafe"
)

// delta returns q - p in bytes.
func delta(p, q *byte) int {
	return xunsafe.AddrOf(q).ByteSub(xunsafe.AddrOf(p))
}

func TestClaimSequence(t *testing.T) {
	t.Parallel()
	defer debug.WithTesting(t)()

	var b bucket.Bucket
	b.Init(bucket.Config{SlotSize: 2, NumSlots: 32})

	p1 := b.ClaimFirstSlot()
	p2 := b.ClaimFirstSlot()
	p3 := b.ClaimFirstSlot()
	require.NotNil(t, p1)
	require.NotNil(t, p2)
	require.NotNil(t, p3)

	assert.Equal(t, 2, delta(p1, p2))
	assert.Equal(t, 2, delta(p2, p3))
}

func TestReuse(t *testing.T) {
	t.Parallel()

	var b bucket.Bucket
	b.Init(bucket.Config{SlotSize: 2, NumSlots: 32})

	p1 := b.ClaimFirstSlot()
	p2 := b.ClaimFirstSlot()
	p3 := b.ClaimFirstSlot()
	require.NotNil(t, p3)

	assert.True(t, b.ReleaseSlotAt(p2))

	// The released slot is reused before untouched ones.
	p4 := b.ClaimFirstSlot()
	assert.Same(t, p2, p4)

	p5 := b.ClaimFirstSlot()
	assert.Equal(t, 2, delta(p3, p5))
	_ = p1
}

func TestExhaustion(t *testing.T) {
	t.Parallel()

	var b bucket.Bucket
	b.Init(bucket.Config{SlotSize: 4, NumSlots: 32})

	for i := 0; i < 32; i++ {
		require.NotNil(t, b.ClaimFirstSlot(), "slot %d", i)
	}
	assert.Nil(t, b.ClaimFirstSlot())

	assert.Equal(t, 32, b.Cap())
}

func TestMultipleSegments(t *testing.T) {
	t.Parallel()

	var b bucket.Bucket
	b.Init(bucket.Config{SlotSize: 2, NumSlots: 64})

	var last *byte
	for i := 0; i < 64; i++ {
		p := b.ClaimFirstSlot()
		require.NotNil(t, p, "slot %d", i)
		if last != nil && i != 32 {
			// Within a segment, slots are contiguous.
			assert.Equal(t, 2, delta(last, p))
		}
		if i == 32 {
			// Crossing into the second segment skips the first one's
			// header word.
			assert.Greater(t, delta(last, p), 2)
		}
		last = p
	}
	assert.Nil(t, b.ClaimFirstSlot())
}

func TestCapRoundsUpToWholeSegments(t *testing.T) {
	t.Parallel()

	var b bucket.Bucket
	b.Init(bucket.Config{SlotSize: 8, NumSlots: 33})
	assert.Equal(t, 64, b.Cap())

	for i := 0; i < 64; i++ {
		require.NotNil(t, b.ClaimFirstSlot(), "slot %d", i)
	}
	assert.Nil(t, b.ClaimFirstSlot())
}

func TestSlotAlignment(t *testing.T) {
	t.Parallel()

	aligns := []int{1, 2, 4, 8, 16, 64}
	for _, align := range aligns {
		var b bucket.Bucket
		b.Init(bucket.Config{SlotSize: 2, NumSlots: 32, Align: align})

		for i := 0; i < 32; i++ {
			p := b.ClaimFirstSlot()
			require.NotNil(t, p)
			assert.Zero(t, int(xunsafe.AddrOf(p))%align,
				"slot %d not aligned to %d", i, align)
		}
	}
}

func TestReleaseRejectsForeignPointers(t *testing.T) {
	t.Parallel()

	var b, other bucket.Bucket
	b.Init(bucket.Config{SlotSize: 2, NumSlots: 32})
	other.Init(bucket.Config{SlotSize: 2, NumSlots: 32})

	p := other.ClaimFirstSlot()
	require.NotNil(t, p)

	assert.False(t, b.ReleaseSlotAt(p))

	// The foreign probe must not have disturbed b.
	p1 := b.ClaimFirstSlot()
	p2 := b.ClaimFirstSlot()
	assert.Equal(t, 2, delta(p1, p2))
}

func TestFits(t *testing.T) {
	t.Parallel()

	var b bucket.Bucket
	b.Init(bucket.Config{SlotSize: 4, NumSlots: 32, Align: 4})

	assert.True(t, b.Fits(1, 1))
	assert.True(t, b.Fits(4, 4))
	assert.False(t, b.Fits(5, 1))
	assert.False(t, b.Fits(1, 8))

	assert.Equal(t, 4, b.SlotSize())
	assert.Equal(t, 4, b.Align())
}

func TestInitPanicsOnBadConfig(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		var b bucket.Bucket
		b.Init(bucket.Config{SlotSize: 0, NumSlots: 32})
	})
	assert.Panics(t, func() {
		var b bucket.Bucket
		b.Init(bucket.Config{SlotSize: 2, NumSlots: 32, Align: 3})
	})
}
