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

package main

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAllocator() allocator {
	a := allocator{
		Name: "ArenaAlloc",
		Sort: true,
		Buckets: []bucketDesc{
			{Name: "overflow", SlotSize: 64, NumSlots: 64, Align: 64},
			{Name: "vec2", SlotSize: 2, NumSlots: 128, Align: 2},
		},
	}
	a.normalize()
	return a
}

func TestEmit(t *testing.T) {
	t.Parallel()

	code, err := emit("mem", []allocator{testAllocator()})
	require.NoError(t, err)
	src := string(code)

	// The output is well-formed Go.
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "buckets.go", code, parser.SkipObjectResolution)
	require.NoError(t, err)
	assert.Equal(t, "mem", file.Name.Name)

	assert.True(t, strings.HasPrefix(src, "// Code generated by bucketgen. DO NOT EDIT."))
	assert.Contains(t, src, `"buf.build/go/wasmalloc/bucket"`)

	// sort_buckets put vec2 first. Note that gofmt aligns the field types,
	// so match the fields loosely.
	assert.Regexp(t, `vec2\s+bucket\.Bucket`, src)
	assert.Regexp(t, `overflow\s+bucket\.Bucket`, src)
	assert.Less(t, strings.Index(src, "vec2"), strings.Index(src, "overflow"))

	assert.Contains(t, src, "type ArenaAlloc struct {")
	assert.Regexp(t, `set\s+bucket\.Set`, src)
	assert.Contains(t, src, "func NewArenaAlloc() *ArenaAlloc {")
	assert.Contains(t, src, "a.vec2.Init(bucket.Config{SlotSize: 2, NumSlots: 128, Align: 2})")
	assert.Contains(t, src, "a.overflow.Init(bucket.Config{SlotSize: 64, NumSlots: 64, Align: 64})")
	assert.Contains(t, src, "a.set = bucket.NewSet(&a.vec2, &a.overflow)")

	// The allocation contract and the per-bucket accessors.
	assert.Contains(t, src, "func (a *ArenaAlloc) Alloc(size, align int) *byte")
	assert.Contains(t, src, "func (a *ArenaAlloc) Dealloc(ptr *byte, size, align int)")
	assert.Contains(t, src, "func (a *ArenaAlloc) Vec2() *bucket.Bucket")
	assert.Contains(t, src, "func (a *ArenaAlloc) Overflow() *bucket.Bucket")

	// The segment counts surface in the field comments.
	assert.Contains(t, src, "4 segments")
	assert.Contains(t, src, "2 segments")
}

func TestEmitMultipleAllocators(t *testing.T) {
	t.Parallel()

	second := allocator{
		Name:    "ScratchAlloc",
		Buckets: []bucketDesc{{Name: "blocks", SlotSize: 16, NumSlots: 32, Align: 8}},
	}
	second.normalize()

	code, err := emit("mem", []allocator{testAllocator(), second})
	require.NoError(t, err)

	src := string(code)
	assert.Contains(t, src, "func NewArenaAlloc() *ArenaAlloc {")
	assert.Contains(t, src, "func NewScratchAlloc() *ScratchAlloc {")
	assert.Contains(t, src, "func (a *ScratchAlloc) Blocks() *bucket.Bucket")

	_, err = parser.ParseFile(token.NewFileSet(), "buckets.go", code, parser.SkipObjectResolution)
	require.NoError(t, err)
}

func TestEmitRejectsCollidingNames(t *testing.T) {
	t.Parallel()

	a := allocator{
		Name:    "A",
		Buckets: []bucketDesc{{Name: "alloc", SlotSize: 2, NumSlots: 32, Align: 1}},
	}

	_, err := emit("mem", []allocator{a})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collides")
}
