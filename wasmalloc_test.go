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

package wasmalloc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buf.build/go/wasmalloc"
	"buf.build/go/wasmalloc/bucket"
	"buf.build/go/wasmalloc/bump"
)

// Every allocator implements the shared contract.
var (
	_ wasmalloc.Allocator = (*bump.Bump)(nil)
	_ wasmalloc.Allocator = (*bucket.Set)(nil)
)

func TestSliceBump(t *testing.T) {
	t.Parallel()

	arena := make([]byte, 64)
	alloc := wasmalloc.SliceBump(arena)

	p := alloc.Alloc(64, 1)
	require.NotNil(t, p)
	assert.Nil(t, alloc.Alloc(1, 1))

	alloc.Reset()
	assert.NotNil(t, alloc.Alloc(64, 1))
}

func TestSliceBumpThreadSafe(t *testing.T) {
	t.Parallel()

	arena := make([]byte, 64)
	alloc := wasmalloc.SliceBumpThreadSafe(arena)

	p1 := alloc.Alloc(8, 8)
	p2 := alloc.Alloc(8, 8)
	require.NotNil(t, p1)
	require.NotNil(t, p2)
	assert.NotSame(t, p1, p2)
}
