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

//go:build wasip1

package hostmem

import (
	_ "unsafe" // for go:linkname

	"buf.build/go/wasmalloc/internal/xunsafe"
)

// Linear binds the linear memory the module itself runs in. Index selects the
// memory, for hosts implementing the multi-memory proposal; index 0 is the
// default memory.
//
// The heap base is the linker-provided __heap_base symbol, which sits past
// all statically-linked data. Linear memory addresses start at zero, so the
// symbol's own address doubles as the heap offset.
type Linear struct {
	Index uint32
}

// Pages returns the current number of pages.
func (m Linear) Pages() int { return int(memorySize(m.Index)) }

// Grow extends the memory by delta pages.
//
// The host returns all-ones when it refuses to grow.
func (m Linear) Grow(delta int) (prev int, ok bool) {
	n := memoryGrow(m.Index, uint32(delta))
	if n == ^uint32(0) {
		return 0, false
	}
	return int(n), true
}

// HeapBase returns the address of the first byte past static data.
func (m Linear) HeapBase() xunsafe.Addr[byte] {
	return xunsafe.AddrOf(&heapBase)
}

// HeapOffset returns the distance from the start of the memory to HeapBase.
func (m Linear) HeapOffset() int { return int(m.HeapBase()) }

// The linker sets the address of __heap_base to the first byte past the data
// segments.
//
//go:linkname heapBase __heap_base
var heapBase byte

//go:wasmimport env memory_size
func memorySize(index uint32) uint32

//go:wasmimport env memory_grow
func memoryGrow(index, delta uint32) uint32
