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

package hostmem

import (
	"fmt"

	"buf.build/go/wasmalloc/internal/debug"
	"buf.build/go/wasmalloc/internal/xunsafe"
)

// Sim is a simulated linear memory backed by ordinary Go memory.
//
// The full backing array is reserved up front so that the memory's start
// address is stable across growth, the way a real linear memory's is.
type Sim struct {
	_ xunsafe.NoCopy

	buf     []byte // len == maxPages * PageSize, reserved up front
	pages   int
	heapOff int
}

// NewSim returns a simulated memory with the given initial and maximum page
// counts. heapOffset bytes at the start of the memory stand in for
// statically-linked data; the heap base points just past them.
func NewSim(pages, maxPages, heapOffset int) *Sim {
	if pages < 0 || maxPages < pages {
		panic(fmt.Sprintf("hostmem: invalid page counts %d/%d", pages, maxPages))
	}
	if heapOffset < 0 || heapOffset > pages*PageSize {
		panic(fmt.Sprintf("hostmem: heap offset %d outside initial memory", heapOffset))
	}

	return &Sim{
		buf:     make([]byte, maxPages*PageSize),
		pages:   pages,
		heapOff: heapOffset,
	}
}

// Pages returns the current number of pages.
func (m *Sim) Pages() int { return m.pages }

// Grow extends the memory by delta pages, returning the prior page count, or
// ok == false if the maximum page count would be exceeded.
func (m *Sim) Grow(delta int) (prev int, ok bool) {
	if delta < 0 || (m.pages+delta)*PageSize > len(m.buf) {
		debug.Log(nil, "grow", "refused %d pages at %d", delta, m.pages)
		return 0, false
	}

	prev = m.pages
	m.pages += delta
	debug.Log(nil, "grow", "%d -> %d pages", prev, m.pages)
	return prev, true
}

// HeapBase returns the address of the first byte past the simulated static
// data.
func (m *Sim) HeapBase() xunsafe.Addr[byte] {
	return xunsafe.AddrOf(&m.buf[0]).ByteAdd(m.heapOff)
}

// HeapOffset returns the distance from the start of the memory to HeapBase.
func (m *Sim) HeapOffset() int { return m.heapOff }
