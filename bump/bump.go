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

// Package bump implements bump allocators.
//
// A bump allocator works on a linear region of memory and only stores a
// counter for where the next free byte is. Allocation moves that counter
// forwards, which is easy and fast; the trade-off is that memory is never
// reclaimed short of a full [Bump.Reset].
//
// The region is abstracted as an [Arena]: a borrowed slice ([Slice]), an
// owned inline array ([Fixed]), or the host's own linear memory growing in
// whole pages ([Pages]).
package bump

import (
	"fmt"

	"buf.build/go/wasmalloc/internal/debug"
	"buf.build/go/wasmalloc/internal/xunsafe"
	"buf.build/go/wasmalloc/internal/xunsafe/layout"
)

// Bump is a bump allocator over an [Arena], tracking the first free byte with
// a [Head].
type Bump struct {
	_ xunsafe.NoCopy

	mem  Arena
	head Head
}

// New returns a bump allocator carving allocations out of mem.
func New(mem Arena, head Head) *Bump {
	return &Bump{mem: mem, head: head}
}

// Alloc allocates size bytes aligned to align, which must be a power of two.
//
// Returns nil when the arena is exhausted and cannot grow; the head is left
// untouched in that case. Zero-size requests return the current aligned head
// without advancing it; the result must not be dereferenced.
func (b *Bump) Alloc(size, align int) *byte {
	debug.Assert(layout.IsPow2(align), "alignment %d is not a power of two", align)

	p := b.mem.Start().ByteAdd(b.head.Current())
	offset := p.Padding(align)
	if size == 0 {
		return p.ByteAdd(offset).AssertValid()
	}

	// The growth check is against the last byte of the new allocation, so
	// that an allocation ending exactly at the arena boundary does not grow.
	last := p.ByteAdd(offset + size - 1)
	if missing, ok := BytesPastEnd(b.mem, last); ok {
		if _, err := b.mem.Grow(b.mem.Size() + missing); err != nil {
			b.log("alloc", "failed %d:%d: %v", size, align, err)
			return nil
		}
	}

	b.head.Bump(offset + size)
	b.log("alloc", "%v, %d:%d", p.ByteAdd(offset), size, align)
	return p.ByteAdd(offset).AssertValid()
}

// Dealloc implements the allocation contract. It is a no-op: bump allocators
// do not reclaim.
func (b *Bump) Dealloc(*byte, int, int) {}

// Reset returns the head to zero, making the whole arena available again.
//
// The allocator cannot tell whether allocations are still live; the caller
// asserts that none are.
func (b *Bump) Reset() {
	b.head.Set(0)
	b.log("reset", "size=%d", b.mem.Size())
}

// String implements [fmt.Stringer].
func (b *Bump) String() string {
	return fmt.Sprintf("Bump{head: %d, size: %d}", b.head.Current(), b.mem.Size())
}

func (b *Bump) log(op, format string, args ...any) {
	debug.Log([]any{"%p head=%d", b, b.head.Current()}, op, format, args...)
}
