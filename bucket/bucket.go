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

// Package bucket implements bucket allocators.
//
// A bucket is a pool of equally-sized, equally-aligned slots. Thirty-two
// slots are grouped into a segment, whose occupancy a single 32-bit bitmap
// tracks; a bucket is a contiguous run of segments. Unlike a bump allocator,
// a bucket allocator can free and reuse individual allocations: releasing a
// slot is a single bit clear, found from the pointer by address arithmetic
// rather than by scanning.
//
// A [Set] composes several buckets of different slot geometry into one
// allocator. Most users declare the geometry in a schema and let bucketgen
// emit the composite type; see the cmd/bucketgen documentation.
package bucket

import (
	"fmt"

	"buf.build/go/wasmalloc/internal/debug"
	"buf.build/go/wasmalloc/internal/xunsafe"
	"buf.build/go/wasmalloc/internal/xunsafe/layout"
)

// Config describes one bucket: NumSlots slots of SlotSize bytes each, every
// slot aligned to Align.
type Config struct {
	// SlotSize is the usable width of one slot in bytes. Requests larger
	// than this never match the bucket.
	SlotSize int

	// NumSlots is the requested capacity. The bucket rounds it up to a whole
	// number of 32-slot segments.
	NumSlots int

	// Align is the slot alignment; it must be a power of two. Zero means 1.
	Align int
}

// geometry is a Config elaborated into byte strides.
//
// A segment is laid out slots-first: 32 slots of stride bytes each, then the
// header word, then padding out to the segment alignment. Slots-first is
// load-bearing: it makes offset/stride arithmetic map slot pointers to slot
// indices exactly, and pointers into the header region produce slot indices
// >= 32, which release rejects.
type geometry struct {
	slotSize int // declared usable size
	align    int
	stride   int // slot stride: slotSize rounded up to align
	segSize  int // segment stride
	segAlign int
	segs     int
}

func (c Config) geometry() geometry {
	align := c.Align
	if align == 0 {
		align = 1
	}
	if c.SlotSize <= 0 || c.NumSlots <= 0 || !layout.IsPow2(align) {
		panic(fmt.Sprintf("wasmalloc: invalid bucket config %+v", c))
	}

	stride := layout.RoundUp(c.SlotSize, align)
	segAlign := max(align, layout.Align[header]())
	return geometry{
		slotSize: c.SlotSize,
		align:    align,
		stride:   stride,
		segSize:  layout.RoundUp(slotsPerSegment*stride+layout.Size[header](), segAlign),
		segAlign: segAlign,
		segs:     (c.NumSlots + slotsPerSegment - 1) / slotsPerSegment,
	}
}

// Bucket is a fixed pool of equally-sized, equally-aligned slots.
//
// A Bucket must be initialised with [Bucket.Init] before use and must not be
// copied afterwards, since allocations point into its storage.
type Bucket struct {
	_ xunsafe.NoCopy

	geo     geometry
	storage []byte
	base    xunsafe.Addr[byte] // aligned address of segment 0
	init    bool
}

// Init configures the bucket and allocates its backing storage. It panics if
// the config is malformed.
func (b *Bucket) Init(cfg Config) {
	b.geo = cfg.geometry()
	// Slack for aligning the first segment to the slot alignment.
	b.storage = make([]byte, b.geo.segs*b.geo.segSize+b.geo.segAlign-1)
	b.base = 0
	b.init = false
}

// EnsureInit lazily prepares the segment storage. It is idempotent and cheap
// once initialised.
//
// Init only allocates the storage; the aligned base address of segment 0 is
// computed and the header words are cleared here, on first use.
func (b *Bucket) EnsureInit() {
	if b.init {
		return
	}
	debug.Assert(b.storage != nil, "bucket used before Init")

	b.base = xunsafe.StartOf(b.storage).RoundUpTo(b.geo.segAlign)
	// Fresh storage is already zero; clear the headers anyway so behaviour
	// does not depend on where the storage came from.
	for i := 0; i < b.geo.segs; i++ {
		*b.header(i) = 0
	}
	b.init = true
	b.log("init", "%d segments of %d bytes at %v", b.geo.segs, b.geo.segSize, b.base)
}

// SlotSize returns the usable width of one slot in bytes.
func (b *Bucket) SlotSize() int { return b.geo.slotSize }

// Align returns the slot alignment.
func (b *Bucket) Align() int { return b.geo.align }

// Cap returns the total slot count, NumSlots rounded up to whole segments.
func (b *Bucket) Cap() int { return b.geo.segs * slotsPerSegment }

// Fits reports whether a request of the given size and alignment can be
// served by this bucket's slots.
func (b *Bucket) Fits(size, align int) bool {
	return size <= b.geo.slotSize && align <= b.geo.align
}

// ClaimFirstSlot scans the segments in order, marks the first free slot
// occupied, and returns its address. Returns nil if the bucket is full.
func (b *Bucket) ClaimFirstSlot() *byte {
	b.EnsureInit()

	for seg := 0; seg < b.geo.segs; seg++ {
		h := b.header(seg)
		i, ok := h.firstFree()
		if !ok {
			continue
		}
		h.set(i)
		b.log("claim", "%d:%d -> %v", seg, i, b.slot(seg, i))
		return b.slot(seg, i).AssertValid()
	}
	return nil
}

// ReleaseSlotAt frees the slot p points into, if p lies within this bucket's
// storage. It reports whether the pointer was accepted; rejection does not
// modify any state.
//
// The (segment, slot) pair is recovered from the address alone, so release is
// O(1) regardless of capacity.
func (b *Bucket) ReleaseSlotAt(p *byte) bool {
	b.EnsureInit()

	off := xunsafe.AddrOf(p).ByteSub(b.base)
	if off < 0 {
		return false
	}
	seg := off / b.geo.segSize
	if seg >= b.geo.segs {
		return false
	}
	i := (off % b.geo.segSize) / b.geo.stride
	if i >= slotsPerSegment {
		// Pointer into the header word or trailing padding.
		return false
	}

	b.header(seg).clear(i)
	b.log("release", "%d:%d (%p)", seg, i, p)
	return true
}

// header returns the occupancy bitmap of the given segment.
func (b *Bucket) header(seg int) *header {
	off := seg*b.geo.segSize + slotsPerSegment*b.geo.stride
	return xunsafe.Cast[header](b.base.ByteAdd(off).AssertValid())
}

// slot returns the address of the given slot.
func (b *Bucket) slot(seg, i int) xunsafe.Addr[byte] {
	return b.base.ByteAdd(seg*b.geo.segSize + i*b.geo.stride)
}

// Format implements [fmt.Formatter], rendering the segment bitmaps.
func (b *Bucket) Format(state fmt.State, verb rune) {
	if !b.init {
		fmt.Fprintf(state, "Bucket{uninit, %d slots of %d:%d}",
			b.Cap(), b.geo.slotSize, b.geo.align)
		return
	}
	fmt.Fprintf(state, "Bucket{%d:%d", b.geo.slotSize, b.geo.align)
	for seg := 0; seg < b.geo.segs; seg++ {
		fmt.Fprintf(state, " %v", *b.header(seg))
	}
	fmt.Fprint(state, "}")
}

func (b *Bucket) log(op, format string, args ...any) {
	debug.Log([]any{"%p %d:%d", b, b.geo.slotSize, b.geo.align}, op, format, args...)
}
