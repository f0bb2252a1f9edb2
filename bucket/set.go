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

package bucket

// Set dispatches the allocation contract across an ordered collection of
// buckets.
//
// Order is significant: allocation takes the first bucket whose geometry fits
// the request and that has a free slot, so buckets with smaller slots should
// precede larger ones when best-fit is desired. bucketgen's sort_buckets
// option emits that order automatically.
//
// A Set is not safe for concurrent use: the bitmap update is a
// read-modify-write. Callers must ensure mutual exclusion externally.
type Set struct {
	buckets []*Bucket
}

// NewSet returns a set dispatching across the given buckets, in order.
func NewSet(buckets ...*Bucket) Set {
	return Set{buckets}
}

// Alloc claims a slot from the first bucket that fits size and align, which
// must be a power of two.
//
// Returns nil when no bucket's geometry satisfies the request, or when every
// candidate bucket is full.
func (s *Set) Alloc(size, align int) *byte {
	for _, b := range s.buckets {
		b.EnsureInit()
		if !b.Fits(size, align) {
			continue
		}
		if p := b.ClaimFirstSlot(); p != nil {
			return p
		}
	}
	return nil
}

// Dealloc releases the slot p points into.
//
// Ownership is determined by address arithmetic, not by the request's size
// and alignment, which may be smaller than the original allocation: the
// pointer is offered to every bucket, and the one whose storage contains it
// clears the slot.
func (s *Set) Dealloc(p *byte, size, align int) {
	for _, b := range s.buckets {
		if b.ReleaseSlotAt(p) {
			return
		}
	}
}
