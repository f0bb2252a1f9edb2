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

package wasmalloc

import (
	"buf.build/go/wasmalloc/bump"
)

// Allocator is the allocation contract shared by every allocator in this
// module.
//
// align is always a power of two; ptr passed to Dealloc was previously
// returned by Alloc on the same allocator, with the same size and alignment
// or smaller.
type Allocator interface {
	// Alloc allocates size bytes aligned to align. A nil return signals
	// failure; Alloc never panics on exhaustion.
	Alloc(size, align int) *byte

	// Dealloc releases an allocation. Bump allocators treat this as a no-op.
	Dealloc(ptr *byte, size, align int)
}

// SliceBump returns a single-threaded bump allocator using buf as its arena.
//
// The caller keeps buf alive for as long as any allocation made from it.
func SliceBump(buf []byte) *bump.Bump {
	return bump.New(bump.NewSlice(buf), new(bump.SingleThreadedHead))
}

// SliceBumpThreadSafe is [SliceBump] with an atomic head, for hosts that
// dispatch multiple threads through the same memory.
func SliceBumpThreadSafe(buf []byte) *bump.Bump {
	return bump.New(bump.NewSlice(buf), new(bump.ThreadSafeHead))
}
