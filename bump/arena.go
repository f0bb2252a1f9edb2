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

package bump

import (
	"errors"

	"buf.build/go/wasmalloc/internal/xunsafe"
)

// ErrGrowthFailed is returned by [Arena.Grow] when the arena cannot be
// extended: always, for the non-growable arenas, and when the host refuses to
// hand out more pages, for [Pages].
var ErrGrowthFailed = errors.New("wasmalloc: arena growth failed")

// Arena is a contiguous region of addressable memory that an allocator carves
// allocations out of.
type Arena interface {
	// Start returns the address of the arena's first byte. The address is
	// stable for the arena's lifetime.
	Start() xunsafe.Addr[byte]

	// Size returns the arena's current length in bytes. It never decreases.
	Size() int

	// Grow extends the arena until Size() >= minBytes and returns the new
	// size, or fails with [ErrGrowthFailed].
	Grow(minBytes int) (int, error)
}

// BytesPastEnd returns the number of bytes the arena falls short of making p
// addressable: ok is false when p already lies within the arena.
//
// The count is inclusive of p itself, so growing by exactly the returned
// amount makes p the arena's last byte.
func BytesPastEnd(a Arena, p xunsafe.Addr[byte]) (n int, ok bool) {
	end := a.Start().ByteAdd(a.Size())
	n = p.ByteSub(end) + 1
	if n <= 0 {
		return 0, false
	}
	return n, true
}
