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

import "buf.build/go/wasmalloc/internal/xunsafe"

// Slice is a non-growable [Arena] over an externally-owned byte slice.
//
// The allocator borrows the slice; the caller must keep it alive for as long
// as any allocation made from it.
type Slice struct {
	buf []byte
}

// NewSlice returns an arena over buf.
func NewSlice(buf []byte) *Slice {
	return &Slice{buf}
}

// Start implements [Arena].
func (a *Slice) Start() xunsafe.Addr[byte] { return xunsafe.StartOf(a.buf) }

// Size implements [Arena].
func (a *Slice) Size() int { return len(a.buf) }

// Grow implements [Arena]. It always fails.
func (a *Slice) Grow(int) (int, error) { return 0, ErrGrowthFailed }
