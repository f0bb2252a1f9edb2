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
	"buf.build/go/wasmalloc/internal/xunsafe"
	"buf.build/go/wasmalloc/internal/xunsafe/layout"
)

// Fixed is a non-growable [Arena] that owns its storage inline. The type
// parameter is the storage itself, and should be a byte array:
//
//	var arena bump.Fixed[[64 * 1024]byte]
//
// The zero value is ready to use. A Fixed must not be copied after its first
// use, since allocations point into it.
type Fixed[T any] struct {
	_   xunsafe.NoCopy
	buf T
}

// Start implements [Arena].
func (a *Fixed[T]) Start() xunsafe.Addr[byte] {
	return xunsafe.AddrOf(xunsafe.Cast[byte](&a.buf))
}

// Size implements [Arena].
func (a *Fixed[T]) Size() int { return layout.Size[T]() }

// Grow implements [Arena]. It always fails.
func (a *Fixed[T]) Grow(int) (int, error) { return 0, ErrGrowthFailed }
