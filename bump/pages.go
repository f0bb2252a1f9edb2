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
	"fmt"

	"buf.build/go/wasmalloc/internal/hostmem"
	"buf.build/go/wasmalloc/internal/xunsafe"
)

// Pages is a growable [Arena] over a host linear memory.
//
// The arena begins at the memory's heap base, past any statically-linked
// data, so that runtime allocations cannot clobber compile-time constants. It
// grows in whole 64 KiB pages and never shrinks.
type Pages struct {
	mem hostmem.Memory
}

// NewPages returns an arena over the given linear memory.
func NewPages(mem hostmem.Memory) *Pages {
	return &Pages{mem}
}

// Start implements [Arena].
func (a *Pages) Start() xunsafe.Addr[byte] { return a.mem.HeapBase() }

// Size implements [Arena].
func (a *Pages) Size() int {
	return a.mem.Pages()*hostmem.PageSize - a.mem.HeapOffset()
}

// Grow implements [Arena], requesting however many whole pages cover the
// missing bytes.
func (a *Pages) Grow(minBytes int) (int, error) {
	need := minBytes - a.Size()
	if need <= 0 {
		return a.Size(), nil
	}

	delta := (need + hostmem.PageSize - 1) / hostmem.PageSize
	if _, ok := a.mem.Grow(delta); !ok {
		return 0, fmt.Errorf("%w: host refused %d more pages", ErrGrowthFailed, delta)
	}
	return a.Size(), nil
}
