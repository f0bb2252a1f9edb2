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

// Package hostmem abstracts a host-provided linear memory that grows in whole
// pages.
//
// The package models the WebAssembly memory primitives: a page count, a
// grow-by-pages operation that returns the prior page count or fails, and a
// linker-provided heap base past which dynamic allocation may begin. The
// [Linear] implementation binds the module's own linear memory on wasip1
// targets; [Sim] simulates one for tests and non-wasm builds.
package hostmem

import "buf.build/go/wasmalloc/internal/xunsafe"

// PageSize is the growth unit of a linear memory, 64 KiB.
const PageSize = 64 * 1024

// Memory is a linear memory that grows in whole pages and never shrinks.
type Memory interface {
	// Pages returns the current number of pages.
	Pages() int

	// Grow extends the memory by delta pages, returning the prior page count.
	// On failure it returns ok == false and the memory is unchanged.
	Grow(delta int) (prev int, ok bool)

	// HeapBase returns the address of the first byte available for dynamic
	// allocation, past any statically-linked data.
	//
	// The address is stable for the lifetime of the memory.
	HeapBase() xunsafe.Addr[byte]

	// HeapOffset returns the distance in bytes from the start of the memory
	// to HeapBase.
	HeapOffset() int
}
