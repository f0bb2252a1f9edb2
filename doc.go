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

// Package wasmalloc provides memory allocators for constrained,
// single-address-space environments: WebAssembly modules in particular, but
// equally bare-metal targets, where the program supplies its own allocator
// without an operating-system heap underneath.
//
// Two families are offered:
//
//   - Bump allocators ([buf.build/go/wasmalloc/bump]) carve allocations
//     sequentially out of a linear region: a fixed inline array, a borrowed
//     slice, or the host's entire linear memory with demand-driven page
//     growth. They never reclaim.
//
//   - Bucket allocators ([buf.build/go/wasmalloc/bucket]) partition memory
//     into fixed-size slots grouped by size and alignment class, tracking
//     occupancy by bitmap. They free and reuse slots, but never coalesce or
//     split classes.
//
// Every allocator implements the same contract, [Allocator]: allocation takes
// a size and a power-of-two alignment and returns a raw byte pointer, nil on
// failure; failure is never a panic. The allocators never read or write
// allocated bytes, and make no lifetime claims beyond their own.
//
// Bucket allocators are usually not assembled by hand. The bucketgen tool
// (cmd/bucketgen) reads a declarative schema of (slot size, slot count,
// alignment) triples and emits the composite allocator type; see its
// documentation.
package wasmalloc
