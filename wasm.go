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

//go:build wasip1

package wasmalloc

import (
	"buf.build/go/wasmalloc/bump"
	"buf.build/go/wasmalloc/internal/hostmem"
)

// WasmBump returns a single-threaded bump allocator over the module's entire
// linear memory, starting at the linker's heap base and growing on demand.
func WasmBump() *bump.Bump {
	return bump.New(bump.NewPages(hostmem.Linear{}), new(bump.SingleThreadedHead))
}

// WasmBumpThreadSafe is [WasmBump] with an atomic head, for multithreaded
// WebAssembly modules.
func WasmBumpThreadSafe() *bump.Bump {
	return bump.New(bump.NewPages(hostmem.Linear{}), new(bump.ThreadSafeHead))
}
