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

package wasmalloc_test

import (
	"fmt"

	"buf.build/go/wasmalloc"
	"buf.build/go/wasmalloc/bucket"
)

func ExampleSliceBump() {
	arena := make([]byte, 1024)
	alloc := wasmalloc.SliceBump(arena)

	p := alloc.Alloc(16, 8)
	fmt.Println(p != nil)
	// Output: true
}

func ExampleAllocator() {
	// Two buckets: small 8-byte slots, then a 64-byte overflow class.
	var small, large bucket.Bucket
	small.Init(bucket.Config{SlotSize: 8, NumSlots: 32, Align: 8})
	large.Init(bucket.Config{SlotSize: 64, NumSlots: 32, Align: 8})
	set := bucket.NewSet(&small, &large)

	p := set.Alloc(8, 8)
	set.Dealloc(p, 8, 8)

	// The freed slot is handed out again.
	fmt.Println(set.Alloc(8, 8) == p)
	// Output: true
}
