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

// Bucketgen generates bucket allocator types from a declarative schema.
//
// The schema is a Go struct whose fields name the buckets and whose field
// types carry the bucket parameters, marked with a directive:
//
//	//wasmalloc:allocator sort_buckets=true
//	type ArenaAlloc struct {
//		vec2     Bucket[SlotSize[2], NumSlots[128], Align[2]]
//		overflow Bucket[SlotSize[64], NumSlots[64], Align[64]]
//	}
//
// The pseudo-generic Bucket type never compiles; schema files are kept out of
// the build with a `//go:build ignore` constraint and exist only to be read
// by this tool, typically via
//
//	//go:generate go run buf.build/go/wasmalloc/cmd/bucketgen -src schema.go
//
// SlotSize and NumSlots are mandatory, Align defaults to 1, and all three
// take literal nonnegative integers. Parameter order within a bucket is
// insignificant. Field order is significant: allocation scans buckets in
// field order, so smaller slot sizes should come first for best-fit; the
// sort_buckets option reorders the emitted buckets by (slot size, alignment)
// ascending instead.
//
// For each marked struct, the generated file defines a struct with one
// [bucket.Bucket] field per declared bucket, a New constructor usable from
// package variable initialisers, Alloc/Dealloc methods implementing the
// allocation contract, and one accessor per bucket.
//
// Alternatively, -schema reads the same description from a YAML manifest:
//
//	allocator: ArenaAlloc
//	sort_buckets: true
//	buckets:
//	  - name: vec2
//	    slot_size: 2
//	    num_slots: 128
//	    align: 2
//
//nolint:errcheck // Internal tool; panicking on error is fine.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

var (
	src    = flag.String("src", os.Getenv("GOFILE"), "Go schema file to read (defaults to $GOFILE)")
	schema = flag.String("schema", "", "YAML schema file to read instead of -src")
	out    = flag.String("out", "", "output path (defaults to buckets.go next to the input)")
	pkg    = flag.String("pkg", "", "package name for the generated file (required with -schema)")
)

func run() error {
	var (
		allocs  []allocator
		pkgName string
		err     error
	)
	switch {
	case *schema != "" && *src != "":
		return fmt.Errorf("-src and -schema are mutually exclusive")

	case *schema != "":
		if *pkg == "" {
			return fmt.Errorf("-schema requires -pkg")
		}
		pkgName = *pkg
		a, err := parseYAML(*schema)
		if err != nil {
			return err
		}
		allocs = []allocator{a}

	case *src != "":
		allocs, pkgName, err = parseGo(*src)
		if err != nil {
			return err
		}
		if *pkg != "" {
			pkgName = *pkg
		}

	default:
		return fmt.Errorf("nothing to do: pass -src or -schema")
	}

	if len(allocs) == 0 {
		return fmt.Errorf("%s: no //wasmalloc:allocator directives found", *src)
	}
	for i := range allocs {
		allocs[i].normalize()
	}

	outPath := *out
	if outPath == "" {
		in := *src
		if in == "" {
			in = *schema
		}
		outPath = filepath.Join(filepath.Dir(in), "buckets.go")
	}

	code, err := emit(pkgName, allocs)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, code, 0o666)
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
