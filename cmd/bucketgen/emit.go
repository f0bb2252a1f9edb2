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

package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strings"
	"unicode"

	"github.com/tiendc/go-deepcopy"
	"golang.org/x/tools/imports"
)

// methodTemplate holds the method bodies emitted for every allocator. The
// placeholder identifiers are renamed per allocator and per bucket, the same
// way a generic function would be specialized.
const methodTemplate = `package x

func (a *ALLOC) Alloc(size, align int) *byte { return a.set.Alloc(size, align) }

func (a *ALLOC) Dealloc(ptr *byte, size, align int) { a.set.Dealloc(ptr, size, align) }

func (a *ALLOC) ACCESSOR() *bucket.Bucket { return &a.FIELD }
`

// emit renders the generated file for the given allocators.
func emit(pkg string, allocs []allocator) ([]byte, error) {
	fset := token.NewFileSet()
	tmpl, err := parser.ParseFile(fset, "template.go", methodTemplate, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	alloc := tmpl.Decls[0].(*ast.FuncDecl)
	dealloc := tmpl.Decls[1].(*ast.FuncDecl)
	accessor := tmpl.Decls[2].(*ast.FuncDecl)

	buf := new(strings.Builder)
	fmt.Fprintf(buf, `// Code generated by bucketgen. DO NOT EDIT.

package %s

import (
	"buf.build/go/wasmalloc/bucket"
)
`, pkg)

	printDecl := func(doc string, decl *ast.FuncDecl, renames map[string]string) error {
		var copied *ast.FuncDecl
		if err := deepcopy.Copy(&copied, &decl); err != nil {
			return err
		}
		renameIdents(copied, renames)

		fmt.Fprintf(buf, "\n// %s\n", doc)
		if err := printer.Fprint(buf, fset, copied); err != nil {
			return err
		}
		fmt.Fprintln(buf)
		return nil
	}

	for _, a := range allocs {
		// The struct and constructor.
		fmt.Fprintf(buf, "\n// %s is a bucket allocator with %d buckets.\n", a.Name, len(a.Buckets))
		fmt.Fprintf(buf, "//\n// It is not safe for concurrent use.\ntype %s struct {\n", a.Name)
		for _, b := range a.Buckets {
			fmt.Fprintf(buf, "\t%s bucket.Bucket // %d slots of %d:%d, %d segments\n",
				b.Name, b.Segments()*slotsPerSegment, b.SlotSize, b.Align, b.Segments())
		}
		fmt.Fprintf(buf, "\tset bucket.Set\n}\n")

		fmt.Fprintf(buf, "\n// New%[1]s returns a ready-to-use %[1]s. It may be called from package\n", a.Name)
		fmt.Fprintf(buf, "// variable initialisers; segment storage is prepared lazily on first use.\n")
		fmt.Fprintf(buf, "func New%[1]s() *%[1]s {\n\ta := new(%[1]s)\n", a.Name)
		for _, b := range a.Buckets {
			fmt.Fprintf(buf, "\ta.%s.Init(bucket.Config{SlotSize: %d, NumSlots: %d, Align: %d})\n",
				b.Name, b.SlotSize, b.NumSlots, b.Align)
		}
		fmt.Fprintf(buf, "\ta.set = bucket.NewSet(")
		for i, b := range a.Buckets {
			if i > 0 {
				fmt.Fprint(buf, ", ")
			}
			fmt.Fprintf(buf, "&a.%s", b.Name)
		}
		fmt.Fprintf(buf, ")\n\treturn a\n}\n")

		// The allocation contract.
		err := printDecl(
			"Alloc allocates size bytes aligned to align, scanning the buckets in order. A nil return signals failure.",
			alloc, map[string]string{"ALLOC": a.Name})
		if err != nil {
			return nil, err
		}
		err = printDecl(
			"Dealloc releases a slot previously returned by Alloc.",
			dealloc, map[string]string{"ALLOC": a.Name})
		if err != nil {
			return nil, err
		}

		// One accessor per bucket.
		for _, b := range a.Buckets {
			name, err := accessorName(a, b.Name)
			if err != nil {
				return nil, err
			}
			err = printDecl(
				fmt.Sprintf("%s returns the %q bucket.", name, b.Name),
				accessor, map[string]string{"ALLOC": a.Name, "ACCESSOR": name, "FIELD": b.Name})
			if err != nil {
				return nil, err
			}
		}
	}

	// imports.Process both formats and prunes/sorts the import block.
	return imports.Process("buckets.go", []byte(buf.String()), nil)
}

// accessorName exports a bucket's field name for its accessor method.
func accessorName(a allocator, field string) (string, error) {
	runes := []rune(field)
	runes[0] = unicode.ToUpper(runes[0])
	name := string(runes)

	switch name {
	case "Alloc", "Dealloc", "Set":
		return "", fmt.Errorf("allocator %s: bucket name %s collides with a generated method", a.Name, field)
	}
	return name, nil
}

// renameIdents rewrites every identifier in node according to renames.
func renameIdents(node ast.Node, renames map[string]string) {
	ast.Inspect(node, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			if to, ok := renames[id.Name]; ok {
				id.Name = to
			}
		}
		return true
	})
}
