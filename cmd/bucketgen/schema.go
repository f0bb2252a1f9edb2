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
	"cmp"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// slotsPerSegment matches the segment granularity of package bucket.
const slotsPerSegment = 32

// allocator is one parsed schema: a named, ordered list of buckets.
type allocator struct {
	Name    string
	Sort    bool
	Buckets []bucketDesc
}

// bucketDesc is one bucket declaration.
type bucketDesc struct {
	Name     string
	SlotSize int
	NumSlots int
	Align    int
}

// Segments returns the number of 32-slot segments backing this bucket.
func (b bucketDesc) Segments() int {
	return (b.NumSlots + slotsPerSegment - 1) / slotsPerSegment
}

// normalize applies defaults and the optional sort.
func (a *allocator) normalize() {
	for i := range a.Buckets {
		if a.Buckets[i].Align == 0 {
			a.Buckets[i].Align = 1
		}
	}
	if a.Sort {
		slices.SortStableFunc(a.Buckets, func(x, y bucketDesc) int {
			if c := cmp.Compare(x.SlotSize, y.SlotSize); c != 0 {
				return c
			}
			return cmp.Compare(x.Align, y.Align)
		})
	}
}

var directive = regexp.MustCompile(`^//wasmalloc:allocator\s*(.*)$`)

// parseGo reads every //wasmalloc:allocator struct out of a Go schema file.
func parseGo(path string) (allocs []allocator, pkg string, err error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, "", err
	}
	pkg = file.Name.Name

	errAt := func(pos token.Pos, format string, args ...any) error {
		return fmt.Errorf("%s: %s", fset.Position(pos), fmt.Sprintf(format, args...))
	}

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		opts, ok := findDirective(gen)
		if !ok {
			continue
		}

		spec := gen.Specs[0].(*ast.TypeSpec)
		st, ok := spec.Type.(*ast.StructType)
		if !ok {
			return nil, "", errAt(spec.Pos(), "wasmalloc:allocator must mark a struct type")
		}

		a := allocator{Name: spec.Name.Name}
		if a.Sort, err = parseOptions(opts); err != nil {
			return nil, "", errAt(gen.Pos(), "%v", err)
		}

		for _, field := range st.Fields.List {
			b, err := parseBucketField(field, errAt)
			if err != nil {
				return nil, "", err
			}
			a.Buckets = append(a.Buckets, b)
		}
		if len(a.Buckets) == 0 {
			return nil, "", errAt(spec.Pos(), "allocator %s declares no buckets", a.Name)
		}
		allocs = append(allocs, a)
	}
	return allocs, pkg, nil
}

// findDirective returns the directive's option text, if the decl carries one.
func findDirective(gen *ast.GenDecl) (opts string, ok bool) {
	if gen.Doc == nil {
		return "", false
	}
	for _, c := range gen.Doc.List {
		if m := directive.FindStringSubmatch(c.Text); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// parseOptions parses the option text after the directive name. The only
// supported option is sort_buckets.
func parseOptions(opts string) (sort bool, err error) {
	for _, field := range strings.Fields(opts) {
		name, value, ok := strings.Cut(field, "=")
		if !ok || name != "sort_buckets" {
			return false, fmt.Errorf("unsupported option %q", field)
		}
		if sort, err = strconv.ParseBool(value); err != nil {
			return false, fmt.Errorf("bad sort_buckets value %q", value)
		}
	}
	return sort, nil
}

// parseBucketField extracts one bucket from a schema struct field of the
// shape
//
//	name Bucket[SlotSize[n], NumSlots[n], Align[n]]
func parseBucketField(field *ast.Field, errAt func(token.Pos, string, ...any) error) (bucketDesc, error) {
	var b bucketDesc
	if len(field.Names) != 1 {
		return b, errAt(field.Pos(), "bucket fields must have exactly one name")
	}
	b.Name = field.Names[0].Name

	// A single-parameter Bucket parses as an IndexExpr, multi-parameter as
	// an IndexListExpr.
	var base ast.Expr
	var params []ast.Expr
	switch ty := field.Type.(type) {
	case *ast.IndexExpr:
		base, params = ty.X, []ast.Expr{ty.Index}
	case *ast.IndexListExpr:
		base, params = ty.X, ty.Indices
	default:
		return b, errAt(field.Type.Pos(), "field %s: type must be Bucket[...]", b.Name)
	}
	if id, ok := base.(*ast.Ident); !ok || id.Name != "Bucket" {
		return b, errAt(base.Pos(), "field %s: type must be Bucket[...]", b.Name)
	}

	var sawSize, sawSlots bool
	for _, param := range params {
		ix, ok := param.(*ast.IndexExpr)
		if !ok {
			return b, errAt(param.Pos(), "field %s: bucket parameters have the shape Name[int]", b.Name)
		}
		name, ok := ix.X.(*ast.Ident)
		if !ok {
			return b, errAt(ix.Pos(), "field %s: bucket parameters have the shape Name[int]", b.Name)
		}

		lit, ok := ix.Index.(*ast.BasicLit)
		if !ok || lit.Kind != token.INT {
			return b, errAt(ix.Index.Pos(), "field %s: %s must be an integer literal", b.Name, name.Name)
		}
		value, err := strconv.Atoi(lit.Value)
		if err != nil {
			return b, errAt(lit.Pos(), "field %s: %v", b.Name, err)
		}

		switch name.Name {
		case "SlotSize":
			b.SlotSize, sawSize = value, true
		case "NumSlots":
			b.NumSlots, sawSlots = value, true
		case "Align":
			b.Align = value
		default:
			return b, errAt(name.Pos(), "field %s: unknown bucket parameter %s", b.Name, name.Name)
		}
	}

	if !sawSize {
		return b, errAt(field.Pos(), "field %s: SlotSize was not specified", b.Name)
	}
	if !sawSlots {
		return b, errAt(field.Pos(), "field %s: NumSlots was not specified", b.Name)
	}
	return b, b.validate(func(format string, args ...any) error {
		return errAt(field.Pos(), format, args...)
	})
}

// validate rejects geometry the runtime would panic on.
func (b bucketDesc) validate(errf func(string, ...any) error) error {
	if b.Name == "set" {
		return errf("bucket %s: name collides with a generated field", b.Name)
	}
	if b.SlotSize <= 0 {
		return errf("bucket %s: SlotSize must be positive", b.Name)
	}
	if b.NumSlots <= 0 {
		return errf("bucket %s: NumSlots must be positive", b.Name)
	}
	if a := b.Align; a != 0 && a&(a-1) != 0 {
		return errf("bucket %s: Align must be a power of two", b.Name)
	}
	return nil
}

// yamlSchema mirrors the YAML manifest form of a schema.
type yamlSchema struct {
	Allocator   string       `yaml:"allocator"`
	SortBuckets bool         `yaml:"sort_buckets"`
	Buckets     []yamlBucket `yaml:"buckets"`
}

type yamlBucket struct {
	Name     string `yaml:"name"`
	SlotSize int    `yaml:"slot_size"`
	NumSlots int    `yaml:"num_slots"`
	Align    int    `yaml:"align"`
}

// parseYAML reads one allocator from a YAML manifest.
func parseYAML(path string) (allocator, error) {
	var a allocator

	f, err := os.Open(path)
	if err != nil {
		return a, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var s yamlSchema
	if err := dec.Decode(&s); err != nil {
		return a, fmt.Errorf("%s: %w", path, err)
	}

	if s.Allocator == "" {
		return a, fmt.Errorf("%s: allocator name was not specified", path)
	}
	if len(s.Buckets) == 0 {
		return a, fmt.Errorf("%s: allocator %s declares no buckets", path, s.Allocator)
	}

	a = allocator{Name: s.Allocator, Sort: s.SortBuckets}
	for _, yb := range s.Buckets {
		b := bucketDesc{Name: yb.Name, SlotSize: yb.SlotSize, NumSlots: yb.NumSlots, Align: yb.Align}
		if b.Name == "" {
			return a, fmt.Errorf("%s: bucket without a name", path)
		}
		if err := b.validate(func(format string, args ...any) error {
			return fmt.Errorf("%s: %s", path, fmt.Sprintf(format, args...))
		}); err != nil {
			return a, err
		}
		a.Buckets = append(a.Buckets, b)
	}
	return a, nil
}
