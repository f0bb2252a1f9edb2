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

// Package arenaalloc is a worked example of a bucketgen allocator: the schema
// lives in schema.go, the committed output in buckets.go, and the tests
// exercise the generated type end to end.
package arenaalloc

//go:generate go run buf.build/go/wasmalloc/cmd/bucketgen -src schema.go
