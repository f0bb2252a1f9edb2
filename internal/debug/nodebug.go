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

//go:build !debug

// Package debug includes debugging helpers.
package debug

import "testing"

// Enabled is true if the allocators are being built with the debug tag, which
// enables various debugging features.
const Enabled = false

func Log([]any, string, string, ...any) {}
func Assert(bool, string, ...any)       {}

// WithTesting sets a testing pointer for debugging.
func WithTesting(t testing.TB) func() { return func() {} }
