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

import "sync/atomic"

// Head tracks how many bytes of the arena have been handed out.
//
// A Head makes no ordering guarantees with respect to other Heads; each
// variant only guarantees that its own read/modify/write sequence is coherent
// for its discipline.
type Head interface {
	// Current returns the number of bytes consumed so far.
	Current() int

	// Bump adds delta to the counter. There is no saturation and no bounds
	// check; the caller ensures validity.
	Bump(delta int)

	// Set overwrites the counter.
	Set(v int)
}

// SingleThreadedHead is a Head backed by a plain integer cell. It must not be
// shared across goroutines.
type SingleThreadedHead struct {
	n int
}

// Current implements [Head].
func (h *SingleThreadedHead) Current() int { return h.n }

// Bump implements [Head].
func (h *SingleThreadedHead) Bump(delta int) { h.n += delta }

// Set implements [Head].
func (h *SingleThreadedHead) Set(v int) { h.n = v }

// ThreadSafeHead is a Head backed by a sequentially-consistent atomic
// counter, suitable for hosts that dispatch multiple threads through the same
// linear memory.
type ThreadSafeHead struct {
	n atomic.Int64
}

// Current implements [Head].
func (h *ThreadSafeHead) Current() int { return int(h.n.Load()) }

// Bump implements [Head].
func (h *ThreadSafeHead) Bump(delta int) { h.n.Add(int64(delta)) }

// Set implements [Head].
func (h *ThreadSafeHead) Set(v int) { h.n.Store(int64(v)) }
