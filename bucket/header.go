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

package bucket

import (
	"fmt"
	"math/bits"
)

// slotsPerSegment is the number of slots tracked by one header word.
const slotsPerSegment = 32

// header is the occupancy bitmap of one segment. Slot i occupies bit 31-i, so
// a leading-ones count yields the first free slot index and slots are handed
// out in ascending order.
type header uint32

// firstFree returns the index of the first free slot, or ok == false if all
// 32 slots are occupied.
func (h *header) firstFree() (i int, ok bool) {
	n := bits.LeadingZeros32(^uint32(*h))
	if n == slotsPerSegment {
		return 0, false
	}
	return n, true
}

// set marks slot i occupied.
func (h *header) set(i int) { *h |= 1 << (slotsPerSegment - 1 - i) }

// clear marks slot i free.
func (h *header) clear(i int) { *h &^= 1 << (slotsPerSegment - 1 - i) }

// String implements [fmt.Stringer], rendering the bitmap in grouped binary.
func (h header) String() string {
	return fmt.Sprintf("%08b_%08b_%08b_%08b",
		byte(h>>24), byte(h>>16), byte(h>>8), byte(h))
}
