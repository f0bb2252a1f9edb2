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

package xunsafe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"buf.build/go/wasmalloc/internal/xunsafe"
)

func TestAddrArithmetic(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 64)
	base := xunsafe.AddrOf(&buf[0])

	assert.Same(t, &buf[8], base.ByteAdd(8).AssertValid())
	assert.Equal(t, 8, base.ByteAdd(8).ByteSub(base))
	assert.Equal(t, 8, base.ByteAdd(8).Sub(base))
	assert.Equal(t, base.Add(16), xunsafe.EndOf(buf[:16]))
}

func TestMisalign(t *testing.T) {
	t.Parallel()

	a := xunsafe.Addr[byte](24)
	prev, next := a.Misalign(8)
	assert.Equal(t, 0, prev)
	assert.Equal(t, 0, next)

	prev, next = a.ByteAdd(3).Misalign(8)
	assert.Equal(t, 3, prev)
	assert.Equal(t, 5, next)

	assert.Equal(t, 5, a.ByteAdd(3).Padding(8))
	assert.Equal(t, a.ByteAdd(8), a.ByteAdd(3).RoundUpTo(8))
}

func TestLoadStore(t *testing.T) {
	t.Parallel()

	buf := make([]uint32, 4)
	p := &buf[0]

	xunsafe.Store(p, 2, uint32(0xaaaa))
	assert.Equal(t, uint32(0xaaaa), buf[2])
	assert.Equal(t, uint32(0xaaaa), xunsafe.Load(p, 2))

	xunsafe.ByteStore(p, 4, uint32(0xbbbb))
	assert.Equal(t, uint32(0xbbbb), buf[1])
	assert.Equal(t, uint32(0xbbbb), xunsafe.ByteLoad[uint32](p, 4))

	xunsafe.Clear(p, 4)
	assert.Equal(t, []uint32{0, 0, 0, 0}, buf)
}
