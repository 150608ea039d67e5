// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package rlc

// TinyMT32-compatible parameters; a coefficient stream generated with
// these must match byte-for-byte between encoder and decoder, since the
// RLC wire contract is "same seed in, same coefficients out".
const (
	mat1 = 0x8f7011ee
	mat2 = 0xfc78ff1f
	tmat = 0x3793fdff
	mask = 0x7fffffff
)

// tinymt32 is a 127-bit-state pseudo-random generator. Not
// cryptographically secure; chosen only for reproducibility between
// encoder and decoder (spec.md §1 Non-goals).
type tinymt32 struct {
	status [4]uint32
}

func newTinyMT32(seed uint32) *tinymt32 {
	t := &tinymt32{}
	t.status[0] = seed
	t.status[1] = mat1
	t.status[2] = mat2
	t.status[3] = tmat
	for i := uint32(1); i < 8; i++ {
		t.status[i&3] ^= i + 1812433253*(t.status[(i-1)&3]^(t.status[(i-1)&3]>>30))
	}
	t.periodCertification()
	for i := 0; i < 8; i++ {
		t.nextState()
	}
	return t
}

// periodCertification avoids the zero-state fixed point by forcing a
// fixed non-zero state, matching the reference TinyMT32 implementation.
func (t *tinymt32) periodCertification() {
	if t.status[0]&mask == 0 && t.status[1] == 0 && t.status[2] == 0 && t.status[3] == 0 {
		t.status[0] = 'T'
		t.status[1] = 'I'
		t.status[2] = 'N'
		t.status[3] = 'Y'
	}
}

func (t *tinymt32) nextState() {
	y := t.status[3]
	x := (t.status[0] & mask) ^ t.status[1] ^ t.status[2]
	x ^= x << 1
	y ^= (y >> 1) ^ x

	t.status[0] = t.status[1]
	t.status[1] = t.status[2]
	t.status[2] = x ^ (y << 10)
	t.status[3] = y

	if y&1 != 0 {
		t.status[1] ^= mat1
		t.status[2] ^= mat2
	}
}

func (t *tinymt32) temper() uint32 {
	t0 := t.status[3]
	t1 := t.status[0] + (t.status[2] >> 8)
	t0 ^= t1
	if t1&1 != 0 {
		t0 ^= tmat
	}
	return t0
}

// nextUint32 advances the generator and returns its next 32-bit output.
func (t *tinymt32) nextUint32() uint32 {
	t.nextState()
	return t.temper()
}

// generateCoefficients expands seed into n nonzero GF(2^8) coefficients:
// one TinyMT32 draw per coefficient, keeping its low byte, with every
// zero byte remapped to 1.
func generateCoefficients(seed uint32, n int) []byte {
	t := newTinyMT32(seed)
	out := make([]byte, n)

	for i := 0; i < n; i++ {
		b := byte(t.nextUint32())
		if b == 0 {
			b = 1
		}
		out[i] = b
	}
	return out
}
