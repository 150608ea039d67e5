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

// Package gf256 implements GF(2^8) arithmetic for the RLC codec: a
// 256x256 multiplication table and a 256-entry inverse table, built from
// the standard byte-field primitive polynomial 0x11D, plus symbol-wise
// XOR and multiply-accumulate.
package gf256

import "github.com/templexxx/xorsimd"

// primitivePoly is x^8 + x^4 + x^3 + x^2 + 1, the AES-style primitive
// polynomial used to generate the field's log/exp tables.
const primitivePoly = 0x11D

// mulTable[a][b] = a*b in GF(2^8); invTable[a] = a^-1, invTable[0] = 0 by
// convention. Both are derived from logTable/expTable at package init,
// matching the table layout klauspost/reedsolomon's galois_noasm.go
// builds for the same field, specialised to a dense 256x256 table
// instead of a generated-per-shard-value slice.
var (
	expTable [510]byte
	logTable [256]byte
	mulTable [256][256]byte
	invTable [256]byte
)

func init() {
	poly := 1
	for i := 0; i < 255; i++ {
		expTable[i] = byte(poly)
		logTable[byte(poly)] = byte(i)
		poly <<= 1
		if poly&0x100 != 0 {
			poly ^= primitivePoly
		}
	}
	for i := 255; i < 510; i++ {
		expTable[i] = expTable[i-255]
	}

	for a := 1; a < 256; a++ {
		for b := 1; b < 256; b++ {
			mulTable[a][b] = expTable[int(logTable[byte(a)])+int(logTable[byte(b)])]
		}
	}

	for a := 1; a < 256; a++ {
		invTable[a] = expTable[255-int(logTable[byte(a)])]
	}
}

// Mul multiplies two field elements via the precomputed table.
func Mul(a, b byte) byte {
	return mulTable[a][b]
}

// Div divides a by b. b must be non-zero.
func Div(a, b byte) byte {
	if a == 0 {
		return 0
	}
	return mulTable[a][invTable[b]]
}

// Inv returns the multiplicative inverse of a. a must be non-zero.
func Inv(a byte) byte {
	return invTable[a]
}

// SymbolAdd XORs src into dst in place: dst ^= src.
func SymbolAdd(dst, src []byte) {
	if len(dst) == 0 {
		return
	}
	xorsimd.Bytes(dst, dst, src)
}

// SymbolMul scales dst by c in place, byte-wise.
func SymbolMul(dst []byte, c byte) {
	if c == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return
	}
	if c == 1 {
		return
	}
	row := mulTable[c]
	for i, v := range dst {
		dst[i] = row[v]
	}
}

// SymbolMAdd computes dst ^= c*src, byte-wise, matching the reference
// design's symbol_add_scaled: dst ⊕= mul[c][src].
func SymbolMAdd(dst []byte, c byte, src []byte) {
	if c == 0 {
		return
	}
	if c == 1 {
		SymbolAdd(dst, src)
		return
	}
	row := mulTable[c]
	for i, v := range src {
		dst[i] ^= row[v]
	}
}
