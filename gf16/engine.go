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

// Package gf16 implements GF(2^16) arithmetic: precomputed log/exp tables,
// element multiply/divide, and symbol-wise (packed-element) add,
// scalar-multiply and multiply-accumulate.
package gf16

import (
	"encoding/binary"

	"github.com/templexxx/xorsimd"
)

// Engine holds the log/exp tables and normal-basis tables for GF(2^16).
// Built once and read-only for the remainder of its lifetime, so a single
// Engine may be shared by concurrently-running, independent RS contexts,
// but a given Engine's tables must never be mutated after NewEngine
// returns.
type Engine struct {
	pow []Element // pow[i] = alpha^i, i in [0, 2N-2], doubled so pow[log[a]+log[b]] needs no modulo
	log []uint16  // log[alpha^i] = i, log[0] is unused

	normalBasis [5][]Element // normalBasis[mIndex(m)] = fixed basis of GF(2^m)
	normalRepr  [5][]uint16  // normalRepr[mIndex(m)][d]: m-bit coordinates of alpha^d in that basis
}

// NewEngine builds the GF(2^16) tables described by spec: a doubled power
// table, its inverse log table, and per-subfield normal-basis
// representation tables.
func NewEngine() *Engine {
	e := &Engine{
		pow: make([]Element, 2*N-1),
		log: make([]uint16, FieldSize),
	}

	curPoly := uint32(1)
	for i := 0; i < N; i++ {
		e.pow[i] = Element(curPoly)
		e.log[e.pow[i]] = uint16(i)

		curPoly <<= 1
		if curPoly&FieldSize != 0 {
			curPoly ^= PrimitivePoly
		}
	}
	for i := N; i < 2*N-1; i++ {
		e.pow[i] = e.pow[i-N]
	}

	for mi, m := range subfieldSizes {
		e.normalBasis[mi] = normalBasisConstants[mi]
		repr := make([]uint16, N)

		basis := e.normalBasis[mi]
		for pattern := uint32(1); pattern != uint32(1)<<uint(m); pattern++ {
			var elem Element
			for j := 0; j < m; j++ {
				if pattern&(1<<uint(j)) != 0 {
					elem ^= basis[j]
				}
			}
			repr[e.log[elem]] = uint16(pattern)
		}
		e.normalRepr[mi] = repr
	}

	return e
}

// Mul multiplies two field elements.
func (e *Engine) Mul(a, b Element) Element {
	if a == 0 || b == 0 {
		return 0
	}
	return e.pow[uint32(e.log[a])+uint32(e.log[b])]
}

// Div divides a by b. b must be non-zero.
func (e *Engine) Div(a, b Element) Element {
	if a == 0 {
		return 0
	}
	return e.pow[(uint32(N)+uint32(e.log[a])-uint32(e.log[b]))%N]
}

// Pow returns alpha^i for i in [0, 2N-2].
func (e *Engine) Pow(i int) Element {
	return e.pow[i]
}

// Log returns the discrete logarithm of a non-zero element.
func (e *Engine) Log(a Element) uint16 {
	return e.log[a]
}

// NormalBasis returns the fixed ordered normal basis of GF(2^m).
func (e *Engine) NormalBasis(m int) []Element {
	return e.normalBasis[mIndex(m)]
}

// NormalRepr returns the m-bit coordinate vector of alpha^d in the normal
// basis of GF(2^m); defined only where alpha^d belongs to that subfield.
func (e *Engine) NormalRepr(m int, d uint16) uint16 {
	return e.normalRepr[mIndex(m)][d]
}

// SymbolAdd XORs src into dst in place: dst ^= src, element-wise (and
// byte-wise, since XOR of two 16-bit packed elements equals XOR of their
// constituent bytes).
func SymbolAdd(dst, src []byte) {
	if len(dst) == 0 {
		return
	}
	xorsimd.Bytes(dst, dst, src)
}

// SymbolMul scales dst by the scalar c in place.
func (e *Engine) SymbolMul(dst []byte, c Element) {
	if c == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return
	}
	if c == 1 {
		return
	}
	shifted := e.pow[e.log[c]:]
	for i := 0; i+1 < len(dst); i += 2 {
		val := binary.LittleEndian.Uint16(dst[i:])
		if val != 0 {
			binary.LittleEndian.PutUint16(dst[i:], shifted[e.log[val]])
		}
	}
}

// SymbolMAdd computes dst ^= c*src, element-wise, with the short-circuits
// for c in {0,1} the reference design calls for.
func (e *Engine) SymbolMAdd(dst []byte, c Element, src []byte) {
	if c == 0 {
		return
	}
	if c == 1 {
		SymbolAdd(dst, src)
		return
	}
	shifted := e.pow[e.log[c]:]
	for i := 0; i+1 < len(dst); i += 2 {
		val := binary.LittleEndian.Uint16(src[i:])
		if val != 0 {
			d := binary.LittleEndian.Uint16(dst[i:])
			binary.LittleEndian.PutUint16(dst[i:], d^shifted[e.log[val]])
		}
	}
}
