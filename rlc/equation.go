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

import "github.com/xtaci/gofec/gf256"

// noPivot marks an equation with no non-zero coefficient (pivot or
// last_non_zero_id unset).
const noPivot = -1

// Equation is one linear equation over k unknowns in GF(2^8): coefs[i] is
// the coefficient of unknown i, constantTerm is the right-hand side
// symbol. pivot/lastNonZeroID track the first/last non-zero coefficient
// so elimination only ever touches the coefficients that can possibly be
// non-zero.
type Equation struct {
	coefs         []byte
	pivot         int
	lastNonZeroID int
	constantTerm  []byte
}

// newEquation allocates a zeroed equation over k unknowns with the given
// constant-term symbol size.
func newEquation(k, symbolSize int) *Equation {
	return &Equation{
		coefs:         make([]byte, k),
		pivot:         noPivot,
		lastNonZeroID: noPivot,
		constantTerm:  make([]byte, symbolSize),
	}
}

// clone returns a deep copy of eq.
func (eq *Equation) clone() *Equation {
	out := &Equation{
		coefs:         append([]byte(nil), eq.coefs...),
		pivot:         eq.pivot,
		lastNonZeroID: eq.lastNonZeroID,
		constantTerm:  append([]byte(nil), eq.constantTerm...),
	}
	return out
}

// adjustBounds rescans coefs and sets pivot to the smallest non-zero
// index and lastNonZeroID to the largest, or noPivot for both if coefs is
// identically zero. A word-at-a-time scan is permitted by spec as an
// equivalent fast path; this is the straightforward byte scan.
func (eq *Equation) adjustBounds() {
	eq.pivot = noPivot
	eq.lastNonZeroID = noPivot
	for i, c := range eq.coefs {
		if c != 0 {
			if eq.pivot == noPivot {
				eq.pivot = i
			}
			eq.lastNonZeroID = i
		}
	}
}

// isZero reports whether the equation has no non-zero coefficient.
func (eq *Equation) isZero() bool {
	return eq.pivot == noPivot
}

// mul scales coefs and constantTerm by c in place.
func (eq *Equation) mul(c byte) {
	gf256.SymbolMul(eq.coefs, c)
	gf256.SymbolMul(eq.constantTerm, c)
}

// add XORs other's coefficients (over other's non-zero range) and
// constant term into eq, then recomputes eq's bounds.
func (eq *Equation) add(other *Equation) {
	if !other.isZero() {
		for i := other.pivot; i <= other.lastNonZeroID; i++ {
			eq.coefs[i] ^= other.coefs[i]
		}
	}
	gf256.SymbolAdd(eq.constantTerm, other.constantTerm)
	eq.adjustBounds()
}
