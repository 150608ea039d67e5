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

// linearSystem is a pivot-indexed, on-line row-echelon store: slot i is
// either empty or holds an equation whose pivot is exactly i, normalised
// to leading coefficient 1. At most one equation occupies a given pivot;
// the structure is upper-triangular by construction.
type linearSystem struct {
	k     int
	slots []*Equation
}

func newLinearSystem(k int) *linearSystem {
	return &linearSystem{k: k, slots: make([]*Equation, k)}
}

// rank reports how many pivot slots are currently occupied.
func (ls *linearSystem) rank() int {
	n := 0
	for _, eq := range ls.slots {
		if eq != nil {
			n++
		}
	}
	return n
}

// reduce cancels, in place, every coefficient of eq that lines up with an
// existing pivot equation: for each occupied column in eq's non-zero
// range, scale eq so that column matches the pivot equation's leading
// coefficient and XOR the pivot equation in.
func (ls *linearSystem) reduce(eq *Equation) {
	if eq.isZero() {
		return
	}
	for i := eq.pivot; i <= eq.lastNonZeroID; i++ {
		if eq.coefs[i] == 0 {
			continue
		}
		pivotEq := ls.slots[i]
		if pivotEq == nil {
			continue
		}
		scale := gf256.Mul(pivotEq.coefs[pivotEq.pivot], gf256.Inv(eq.coefs[i]))
		eq.mul(scale)
		eq.add(pivotEq)
		if eq.isZero() {
			return
		}
	}
}

// addAsPivot installs eq (assumed non-zero) as the pivot equation for its
// pivot column, after normalising it to leading coefficient 1 and
// back-substituting it into every existing equation that still has a
// non-zero entry in that column.
func (ls *linearSystem) addAsPivot(eq *Equation) {
	eq.mul(gf256.Inv(eq.coefs[eq.pivot]))

	for _, other := range ls.slots {
		if other == nil || other == eq {
			continue
		}
		col := eq.pivot
		if col >= len(other.coefs) || other.coefs[col] == 0 {
			continue
		}
		scaled := eq.clone()
		scaled.mul(other.coefs[col])
		other.add(scaled)
	}

	ls.slots[eq.pivot] = eq
}

// addWithElimination reduces eq against the current echelon and, if a
// non-zero residue remains, installs it as a new pivot equation.
func (ls *linearSystem) addWithElimination(eq *Equation) {
	ls.reduce(eq)
	if !eq.isZero() {
		ls.addAsPivot(eq)
	}
}
