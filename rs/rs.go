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

// Package rs implements the Reed-Solomon codec over GF(2^16): cyclotomic
// coset selection, syndrome/locator/evaluator polynomial construction and
// Forney-style repair and erasure recovery.
package rs

import (
	"github.com/pkg/errors"

	"github.com/xtaci/gofec/cc"
	"github.com/xtaci/gofec/fft"
	"github.com/xtaci/gofec/gf16"
	"github.com/xtaci/gofec/symbol"
)

// ErrCannotRestore is returned by RestoreSymbols when more than r symbols
// are marked erased: the received set no longer carries enough
// information to reconstruct the source.
var ErrCannotRestore = errors.New("rs: cannot restore: erasure count exceeds repair capacity")

// Context holds the coset selection and position lists for a fixed (k, r)
// pair. The GF(2^16) engine and coset table are supplied by the caller so
// that their (expensive, read-only) tables may be shared across many
// contexts; a Context itself is immutable after New returns and safe for
// concurrent use by independent callers, provided distinct calls never
// share a Context concurrently (spec: one context, one caller at a time).
type Context struct {
	gf *gf16.Engine

	k, r int

	infCosets, repCosets       []cc.Coset
	infPositions, repPositions []uint16
	positions                  []uint16 // infPositions ++ repPositions, length k+r
}

// New builds an RS context for exactly k information and r repair
// symbols, selecting and caching the coset/position lists the encoder and
// decoder both need. Requires k+r <= N.
func New(gf *gf16.Engine, cosets *cc.CC, k, r int) (*Context, error) {
	if k <= 0 {
		return nil, errors.New("rs: k must be positive")
	}
	if r < 0 {
		return nil, errors.New("rs: r must be non-negative")
	}
	if k+r > gf16.N {
		return nil, errors.Errorf("rs: k+r = %d exceeds N = %d", k+r, gf16.N)
	}

	infCosets, repCosets := cosets.SelectCosets(k, r)
	infPositions := cc.CosetsToPositions(infCosets, k)
	repPositions := cc.CosetsToPositions(repCosets, r)

	positions := make([]uint16, 0, k+r)
	positions = append(positions, infPositions...)
	positions = append(positions, repPositions...)

	return &Context{
		gf:            gf,
		k:             k,
		r:             r,
		infCosets:     infCosets,
		repCosets:     repCosets,
		infPositions:  infPositions,
		repPositions:  repPositions,
		positions:     positions,
	}, nil
}

// K returns the context's information symbol count.
func (c *Context) K() int { return c.k }

// R returns the context's repair symbol count.
func (c *Context) R() int { return c.r }

// GenerateRepairSymbols computes r repair symbols from k information
// symbols: a syndrome polynomial over the information positions, a
// binary-coefficient repair-coset locator, their truncated product (the
// evaluator), evaluated at each repair position's negated exponent and
// scaled by that position's Forney coefficient.
func (c *Context) GenerateRepairSymbols(inf *symbol.Sequence) (*symbol.Sequence, error) {
	if inf.Len() != c.k {
		return nil, errors.Errorf("rs: expected %d information symbols, got %d", c.k, inf.Len())
	}
	if c.r == 0 {
		return symbol.NewSequence(0, inf.SymbolSize()), nil
	}

	syndrome := fft.Evaluate(c.gf, inf, c.infPositions, c.r)
	lambda := buildLocator(c.gf, c.repPositions)
	omega := truncatedConvolve(c.gf, syndrome, lambda, c.r)

	rep := fft.EvaluateCosets(c.gf, omega, c.repCosets, c.repPositions)
	for i, p := range c.repPositions {
		phi := forneyCoefficient(c.gf, lambda, p)
		c.gf.SymbolMul(rep.At(i).Data, phi)
	}
	return rep, nil
}

// RestoreSymbols recovers every symbol marked erased in received (length
// k+r, ordered information symbols first, then repair symbols) in place,
// using the surviving symbols' syndrome, the erasure locator built from
// the erased positions, and the Forney formula. Non-erased slots are left
// untouched. Returns ErrCannotRestore if t (the number of erasures) is
// greater than r.
func (c *Context) RestoreSymbols(received *symbol.Sequence, erased []bool) error {
	if received.Len() != c.k+c.r {
		return errors.Errorf("rs: expected %d received symbols, got %d", c.k+c.r, received.Len())
	}
	if len(erased) != c.k+c.r {
		return errors.Errorf("rs: erased mask length %d does not match k+r = %d", len(erased), c.k+c.r)
	}

	var erasedIDs, survivingIDs []int
	for i, e := range erased {
		if e {
			erasedIDs = append(erasedIDs, i)
		} else {
			survivingIDs = append(survivingIDs, i)
		}
	}
	t := len(erasedIDs)
	if t > c.r {
		return ErrCannotRestore
	}
	if t == 0 {
		return nil
	}

	survivingPositions := make([]uint16, len(survivingIDs))
	survivingBufs := make([][]byte, len(survivingIDs))
	for i, id := range survivingIDs {
		survivingPositions[i] = c.positions[id]
		survivingBufs[i] = received.At(id).Data
	}
	survivingSeq, err := symbol.WrapBytes(survivingBufs)
	if err != nil {
		return errors.Wrap(err, "rs: restore")
	}

	erasedPositions := make([]uint16, t)
	for i, id := range erasedIDs {
		erasedPositions[i] = c.positions[id]
	}

	syndrome := fft.Evaluate(c.gf, survivingSeq, survivingPositions, t)
	lambda := buildLocator(c.gf, erasedPositions)
	omega := truncatedConvolve(c.gf, syndrome, lambda, t)

	recovered := fft.EvaluateNegated(c.gf, omega, erasedPositions)
	for i, id := range erasedIDs {
		phi := forneyCoefficient(c.gf, lambda, erasedPositions[i])
		c.gf.SymbolMul(recovered.At(i).Data, phi)
		copy(received.At(id).Data, recovered.At(i).Data)
	}
	return nil
}
