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

// Package rlc implements the Random Linear Code codec over GF(2^8):
// seeded coefficient generation, repair-symbol synthesis, and decode via
// an on-line row-echelon linear system.
package rlc

import (
	"github.com/pkg/errors"

	"github.com/xtaci/gofec/gf256"
	"github.com/xtaci/gofec/symbol"
)

// ErrCannotRestore is returned by RestoreSymbols when the received
// repair symbols never pivot every erased information index, or when
// more symbols are erased than the repair count could ever cover.
var ErrCannotRestore = errors.New("rlc: cannot restore: system did not reach full rank")

// Context holds the information symbol count and the encoder's
// monotonically increasing repair-symbol counter, used as the seed for
// each new repair symbol. The counter is context-local state, not
// process-global, and the "seed = counter++" scheme must be preserved
// verbatim for encoder/decoder agreement.
type Context struct {
	k                   int
	currentRepairSymbol uint32
}

// New builds an RLC context for k information symbols.
func New(k int) (*Context, error) {
	if k <= 0 {
		return nil, errors.New("rlc: k must be positive")
	}
	return &Context{k: k}, nil
}

// K returns the context's information symbol count.
func (c *Context) K() int { return c.k }

// GenerateRepairSymbols produces repairCount repair symbols from the k
// information symbols in inf, each one seeded from the context's
// monotonically increasing counter and computed as a random GF(2^8)
// linear combination of all k information symbols. Returns the repair
// symbols and the seed used for each, in parallel order.
func (c *Context) GenerateRepairSymbols(inf *symbol.Sequence, repairCount int) (*symbol.Sequence, []uint32, error) {
	if inf.Len() != c.k {
		return nil, nil, errors.Errorf("rlc: expected %d information symbols, got %d", c.k, inf.Len())
	}

	rep := symbol.NewSequence(repairCount, inf.SymbolSize())
	seeds := make([]uint32, repairCount)
	for j := 0; j < repairCount; j++ {
		seed := c.currentRepairSymbol
		c.currentRepairSymbol++
		seeds[j] = seed

		coefs := generateCoefficients(seed, c.k)
		out := rep.At(j).Data
		for i := 0; i < c.k; i++ {
			gf256.SymbolMAdd(out, coefs[i], inf.At(i).Data)
		}
	}
	return rep, seeds, nil
}

// RestoreSymbols recovers every symbol marked erased in received (length
// k+r, information symbols first, then repair symbols) in place. seeds
// holds, for every repair slot (erased or not), the seed its row was
// generated from. Each non-erased repair symbol's row, restricted to the
// erased information columns, is fed into a linear system via
// add_with_elimination; once every erased information index has a pivot
// equation, its recovered value is that equation's constant term. Any
// erased repair symbols are then recomputed directly from the (now
// complete) information symbols and their own seed.
func (c *Context) RestoreSymbols(received *symbol.Sequence, seeds []uint32, erased []bool) error {
	r := len(seeds)
	if received.Len() != c.k+r {
		return errors.Errorf("rlc: expected %d received symbols, got %d", c.k+r, received.Len())
	}
	if len(erased) != c.k+r {
		return errors.Errorf("rlc: erased mask length %d does not match k+r = %d", len(erased), c.k+r)
	}

	var erasedInfo []int
	localIndex := make([]int, c.k)
	for i := 0; i < c.k; i++ {
		localIndex[i] = -1
		if erased[i] {
			localIndex[i] = len(erasedInfo)
			erasedInfo = append(erasedInfo, i)
		}
	}

	t := len(erasedInfo)
	for j := 0; j < r; j++ {
		if erased[c.k+j] {
			t++
		}
	}
	if t > r {
		return ErrCannotRestore
	}

	symbolSize := received.SymbolSize()
	ls := newLinearSystem(len(erasedInfo))

	for j := 0; j < r; j++ {
		if erased[c.k+j] {
			continue
		}
		coefs := generateCoefficients(seeds[j], c.k)

		eq := newEquation(len(erasedInfo), symbolSize)
		copy(eq.constantTerm, received.At(c.k+j).Data)
		for i := 0; i < c.k; i++ {
			if erased[i] {
				eq.coefs[localIndex[i]] = coefs[i]
			} else {
				gf256.SymbolMAdd(eq.constantTerm, coefs[i], received.At(i).Data)
			}
		}
		eq.adjustBounds()
		ls.addWithElimination(eq)
	}

	if ls.rank() != len(erasedInfo) {
		return ErrCannotRestore
	}

	for local, global := range erasedInfo {
		copy(received.At(global).Data, ls.slots[local].constantTerm)
	}

	for j := 0; j < r; j++ {
		if !erased[c.k+j] {
			continue
		}
		coefs := generateCoefficients(seeds[j], c.k)
		out := received.At(c.k + j).Data
		for i := range out {
			out[i] = 0
		}
		for i := 0; i < c.k; i++ {
			gf256.SymbolMAdd(out, coefs[i], received.At(i).Data)
		}
	}

	return nil
}
