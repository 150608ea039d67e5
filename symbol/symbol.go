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

// Package symbol holds the fixed-size byte buffers that the RS and RLC
// codecs operate on, and ordered sequences of them.
package symbol

import (
	"github.com/pkg/errors"
	"github.com/templexxx/xorsimd"
)

// Symbol is a fixed-size byte buffer, semantically a vector of elements
// of the working field (GF(2^16) for RS, GF(2^8) for RLC).
type Symbol struct {
	Data []byte
}

// New allocates a zeroed symbol of the given size.
func New(size int) *Symbol {
	return &Symbol{Data: make([]byte, size)}
}

// Size returns the symbol's byte length.
func (s *Symbol) Size() int {
	return len(s.Data)
}

// Zero clears the symbol in place.
func (s *Symbol) Zero() {
	for i := range s.Data {
		s.Data[i] = 0
	}
}

// Add XORs other into s in place: s ^= other. Both symbols must have the
// same size. Uses xorsimd for word-at-a-time (and, where available,
// SIMD) acceleration, matching the "word-at-a-time XOR accumulation" the
// reference design calls for.
func (s *Symbol) Add(other *Symbol) {
	if len(s.Data) != len(other.Data) {
		panic("symbol: size mismatch in Add")
	}
	if len(s.Data) == 0 {
		return
	}
	xorsimd.Bytes(s.Data, s.Data, other.Data)
}

// Sequence is an ordered, fixed-symbol-size collection of symbols.
// Indices are positional and meaningful to the codec that owns them.
type Sequence struct {
	symbolSize int
	symbols    []*Symbol
}

// ErrSizeMismatch is returned when sequence construction is given
// symbols whose sizes disagree.
var ErrSizeMismatch = errors.New("symbol: inconsistent symbol size")

// NewSequence allocates a sequence of length n, each symbol zeroed and
// symbolSize bytes long.
func NewSequence(n, symbolSize int) *Sequence {
	syms := make([]*Symbol, n)
	for i := range syms {
		syms[i] = New(symbolSize)
	}
	return &Sequence{symbolSize: symbolSize, symbols: syms}
}

// WrapBytes builds a Sequence that views existing byte buffers as
// symbols without copying. All buffers must share the same length.
func WrapBytes(bufs [][]byte) (*Sequence, error) {
	if len(bufs) == 0 {
		return &Sequence{}, nil
	}
	size := len(bufs[0])
	syms := make([]*Symbol, len(bufs))
	for i, b := range bufs {
		if len(b) != size {
			return nil, errors.Wrapf(ErrSizeMismatch, "symbol %d: want %d got %d", i, size, len(b))
		}
		syms[i] = &Symbol{Data: b}
	}
	return &Sequence{symbolSize: size, symbols: syms}, nil
}

// Len returns the number of symbols in the sequence.
func (sq *Sequence) Len() int {
	return len(sq.symbols)
}

// SymbolSize returns the common size, in bytes, of every symbol.
func (sq *Sequence) SymbolSize() int {
	return sq.symbolSize
}

// At returns the symbol at index i.
func (sq *Sequence) At(i int) *Symbol {
	return sq.symbols[i]
}

// Slice returns the sub-sequence [from, to), sharing storage with sq.
func (sq *Sequence) Slice(from, to int) *Sequence {
	return &Sequence{symbolSize: sq.symbolSize, symbols: sq.symbols[from:to]}
}
