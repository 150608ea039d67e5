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

// Package fft evaluates and interpolates polynomials over GF(2^16) at
// N-th roots of unity: a direct O(k*r) evaluator, and a cyclotomic
// variant that factors the evaluation through the coset/subfield
// structure exposed by package cc.
package fft

import (
	"github.com/klauspost/cpuid"

	"github.com/xtaci/gofec/cc"
	"github.com/xtaci/gofec/gf16"
	"github.com/xtaci/gofec/symbol"
)

const n = gf16.N

// useCyclotomicPath mirrors the runtime feature check
// klauspost/reedsolomon's options.go uses to pick galMulSSSE3 over the
// generic table loop: below a small input size the bit-shuffle/normal-basis
// bookkeeping in the cyclotomic path costs more than it saves, so on
// hardware without wide XOR acceleration to amortise that cost the direct
// evaluator is picked instead. Both paths compute the same result; tests
// check them against each other rather than relying on this switch.
var useCyclotomicPath = cpuid.CPU.HasSSE2() || cpuid.CPU.HasSSE3()

// Evaluate computes the same result as EvaluatePositive, routing through
// TransformCyclotomic when the runtime looks capable of absorbing its
// extra bookkeeping or when resLen exceeds 64, and through the direct
// evaluator otherwise.
func Evaluate(gf *gf16.Engine, f *symbol.Sequence, positions []uint16, resLen int) *symbol.Sequence {
	if useCyclotomicPath || resLen > 64 {
		return TransformCyclotomic(gf, f, positions, resLen)
	}
	return EvaluatePositive(gf, f, positions, resLen)
}

// EvaluateCosets computes the same result as EvaluateNegated when the
// output positions are known to form a union of whole cyclotomic cosets,
// routing through TransformCyclotomicCosets under the same conditions as
// Evaluate.
func EvaluateCosets(gf *gf16.Engine, f *symbol.Sequence, cosets []cc.Coset, flatPositions []uint16) *symbol.Sequence {
	if useCyclotomicPath || len(flatPositions) > 64 {
		return TransformCyclotomicCosets(gf, f, cosets)
	}
	return EvaluateNegated(gf, f, flatPositions)
}

// EvaluatePositive computes F[j] = sum_i f_i * alpha^(positions[i]*j) for
// j in [0, resLen), directly (no coset structure), in O(len(positions) *
// resLen) field operations. f and positions must have the same length.
func EvaluatePositive(gf *gf16.Engine, f *symbol.Sequence, positions []uint16, resLen int) *symbol.Sequence {
	res := symbol.NewSequence(resLen, f.SymbolSize())
	for j := 0; j < resLen; j++ {
		out := res.At(j).Data
		for i := 0; i < f.Len(); i++ {
			coef := gf.Pow(int((uint32(positions[i]) * uint32(j)) % n))
			gf.SymbolMAdd(out, coef, f.At(i).Data)
		}
	}
	return res
}

// EvaluateNegated computes F[idx] = sum_i f_i * alpha^(-components[idx]*i)
// for each output index, the position of each given directly via
// components. f is a dense polynomial (coefficient i is f.At(i)).
func EvaluateNegated(gf *gf16.Engine, f *symbol.Sequence, components []uint16) *symbol.Sequence {
	res := symbol.NewSequence(len(components), f.SymbolSize())
	for resIdx, comp := range components {
		j := (n - uint32(comp)) % n
		out := res.At(resIdx).Data
		for i := 0; i < f.Len(); i++ {
			coef := gf.Pow(int((uint32(i) * j) % n))
			gf.SymbolMAdd(out, coef, f.At(i).Data)
		}
	}
	return res
}

// TransformCyclotomic computes the same result as EvaluatePositive, but
// factors each output coset's evaluation through the normal-basis
// structure of its subfield: O(len(positions)) additions per coset orbit
// (the "bit-shuffle" intermediate symbols u_t) plus an m*m multiply-add
// to combine them, replacing O(len(positions)) field multiplies per
// output index with O(len(positions)) additions.
func TransformCyclotomic(gf *gf16.Engine, f *symbol.Sequence, positions []uint16, resLen int) *symbol.Sequence {
	res := symbol.NewSequence(resLen, f.SymbolSize())
	calculated := make([]bool, resLen)

	for s := 0; s < resLen; s++ {
		if calculated[s] {
			continue
		}

		m := cc.CosetSize(uint16(s))
		normalBasis := gf.NormalBasis(m)

		u := symbol.NewSequence(m, f.SymbolSize())
		for i := 0; i < f.Len(); i++ {
			repr := gf.NormalRepr(m, uint16((uint32(s)*uint32(positions[i]))%n))
			for t := 0; t < m; t++ {
				if repr&(1<<uint(t)) != 0 {
					gf16.SymbolAdd(u.At(t).Data, f.At(i).Data)
				}
			}
		}

		idx := s
		for j := 0; j < m; j++ {
			if idx < resLen {
				out := res.At(idx).Data
				for t := 0; t < m; t++ {
					coef := normalBasis[(j+t)%m]
					gf.SymbolMAdd(out, coef, u.At(t).Data)
				}
				calculated[idx] = true
			}
			idx = int((uint32(idx) * 2) % n)
		}
	}

	return res
}

// TransformCyclotomicCosets computes EvaluateNegated's result when the
// output positions are known in advance to form a union of whole
// cyclotomic cosets, using the same normal-basis factoring as
// TransformCyclotomic. The output sequence is ordered coset-by-coset,
// each in orbit order (the order produced by cc.CosetsToPositions).
func TransformCyclotomicCosets(gf *gf16.Engine, f *symbol.Sequence, cosets []cc.Coset) *symbol.Sequence {
	resLen := 0
	for _, coset := range cosets {
		resLen += int(coset.Size)
	}
	res := symbol.NewSequence(resLen, f.SymbolSize())

	idx := 0
	for _, coset := range cosets {
		s := uint16((n - uint32(coset.Leader)) % n)
		m := int(coset.Size)
		normalBasis := gf.NormalBasis(m)

		u := symbol.NewSequence(m, f.SymbolSize())
		for i := 0; i < f.Len(); i++ {
			repr := gf.NormalRepr(m, uint16((uint32(s)*uint32(i))%n))
			for t := 0; t < m; t++ {
				if repr&(1<<uint(t)) != 0 {
					gf16.SymbolAdd(u.At(t).Data, f.At(i).Data)
				}
			}
		}

		for j := 0; j < m; j++ {
			out := res.At(idx).Data
			for t := 0; t < m; t++ {
				coef := normalBasis[(j+t)%m]
				gf.SymbolMAdd(out, coef, u.At(t).Data)
			}
			idx++
		}
	}

	return res
}
