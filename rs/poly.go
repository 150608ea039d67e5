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

package rs

import (
	"github.com/xtaci/gofec/gf16"
	"github.com/xtaci/gofec/symbol"
)

// buildLocator builds the scalar polynomial Lambda(x) = prod_i (1 - alpha^roots[i]*x),
// whose roots are alpha^(-roots[i]), incrementally multiplying by one
// linear factor at a time (O(len(roots)^2) field operations). The
// repair-coset locator built this way always has
// 0/1 coefficients since roots forms a union of Frobenius orbits; the
// erasure locator built from arbitrary erased positions does not, and
// this function makes no such assumption either way.
func buildLocator(gf *gf16.Engine, roots []uint16) []gf16.Element {
	lambda := []gf16.Element{1}
	for _, root := range roots {
		a := gf.Pow(int(root))
		next := make([]gf16.Element, len(lambda)+1)
		for i := range next {
			var term gf16.Element
			if i < len(lambda) {
				term ^= lambda[i]
			}
			if i >= 1 {
				term ^= gf.Mul(a, lambda[i-1])
			}
			next[i] = term
		}
		lambda = next
	}
	return lambda
}

// forneyCoefficient computes phi(p) = alpha^p / sum_{j odd, lambda[j]!=0} lambda[j]*alpha^((j-1)*(N-p)),
// the single field divide that turns an evaluator-polynomial value into a
// recovered symbol value. The formal derivative of lambda, in
// characteristic 2, keeps only odd-degree terms and lowers each by one
// power: the j-th coefficient of lambda contributes at exponent j-1, not j.
func forneyCoefficient(gf *gf16.Engine, lambda []gf16.Element, p uint16) gf16.Element {
	var denom gf16.Element
	for j := 1; j < len(lambda); j += 2 {
		if lambda[j] == 0 {
			continue
		}
		exp := (uint32(j-1) * uint32(uint16(gf16.N)-p)) % gf16.N
		denom ^= gf.Mul(lambda[j], gf.Pow(int(exp)))
	}
	return gf.Div(gf.Pow(int(p)), denom)
}

// truncatedConvolve computes the first truncLen coefficients of s(x)*lambda(x),
// s a symbol-valued polynomial and lambda a scalar polynomial.
func truncatedConvolve(gf *gf16.Engine, s *symbol.Sequence, lambda []gf16.Element, truncLen int) *symbol.Sequence {
	res := symbol.NewSequence(truncLen, s.SymbolSize())
	for i := 0; i < s.Len(); i++ {
		if i >= truncLen {
			break
		}
		for j := 0; j < len(lambda); j++ {
			n := i + j
			if n >= truncLen {
				continue
			}
			gf.SymbolMAdd(res.At(n).Data, lambda[j], s.At(i).Data)
		}
	}
	return res
}
