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

package gf16

// Element is a single value of GF(2^16).
type Element = uint16

const (
	// N is the order of the multiplicative group of GF(2^16): 2^16 - 1.
	N = 65535

	// FieldSize is |GF(2^16)| = 2^16.
	FieldSize = 1 << 16

	// PrimitivePoly is x^16 + x^5 + x^3 + x^2 + 1, the field's defining
	// polynomial, encoded as its bit pattern.
	PrimitivePoly = 65581
)

// subfieldSizes lists every subfield order GF(2^m) ⊂ GF(2^16) for which a
// normal basis is precomputed.
var subfieldSizes = [5]int{1, 2, 4, 8, 16}

// mIndex maps a subfield degree m to its slot in the subfieldSizes/basis
// tables (m must be a power of two in {1,2,4,8,16}).
func mIndex(m int) int {
	switch m {
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	case 16:
		return 4
	default:
		panic("gf16: invalid subfield degree")
	}
}

// normalBasisConstants are the fixed ordered normal bases {β, β^2, β^4, ...}
// of each subfield GF(2^m), listed in spec as part of the external
// contract.
var normalBasisConstants = [5][]Element{
	{1},
	{44234, 44235},
	{10800, 47860, 34555, 5694},
	{16402, 53598, 44348, 63986, 22060, 64366, 6088, 32521},
	{2048, 2880, 7129, 30616, 2643, 6897, 29685, 7378, 30100, 2743, 20193, 36223, 24055, 41458, 41014, 61451},
}
