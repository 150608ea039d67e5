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

// Package cc enumerates the cyclotomic cosets of 2 modulo 65535 and
// selects greedy unions of them to serve as information/repair symbol
// position sets for the RS codec.
package cc

const n = 65535

// thresholds are the greedy chooser's pre-selection thresholds T_m.
var thresholds = [5]int{0, 1, 3, 15, 255}

// leaderCounts are the exact number of cosets of each size; sizes total
// 4115 cosets covering all 65535 residues modulo 65535, zero included.
var leaderCounts = [5]int{1, 1, 3, 30, 4080}

// Coset identifies a cyclotomic coset by its leader (smallest member) and
// size (the orbit's length under repeated doubling mod N).
type Coset struct {
	Leader uint16
	Size   uint8
}

func sizeIndex(size int) int {
	switch size {
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
		panic("cc: invalid coset size")
	}
}

func nextCosetElement(s uint16) uint16 {
	return uint16((uint32(s) * 2) % n)
}

// CC holds the leader lists for every cyclotomic coset of 2 modulo
// 65535, partitioned by size. Built once and read-only afterwards.
type CC struct {
	leaders [5][]uint16
}

// New enumerates all cyclotomic cosets of 2 modulo 65535 and buckets
// their leaders by coset size.
func New() *CC {
	cc := &CC{}
	for i, cnt := range leaderCounts {
		cc.leaders[i] = make([]uint16, 0, cnt)
	}

	processed := make([]bool, n)
	for s := 0; s < n; s++ {
		if processed[s] {
			continue
		}
		processed[s] = true

		cur := nextCosetElement(uint16(s))
		size := 1
		for cur != uint16(s) {
			processed[cur] = true
			cur = nextCosetElement(cur)
			size++
		}

		cc.leaders[sizeIndex(size)] = append(cc.leaders[sizeIndex(size)], uint16(s))
	}

	return cc
}

// CosetSize returns the multiplicative order of 2 modulo N/gcd(N,leader),
// i.e. the size of the cyclotomic coset that leader belongs to.
func CosetSize(leader uint16) int {
	m := uint(1)
	for leader != uint16((uint32(leader)<<m)%n) {
		m <<= 1
	}
	return int(m)
}

// cosetsNeeded returns the number of cyclotomic cosets the greedy chooser
// selects to cover a union of exactly r positions, and is also the exact
// count used to size repair-coset scratch (an upper bound for the
// information-coset case).
func cosetsNeeded(r int) int {
	cnt := 0
	for i := 4; i >= 0 && r != 0; i-- {
		m := 1 << uint(i)
		if r > thresholds[i] {
			inc := (r - thresholds[i] + m - 1) / m
			cnt += inc
			r -= inc * m
		}
	}
	return cnt
}

// EstimateCosetsCount returns upper bounds on the number of information
// and repair cosets SelectCosets will produce for the given (k, r): the
// repair estimate is exact, the information estimate is an upper bound.
func (cc *CC) EstimateCosetsCount(k, r int) (infMaxCnt, repMaxCnt int) {
	return cosetsNeeded(k), cosetsNeeded(r)
}

// SelectCosets greedily selects a union of cosets of total size k for
// information positions and a disjoint union of total size r for repair
// positions, largest coset size first. Repair cosets are chosen first;
// each per-size threshold used for the information chooser is then
// reduced by the positions already consumed by strictly smaller repair
// cosets. Both choosers draw leaders from shared per-size cursors, so the
// information chooser never re-selects a repair coset.
func (cc *CC) SelectCosets(k, r int) (infCosets, repCosets []Coset) {
	idx := [5]int{}

	repCosets = make([]Coset, 0, cosetsNeeded(r))
	for i := 4; i >= 0 && r != 0; i-- {
		m := 1 << uint(i)
		for r > thresholds[i] {
			repCosets = append(repCosets, Coset{Leader: cc.leaders[i][idx[i]], Size: uint8(m)})
			idx[i]++
			r -= m
		}
	}

	infThresholds := thresholds
	for i := 0; i < 4; i++ {
		consumed := idx[i] << uint(i)
		for j := i + 1; j < 5; j++ {
			infThresholds[j] -= consumed
		}
	}

	infCosets = make([]Coset, 0, cosetsNeeded(k))
	for i := 4; i >= 0 && k != 0; i-- {
		m := 1 << uint(i)
		for k > infThresholds[i] {
			infCosets = append(infCosets, Coset{Leader: cc.leaders[i][idx[i]], Size: uint8(m)})
			idx[i]++
			if k < m {
				k = 0
			} else {
				k -= m
			}
		}
	}

	return infCosets, repCosets
}

// CosetsToPositions walks each coset's orbit in order and writes exactly
// positionsCnt positions, across all cosets given.
func CosetsToPositions(cosets []Coset, positionsCnt int) []uint16 {
	positions := make([]uint16, 0, positionsCnt)
	for _, coset := range cosets {
		s := coset.Leader
		positions = append(positions, s)
		cur := nextCosetElement(s)
		for cur != s && len(positions) < positionsCnt {
			positions = append(positions, cur)
			cur = nextCosetElement(cur)
		}
	}
	return positions
}
