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
	"math/rand"
	"testing"

	"github.com/xtaci/gofec/cc"
	"github.com/xtaci/gofec/gf16"
	"github.com/xtaci/gofec/symbol"
)

func newTestContext(t *testing.T, k, r int) (*gf16.Engine, *cc.CC, *Context) {
	t.Helper()
	gf := gf16.NewEngine()
	cosets := cc.New()
	ctx, err := New(gf, cosets, k, r)
	if err != nil {
		t.Fatalf("New(%d, %d): unexpected error: %v", k, r, err)
	}
	return gf, cosets, ctx
}

func randomInfo(rng *rand.Rand, k, symbolSize int) *symbol.Sequence {
	inf := symbol.NewSequence(k, symbolSize)
	for i := 0; i < k; i++ {
		rng.Read(inf.At(i).Data)
	}
	return inf
}

// erase picks t distinct indices out of n using rng and builds the
// combined received sequence (information ++ repair) with those slots
// zeroed, plus the matching erased mask.
func erase(rng *rand.Rand, inf, rep *symbol.Sequence, t int) (*symbol.Sequence, []bool) {
	n := inf.Len() + rep.Len()
	symbolSize := inf.SymbolSize()

	received := symbol.NewSequence(n, symbolSize)
	for i := 0; i < inf.Len(); i++ {
		copy(received.At(i).Data, inf.At(i).Data)
	}
	for i := 0; i < rep.Len(); i++ {
		copy(received.At(inf.Len()+i).Data, rep.At(i).Data)
	}

	erased := make([]bool, n)
	perm := rng.Perm(n)
	for _, idx := range perm[:t] {
		erased[idx] = true
		received.At(idx).Zero()
	}
	return received, erased
}

func assertRestored(t *testing.T, inf, received *symbol.Sequence) {
	t.Helper()
	for i := 0; i < inf.Len(); i++ {
		want, got := inf.At(i).Data, received.At(i).Data
		for j := range want {
			if want[j] != got[j] {
				t.Fatalf("information symbol %d byte %d: got %#x, want %#x", i, j, got[j], want[j])
			}
		}
	}
}

func TestRSRoundTripTiny(t *testing.T) {
	const symbolSize, k, r, erasures = 10, 100, 10, 10
	_, _, ctx := newTestContext(t, k, r)
	rng := rand.New(rand.NewSource(78934))

	inf := randomInfo(rng, k, symbolSize)
	rep, err := ctx.GenerateRepairSymbols(inf)
	if err != nil {
		t.Fatalf("GenerateRepairSymbols: %v", err)
	}

	received, erased := erase(rng, inf, rep, erasures)
	if err := ctx.RestoreSymbols(received, erased); err != nil {
		t.Fatalf("RestoreSymbols: %v", err)
	}
	assertRestored(t, inf, received)
}

func TestRSRoundTripSizeOneCosetScenario(t *testing.T) {
	const symbolSize, k, r = 8, 16, 3
	_, _, ctx := newTestContext(t, k, r)
	rng := rand.New(rand.NewSource(1))

	inf := randomInfo(rng, k, symbolSize)
	rep, err := ctx.GenerateRepairSymbols(inf)
	if err != nil {
		t.Fatalf("GenerateRepairSymbols: %v", err)
	}

	received, erased := erase(rng, inf, rep, r)
	if err := ctx.RestoreSymbols(received, erased); err != nil {
		t.Fatalf("RestoreSymbols: %v", err)
	}
	assertRestored(t, inf, received)
}

func TestRSRoundTripBoundaryScenario(t *testing.T) {
	const symbolSize, k, r = 6, 11, 11
	_, _, ctx := newTestContext(t, k, r)
	rng := rand.New(rand.NewSource(2))

	inf := randomInfo(rng, k, symbolSize)
	rep, err := ctx.GenerateRepairSymbols(inf)
	if err != nil {
		t.Fatalf("GenerateRepairSymbols: %v", err)
	}

	received, erased := erase(rng, inf, rep, r)
	if err := ctx.RestoreSymbols(received, erased); err != nil {
		t.Fatalf("RestoreSymbols: %v", err)
	}
	assertRestored(t, inf, received)
}

func TestRSRoundTripVaryingErasureCounts(t *testing.T) {
	const symbolSize, k, r = 4, 40, 8
	_, _, ctx := newTestContext(t, k, r)
	rng := rand.New(rand.NewSource(3))

	for trial := 0; trial < 20; trial++ {
		t_ := rng.Intn(r + 1)
		inf := randomInfo(rng, k, symbolSize)
		rep, err := ctx.GenerateRepairSymbols(inf)
		if err != nil {
			t.Fatalf("trial %d: GenerateRepairSymbols: %v", trial, err)
		}

		received, erased := erase(rng, inf, rep, t_)
		if err := ctx.RestoreSymbols(received, erased); err != nil {
			t.Fatalf("trial %d (t=%d): RestoreSymbols: %v", trial, t_, err)
		}
		assertRestored(t, inf, received)
	}
}

func TestRSGenerateRepairSymbolsDeterministic(t *testing.T) {
	const symbolSize, k, r = 6, 20, 5
	_, _, ctx := newTestContext(t, k, r)
	rng := rand.New(rand.NewSource(4))

	inf := randomInfo(rng, k, symbolSize)
	rep1, err := ctx.GenerateRepairSymbols(inf)
	if err != nil {
		t.Fatalf("GenerateRepairSymbols (1st): %v", err)
	}
	rep2, err := ctx.GenerateRepairSymbols(inf)
	if err != nil {
		t.Fatalf("GenerateRepairSymbols (2nd): %v", err)
	}

	for i := 0; i < r; i++ {
		a, b := rep1.At(i).Data, rep2.At(i).Data
		for j := range a {
			if a[j] != b[j] {
				t.Fatalf("repair symbol %d byte %d differs across calls: %#x vs %#x", i, j, a[j], b[j])
			}
		}
	}
}

func TestRSRestoreTooManyErasuresFails(t *testing.T) {
	const symbolSize, k, r = 4, 10, 3
	_, _, ctx := newTestContext(t, k, r)
	rng := rand.New(rand.NewSource(5))

	inf := randomInfo(rng, k, symbolSize)
	rep, err := ctx.GenerateRepairSymbols(inf)
	if err != nil {
		t.Fatalf("GenerateRepairSymbols: %v", err)
	}

	received, erased := erase(rng, inf, rep, r+1)
	if err := ctx.RestoreSymbols(received, erased); err != ErrCannotRestore {
		t.Fatalf("RestoreSymbols with t=r+1: got err=%v, want ErrCannotRestore", err)
	}
}

func TestRSRestorePreservesNonErasedSlots(t *testing.T) {
	const symbolSize, k, r = 4, 10, 4
	_, _, ctx := newTestContext(t, k, r)
	rng := rand.New(rand.NewSource(6))

	inf := randomInfo(rng, k, symbolSize)
	rep, err := ctx.GenerateRepairSymbols(inf)
	if err != nil {
		t.Fatalf("GenerateRepairSymbols: %v", err)
	}

	received, erased := erase(rng, inf, rep, r)

	// Snapshot the untouched slots before restoring.
	before := make(map[int][]byte)
	for i, e := range erased {
		if !e {
			before[i] = append([]byte(nil), received.At(i).Data...)
		}
	}

	if err := ctx.RestoreSymbols(received, erased); err != nil {
		t.Fatalf("RestoreSymbols: %v", err)
	}

	for i, want := range before {
		got := received.At(i).Data
		for j := range want {
			if want[j] != got[j] {
				t.Fatalf("non-erased slot %d byte %d mutated: got %#x want %#x", i, j, got[j], want[j])
			}
		}
	}
}

func TestRSNewRejectsOversizeKPlusR(t *testing.T) {
	gf := gf16.NewEngine()
	cosets := cc.New()
	if _, err := New(gf, cosets, gf16.N, 1); err == nil {
		t.Fatal("expected error when k+r exceeds N")
	}
}
