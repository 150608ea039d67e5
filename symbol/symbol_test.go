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

package symbol

import "testing"

func TestSymbolAdd(t *testing.T) {
	a := New(4)
	copy(a.Data, []byte{0x01, 0x02, 0x03, 0x04})
	b := New(4)
	copy(b.Data, []byte{0xFF, 0x00, 0x0F, 0xF0})

	a.Add(b)

	want := []byte{0xFE, 0x02, 0x0C, 0xF4}
	for i := range want {
		if a.Data[i] != want[i] {
			t.Fatalf("byte %d: got %#x, want %#x", i, a.Data[i], want[i])
		}
	}

	// XOR is its own inverse.
	a.Add(b)
	for i := range a.Data {
		if a.Data[i] != byte([]byte{0x01, 0x02, 0x03, 0x04}[i]) {
			t.Fatalf("double-add byte %d: got %#x", i, a.Data[i])
		}
	}
}

func TestSymbolAddSizeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on size mismatch")
		}
	}()
	New(4).Add(New(5))
}

func TestSequenceBasics(t *testing.T) {
	seq := NewSequence(3, 8)
	if seq.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", seq.Len())
	}
	if seq.SymbolSize() != 8 {
		t.Fatalf("SymbolSize() = %d, want 8", seq.SymbolSize())
	}
	for i := 0; i < seq.Len(); i++ {
		if seq.At(i).Size() != 8 {
			t.Fatalf("symbol %d size = %d, want 8", i, seq.At(i).Size())
		}
	}
}

func TestSequenceSlice(t *testing.T) {
	seq := NewSequence(5, 2)
	for i := 0; i < seq.Len(); i++ {
		seq.At(i).Data[0] = byte(i)
	}

	sub := seq.Slice(1, 4)
	if sub.Len() != 3 {
		t.Fatalf("sub.Len() = %d, want 3", sub.Len())
	}
	for i := 0; i < sub.Len(); i++ {
		if sub.At(i).Data[0] != byte(i+1) {
			t.Fatalf("sub[%d] = %d, want %d", i, sub.At(i).Data[0], i+1)
		}
	}

	// Slice shares storage with the parent.
	sub.At(0).Data[0] = 99
	if seq.At(1).Data[0] != 99 {
		t.Fatalf("slice does not share storage with parent")
	}
}

func TestWrapBytes(t *testing.T) {
	bufs := [][]byte{{1, 2}, {3, 4}, {5, 6}}
	seq, err := WrapBytes(bufs)
	if err != nil {
		t.Fatalf("WrapBytes: unexpected error: %v", err)
	}
	if seq.Len() != 3 || seq.SymbolSize() != 2 {
		t.Fatalf("unexpected sequence shape: len=%d size=%d", seq.Len(), seq.SymbolSize())
	}

	// Wrapping views the original buffer without copying.
	seq.At(0).Data[0] = 42
	if bufs[0][0] != 42 {
		t.Fatalf("WrapBytes copied instead of viewing")
	}
}

func TestWrapBytesSizeMismatch(t *testing.T) {
	_, err := WrapBytes([][]byte{{1, 2}, {3, 4, 5}})
	if err == nil {
		t.Fatal("expected error for inconsistent symbol sizes")
	}
}
