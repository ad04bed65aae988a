package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}

	if grown := EnsureLen(buf, 16); len(grown) != 16 {
		t.Fatalf("len = %d, want 16", len(grown))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	src := []float64{1, 2, 3}

	dst := Clone(src)
	dst[0] = 42
	if src[0] != 1 {
		t.Fatalf("Clone shares memory: src[0] = %v", src[0])
	}

	if Clone(nil) != nil {
		t.Fatal("Clone(nil) should be nil")
	}
}

func TestIndices(t *testing.T) {
	idx := Indices(4)
	if len(idx) != 4 {
		t.Fatalf("len = %d, want 4", len(idx))
	}
	for i, v := range idx {
		if v != float64(i) {
			t.Fatalf("idx[%d] = %v, want %d", i, v, i)
		}
	}

	if Indices(0) != nil {
		t.Fatal("Indices(0) should be nil")
	}
}
