package bitarray

import "testing"

func TestSetAndGet(t *testing.T) {
	b := New(10)
	if b.Get(3) {
		t.Fatalf("expected bit 3 clear initially")
	}
	b.Set(3)
	if !b.Get(3) {
		t.Fatalf("expected bit 3 set after Set")
	}
	if b.Get(4) {
		t.Fatalf("expected bit 4 to remain clear")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New(10)
	b.Set(1)
	clone := b.Clone()
	clone.Set(2)
	if b.Get(2) {
		t.Fatalf("mutating the clone must not affect the original")
	}
	if !clone.Get(1) {
		t.Fatalf("clone must carry over bits already set")
	}
}

func TestSetProgression(t *testing.T) {
	b := New(20)
	b.SetProgression(3, 3)
	for i := 0; i < 20; i++ {
		want := i >= 3 && (i-3)%3 == 0
		if got := b.Get(i); got != want {
			t.Errorf("bit %d: got %v, want %v", i, got, want)
		}
	}
}

func TestPropagateMoveCrossesResidueClasses(t *testing.T) {
	b := New(30)
	b.Set(0)
	b.Set(5)
	b.PropagateMove(7)
	for i := 0; i < 30; i++ {
		want := i == 0 || i == 5 || i == 7 || i == 12 || i == 14 || i == 19 || i == 21 || i == 26 || i == 28
		if got := b.Get(i); got != want {
			t.Errorf("bit %d after propagating 7 onto {0,5}: got %v, want %v", i, got, want)
		}
	}
}

func TestLastClear(t *testing.T) {
	b := New(10)
	for i := 0; i < 10; i++ {
		b.Set(i)
	}
	if got := b.LastClear(); got != -1 {
		t.Fatalf("fully set array: got LastClear()=%d, want -1", got)
	}

	b2 := New(10)
	b2.Set(0)
	b2.Set(1)
	b2.Set(3)
	b2.Set(4)
	if got := b2.LastClear(); got != 9 {
		t.Fatalf("got LastClear()=%d, want 9", got)
	}
}

func TestAnyClear(t *testing.T) {
	b := New(3)
	if !b.AnyClear() {
		t.Fatalf("expected a clear bit in a fresh array")
	}
	b.Set(0)
	b.Set(1)
	b.Set(2)
	if b.AnyClear() {
		t.Fatalf("expected no clear bits once every index is set")
	}
}

func TestCountSet(t *testing.T) {
	b := New(64)
	b.Set(0)
	b.Set(10)
	b.Set(63)
	if got := b.CountSet(); got != 3 {
		t.Fatalf("got CountSet()=%d, want 3", got)
	}
}

func TestGaps(t *testing.T) {
	b := New(6)
	b.Set(0)
	b.Set(2)
	b.Set(4)

	ascending := b.Gaps(false)
	if len(ascending) != 3 || ascending[0] != 1 || ascending[1] != 3 || ascending[2] != 5 {
		t.Fatalf("ascending gaps: got %v, want [1 3 5]", ascending)
	}

	descending := b.Gaps(true)
	if len(descending) != 3 || descending[0] != 5 || descending[1] != 3 || descending[2] != 1 {
		t.Fatalf("descending gaps: got %v, want [5 3 1]", descending)
	}

	ascending[0] = -1
	if b.Gaps(false)[0] == -1 {
		t.Fatalf("Gaps must return a fresh slice each call")
	}
}

func TestEliminatesBeyond(t *testing.T) {
	// 10 is redundant once 5 is present: every multiple of 10 is
	// already a multiple of 5, so it eliminates nothing beyond 5.
	withFive := New(20)
	withFive.Set(0)
	withFive.PropagateMove(5)
	if EliminatesBeyond(withFive, 10, 5) {
		t.Fatalf("expected generator 10 to be redundant once 5 is present")
	}

	// 10 is not redundant given 7 alone: it still reaches indices 7
	// cannot, so it remains a necessary generator.
	withSeven := New(20)
	withSeven.Set(0)
	withSeven.PropagateMove(7)
	if !EliminatesBeyond(withSeven, 10, 7) {
		t.Fatalf("expected generator 10 to remain necessary alongside 7")
	}
}
