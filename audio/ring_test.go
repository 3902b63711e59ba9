package audio

import "testing"

func TestNewRingRoundsUpToPowerOfTwo(t *testing.T) {
	r := NewRing(5)
	if len(r.buf) != 8 {
		t.Errorf("len(buf) = %d, want 8", len(r.buf))
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	r := NewRing(4)
	r.Push(Frame{L: 0.5, R: -0.5})
	got := r.Pop()
	if got.L != 0.5 || got.R != -0.5 {
		t.Errorf("Pop() = %+v, want {0.5 -0.5}", got)
	}
}

func TestPopOnEmptyReturnsSilence(t *testing.T) {
	r := NewRing(4)
	got := r.Pop()
	if got != (Frame{}) {
		t.Errorf("Pop() on empty ring = %+v, want zero Frame", got)
	}
}

func TestPushDropsWhenFull(t *testing.T) {
	r := NewRing(2) // rounds to 2
	r.Push(Frame{L: 1})
	r.Push(Frame{L: 2})
	r.Push(Frame{L: 3}) // ring full, should be dropped

	if got := r.Pop(); got.L != 1 {
		t.Errorf("first Pop() = %v, want 1", got.L)
	}
	if got := r.Pop(); got.L != 2 {
		t.Errorf("second Pop() = %v, want 2", got.L)
	}
	if got := r.Pop(); got != (Frame{}) {
		t.Errorf("third Pop() = %+v, want zero Frame (the overflow push was dropped)", got)
	}
}

func TestLenTracksBufferedFrames(t *testing.T) {
	r := NewRing(8)
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}
	r.Push(Frame{L: 1})
	r.Push(Frame{L: 2})
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
	r.Pop()
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}
