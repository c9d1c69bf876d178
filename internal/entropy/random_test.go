package entropy

import "testing"

func TestSeeded_Deterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for i := 0; i < 100; i++ {
		if av, bv := a.Float(), b.Float(); av != bv {
			t.Fatalf("draw %d: %f != %f", i, av, bv)
		}
	}
}

func TestSeeded_FloatRange(t *testing.T) {
	s := NewSeeded(7)
	for i := 0; i < 1000; i++ {
		v := s.Float()
		if v < 0 || v >= 1 {
			t.Fatalf("Float() = %f, want [0, 1)", v)
		}
	}
}

func TestSeeded_IntnBounds(t *testing.T) {
	s := NewSeeded(7)
	for i := 0; i < 1000; i++ {
		v := s.Intn(5)
		if v < 0 || v >= 5 {
			t.Fatalf("Intn(5) = %d", v)
		}
	}
}

func TestShuffle_Deterministic(t *testing.T) {
	mk := func(seed int64) []int {
		vals := []int{0, 1, 2, 3, 4, 5, 6, 7}
		Shuffle(NewSeeded(seed), len(vals), func(i, j int) {
			vals[i], vals[j] = vals[j], vals[i]
		})
		return vals
	}

	a, b := mk(99), mk(99)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("shuffles diverge at %d: %v vs %v", i, a, b)
		}
	}
}

func TestClient_NilFallback(t *testing.T) {
	var c *Client
	for i := 0; i < 10; i++ {
		v := c.Float()
		if v < 0 || v >= 1 {
			t.Fatalf("nil client Float() = %f, want [0, 1)", v)
		}
	}
	if c.Enabled() {
		t.Error("nil client should not be enabled")
	}
}

func TestNewClient_EmptyKey(t *testing.T) {
	if c := NewClient(""); c != nil {
		t.Error("NewClient(\"\") should return nil")
	}
}
