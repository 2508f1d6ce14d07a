package domain

import "testing"

func TestNormalizeTicker(t *testing.T) {
	tests := map[string]string{
		"aapl":   "AAPL",
		" msft ": "MSFT",
		"BRK.B":  "BRK.B",
		"":       "",
	}
	for in, want := range tests {
		if got := NormalizeTicker(in); got != want {
			t.Fatalf("NormalizeTicker(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFloatDistinctFromZero(t *testing.T) {
	var missing *float64
	zero := Float(0)

	if missing == zero {
		t.Fatal("nil marker and computed zero must be distinguishable")
	}
	if *zero != 0 {
		t.Fatalf("expected 0, got %f", *zero)
	}
}
