package format

import "testing"

func TestPrecisionFor(t *testing.T) {
	tests := []struct {
		value float64
		want  int
	}{
		{0, 6},
		{9.99, 6},
		{10, 5},
		{99, 5},
		{100, 4},
		{999, 4},
		{1000, 3},
		{9999, 3},
		{10000, 2},
		{99999, 2},
		{100000, 1},
		{999999, 1},
		{1000000, 0},
		{5000000, 0},
	}
	for _, tt := range tests {
		if got := precisionFor(tt.value); got != tt.want {
			t.Errorf("precisionFor(%v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestSignedPercent(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{10, "+10.00000%"},
		{-10, "-10.00000%"},
		{0, "+0.000000%"},
	}
	for _, tt := range tests {
		if got := SignedPercent(tt.pct); got != tt.want {
			t.Errorf("SignedPercent(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
