package bsgs

import (
	"errors"
	"math/big"
	"testing"
)

func TestParseRangeHex(t *testing.T) {
	rng, err := ParseRangeHex("0x80000", "fffff")
	if err != nil {
		t.Fatalf("ParseRangeHex failed: %v", err)
	}
	if rng.Start.Cmp(big.NewInt(0x80000)) != 0 || rng.End.Cmp(big.NewInt(0xfffff)) != 0 {
		t.Errorf("parsed [%x, %x], want [80000, fffff]", rng.Start, rng.End)
	}
	if rng.Width().Cmp(big.NewInt(0x80000)) != 0 {
		t.Errorf("width = %s, want 524288", rng.Width())
	}
}

func TestParseRangeHexRejectsBadInput(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
	}{
		{"not_hex_start", "xyz", "ff"},
		{"not_hex_end", "0", "0xgg"},
		{"empty_start", "", "ff"},
		{"start_after_end", "100", "ff"},
		{"negative_start", "-5", "ff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRangeHex(tt.start, tt.end)
			if err == nil {
				t.Fatalf("ParseRangeHex(%q, %q) should fail", tt.start, tt.end)
			}
			var formatErr *FormatError
			if !errors.As(err, &formatErr) {
				t.Errorf("expected FormatError, got %T: %v", err, err)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	rng, err := NewRange(big.NewInt(10), big.NewInt(20))
	if err != nil {
		t.Fatalf("NewRange failed: %v", err)
	}

	for k, want := range map[int64]bool{9: false, 10: true, 15: true, 20: true, 21: false} {
		if got := rng.Contains(big.NewInt(k)); got != want {
			t.Errorf("Contains(%d) = %v, want %v", k, got, want)
		}
	}

	// Single-element range.
	single, err := NewRange(big.NewInt(7), big.NewInt(7))
	if err != nil {
		t.Fatalf("NewRange failed: %v", err)
	}
	if single.Width().Cmp(big.NewInt(1)) != 0 {
		t.Errorf("width of [7, 7] = %s, want 1", single.Width())
	}
}
