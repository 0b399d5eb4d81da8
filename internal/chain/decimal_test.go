package chain

import (
	"errors"
	"testing"

	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		input string
		want  Decimal
	}{
		{"1.5", Decimal{Integer: "1", Fraction: "5"}},
		{"-0.25", Decimal{Negative: true, Integer: "0", Fraction: "25"}},
		{"+1000", Decimal{ExplicitPlus: true, Integer: "1000"}},
		{".5", Decimal{Fraction: "5"}},
		{"7.", Decimal{Integer: "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDecimal(tt.input)
			if err != nil {
				t.Fatalf("ParseDecimal() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDecimal() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseDecimal_Invalid(t *testing.T) {
	for _, input := range []string{"", ".", "+", "-", "+-1", "1..2", "1.2.3", " 1", "1 ", "0x10", "1e5", "NaN", "Infinity", "١٢"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDecimal(input)
			if !errors.Is(err, stakeerr.ErrInvalidAmount) {
				t.Errorf("ParseDecimal(%q) error = %v, want ErrInvalidAmount", input, err)
			}
			if IsDecimal(input) {
				t.Errorf("IsDecimal(%q) = true, want false", input)
			}
		})
	}
}

func TestDecimal_Sign(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"0", 0},
		{"-0", 0},
		{"0.000", 0},
		{".0", 0},
		{"0.001", 1},
		{"-0.001", -1},
		{"+3", 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDecimal(tt.input)
			if err != nil {
				t.Fatalf("ParseDecimal() unexpected error = %v", err)
			}
			if got := d.Sign(); got != tt.want {
				t.Errorf("Sign() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDecimal_Scaled(t *testing.T) {
	d, err := ParseDecimal("-12.340")
	if err != nil {
		t.Fatalf("ParseDecimal() unexpected error = %v", err)
	}
	if got := d.Scaled().String(); got != "-12340" {
		t.Errorf("Scaled() = %s, want -12340", got)
	}
}

func TestFractionDigits(t *testing.T) {
	tests := map[string]int{
		"123":      0,
		"123.":     0,
		"123.4567": 4,
		".5":       1,
	}
	for input, want := range tests {
		if got := FractionDigits(input); got != want {
			t.Errorf("FractionDigits(%q) = %d, want %d", input, got, want)
		}
	}
}
