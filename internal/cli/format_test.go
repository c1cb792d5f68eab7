package cli

import "testing"

func TestFormatTokens(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{1_160_000_000_000, "1.16T"},
		{706_000_000_000, "706.0B"},
		{445_000_000, "445.0M"},
		{13_400, "13.4K"},
		{999, "999"},
		{0, "0"},
	}
	for _, c := range cases {
		if got := FormatTokens(c.in); got != c.want {
			t.Errorf("FormatTokens(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatDollars(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1_234_567, "$1.23M"},
		{45_678, "$45.7K"},
		{123.45, "$123.45"},
		{0, "$0.00"},
	}
	for _, c := range cases {
		if got := FormatDollars(c.in); got != c.want {
			t.Errorf("FormatDollars(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPricePerM(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "Free"},
		{0.000003, "$3.00/M"},
		{0.0000005, "$0.5000/M"},
	}
	for _, c := range cases {
		if got := FormatPricePerM(c.in); got != c.want {
			t.Errorf("FormatPricePerM(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatWoW(t *testing.T) {
	if got := FormatWoW(22); got != "+22%" {
		t.Errorf("FormatWoW(22) = %q", got)
	}
	if got := FormatWoW(-5); got != "-5%" {
		t.Errorf("FormatWoW(-5) = %q", got)
	}
	if got := FormatWoW(0); got != "0%" {
		t.Errorf("FormatWoW(0) = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{1_234_567, "1,234,567"},
		{123, "123"},
		{-4_500, "-4,500"},
		{0, "0"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatFloatComma(t *testing.T) {
	if got := FormatFloatComma(1234567.891); got != "1,234,567.89" {
		t.Errorf("FormatFloatComma = %q", got)
	}
	if got := FormatFloatComma(-12.5); got != "-12.50" {
		t.Errorf("FormatFloatComma = %q", got)
	}
}
