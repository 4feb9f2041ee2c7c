package util

import "testing"

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{99, "0.99"},
		{100, "1.00"},
		{150000, "1500.00"},
		{-905, "-9.05"},
		{-100, "-1.00"},
		{123456789, "1234567.89"},
	}

	for _, tc := range cases {
		if got := FormatCents(tc.cents); got != tc.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestParseCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0.00", 0},
		{"0.01", 1},
		{"1500.00", 150000},
		{"1500", 150000},
		{"1500.5", 150050},
		{"-9.05", -905},
		{"+2.50", 250},
		{".75", 75},
	}

	for _, tc := range cases {
		got, err := ParseCents(tc.in)
		if err != nil {
			t.Errorf("ParseCents(%q) error = %v, want nil", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseCents_Invalid(t *testing.T) {
	cases := []string{"", "abc", "1.234", "1.2.3", "12,50", "."}

	for _, in := range cases {
		if _, err := ParseCents(in); err == nil {
			t.Errorf("ParseCents(%q) error = nil, want error", in)
		}
	}
}

// TestRoundTrip_NoDrift: converting back and forth many times must never
// move the value, since both directions are pure integer math.
func TestRoundTrip_NoDrift(t *testing.T) {
	cases := []int64{150000, 1, -1, 333, -9999999, 123456789}

	for _, cents := range cases {
		v := cents
		for i := 0; i < 1000; i++ {
			s := FormatCents(v)
			got, err := ParseCents(s)
			if err != nil {
				t.Fatalf("ParseCents(%q) error = %v", s, err)
			}
			v = got
		}
		if v != cents {
			t.Errorf("round trip drifted: started %d, ended %d", cents, v)
		}
	}
}
