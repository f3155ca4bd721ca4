package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"2000", 2000, true},
		{"2,000", 2000, true},
		{"12 500", 12500, true},
		{" 750 ", 750, true},
		{"", 0, false},
		{"0", 0, false},
		{"-500", 0, false},
		{"+500", 0, false},
		{"12.50", 0, false}, // no minor unit
		{"abc", 0, false},
		{"12x", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q: expected ok, got %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("%q: got %d, want %d", tc.in, got, tc.want)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}
