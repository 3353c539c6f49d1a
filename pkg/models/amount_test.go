package models

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in       string
		expected int64
	}{
		{"12.34", 12340},
		{"-12.34", -12340},
		{"0.5", 500},
		{"100", 100000},
		{"12.345", 12345},
		{"-2327,00", -2327000},
		{"1.234,56", 1234560},
		{"R$ 42.00", 42000},
		{"$3.99", 3990},
		{"+7.00", 7000},
		{" 1.00 ", 1000},
	}

	for _, c := range cases {
		got, err := ParseAmount(c.in)
		if err != nil {
			t.Errorf("ParseAmount(%q) failed: %v", c.in, err)
			continue
		}
		if got != c.expected {
			t.Errorf("ParseAmount(%q): expected %d, got %d", c.in, c.expected, got)
		}
	}
}

func TestParseAmountRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "12.3456", "--5", "1.2.3"} {
		if _, err := ParseAmount(in); err == nil {
			t.Errorf("ParseAmount(%q): expected error", in)
		}
	}
}
