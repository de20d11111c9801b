package auth

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"10 digits", "6502530000", "+16502530000"},
		{"10 digits with dashes", "650-253-0000", "+16502530000"},
		{"10 digits with parens", "(650) 253-0000", "+16502530000"},
		{"10 digits with dots", "202.456.1111", "+12024561111"},
		{"11 digits with leading 1", "16502530000", "+16502530000"},
		{"E.164 format", "+16502530000", "+16502530000"},
		{"E.164 with spaces", " +1 650 253 0000 ", "+16502530000"},
	}
	for _, tt := range tests {
		got, err := NormalizePhone(tt.input)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, got)
		}
	}
}

func TestNormalizePhoneRejectsInvalid(t *testing.T) {
	for _, input := range []string{
		"",
		"user@example.com",
		"650253000",
		"5",
	} {
		if got, err := NormalizePhone(input); err == nil {
			t.Errorf("expected error for %q, got %q", input, got)
		}
	}
}
