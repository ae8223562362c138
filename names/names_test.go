// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package names

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"single token", "  Cher ", "cher"},
		{"two tokens", "Robert Smith", "robert smith"},
		{"middle initial dropped", "Robert Q. Smith", "robert smith"},
		{"many middle names", "Anna Maria Luisa Garcia", "anna garcia"},
		{"mixed whitespace", "Nick\tA  Bonanza\r", "nick bonanza"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeSymmetric(t *testing.T) {
	if Normalize("Robert Q. Smith") != Normalize("robert smith") {
		t.Error("roster and ballot spellings should normalize to the same key")
	}
}

func TestKey(t *testing.T) {
	if got := Key("  HELLO@Example.com \r"); got != "hello@example.com" {
		t.Errorf("Key() = %q, want %q", got, "hello@example.com")
	}
}
