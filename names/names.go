// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package names canonicalizes free-text names and identifiers for comparison.
package names

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Key lower-cases and trims s. Used for emails and other single-token identifiers.
func Key(s string) string {
	// Casers carry state, so one is built per call.
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Normalize reduces a name to "first last" in lower case, dropping middle names,
// so "Robert Q. Smith" and "robert smith" compare equal.
func Normalize(name string) string {
	tokens := strings.Fields(Key(name))
	switch len(tokens) {
	case 0:
		return ""
	case 1:
		return tokens[0]
	default:
		return tokens[0] + " " + tokens[len(tokens)-1]
	}
}
