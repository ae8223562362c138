// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	encunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/danielhkuo/quickly-verify/models"
)

// Row shapes, by tab-separated field count
const (
	minSimpleFields = 3
	minWideFields   = 6
)

// ErrTooFewLines is the reason reported for files without a data row.
const ErrTooFewLines = "too few lines: the file must contain a header line and at least one data line"

// spacedPattern matches five or more "letter, space" pairs, the signature of a
// UTF-16 export that was read as single-byte text.
var spacedPattern = regexp.MustCompile(`(?:[A-Za-z]\s){5,}`)

// Header fragments seen in spaced exports that are too short for spacedPattern.
var spacedHeaderFragments = []string{" A N I D ", " a m e ", " N a m e "}

// Decode converts an uploaded roster to text. A UTF-8 or UTF-16 byte order mark
// selects the encoding; unmarked input is read as UTF-8.
func Decode(raw []byte) (string, error) {
	dec := encunicode.BOMOverride(encunicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", fmt.Errorf("decode roster: %w", err)
	}
	return string(out), nil
}

// NeedsRepair reports whether firstLine looks like a spaced-out wide-character export.
func NeedsRepair(firstLine string) bool {
	for _, frag := range spacedHeaderFragments {
		if strings.Contains(firstLine, frag) {
			return true
		}
	}
	return spacedPattern.MatchString(firstLine)
}

// Repair removes the spurious spaces of a spaced-out export, field by field.
// "R o b e r t   S m i t h" becomes "Robert Smith". Tabs and newlines are kept.
func Repair(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		fields := strings.Split(line, "\t")
		for j, field := range fields {
			fields[j] = repairField(field)
		}
		lines[i] = strings.Join(fields, "\t")
	}
	return strings.Join(lines, "\n")
}

func repairField(field string) string {
	runes := []rune(field)
	var b strings.Builder
	b.Grow(len(field))
	for i, r := range runes {
		if unicode.IsSpace(r) &&
			i > 0 && !unicode.IsSpace(runes[i-1]) &&
			i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Parse reads a tab-separated roster export. The first line is a header.
//
// Rows with six or more fields use the wide layout
// (VANID, Last, First, Middle, Suffix, PreferredEmail, ...); rows with three to
// five fields use the simple layout (VANID, Name, Email). Shorter rows are skipped.
func Parse(content string) ([]models.Member, error) {
	firstLine, _, _ := strings.Cut(content, "\n")
	if NeedsRepair(firstLine) {
		content = Repair(content)
	}

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, &models.ParseError{Reason: ErrTooFewLines}
	}

	members := make([]models.Member, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		switch {
		case len(fields) >= minWideFields:
			members = append(members, models.Member{
				VanID:          fields[0],
				Name:           joinName(fields[2], fields[1]),
				PreferredEmail: fields[5],
			})
		case len(fields) >= minSimpleFields:
			members = append(members, models.Member{
				VanID:          fields[0],
				Name:           fields[1],
				PreferredEmail: fields[2],
			})
		}
	}

	return members, nil
}

func joinName(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
