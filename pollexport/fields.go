// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollexport

import (
	"errors"
	"strings"
)

var errUnterminatedQuote = errors.New("unterminated quoted field")

// splitFields splits the comma-separated record that starts at lines[0].
//
// A double quote toggles quoting anywhere in a field and "" inside quotes is a
// literal quote. Commas inside quotes belong to the field. When multiline is
// set, a quote still open at the end of a line continues the field on the next
// line, joined with "\n"; otherwise the field ends with the line.
//
// Fields are returned untrimmed with quotes removed, together with the number
// of lines the record used.
func splitFields(lines []string, multiline bool) ([]string, int, error) {
	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
	)

	for n := 0; n < len(lines); n++ {
		line := lines[n]
		for i := 0; i < len(line); i++ {
			c := line[i]
			switch {
			case c == '"' && inQuotes && i+1 < len(line) && line[i+1] == '"':
				field.WriteByte('"')
				i++
			case c == '"':
				inQuotes = !inQuotes
			case c == ',' && !inQuotes:
				fields = append(fields, field.String())
				field.Reset()
			default:
				field.WriteByte(c)
			}
		}

		if !inQuotes || !multiline {
			fields = append(fields, field.String())
			return fields, n + 1, nil
		}
		field.WriteByte('\n')
	}

	return nil, len(lines), errUnterminatedQuote
}

// splitLine splits a single physical line.
func splitLine(line string) []string {
	fields, _, _ := splitFields([]string{line}, false)
	return fields
}

// trimFields trims every field in place and returns the slice.
func trimFields(fields []string) []string {
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// joinTrailing rejoins fields[from:] with commas after dropping empty trailing
// cells, so "Yes, please",, and Yes, please,, both yield "Yes, please".
func joinTrailing(fields []string, from int) string {
	if from >= len(fields) {
		return ""
	}
	rest := fields[from:]
	for len(rest) > 0 && strings.TrimSpace(rest[len(rest)-1]) == "" {
		rest = rest[:len(rest)-1]
	}
	return strings.TrimSpace(strings.Join(rest, ","))
}
