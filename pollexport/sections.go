// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollexport

import (
	"strings"
)

// ballotHeaderPrefix starts the column header line of every poll section.
// The text after it names the poll question.
const ballotHeaderPrefix = "#,User Name,Email Address,Submitted Date and Time"

// Lines searched after a poll name for its column header.
const headerLookahead = 4

// Lines searched above a lone header for a poll title.
const titleLookbehind = 5

const unnamedPoll = "Unnamed Poll"

// section locates one poll inside the export.
type section struct {
	Name        string
	Question    string
	TitleIndex  int // line holding the poll name, or HeaderIndex when there is none
	HeaderIndex int
}

// findSections locates every poll listed in the manifest. Manifest polls with
// no section in the file are returned by name in missing. Files without a
// manifest fall back to a single section at the first column header.
func findSections(lines []string) (sections []section, missing []string) {
	manifest := parseManifest(lines)
	if len(manifest) == 0 {
		if s, ok := findLegacySection(lines); ok {
			return []section{s}, nil
		}
		return nil, nil
	}

	found := make([]bool, len(manifest))
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || isMetadataLine(line) {
			continue
		}

		entry := matchPollName(line, manifest, found)
		if entry < 0 {
			continue
		}

		header := findHeader(lines, i+1)
		if header < 0 {
			continue
		}

		found[entry] = true
		sections = append(sections, section{
			Name:        manifest[entry].Name,
			Question:    questionFromHeader(lines[header]),
			TitleIndex:  i,
			HeaderIndex: header,
		})
		i = header
	}

	for i, entry := range manifest {
		if !found[i] {
			missing = append(missing, entry.Name)
		}
	}
	return sections, missing
}

// matchPollName returns the first manifest entry not yet found whose name is
// the whole line, quoted or not. Trailing empty cells are tolerated.
func matchPollName(line string, manifest []manifestEntry, found []bool) int {
	whole := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(line), ","))

	// An unquoted title may itself contain commas, so split cells only as a fallback.
	name := ""
	if fields := trimFields(splitLine(line)); joinTrailing(fields, 1) == "" {
		name = fields[0]
	}

	for i, entry := range manifest {
		if found[i] {
			continue
		}
		if whole == entry.Name || whole == `"`+entry.Name+`"` || (name != "" && name == entry.Name) {
			return i
		}
	}
	return -1
}

// findHeader returns the index of the column header within the lookahead
// window starting at from, or -1.
func findHeader(lines []string, from int) int {
	for j := from; j < len(lines) && j <= from+headerLookahead; j++ {
		if isBallotHeader(lines[j]) {
			return j
		}
	}
	return -1
}

func findLegacySection(lines []string) (section, bool) {
	for i, line := range lines {
		if !isBallotHeader(line) {
			continue
		}

		s := section{
			Name:        unnamedPoll,
			Question:    questionFromHeader(line),
			TitleIndex:  i,
			HeaderIndex: i,
		}
		for j := i - 1; j >= 0 && j >= i-titleLookbehind; j-- {
			title := strings.TrimSpace(lines[j])
			if title == "" || strings.HasPrefix(title, "#") || isMetadataLine(title) {
				continue
			}
			if name := strings.TrimSpace(splitLine(title)[0]); name != "" {
				s.Name = name
				s.TitleIndex = j
			}
			break
		}
		return s, true
	}
	return section{}, false
}

func isBallotHeader(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), ballotHeaderPrefix)
}

func isMetadataLine(line string) bool {
	return line == overviewMarker ||
		line == launchedPollsMarker ||
		strings.HasPrefix(line, manifestHeaderPrefix) ||
		strings.Contains(line, reportGeneratedText)
}

// questionFromHeader returns the column title after the fixed ballot columns.
func questionFromHeader(line string) string {
	fields := splitLine(strings.TrimSpace(line))
	return joinTrailing(fields, 4)
}
