// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollexport

import (
	"strconv"
	"strings"
)

// Section markers used by meeting poll reports
const (
	launchedPollsMarker  = "Launched Polls"
	overviewMarker       = "Overview"
	manifestHeaderPrefix = "#,Poll Name"
	reportGeneratedText  = "Report Generated"
)

// manifestEntry is one row of the "Launched Polls" section.
type manifestEntry struct {
	Index     int
	Name      string
	Questions int
	Responses int
}

// parseManifest collects the entries of every "Launched Polls" section.
// A section ends at the first blank line.
func parseManifest(lines []string) []manifestEntry {
	var entries []manifestEntry
	inManifest := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if line == launchedPollsMarker {
			inManifest = true
			continue
		}
		if !inManifest {
			continue
		}
		if line == "" {
			inManifest = false
			continue
		}
		if strings.HasPrefix(line, manifestHeaderPrefix) {
			continue
		}

		if entry, ok := parseManifestEntry(line); ok {
			entries = append(entries, entry)
		}
	}

	return entries
}

// parseManifestEntry reads "index,name[,questions,responses]". The name may be
// quoted to carry commas.
func parseManifestEntry(line string) (manifestEntry, bool) {
	fields := trimFields(splitLine(line))
	if len(fields) < 2 {
		return manifestEntry{}, false
	}

	index, err := strconv.Atoi(fields[0])
	if err != nil || fields[1] == "" {
		return manifestEntry{}, false
	}

	entry := manifestEntry{Index: index, Name: fields[1]}
	if len(fields) > 2 {
		entry.Questions, _ = strconv.Atoi(fields[2])
	}
	if len(fields) > 3 {
		entry.Responses, _ = strconv.Atoi(fields[3])
	}
	return entry, true
}
