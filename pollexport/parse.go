// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollexport

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/danielhkuo/quickly-verify/models"
)

// Operator-facing messages
const (
	msgEmptyFile  = "The input file is empty"
	msgNoPollData = "No poll data found in the file. The file should contain poll results with a header row starting with '#'"
)

// Lines quoted in an error for a field that is never closed.
const maxQuotedLines = 5

var lineBreak = regexp.MustCompile(`\r?\n`)

// fillerRow matches a numbered row with no data, e.g. "9,,,,,".
var fillerRow = regexp.MustCompile(`^\d+,[\s,]*$`)

// Parse reads a meeting poll report export and returns its polls in file order.
//
// Every poll named in the "Launched Polls" manifest must have a section in the
// file, every section must yield at least one ballot, and every numbered row
// must carry a name, email, time and choice. Any violation fails the whole
// parse with a *models.ParseError; no partial result is returned.
func Parse(content string) ([]models.Poll, error) {
	content = strings.TrimPrefix(content, "\ufeff")
	if strings.TrimSpace(content) == "" {
		return nil, &models.ParseError{Reason: msgEmptyFile}
	}

	lines := lineBreak.Split(content, -1)

	sections, missing := findSections(lines)
	if len(missing) > 0 {
		return nil, models.NewParseError(
			"Could not find the following polls in the file: %s. "+
				"Please check that all polls listed in the %q section are present in the file.",
			strings.Join(missing, ", "), launchedPollsMarker)
	}
	if len(sections) == 0 {
		return nil, &models.ParseError{Reason: msgNoPollData}
	}

	polls := make([]models.Poll, 0, len(sections))
	for k, s := range sections {
		end := len(lines)
		if k+1 < len(sections) {
			end = sections[k+1].TitleIndex
		}

		ballots, err := parseBallots(lines, s.HeaderIndex+1, end, s.Name)
		if err != nil {
			return nil, err
		}
		if len(ballots) == 0 {
			return nil, models.NewParseError("Poll %q contains no ballots (header on line %d)", s.Name, s.HeaderIndex+1)
		}

		polls = append(polls, models.Poll{
			Name:     s.Name,
			Question: s.Question,
			Ballots:  ballots,
		})
	}

	return polls, nil
}

// parseBallots reads the numbered rows in lines[from:to]. Blank rows, filler
// rows and rows whose first cell is not a number are skipped.
func parseBallots(lines []string, from, to int, pollName string) ([]models.Ballot, error) {
	var ballots []models.Ballot

	for i := from; i < to; {
		line := strings.TrimSpace(lines[i])
		if strings.Trim(line, ", \t") == "" || fillerRow.MatchString(line) || !hasNumericLead(line) {
			i++
			continue
		}

		fields, consumed, err := splitFields(lines[i:to], true)
		if errors.Is(err, errUnterminatedQuote) {
			return nil, models.NewParseError(
				"Line %d in poll %q has a quoted field that is never closed:\n%s",
				i+1, pollName, quoteLines(lines[i:min(to, i+maxQuotedLines)]))
		}

		// Choice cells are joined untrimmed so "Yes, please" keeps its space.
		ballot := models.Ballot{
			Username: fieldAt(fields, 1),
			Email:    fieldAt(fields, 2),
			Time:     fieldAt(fields, 3),
			Choice:   joinTrailing(fields, 4),
		}
		if missing := missingFields(ballot); len(missing) > 0 {
			return nil, models.NewParseError(
				"Line %d in poll %q is missing %s:\n%s\n\n"+
					"Expected 5 fields (number, name, email, time, vote) but got %d non-empty fields.",
				i+1, pollName, strings.Join(missing, ", "), quoteLines(lines[i:i+consumed]), countNonEmpty(fields))
		}

		ballots = append(ballots, ballot)
		i += consumed
	}

	return ballots, nil
}

// hasNumericLead reports whether the first field, quotes removed, is an
// integer. It is the ballot's sequence number within the poll.
func hasNumericLead(line string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(splitLine(line)[0]))
	return err == nil
}

func fieldAt(fields []string, i int) string {
	if i < len(fields) {
		return strings.TrimSpace(fields[i])
	}
	return ""
}

func missingFields(b models.Ballot) []string {
	var missing []string
	if b.Username == "" {
		missing = append(missing, "user name")
	}
	if b.Email == "" {
		missing = append(missing, "email address")
	}
	if b.Time == "" {
		missing = append(missing, "submitted time")
	}
	if b.Choice == "" {
		missing = append(missing, "choice")
	}
	return missing
}

func countNonEmpty(fields []string) int {
	n := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			n++
		}
	}
	return n
}

func quoteLines(lines []string) string {
	quoted := make([]string, len(lines))
	for i, l := range lines {
		quoted[i] = fmt.Sprintf("%q", l)
	}
	return strings.Join(quoted, "\n")
}
