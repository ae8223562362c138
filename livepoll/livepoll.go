// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package livepoll converts a meeting platform's poll report into polls with
// the same ballot shape as an exported CSV, so reconcile treats both alike.
// It performs no network access; callers fetch the report.
package livepoll

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danielhkuo/quickly-verify/models"
)

// MaxBallots bounds the ballots one report may expand to.
const MaxBallots = 100000

var (
	ErrNoQuestions    = errors.New("no poll questions found for this meeting")
	ErrTooManyBallots = errors.New("poll report answer counts are out of range")
)

type Report struct {
	ID        string     `json:"id"`
	UUID      string     `json:"uuid"`
	StartTime string     `json:"start_time"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

type Question struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Prompts       []Prompt `json:"prompts"`
	AnswerDetails []Answer `json:"answer_details"`
}

type Prompt struct {
	PromptQuestion    string `json:"prompt_question"`
	PromptRightAnswer string `json:"prompt_right_answer"`
}

type Answer struct {
	Answer string `json:"answer"`
	Count  int    `json:"count"`
}

// Decode reads a JSON report.
func Decode(r io.Reader) (Report, error) {
	var report Report
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return Report{}, fmt.Errorf("decode poll report: %w", err)
	}
	return report, nil
}

// Transform expands aggregate answer counts into one ballot per response.
// Reports only carry counts, so each ballot gets a synthetic username and
// email; such ballots reconcile as invalid unless aliased.
func Transform(report Report) ([]models.Poll, error) {
	if len(report.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	if err := checkCounts(report); err != nil {
		return nil, err
	}

	polls := make([]models.Poll, 0, len(report.Questions))
	for i, q := range report.Questions {
		poll := models.Poll{
			Name:     firstNonEmpty(q.Name, fmt.Sprintf("Poll %d", i+1)),
			Question: firstNonEmpty(promptText(q), q.Name, fmt.Sprintf("Poll Question %d", i+1)),
			Ballots:  []models.Ballot{},
		}

		for _, a := range q.AnswerDetails {
			for n := 1; n <= a.Count; n++ {
				user := fmt.Sprintf("zoom_user_%s_%d", a.Answer, n)
				poll.Ballots = append(poll.Ballots, models.Ballot{
					Username: user,
					Email:    user + "@example.com",
					Time:     report.StartTime,
					Choice:   a.Answer,
				})
			}
		}
		polls = append(polls, poll)
	}
	return polls, nil
}

// checkCounts rejects negative counts and totals above MaxBallots before any
// ballot is allocated.
func checkCounts(report Report) error {
	total := 0
	for _, q := range report.Questions {
		for _, a := range q.AnswerDetails {
			if a.Count < 0 || a.Count > MaxBallots-total {
				return fmt.Errorf("%w: %q has count %d, limit is %d ballots per report",
					ErrTooManyBallots, a.Answer, a.Count, MaxBallots)
			}
			total += a.Count
		}
	}
	return nil
}

func promptText(q Question) string {
	if len(q.Prompts) == 0 {
		return ""
	}
	return q.Prompts[0].PromptQuestion
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
