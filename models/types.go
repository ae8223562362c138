// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Resolution status constants
const (
	StatusValid     = "valid"
	StatusInvalid   = "invalid"
	StatusDuplicate = "duplicate"
)

// Domain types

// Member is one eligible voter from the roster. VanID is the only stable identity;
// Name and PreferredEmail may be blank or shared between members.
type Member struct {
	VanID          string `json:"van_id"`
	Name           string `json:"name"`
	PreferredEmail string `json:"preferred_email"`
}

// Ballot is one raw vote record. Every field is an opaque string.
type Ballot struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Time     string `json:"time"`
	Choice   string `json:"choice"`
}

// Poll is one question and its ballots in file order.
type Poll struct {
	Name     string   `json:"name"`
	Question string   `json:"question"`
	Ballots  []Ballot `json:"ballots"`
}

type Alias struct {
	VanID string `json:"van_id" yaml:"van_id"`
	Alias string `json:"alias" yaml:"alias"`
}

// ChoiceCount is one row of a Tally.
type ChoiceCount struct {
	Choice string `json:"choice"`
	Count  int    `json:"count"`
}

// Tally counts choices in first-seen order.
type Tally []ChoiceCount

// Get returns the count recorded for choice, or 0.
func (t Tally) Get(choice string) int {
	for _, c := range t {
		if c.Choice == choice {
			return c.Count
		}
	}
	return 0
}

// Total sums every count in the tally.
func (t Tally) Total() int {
	total := 0
	for _, c := range t {
		total += c.Count
	}
	return total
}

// Result partitions a poll's ballots after reconciliation.
type Result struct {
	Valid     []Ballot `json:"valid"`
	Invalid   []Ballot `json:"invalid"`
	Duplicate []Ballot `json:"duplicate"`
	Tally     Tally    `json:"tally"`
}

// Resolution explains how a single ballot was classified.
type Resolution struct {
	Ballot Ballot `json:"ballot"`
	VanID  string `json:"van_id,omitempty"`
	Rule   string `json:"rule"`
	Status string `json:"status"`
}

type PollResult struct {
	Name     string `json:"name"`
	Question string `json:"question"`
	Result
	Resolutions []Resolution `json:"resolutions"`
	// Ballots sharing a normalized username, first occurrence only.
	UsernameDuplicates []Ballot `json:"username_duplicates"`
}

// Audit groups one roster, one poll set and the operator's aliases.
type Audit struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Request types

type CreateAuditRequest struct {
	Title string `json:"title"`
}

type AddAliasRequest struct {
	VanID string `json:"van_id"`
	Alias string `json:"alias"`
}

// Response types

type CreateAuditResponse struct {
	AuditID  string `json:"audit_id"`
	AdminKey string `json:"admin_key"`
}

type AuditSummary struct {
	Audit       Audit    `json:"audit"`
	MemberCount int      `json:"member_count"`
	PollNames   []string `json:"poll_names"`
	AliasCount  int      `json:"alias_count"`
}

type UploadRosterResponse struct {
	MemberCount int `json:"member_count"`
}

type UploadPollsResponse struct {
	Polls []PollSummary `json:"polls"`
}

type PollSummary struct {
	Name        string `json:"name"`
	Question    string `json:"question"`
	BallotCount int    `json:"ballot_count"`
}

type AliasesResponse struct {
	Aliases []Alias `json:"aliases"`
}

type ResultsResponse struct {
	AuditID    string       `json:"audit_id"`
	ComputedAt time.Time    `json:"computed_at"`
	Polls      []PollResult `json:"polls"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
