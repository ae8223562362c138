// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"github.com/danielhkuo/quickly-verify/aliases"
	"github.com/danielhkuo/quickly-verify/models"
	"github.com/danielhkuo/quickly-verify/names"
)

// Match rules, in precedence order
const (
	MatchAliasName  = "alias_name"
	MatchAliasEmail = "alias_email"
	MatchEmail      = "email"
	MatchName       = "name"
	MatchNone       = "none"
)

// Index resolves ballots to roster van IDs.
type Index struct {
	aliases *aliases.Registry
	byEmail map[string]string
	byName  map[string]string
}

// NewIndex builds lookup tables for roster. When several members share an
// email or normalized name, the first in roster order wins.
func NewIndex(roster []models.Member, reg *aliases.Registry) *Index {
	idx := &Index{
		aliases: reg,
		byEmail: make(map[string]string, len(roster)),
		byName:  make(map[string]string, len(roster)),
	}
	for _, m := range roster {
		if email := names.Key(m.PreferredEmail); email != "" {
			if _, taken := idx.byEmail[email]; !taken {
				idx.byEmail[email] = m.VanID
			}
		}
		if name := names.Normalize(m.Name); name != "" {
			if _, taken := idx.byName[name]; !taken {
				idx.byName[name] = m.VanID
			}
		}
	}
	return idx
}

// Match returns the van ID a ballot resolves to and the rule that matched.
// An unmatched ballot returns "" and MatchNone.
func (idx *Index) Match(b models.Ballot) (string, string) {
	if vanID, ok := idx.aliases.Lookup(b.Username); ok {
		return vanID, MatchAliasName
	}
	if vanID, ok := idx.aliases.Lookup(b.Email); ok {
		return vanID, MatchAliasEmail
	}
	if email := names.Key(b.Email); email != "" {
		if vanID, ok := idx.byEmail[email]; ok {
			return vanID, MatchEmail
		}
	}
	if name := names.Normalize(b.Username); name != "" {
		if vanID, ok := idx.byName[name]; ok {
			return vanID, MatchName
		}
	}
	return "", MatchNone
}

// Reconcile classifies ballots against roster and aliases.
//
// Ballots are visited in order. The first ballot resolving to a van ID is
// valid and later ones resolving to the same van ID are duplicates; ballots
// resolving to no member are invalid. The tally counts valid ballots only.
// Inputs are not modified.
func Reconcile(ballots []models.Ballot, roster []models.Member, aliasList []models.Alias) models.Result {
	result, _ := classify(ballots, NewIndex(roster, aliases.FromAliases(aliasList)))
	return result
}

func classify(ballots []models.Ballot, idx *Index) (models.Result, []models.Resolution) {
	result := models.Result{
		Valid:     []models.Ballot{},
		Invalid:   []models.Ballot{},
		Duplicate: []models.Ballot{},
		Tally:     models.Tally{},
	}
	resolutions := make([]models.Resolution, 0, len(ballots))
	seen := make(map[string]bool)
	tallyPos := make(map[string]int)

	for _, b := range ballots {
		vanID, rule := idx.Match(b)
		res := models.Resolution{Ballot: b, VanID: vanID, Rule: rule}

		switch {
		case rule == MatchNone:
			res.Status = models.StatusInvalid
			result.Invalid = append(result.Invalid, b)
		case seen[vanID]:
			res.Status = models.StatusDuplicate
			result.Duplicate = append(result.Duplicate, b)
		default:
			seen[vanID] = true
			res.Status = models.StatusValid
			result.Valid = append(result.Valid, b)

			if pos, ok := tallyPos[b.Choice]; ok {
				result.Tally[pos].Count++
			} else {
				tallyPos[b.Choice] = len(result.Tally)
				result.Tally = append(result.Tally, models.ChoiceCount{Choice: b.Choice, Count: 1})
			}
		}
		resolutions = append(resolutions, res)
	}

	return result, resolutions
}

// DuplicatesByUsername groups ballots by normalized username and returns the
// first ballot of every group with more than one entry, in first-seen order.
//
// Unlike Reconcile it ignores roster identity, so two usernames aliased to the
// same member are not reported here.
func DuplicatesByUsername(ballots []models.Ballot) []models.Ballot {
	counts := make(map[string]int)
	var order []string
	first := make(map[string]models.Ballot)

	for _, b := range ballots {
		key := names.Normalize(b.Username)
		if counts[key] == 0 {
			order = append(order, key)
			first[key] = b
		}
		counts[key]++
	}

	dups := []models.Ballot{}
	for _, key := range order {
		if counts[key] > 1 {
			dups = append(dups, first[key])
		}
	}
	return dups
}

// ReconcilePoll reconciles one poll and records how every ballot resolved.
func ReconcilePoll(poll models.Poll, idx *Index) models.PollResult {
	result, resolutions := classify(poll.Ballots, idx)
	return models.PollResult{
		Name:               poll.Name,
		Question:           poll.Question,
		Result:             result,
		Resolutions:        resolutions,
		UsernameDuplicates: DuplicatesByUsername(result.Valid),
	}
}

// ReconcileAll recomputes every poll against the same roster and aliases.
func ReconcileAll(polls []models.Poll, roster []models.Member, aliasList []models.Alias) []models.PollResult {
	idx := NewIndex(roster, aliases.FromAliases(aliasList))
	results := make([]models.PollResult, 0, len(polls))
	for _, p := range polls {
		results = append(results, ReconcilePoll(p, idx))
	}
	return results
}
