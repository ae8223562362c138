// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types.

# Domain Types

Inputs to reconciliation:

  - Member: one roster row (van_id, name, preferred_email)
  - Ballot: one raw vote (username, email, time, choice)
  - Poll: a question and its ballots in file order
  - Alias: operator override mapping free text to a van_id

Derived values:

  - Result: valid / invalid / duplicate partition plus Tally
  - Tally: choice counts over valid ballots, first-seen order
  - Resolution: per-ballot rule and status
  - PollResult: Result plus resolutions for one poll

# Errors

ParseError carries the single operator-facing message produced by
the roster and poll export parsers.

# Status Values

	StatusValid     = "valid"
	StatusInvalid   = "invalid"
	StatusDuplicate = "duplicate"
*/
package models
