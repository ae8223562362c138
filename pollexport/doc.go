// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pollexport parses meeting poll report exports.

# File Shape

Reports are not plain CSV. A typical export mixes report metadata, a
manifest of launched polls, and one section per poll:

	Launched Polls
	#,Poll Name,Questions,Responses
	1,Mayor Race,1,3
	2,"School Board, District 3",1,2

	Mayor Race
	#,User Name,Email Address,Submitted Date and Time,Who do you support for Mayor?
	1,Ann Lee,ann@example.com,2025-06-15 19:10:00,Pat Doe,,
	...

The text after the fixed columns of a section header is the poll question.
Every cell from the fifth on belongs to it, so an unquoted question with
commas ("Yes, or no?") is kept whole rather than cut at its last comma.
A section starts at a line holding the poll name, quoted or not; an
unquoted name may contain commas.
Older single-poll exports have no manifest; the first column header is used
and the title is taken from the nearest plain line above it.

# Strictness

Noise inside a section (blank rows, "9,,,," filler rows, repeated report
boilerplate) is skipped. Numbered rows are strict: a row missing its name,
email, time or choice fails the whole parse, as does a manifest poll whose
section cannot be found or a section without ballots.

# Fields

A single quote-aware splitter serves the manifest and the ballot rows.
Quoted fields may contain commas, "" for a literal quote, and, in ballot
rows, line breaks. A ballot row is one whose first field, quoted or not,
is an integer. Extra cells after the fourth column are rejoined into
the choice so unquoted commas survive.

Errors are *models.ParseError values whose text is meant for operators and
quotes the offending line numbers and content.
*/
package pollexport
