// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roster parses membership roster exports.

# Formats

Rosters are tab-separated with one header line. Two row layouts are
accepted and may be mixed in one file:

	wide:   VANID  Last  First  Middle  Suffix  PreferredEmail  ...
	simple: VANID  Name  Email

Every field is trimmed, including trailing carriage returns, so emails
compare exactly during reconciliation.

# Spaced Exports

Some exports arrive as UTF-16 text that was read one byte at a time,
leaving a space between every character:

	V A N I D \t N a m e \t E m a i l

Parse inspects the first line once. If it matches the spaced pattern the
whole file is repaired before rows are split; otherwise the content is
left untouched, so ordinary multi-word names survive.

Decode should be used on raw uploads first: exports that carry a byte
order mark are decoded properly and never need the repair.
*/
package roster
