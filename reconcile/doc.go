// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reconcile matches ballots to roster members and certifies them.

# Matching

Each ballot is resolved by the first rule that applies. Comparisons are
trimmed and case-insensitive:

  1. alias for the normalized username
  2. alias for the email
  3. roster member with the same non-empty email
  4. roster member with the same normalized name (see package names)

A ballot that matches nothing is invalid.

# Duplicates

Ballots are visited in file order. The first ballot resolving to a van ID
is valid; later ballots for the same van ID are duplicates. Reversing the
input reverses which ballot is kept, never the counts.

DuplicatesByUsername is a separate report that groups by normalized
username instead of resolved identity. The two differ when aliases map
several usernames to one member; only the identity policy decides validity.

# Recomputation

Results are a pure function of (roster, aliases, ballots). There is no
incremental update: when any input changes, call ReconcileAll again.
*/
package reconcile
