// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package aliases holds operator-declared overrides that link a name or email
typed into a poll to a roster member.

The engine never persists aliases. Callers keep the list (see package db)
and pass a snapshot to reconcile on every run. ReadYAML and WriteYAML move
a list between sessions as a small file:

	aliases:
	  - van_id: "123456"
	    alias: Bobby Wilson
*/
package aliases
