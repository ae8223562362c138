// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth derives and checks audit admin keys.

Admin keys use HMAC-SHA256 over the audit ID:

	adminKey := auth.GenerateAdminKey(auditID, salt)
	err := auth.ValidateAdminKey(auditID, adminKey, salt)

The key is URL-safe base64 without padding. Since it is deterministic, the
same audit ID and salt always produce the same key, so keys are never stored.
Clients send it in the X-Admin-Key header.
*/
package auth
