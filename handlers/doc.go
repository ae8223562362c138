// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Verify API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - AuditHandler: Audit creation, summaries, roster and poll uploads
  - AliasHandler: Operator aliases, YAML export and import
  - ResultsHandler: Reconciled results per poll

Handlers are created via constructor functions that accept *db.Store and Config:

	auditHandler := handlers.NewAuditHandler(store, cfg)

# Audit Workflow

	POST /audits                 → CreateAudit (returns admin_key)
	PUT  /audits/{id}/roster     → UploadRoster (raw tab-separated export)
	PUT  /audits/{id}/polls      → UploadPolls (raw poll report CSV)
	PUT  /audits/{id}/polls/live → UploadLivePoll (JSON meeting poll report)
	GET  /audits/{id}            → GetAudit
	GET  /audits/{id}/results    → GetResults

Uploads replace what was stored before. A rejected upload leaves the
previous data in place.

Every /audits/{id} route requires the X-Admin-Key header, since results
expose member emails.

# Aliases

	GET    /audits/{id}/aliases        → ListAliases
	POST   /audits/{id}/aliases        → AddAlias
	DELETE /audits/{id}/aliases        → ResetAliases
	GET    /audits/{id}/aliases/export → ExportAliases (YAML)
	PUT    /audits/{id}/aliases/import → ImportAliases (YAML, replaces)

# Errors

Parser failures return 422 with the parser's message unchanged in the
message field, so the operator sees exactly which line or poll is wrong.
Uploads over the configured limit return 413. Results before both a roster
and a poll export exist return 409.
*/
package handlers
