// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Verify API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg)

# Endpoints

Health:

	GET /health

Audits (all but creation require X-Admin-Key):

	POST /audits                 - Create audit
	GET  /audits/{id}            - Summary
	PUT  /audits/{id}/roster     - Upload roster export
	PUT  /audits/{id}/polls      - Upload poll report CSV
	PUT  /audits/{id}/polls/live - Upload meeting poll report JSON

Aliases:

	GET    /audits/{id}/aliases        - List
	POST   /audits/{id}/aliases        - Add one
	DELETE /audits/{id}/aliases        - Reset
	GET    /audits/{id}/aliases/export - Download YAML
	PUT    /audits/{id}/aliases/import - Replace from YAML

Results:

	GET /audits/{id}/results - Reconciled results for every poll

# Handler Initialization

The router creates handler instances with dependency injection:

	auditHandler := handlers.NewAuditHandler(store, cfg)
	aliasHandler := handlers.NewAliasHandler(store, cfg)
	resultsHandler := handlers.NewResultsHandler(store, cfg)

All handlers receive the store and configuration.
*/
package router
