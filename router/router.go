// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-verify/cliparse"
	"github.com/danielhkuo/quickly-verify/db"
	"github.com/danielhkuo/quickly-verify/handlers"
	"github.com/danielhkuo/quickly-verify/middleware"
)

func NewRouter(store *db.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	auditHandler := handlers.NewAuditHandler(store, cfg)
	aliasHandler := handlers.NewAliasHandler(store, cfg)
	resultsHandler := handlers.NewResultsHandler(store, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Audits
	mux.HandleFunc("POST /audits", middleware.WithLogging(auditHandler.CreateAudit))
	mux.HandleFunc("GET /audits/{id}", middleware.WithLogging(auditHandler.GetAudit))
	mux.HandleFunc("PUT /audits/{id}/roster", middleware.WithLogging(auditHandler.UploadRoster))
	mux.HandleFunc("PUT /audits/{id}/polls", middleware.WithLogging(auditHandler.UploadPolls))
	mux.HandleFunc("PUT /audits/{id}/polls/live", middleware.WithLogging(auditHandler.UploadLivePoll))

	// Aliases
	mux.HandleFunc("GET /audits/{id}/aliases", middleware.WithLogging(aliasHandler.ListAliases))
	mux.HandleFunc("POST /audits/{id}/aliases", middleware.WithLogging(aliasHandler.AddAlias))
	mux.HandleFunc("DELETE /audits/{id}/aliases", middleware.WithLogging(aliasHandler.ResetAliases))
	mux.HandleFunc("GET /audits/{id}/aliases/export", middleware.WithLogging(aliasHandler.ExportAliases))
	mux.HandleFunc("PUT /audits/{id}/aliases/import", middleware.WithLogging(aliasHandler.ImportAliases))

	// Results
	mux.HandleFunc("GET /audits/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-verify API v1"))
	})

	return mux
}
