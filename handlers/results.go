// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-verify/cliparse"
	"github.com/danielhkuo/quickly-verify/db"
	"github.com/danielhkuo/quickly-verify/middleware"
	"github.com/danielhkuo/quickly-verify/models"
	"github.com/danielhkuo/quickly-verify/reconcile"
)

type ResultsHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewResultsHandler(store *db.Store, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{store: store, cfg: cfg}
}

// GetResults handles GET /audits/{id}/results
// Results are recomputed from the stored roster, polls and aliases on every call.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	audit, ok := authorizeAudit(w, r, h.store, h.cfg)
	if !ok {
		return
	}

	ctx := r.Context()
	members, err := h.store.LoadRoster(ctx, audit.ID)
	if err != nil {
		slog.Error("failed to load roster", "audit_id", audit.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	polls, err := h.store.LoadPolls(ctx, audit.ID)
	if err != nil {
		slog.Error("failed to load polls", "audit_id", audit.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if len(members) == 0 || len(polls) == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Upload a roster and a poll export before computing results")
		return
	}

	list, err := h.store.LoadAliases(ctx, audit.ID)
	if err != nil {
		slog.Error("failed to load aliases", "audit_id", audit.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	start := time.Now()
	results := reconcile.ReconcileAll(polls, members, list)

	var ballots, valid int
	for _, pr := range results {
		ballots += len(pr.Valid) + len(pr.Invalid) + len(pr.Duplicate)
		valid += len(pr.Valid)
	}
	slog.Info("results computed",
		"audit_id", audit.ID,
		"polls", len(results),
		"ballots", humanize.Comma(int64(ballots)),
		"valid", humanize.Comma(int64(valid)),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		AuditID:    audit.ID,
		ComputedAt: time.Now().UTC(),
		Polls:      results,
	})
}
