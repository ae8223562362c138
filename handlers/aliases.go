// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-verify/aliases"
	"github.com/danielhkuo/quickly-verify/cliparse"
	"github.com/danielhkuo/quickly-verify/db"
	"github.com/danielhkuo/quickly-verify/middleware"
	"github.com/danielhkuo/quickly-verify/models"
)

type AliasHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewAliasHandler(store *db.Store, cfg cliparse.Config) *AliasHandler {
	return &AliasHandler{store: store, cfg: cfg}
}

// ListAliases handles GET /audits/{id}/aliases
func (h *AliasHandler) ListAliases(w http.ResponseWriter, r *http.Request) {
	audit, ok := authorizeAudit(w, r, h.store, h.cfg)
	if !ok {
		return
	}

	list, ok := h.load(w, r, audit.ID)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AliasesResponse{Aliases: list})
}

// AddAlias handles POST /audits/{id}/aliases
func (h *AliasHandler) AddAlias(w http.ResponseWriter, r *http.Request) {
	audit, ok := authorizeAudit(w, r, h.store, h.cfg)
	if !ok {
		return
	}

	var req models.AddAliasRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	list, ok := h.load(w, r, audit.ID)
	if !ok {
		return
	}

	reg := aliases.FromAliases(list)
	if err := reg.Add(req.VanID, req.Alias); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	added := reg.Aliases()[reg.Len()-1]

	if err := h.store.AddAlias(r.Context(), audit.ID, added); err != nil {
		slog.Error("failed to store alias", "audit_id", audit.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add alias")
		return
	}

	slog.Info("alias added", "audit_id", audit.ID, "van_id", added.VanID)

	middleware.JSONResponse(w, http.StatusCreated, models.AliasesResponse{Aliases: reg.Aliases()})
}

// ResetAliases handles DELETE /audits/{id}/aliases
func (h *AliasHandler) ResetAliases(w http.ResponseWriter, r *http.Request) {
	audit, ok := authorizeAudit(w, r, h.store, h.cfg)
	if !ok {
		return
	}

	if err := h.store.ResetAliases(r.Context(), audit.ID); err != nil {
		slog.Error("failed to reset aliases", "audit_id", audit.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset aliases")
		return
	}

	slog.Info("aliases reset", "audit_id", audit.ID)

	middleware.JSONResponse(w, http.StatusOK, models.AliasesResponse{Aliases: []models.Alias{}})
}

// ExportAliases handles GET /audits/{id}/aliases/export
func (h *AliasHandler) ExportAliases(w http.ResponseWriter, r *http.Request) {
	audit, ok := authorizeAudit(w, r, h.store, h.cfg)
	if !ok {
		return
	}

	list, ok := h.load(w, r, audit.ID)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := aliases.WriteYAML(&buf, list); err != nil {
		slog.Error("failed to encode aliases", "audit_id", audit.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export aliases")
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="aliases.yaml"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ImportAliases handles PUT /audits/{id}/aliases/import
// The body is a file produced by ExportAliases; it replaces the current list.
func (h *AliasHandler) ImportAliases(w http.ResponseWriter, r *http.Request) {
	audit, ok := authorizeAudit(w, r, h.store, h.cfg)
	if !ok {
		return
	}

	body, ok := readUpload(w, r, h.cfg.MaxUploadBytes)
	if !ok {
		return
	}

	list, err := aliases.ReadYAML(bytes.NewReader(body))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Registry trims and validates the same way AddAlias does
	list = aliases.FromAliases(list).Aliases()

	if err := h.store.ReplaceAliases(r.Context(), audit.ID, list); err != nil {
		slog.Error("failed to store aliases", "audit_id", audit.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to import aliases")
		return
	}

	slog.Info("aliases imported", "audit_id", audit.ID, "count", len(list))

	middleware.JSONResponse(w, http.StatusOK, models.AliasesResponse{Aliases: list})
}

func (h *AliasHandler) load(w http.ResponseWriter, r *http.Request, auditID string) ([]models.Alias, bool) {
	list, err := h.store.LoadAliases(r.Context(), auditID)
	if err != nil {
		slog.Error("failed to load aliases", "audit_id", auditID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}
	return list, true
}
