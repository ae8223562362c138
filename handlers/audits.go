// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-verify/auth"
	"github.com/danielhkuo/quickly-verify/cliparse"
	"github.com/danielhkuo/quickly-verify/db"
	"github.com/danielhkuo/quickly-verify/livepoll"
	"github.com/danielhkuo/quickly-verify/middleware"
	"github.com/danielhkuo/quickly-verify/models"
	"github.com/danielhkuo/quickly-verify/pollexport"
	"github.com/danielhkuo/quickly-verify/roster"
)

type AuditHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewAuditHandler(store *db.Store, cfg cliparse.Config) *AuditHandler {
	return &AuditHandler{store: store, cfg: cfg}
}

// CreateAudit handles POST /audits
func (h *AuditHandler) CreateAudit(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAuditRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	audit, err := h.store.CreateAudit(r.Context(), req.Title)
	if err != nil {
		slog.Error("failed to create audit", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create audit")
		return
	}

	slog.Info("audit created", "audit_id", audit.ID, "title", audit.Title)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateAuditResponse{
		AuditID:  audit.ID,
		AdminKey: auth.GenerateAdminKey(audit.ID, h.cfg.AdminKeySalt),
	})
}

// GetAudit handles GET /audits/{id}
func (h *AuditHandler) GetAudit(w http.ResponseWriter, r *http.Request) {
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
	list, err := h.store.LoadAliases(ctx, audit.ID)
	if err != nil {
		slog.Error("failed to load aliases", "audit_id", audit.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	pollNames := make([]string, 0, len(polls))
	for _, p := range polls {
		pollNames = append(pollNames, p.Name)
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuditSummary{
		Audit:       audit,
		MemberCount: len(members),
		PollNames:   pollNames,
		AliasCount:  len(list),
	})
}

// UploadRoster handles PUT /audits/{id}/roster
// The body is the raw roster export, tab separated.
func (h *AuditHandler) UploadRoster(w http.ResponseWriter, r *http.Request) {
	audit, ok := authorizeAudit(w, r, h.store, h.cfg)
	if !ok {
		return
	}

	body, ok := readUpload(w, r, h.cfg.MaxUploadBytes)
	if !ok {
		return
	}

	content, err := roster.Decode(body)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	members, err := roster.Parse(content)
	if err != nil {
		writeParseError(w, err)
		return
	}

	if err := h.store.ReplaceRoster(r.Context(), audit.ID, members); err != nil {
		slog.Error("failed to store roster", "audit_id", audit.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store roster")
		return
	}

	slog.Info("roster uploaded", "audit_id", audit.ID, "members", len(members))

	middleware.JSONResponse(w, http.StatusOK, models.UploadRosterResponse{
		MemberCount: len(members),
	})
}

// UploadPolls handles PUT /audits/{id}/polls
// The body is the raw poll report CSV.
func (h *AuditHandler) UploadPolls(w http.ResponseWriter, r *http.Request) {
	audit, ok := authorizeAudit(w, r, h.store, h.cfg)
	if !ok {
		return
	}

	body, ok := readUpload(w, r, h.cfg.MaxUploadBytes)
	if !ok {
		return
	}

	polls, err := pollexport.Parse(string(body))
	if err != nil {
		writeParseError(w, err)
		return
	}

	h.replacePolls(w, r, audit, polls)
}

// UploadLivePoll handles PUT /audits/{id}/polls/live
// The body is a meeting poll report in JSON.
func (h *AuditHandler) UploadLivePoll(w http.ResponseWriter, r *http.Request) {
	audit, ok := authorizeAudit(w, r, h.store, h.cfg)
	if !ok {
		return
	}

	body, ok := readUpload(w, r, h.cfg.MaxUploadBytes)
	if !ok {
		return
	}

	report, err := livepoll.Decode(bytes.NewReader(body))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	polls, err := livepoll.Transform(report)
	if errors.Is(err, livepoll.ErrNoQuestions) || errors.Is(err, livepoll.ErrTooManyBallots) {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to transform poll report", "audit_id", audit.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read poll report")
		return
	}

	h.replacePolls(w, r, audit, polls)
}

func (h *AuditHandler) replacePolls(w http.ResponseWriter, r *http.Request, audit models.Audit, polls []models.Poll) {
	if err := h.store.ReplacePolls(r.Context(), audit.ID, polls); err != nil {
		slog.Error("failed to store polls", "audit_id", audit.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store polls")
		return
	}

	summaries := make([]models.PollSummary, 0, len(polls))
	for _, p := range polls {
		summaries = append(summaries, models.PollSummary{
			Name:        p.Name,
			Question:    p.Question,
			BallotCount: len(p.Ballots),
		})
	}

	slog.Info("polls uploaded", "audit_id", audit.ID, "polls", len(polls))

	middleware.JSONResponse(w, http.StatusOK, models.UploadPollsResponse{Polls: summaries})
}

// authorizeAudit checks the admin key and loads the audit named in the path.
// It writes the error response itself and reports whether to continue.
func authorizeAudit(w http.ResponseWriter, r *http.Request, store *db.Store, cfg cliparse.Config) (models.Audit, bool) {
	auditID := r.PathValue("id")
	if auditID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "audit_id is required")
		return models.Audit{}, false
	}

	adminKey := r.Header.Get(auth.AdminKeyHeader)
	if err := auth.ValidateAdminKey(auditID, adminKey, cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return models.Audit{}, false
	}

	audit, err := store.GetAudit(r.Context(), auditID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Audit not found")
		return models.Audit{}, false
	}
	if err != nil {
		slog.Error("failed to query audit", "audit_id", auditID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Audit{}, false
	}
	return audit, true
}

func readUpload(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, bool) {
	body, err := middleware.ReadUpload(w, r, limit)
	if errors.Is(err, middleware.ErrUploadTooLarge) {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, err.Error())
		return nil, false
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Failed to read upload")
		return nil, false
	}
	return body, true
}

// writeParseError passes parser messages through unchanged; they are written for operators.
func writeParseError(w http.ResponseWriter, err error) {
	var parseErr *models.ParseError
	if errors.As(err, &parseErr) {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, parseErr.Reason)
		return
	}
	slog.Error("unexpected parse failure", "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to parse upload")
}
