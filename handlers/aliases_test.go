// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-verify/models"
	"github.com/danielhkuo/quickly-verify/testutil"
)

func addAlias(t *testing.T, handler *AliasHandler, auditID, adminKey string, req models.AddAliasRequest) *httptest.ResponseRecorder {
	t.Helper()
	r := testutil.MakeRequest("POST", "/audits/"+auditID+"/aliases", req, testutil.AdminHeaders(adminKey))
	r.SetPathValue("id", auditID)
	w := httptest.NewRecorder()
	handler.AddAlias(w, r)
	return w
}

func TestAddAlias(t *testing.T) {
	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAliasHandler(store, cfg)

	auditID, adminKey := testutil.CreateTestAudit(t, store, cfg)

	tests := []struct {
		name           string
		req            models.AddAliasRequest
		expectedStatus int
	}{
		{"valid alias", models.AddAliasRequest{VanID: "1003", Alias: "  Dave Unknown "}, http.StatusCreated},
		{"email alias", models.AddAliasRequest{VanID: "1002", Alias: "bobby@example.org"}, http.StatusCreated},
		{"missing van_id", models.AddAliasRequest{Alias: "Someone"}, http.StatusBadRequest},
		{"missing alias", models.AddAliasRequest{VanID: "1001"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := addAlias(t, handler, auditID, adminKey, tt.req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	list, err := store.LoadAliases(t.Context(), auditID)
	if err != nil {
		t.Fatalf("LoadAliases: %v", err)
	}
	want := []models.Alias{
		{VanID: "1003", Alias: "Dave Unknown"},
		{VanID: "1002", Alias: "bobby@example.org"},
	}
	if len(list) != len(want) {
		t.Fatalf("Expected %d aliases, got %+v", len(want), list)
	}
	for i := range want {
		if list[i] != want[i] {
			t.Errorf("alias %d = %+v, want %+v", i, list[i], want[i])
		}
	}
}

func TestAddAliasInvalidJSON(t *testing.T) {
	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAliasHandler(store, cfg)

	auditID, adminKey := testutil.CreateTestAudit(t, store, cfg)

	r := testutil.MakeUploadRequest("POST", "/audits/"+auditID+"/aliases", []byte("{bad"), testutil.AdminHeaders(adminKey))
	r.SetPathValue("id", auditID)
	w := httptest.NewRecorder()
	handler.AddAlias(w, r)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestListAndResetAliases(t *testing.T) {
	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAliasHandler(store, cfg)

	auditID, adminKey := testutil.CreateTestAudit(t, store, cfg)
	testutil.AssertStatus(t, addAlias(t, handler, auditID, adminKey, models.AddAliasRequest{VanID: "1", Alias: "Ali"}), http.StatusCreated)

	list := func() models.AliasesResponse {
		r := testutil.MakeRequest("GET", "/audits/"+auditID+"/aliases", nil, testutil.AdminHeaders(adminKey))
		r.SetPathValue("id", auditID)
		w := httptest.NewRecorder()
		handler.ListAliases(w, r)
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.AliasesResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	if got := list(); len(got.Aliases) != 1 || got.Aliases[0].Alias != "Ali" {
		t.Errorf("Unexpected aliases before reset: %+v", got)
	}

	r := testutil.MakeRequest("DELETE", "/audits/"+auditID+"/aliases", nil, testutil.AdminHeaders(adminKey))
	r.SetPathValue("id", auditID)
	w := httptest.NewRecorder()
	handler.ResetAliases(w, r)
	testutil.AssertStatus(t, w, http.StatusOK)

	if got := list(); got.Aliases == nil || len(got.Aliases) != 0 {
		t.Errorf("Expected empty alias list after reset, got %+v", got)
	}
}

func TestExportImportAliases(t *testing.T) {
	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAliasHandler(store, cfg)

	sourceID, sourceKey := testutil.CreateTestAudit(t, store, cfg)
	testutil.AssertStatus(t, addAlias(t, handler, sourceID, sourceKey, models.AddAliasRequest{VanID: "1003", Alias: "Dave Unknown"}), http.StatusCreated)
	testutil.AssertStatus(t, addAlias(t, handler, sourceID, sourceKey, models.AddAliasRequest{VanID: "1001", Alias: "ali@example.org"}), http.StatusCreated)

	r := testutil.MakeRequest("GET", "/audits/"+sourceID+"/aliases/export", nil, testutil.AdminHeaders(sourceKey))
	r.SetPathValue("id", sourceID)
	w := httptest.NewRecorder()
	handler.ExportAliases(w, r)

	testutil.AssertStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("Expected application/yaml, got %q", ct)
	}
	exported := w.Body.Bytes()
	if !strings.Contains(string(exported), "alias: Dave Unknown") {
		t.Errorf("Export missing alias:\n%s", exported)
	}

	targetID, targetKey := testutil.CreateTestAudit(t, store, cfg)
	testutil.AssertStatus(t, addAlias(t, handler, targetID, targetKey, models.AddAliasRequest{VanID: "9", Alias: "Stale"}), http.StatusCreated)

	r = testutil.MakeUploadRequest("PUT", "/audits/"+targetID+"/aliases/import", exported, testutil.AdminHeaders(targetKey))
	r.SetPathValue("id", targetID)
	w = httptest.NewRecorder()
	handler.ImportAliases(w, r)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.AliasesResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Aliases) != 2 || resp.Aliases[0].VanID != "1003" || resp.Aliases[1].Alias != "ali@example.org" {
		t.Errorf("Unexpected imported aliases: %+v", resp.Aliases)
	}

	stored, _ := store.LoadAliases(t.Context(), targetID)
	if len(stored) != 2 {
		t.Errorf("Import should replace existing aliases, got %+v", stored)
	}
}

func TestImportAliasesRejectsBadFile(t *testing.T) {
	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAliasHandler(store, cfg)

	auditID, adminKey := testutil.CreateTestAudit(t, store, cfg)

	tests := []struct {
		name string
		body string
	}{
		{"not yaml", "aliases: [unclosed"},
		{"missing van_id", "aliases:\n  - alias: Someone\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testutil.MakeUploadRequest("PUT", "/audits/"+auditID+"/aliases/import", []byte(tt.body), testutil.AdminHeaders(adminKey))
			r.SetPathValue("id", auditID)
			w := httptest.NewRecorder()
			handler.ImportAliases(w, r)

			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}
