// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-verify/models"
	"github.com/danielhkuo/quickly-verify/testutil"
)

// TestFullVerificationWorkflow tests the complete end-to-end workflow:
// 1. Create audit
// 2. Upload roster
// 3. Upload poll export
// 4. Compute results
// 5. Alias the unmatched voter
// 6. Recompute results
// 7. Export aliases and restore them into a new audit
func TestFullVerificationWorkflow(t *testing.T) {
	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	auditHandler := NewAuditHandler(store, cfg)
	aliasHandler := NewAliasHandler(store, cfg)
	resultsHandler := NewResultsHandler(store, cfg)

	// Step 1: Create an audit
	body, _ := json.Marshal(models.CreateAuditRequest{Title: "Integration Test Audit"})
	req := httptest.NewRequest("POST", "/audits", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	auditHandler.CreateAudit(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create audit failed: %d - %s", w.Code, w.Body.String())
	}

	var createResp models.CreateAuditResponse
	json.NewDecoder(w.Body).Decode(&createResp)
	auditID := createResp.AuditID
	adminKey := createResp.AdminKey
	headers := testutil.AdminHeaders(adminKey)

	if auditID == "" || adminKey == "" {
		t.Fatal("Step 1 - Missing audit_id or admin_key")
	}
	t.Logf("Step 1 - Created audit: %s", auditID)

	// Step 2: Upload roster
	req = testutil.MakeUploadRequest("PUT", "/audits/"+auditID+"/roster", []byte(testutil.SampleRoster), headers)
	req.SetPathValue("id", auditID)
	w = httptest.NewRecorder()
	auditHandler.UploadRoster(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Upload roster failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 3: Upload poll export
	req = testutil.MakeUploadRequest("PUT", "/audits/"+auditID+"/polls", []byte(testutil.SamplePollExport), headers)
	req.SetPathValue("id", auditID)
	w = httptest.NewRecorder()
	auditHandler.UploadPolls(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Upload polls failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 4: Compute results
	results := func(step string) models.PollResult {
		t.Helper()
		req := testutil.MakeRequest("GET", "/audits/"+auditID+"/results", nil, headers)
		req.SetPathValue("id", auditID)
		w := httptest.NewRecorder()
		resultsHandler.GetResults(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%s - Get results failed: %d - %s", step, w.Code, w.Body.String())
		}
		var resp models.ResultsResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if len(resp.Polls) != 1 {
			t.Fatalf("%s - Expected 1 poll, got %d", step, len(resp.Polls))
		}
		return resp.Polls[0]
	}

	first := results("Step 4")
	if len(first.Valid) != 2 || len(first.Duplicate) != 1 || len(first.Invalid) != 1 {
		t.Fatalf("Step 4 - Expected 2/1/1 valid/duplicate/invalid, got %d/%d/%d",
			len(first.Valid), len(first.Duplicate), len(first.Invalid))
	}
	t.Logf("Step 4 - Tally: %+v", first.Tally)

	// Step 5: Alias the unmatched voter to Carol
	req = testutil.MakeRequest("POST", "/audits/"+auditID+"/aliases",
		models.AddAliasRequest{VanID: "1003", Alias: first.Invalid[0].Username}, headers)
	req.SetPathValue("id", auditID)
	w = httptest.NewRecorder()
	aliasHandler.AddAlias(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Step 5 - Add alias failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 6: Recompute
	second := results("Step 6")
	if len(second.Valid) != 3 || len(second.Invalid) != 0 {
		t.Errorf("Step 6 - Expected 3 valid and 0 invalid, got %d and %d", len(second.Valid), len(second.Invalid))
	}
	if second.Tally.Total() != len(second.Valid) {
		t.Errorf("Step 6 - Tally total %d does not match valid count %d", second.Tally.Total(), len(second.Valid))
	}

	// Step 7: Export aliases and import them into a fresh audit
	req = testutil.MakeRequest("GET", "/audits/"+auditID+"/aliases/export", nil, headers)
	req.SetPathValue("id", auditID)
	w = httptest.NewRecorder()
	aliasHandler.ExportAliases(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Export failed: %d - %s", w.Code, w.Body.String())
	}
	exported := w.Body.Bytes()

	nextID, nextKey := testutil.CreateTestAudit(t, store, cfg)
	req = testutil.MakeUploadRequest("PUT", "/audits/"+nextID+"/aliases/import", exported, testutil.AdminHeaders(nextKey))
	req.SetPathValue("id", nextID)
	w = httptest.NewRecorder()
	aliasHandler.ImportAliases(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Import failed: %d - %s", w.Code, w.Body.String())
	}

	var imported models.AliasesResponse
	json.NewDecoder(w.Body).Decode(&imported)
	if len(imported.Aliases) != 1 || imported.Aliases[0].VanID != "1003" {
		t.Errorf("Step 7 - Unexpected imported aliases: %+v", imported.Aliases)
	}
}
