// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-verify/middleware"
	"github.com/danielhkuo/quickly-verify/models"
	"github.com/danielhkuo/quickly-verify/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(store, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(store, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "quickly-verify API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(store, cfg)

	// Routes without a valid admin key answer 400 or 401, never 405
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/audits"},
		{"GET", "/audits/test-id"},
		{"PUT", "/audits/test-id/roster"},
		{"PUT", "/audits/test-id/polls"},
		{"PUT", "/audits/test-id/polls/live"},

		{"GET", "/audits/test-id/aliases"},
		{"POST", "/audits/test-id/aliases"},
		{"DELETE", "/audits/test-id/aliases"},
		{"GET", "/audits/test-id/aliases/export"},
		{"PUT", "/audits/test-id/aliases/import"},

		{"GET", "/audits/test-id/results"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(store, cfg)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},                   // Only GET is defined
		{"DELETE", "/audits/test-id"},         // Only GET is defined
		{"POST", "/audits/test-id/roster"},    // Only PUT is defined
		{"DELETE", "/audits/test-id/results"}, // Only GET is defined
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	auditID, adminKey := testutil.CreateTestAudit(t, store, cfg)

	mux := NewRouter(store, cfg)

	t.Run("audit ID extraction", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/audits/"+auditID, nil)
		req.Header.Set("X-Admin-Key", adminKey)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 with valid admin key, got %d. Body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("live poll route is distinct from poll upload", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/audits/"+auditID+"/polls/live", strings.NewReader(`{"questions":[]}`))
		req.Header.Set("X-Admin-Key", adminKey)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		// The CSV parser would answer with its own message for JSON input
		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
		if !strings.Contains(w.Body.String(), "no poll questions") {
			t.Errorf("Expected live poll handler, got body %s", w.Body.String())
		}
	})
}

// TestEndToEndThroughRouter drives the whole workflow over the mux with CORS,
// the way main wires it.
func TestEndToEndThroughRouter(t *testing.T) {
	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := middleware.CORS(NewRouter(store, cfg))

	do := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	w := do(testutil.MakeRequest("POST", "/audits", models.CreateAuditRequest{Title: "Router Audit"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var created models.CreateAuditResponse
	testutil.AssertJSON(t, w, &created)
	headers := testutil.AdminHeaders(created.AdminKey)
	base := "/audits/" + created.AuditID

	w = do(testutil.MakeUploadRequest("PUT", base+"/roster", []byte(testutil.SampleRoster), headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = do(testutil.MakeUploadRequest("PUT", base+"/polls", []byte(testutil.SamplePollExport), headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = do(testutil.MakeRequest("GET", base+"/results", nil, headers))
	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS headers on API responses")
	}
	var results models.ResultsResponse
	testutil.AssertJSON(t, w, &results)
	if len(results.Polls) != 1 || results.Polls[0].Tally.Get("Yes") != 1 {
		t.Errorf("Unexpected results: %+v", results.Polls)
	}

	export := []byte("aliases:\n  - van_id: \"1003\"\n    alias: Dave Unknown\n")
	w = do(testutil.MakeUploadRequest("PUT", base+"/aliases/import", export, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = do(testutil.MakeRequest("GET", base+"/results", nil, headers))
	testutil.AssertStatus(t, w, http.StatusOK)
	results = models.ResultsResponse{}
	testutil.AssertJSON(t, w, &results)
	if got := results.Polls[0].Tally.Get("Yes"); got != 2 {
		t.Errorf("Expected 2 Yes votes after alias import, got %d", got)
	}
}
