// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-verify/auth"
	"github.com/danielhkuo/quickly-verify/cliparse"
	"github.com/danielhkuo/quickly-verify/db"
)

// SampleRoster is a simple-layout roster with three members.
const SampleRoster = "VANID\tName\tPreferredEmail\n" +
	"1001\tAlice Smith\talice@example.org\n" +
	"1002\tBob Jones\tbob@example.org\n" +
	"1003\tCarol King\tcarol@example.org\n"

// SamplePollExport holds one poll, "Budget Vote", with four ballots:
// Alice (valid, Yes), Bob by email (valid, No), Alice again (duplicate)
// and Dave, who is not on SampleRoster (invalid).
var SamplePollExport = strings.Join([]string{
	"Poll Report",
	`Report Generated:,"Jun 15, 2025 9:30 PM"`,
	"Topic,ID,Actual Start Time,Actual Duration (minutes),# Participants",
	`General Meeting,86042421495,"Jun 15, 2025 7:00 PM",150,4`,
	"",
	"Overview",
	"",
	"Launched Polls",
	"#,Poll Name,Questions,Responses",
	"1,Budget Vote,1,4",
	"",
	"Budget Vote",
	"#,User Name,Email Address,Submitted Date and Time,Approve the budget?",
	"1,Alice Smith,alice@example.org,2025-06-15 19:10:00,Yes",
	"2,Robert Jones,bob@example.org,2025-06-15 19:10:05,No",
	"3,Alice S.,alice@example.org,2025-06-15 19:10:09,No",
	"4,Dave Unknown,dave@example.org,2025-06-15 19:10:12,Yes",
	"",
}, "\r\n")

// SetupTestDB opens a fresh SQLite database with the full schema.
// The file lives in the test's temp dir and is closed on cleanup.
func SetupTestDB(t *testing.T) *db.Store {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "verify.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db.NewStore(conn, db.TypeSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    "verify.db",
		DatabaseType:   db.TypeSQLite,
		AdminKeySalt:   "test-admin-salt",
		MaxUploadBytes: 1 << 20,
	}
}

// CreateTestAudit creates an empty audit and returns its ID and admin key
func CreateTestAudit(t *testing.T, store *db.Store, cfg cliparse.Config) (auditID, adminKey string) {
	t.Helper()

	audit, err := store.CreateAudit(context.Background(), "Test Audit")
	if err != nil {
		t.Fatalf("Failed to create test audit: %v", err)
	}

	return audit.ID, auth.GenerateAdminKey(audit.ID, cfg.AdminKeySalt)
}

// AdminHeaders returns the header map MakeRequest expects for admin calls
func AdminHeaders(adminKey string) map[string]string {
	return map[string]string{auth.AdminKeyHeader: adminKey}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeUploadRequest creates a request whose body is sent as-is
func MakeUploadRequest(method, path string, body []byte, headers map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "text/plain")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
