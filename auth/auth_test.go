// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateAdminKey(t *testing.T) {
	tests := []struct {
		name    string
		auditID string
		salt    string
	}{
		{"standard", "audit123", "secret-salt"},
		{"empty audit id", "", "salt"},
		{"empty salt", "audit456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := GenerateAdminKey(tt.auditID, tt.salt)

			if key == "" {
				t.Error("GenerateAdminKey() returned empty string")
			}

			key2 := GenerateAdminKey(tt.auditID, tt.salt)
			if key != key2 {
				t.Error("GenerateAdminKey() is not deterministic")
			}

			if tt.auditID != "" && tt.salt != "" {
				differentKey := GenerateAdminKey(tt.auditID+"x", tt.salt)
				if key == differentKey {
					t.Error("GenerateAdminKey() produced same key for different audit IDs")
				}
			}

			if strings.Contains(key, "=") {
				t.Error("GenerateAdminKey() contains padding characters")
			}
		})
	}
}

func TestValidateAdminKey(t *testing.T) {
	auditID := "test-audit-123"
	salt := "test-salt"
	validKey := GenerateAdminKey(auditID, salt)

	tests := []struct {
		name     string
		auditID  string
		adminKey string
		salt     string
		wantErr  bool
	}{
		{"valid key", auditID, validKey, salt, false},
		{"wrong key", auditID, "wrong-key", salt, true},
		{"wrong audit id", "different-audit", validKey, salt, true},
		{"wrong salt", auditID, validKey, "different-salt", true},
		{"empty key", auditID, "", salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.auditID, tt.adminKey, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAdminKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidAdminKey) {
				t.Errorf("ValidateAdminKey() error = %v, want %v", err, ErrInvalidAdminKey)
			}
		})
	}
}
