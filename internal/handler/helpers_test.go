package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/waitdesk/waitdesk/internal/model"
)

// ---------------------------------------------------------------------------
// writeError tests
// ---------------------------------------------------------------------------

func TestWriteError(t *testing.T) {
	t.Run("writes JSON error response", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeError(w, http.StatusBadRequest, "Invalid input")

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}
		body := w.Body.String()
		if !strings.Contains(body, `"code":400`) {
			t.Errorf("expected code 400 in body: %s", body)
		}
		if !strings.Contains(body, `"message":"Invalid input"`) {
			t.Errorf("expected message in body: %s", body)
		}
		if strings.Contains(body, `"context"`) {
			t.Errorf("context should be omitted when empty: %s", body)
		}
	})

	t.Run("includes context", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeError(w, http.StatusBadRequest, "Bad", map[string]interface{}{"field": "email"})
		if !strings.Contains(w.Body.String(), `"context":{"field":"email"}`) {
			t.Errorf("expected context in body: %s", w.Body.String())
		}
	})
}

// ---------------------------------------------------------------------------
// writeServerError tests
// ---------------------------------------------------------------------------

func TestWriteServerError(t *testing.T) {
	tests := []struct {
		name        string
		production  bool
		wantDetails bool
	}{
		{"development shows details", false, true},
		{"production hides details", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			opts := Options{
				Logger:     slog.New(slog.NewTextHandler(&logs, nil)),
				Production: tt.production,
			}

			r := httptest.NewRequest("GET", "/api/access", nil)
			w := httptest.NewRecorder()
			writeServerError(w, r, opts, "Failed to fetch admins", errors.New("db is on fire"))

			if w.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want 500", w.Code)
			}
			var resp model.ErrorResponse
			decodeJSON(t, w, &resp)
			if resp.Error.Message != "Failed to fetch admins" {
				t.Errorf("message = %q", resp.Error.Message)
			}
			_, has := resp.Error.Context["details"]
			if has != tt.wantDetails {
				t.Errorf("details present = %v, want %v", has, tt.wantDetails)
			}
			if !strings.Contains(logs.String(), "db is on fire") {
				t.Errorf("error not logged: %s", logs.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// writeJSON tests
// ---------------------------------------------------------------------------

func TestWriteJSON(t *testing.T) {
	t.Run("writes JSON with correct content type", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeJSON(w, http.StatusOK, map[string]string{"hello": "world"})

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}
		body := w.Body.String()
		if !strings.Contains(body, `"hello":"world"`) {
			t.Errorf("expected JSON body, got: %s", body)
		}
	})
}

// ---------------------------------------------------------------------------
// readJSON tests
// ---------------------------------------------------------------------------

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"email":"a@b.io"}`, false},
		{"empty", ``, true},
		{"malformed", `{"email":`, true},
		{"too large", `{"email":"` + strings.Repeat("a", maxBodyBytes) + `"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			var v loginRequest
			err := readJSON(w, r, &v)
			if (err != nil) != tt.wantErr {
				t.Errorf("readJSON err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// validation tests
// ---------------------------------------------------------------------------

func TestFailedTags(t *testing.T) {
	tests := []struct {
		name string
		req  createAdminRequest
		want map[string]string
	}{
		{"valid", createAdminRequest{Name: "A", Email: "a@b.io", Password: "secret"}, nil},
		{"missing name", createAdminRequest{Email: "a@b.io", Password: "secret"}, map[string]string{"name": "required"}},
		{"bad email", createAdminRequest{Name: "A", Email: "a", Password: "secret"}, map[string]string{"email": "email"}},
		{"short password", createAdminRequest{Name: "A", Email: "a@b.io", Password: "12"}, map[string]string{"password": "min"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := failedTags(tt.req)
			if err != nil {
				t.Fatalf("failedTags: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("failedTags = %v, want %v", got, tt.want)
			}
			for field, tag := range tt.want {
				if got[field] != tag {
					t.Errorf("failedTags[%q] = %q, want %q", field, got[field], tag)
				}
			}
		})
	}
}
