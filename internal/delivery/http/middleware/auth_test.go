package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventcompanion/internal/delivery/http/helpers"
	"eventcompanion/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	userID string
	roles  []string
	err    error
}

func (f *fakeTokenVerifier) Verify(_ string) (string, []string, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.userID, f.roles, nil
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name          string
		authHeader    string
		verifier      domain.TokenVerifier
		wantStatus    int
		wantBodyCode  string
		nextCalled    bool
		wantContextID string
	}{
		{
			name:          "valid token sets context and calls next",
			authHeader:    "Bearer valid-token",
			verifier:      &fakeTokenVerifier{userID: "user-123", roles: []string{"attendee"}},
			wantStatus:    http.StatusOK,
			nextCalled:    true,
			wantContextID: "user-123",
		},
		{
			name:         "missing authorization header",
			authHeader:   "",
			verifier:     &fakeTokenVerifier{userID: "user-123"},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
			nextCalled:   false,
		},
		{
			name:         "invalid authorization format no Bearer prefix",
			authHeader:   "Basic abc",
			verifier:     &fakeTokenVerifier{userID: "user-123"},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
			nextCalled:   false,
		},
		{
			name:         "empty token after Bearer",
			authHeader:   "Bearer ",
			verifier:     &fakeTokenVerifier{userID: "user-123"},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
			nextCalled:   false,
		},
		{
			name:         "verifier rejects token",
			authHeader:   "Bearer bad-token",
			verifier:     &fakeTokenVerifier{err: errors.New("expired")},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
			nextCalled:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var gotUserID string
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID, _ = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}

			handler := RequireAuth(tt.verifier)(next)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.nextCalled, nextCalled)
			if tt.wantContextID != "" {
				assert.Equal(t, tt.wantContextID, gotUserID)
			}
			if tt.wantBodyCode != "" {
				var resp helpers.APIResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantBodyCode, resp.Error.Code)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		roles      []string
		wantStatus int
		nextCalled bool
	}{
		{"admin role passes", []string{"attendee", "admin"}, http.StatusOK, true},
		{"non-admin is forbidden", []string{"attendee"}, http.StatusForbidden, false},
		{"no roles is forbidden", nil, http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.roles != nil {
				req = req.WithContext(SetRoles(req.Context(), tt.roles))
			}
			rec := httptest.NewRecorder()
			RequireAdmin(next)(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.nextCalled, nextCalled)
		})
	}
}
