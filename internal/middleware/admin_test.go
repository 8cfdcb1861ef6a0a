package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roktodan/roktodan/internal/auth"
)

// fakeRoleLookup maps emails to roles. Unknown emails resolve to "".
type fakeRoleLookup struct {
	roles map[string]string
}

func (f *fakeRoleLookup) LookupRole(ctx context.Context, email string) (string, error) {
	return f.roles[email], nil
}

func TestRequireAdmin(t *testing.T) {
	testCases := []struct {
		name       string
		identity   string
		roles      map[string]string
		wantStatus int
	}{
		{
			name:       "no identity in context",
			identity:   "",
			roles:      map[string]string{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no stored record",
			identity:   "ghost@x.com",
			roles:      map[string]string{},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "plain user",
			identity:   "user@x.com",
			roles:      map[string]string{"user@x.com": "user"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin",
			identity:   "boss@x.com",
			roles:      map[string]string{"boss@x.com": "admin"},
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := AdminConfig{
				Logger: testLogger(),
				Roles:  &fakeRoleLookup{roles: tc.roles},
			}

			handler := RequireAdmin(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			if tc.identity != "" {
				req = req.WithContext(auth.ContextWithIdentity(req.Context(), tc.identity))
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}
