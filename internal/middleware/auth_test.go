package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roktodan/roktodan/internal/auth"
	"github.com/roktodan/roktodan/internal/token"
)

// fakeVerifier resolves one known token to an email.
type fakeVerifier struct {
	valid string
	email string
}

func (f *fakeVerifier) Verify(tokenString string) (string, error) {
	if tokenString == f.valid {
		return f.email, nil
	}
	return "", token.ErrInvalidSignature
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthenticate(t *testing.T) {
	testCases := []struct {
		name       string
		header     string
		wantStatus int
		wantEmail  string
	}{
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer credential",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			header:     "Bearer bogus",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			header:     "Bearer good-token",
			wantStatus: http.StatusOK,
			wantEmail:  "a@x.com",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := AuthConfig{
				Logger: testLogger(),
				Tokens: &fakeVerifier{valid: "good-token", email: "a@x.com"},
			}

			var gotEmail string
			handler := Authenticate(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotEmail = auth.IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/donation-profile", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if gotEmail != tc.wantEmail {
				t.Errorf("expected identity %q, got %q", tc.wantEmail, gotEmail)
			}
		})
	}
}

// A request with no Authorization header at all must fail cleanly with 401,
// never reach the handler, and never panic.
func TestAuthenticate_MissingHeaderDoesNotPanic(t *testing.T) {
	cfg := AuthConfig{
		Logger: testLogger(),
		Tokens: &fakeVerifier{},
	}

	called := false
	handler := Authenticate(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/requests/my", nil)
	rec := httptest.NewRecorder()

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("middleware panicked on missing header: %v", r)
		}
	}()
	handler.ServeHTTP(rec, req)

	if called {
		t.Error("handler must not run without a credential")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
