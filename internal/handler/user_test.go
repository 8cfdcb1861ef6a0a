package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/roktodan/roktodan/internal/model"
)

// fakeRegistry mirrors idempotent registration: the first record wins.
type fakeRegistry struct {
	users map[string]*model.User
}

func (f *fakeRegistry) GetOrCreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if existing, ok := f.users[user.Email]; ok {
		return existing, nil
	}
	user.CreatedAt = time.Now()
	f.users[user.Email] = user
	return user, nil
}

func TestRegister_Idempotent(t *testing.T) {
	registry := &fakeRegistry{users: make(map[string]*model.User)}
	h := NewUserHandler(registry, testLogger(), nil)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Register(rec, req)
		return rec
	}

	first := post(`{"email":"a@x.com","name":"Ana"}`)
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}

	// Registering the same email again is a no-op success.
	second := post(`{"email":"a@x.com","name":"Someone Else"}`)
	if second.Code != http.StatusOK {
		t.Fatalf("expected 200 on duplicate registration, got %d", second.Code)
	}

	if len(registry.users) != 1 {
		t.Fatalf("expected exactly one identity record, got %d", len(registry.users))
	}

	var resp map[string]any
	if err := json.NewDecoder(second.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["name"] != "Ana" {
		t.Errorf("expected original record returned, got name %v", resp["name"])
	}
}

func TestRegister_RoleNeverClientAssigned(t *testing.T) {
	registry := &fakeRegistry{users: make(map[string]*model.User)}
	h := NewUserHandler(registry, testLogger(), nil)

	// A role in the payload is simply ignored by the request shape.
	body := `{"email":"a@x.com","role":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := registry.users["a@x.com"].Role; got != model.RoleUser {
		t.Errorf("expected stored role %q, got %q", model.RoleUser, got)
	}
}

func TestRegister_InvalidPayload(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"name":"Ana"}`},
		{name: "blank email", body: `{"email":"  "}`},
		{name: "invalid json", body: `{`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			registry := &fakeRegistry{users: make(map[string]*model.User)}
			h := NewUserHandler(registry, testLogger(), nil)

			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Register(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}
