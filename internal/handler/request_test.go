package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/roktodan/roktodan/internal/model"
	"github.com/roktodan/roktodan/internal/service"
)

type fakeRequestStore struct {
	requests []*model.BloodRequest
}

func (f *fakeRequestStore) CreateRequest(ctx context.Context, req *model.BloodRequest) error {
	copied := *req
	f.requests = append(f.requests, &copied)
	return nil
}

func (f *fakeRequestStore) ListRequests(ctx context.Context) ([]*model.BloodRequest, error) {
	return f.requests, nil
}

func (f *fakeRequestStore) ListRequestsByEmail(ctx context.Context, email string) ([]*model.BloodRequest, error) {
	var out []*model.BloodRequest
	for _, r := range f.requests {
		if r.Email == email {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestStore) DeleteRequest(ctx context.Context, email, id string) (bool, error) {
	for i, r := range f.requests {
		if r.ID == id && r.Email == email {
			f.requests = append(f.requests[:i], f.requests[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func deleteRequestWithID(id, email string) *http.Request {
	req := authedRequest(http.MethodDelete, "/requests/"+id, "", email)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestRequestCreate_OwnerComesFromIdentity(t *testing.T) {
	store := &fakeRequestStore{}
	h := NewRequestHandler(service.NewRequestService(store, nil), testLogger())

	// The payload claims a different owner; it must be ignored.
	body := `{"email":"attacker@x.com","patientName":"Rahim","bloodGroup":"B+","units":2,"hospital":"DMCH"}`

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/blood-request/new", body, "owner@x.com"))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	if len(store.requests) != 1 {
		t.Fatalf("expected one stored request, got %d", len(store.requests))
	}
	stored := store.requests[0]
	if stored.Email != "owner@x.com" {
		t.Errorf("expected owner from identity, got %q", stored.Email)
	}
	if stored.ID == "" {
		t.Error("expected a generated request ID")
	}

	var created model.BloodRequest
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID != stored.ID {
		t.Errorf("response ID %q does not match stored %q", created.ID, stored.ID)
	}
}

func TestRequestCreate_MissingBloodGroup(t *testing.T) {
	store := &fakeRequestStore{}
	h := NewRequestHandler(service.NewRequestService(store, nil), testLogger())

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/blood-request/new",
		`{"patientName":"Rahim"}`, "owner@x.com"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if len(store.requests) != 0 {
		t.Errorf("expected nothing stored, got %d", len(store.requests))
	}
}

func TestRequestDelete_WrongOwnerIsNoOp(t *testing.T) {
	store := &fakeRequestStore{requests: []*model.BloodRequest{
		{ID: "01HV3", Email: "owner@x.com", BloodGroup: "O+"},
	}}
	h := NewRequestHandler(service.NewRequestService(store, nil), testLogger())

	rec := httptest.NewRecorder()
	h.Delete(rec, deleteRequestWithID("01HV3", "other@x.com"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Deleted bool `json:"deleted"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Deleted {
		t.Error("expected deleted=false for a non-owner")
	}
	if len(store.requests) != 1 {
		t.Error("expected the request to survive a non-owner delete")
	}
}

func TestRequestDelete_OwnerThenDuplicate(t *testing.T) {
	store := &fakeRequestStore{requests: []*model.BloodRequest{
		{ID: "01HV3", Email: "owner@x.com", BloodGroup: "O+"},
	}}
	h := NewRequestHandler(service.NewRequestService(store, nil), testLogger())

	want := []bool{true, false}
	for i, expected := range want {
		rec := httptest.NewRecorder()
		h.Delete(rec, deleteRequestWithID("01HV3", "owner@x.com"))
		if rec.Code != http.StatusOK {
			t.Fatalf("delete %d: expected 200, got %d", i+1, rec.Code)
		}
		var resp struct {
			Deleted bool `json:"deleted"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("delete %d: failed to decode response: %v", i+1, err)
		}
		if resp.Deleted != expected {
			t.Errorf("delete %d: expected deleted=%v, got %v", i+1, expected, resp.Deleted)
		}
	}
}

func TestRequestListAll_EmptyIsArray(t *testing.T) {
	h := NewRequestHandler(service.NewRequestService(&fakeRequestStore{}, nil), testLogger())

	rec := httptest.NewRecorder()
	h.ListAll(rec, httptest.NewRequest(http.MethodGet, "/requests", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" && got != "[]" {
		t.Errorf("expected empty array, got %q", got)
	}
}

func TestRequestListMine_FiltersToCaller(t *testing.T) {
	store := &fakeRequestStore{requests: []*model.BloodRequest{
		{ID: "1", Email: "a@x.com", BloodGroup: "O+"},
		{ID: "2", Email: "b@x.com", BloodGroup: "A+"},
		{ID: "3", Email: "a@x.com", BloodGroup: "B-"},
	}}
	h := NewRequestHandler(service.NewRequestService(store, nil), testLogger())

	rec := httptest.NewRecorder()
	h.ListMine(rec, authedRequest(http.MethodGet, "/requests/my", "", "a@x.com"))

	var listed []*model.BloodRequest
	if err := json.NewDecoder(rec.Body).Decode(&listed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(listed))
	}
	for _, r := range listed {
		if r.Email != "a@x.com" {
			t.Errorf("unexpected owner %q in filtered list", r.Email)
		}
	}
}
