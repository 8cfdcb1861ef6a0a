package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roktodan/roktodan/internal/model"
	"github.com/roktodan/roktodan/internal/service"
)

type fakeDonorStore struct {
	gotBloodGroup string
	gotLocation   string
	matches       []*model.DonorProfile
	total         int64
}

func (f *fakeDonorStore) SearchDonors(ctx context.Context, bloodGroup, location string) ([]*model.DonorProfile, error) {
	f.gotBloodGroup = bloodGroup
	f.gotLocation = location
	return f.matches, nil
}

func (f *fakeDonorStore) CountProfiles(ctx context.Context) (int64, error) {
	return f.total, nil
}

func TestDonorSearch(t *testing.T) {
	store := &fakeDonorStore{
		matches: []*model.DonorProfile{
			{Email: "d@x.com", BloodGroup: "O+", Location: "Dhaka", Active: true},
		},
		total: 7,
	}
	h := NewDonorHandler(service.NewDonorService(store, nil), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/donars?bloodGroup=O+%2B&location=dha", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Donars      []map[string]any `json:"donars"`
		DonarsCount int64            `json:"donarsCount"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Donars) != 1 {
		t.Fatalf("expected 1 donor, got %d", len(resp.Donars))
	}
	if resp.DonarsCount != 7 {
		t.Errorf("expected donarsCount 7, got %d", resp.DonarsCount)
	}
	if store.gotLocation != "dha" {
		t.Errorf("expected location fragment passed to store, got %q", store.gotLocation)
	}
}

// "O +" in the query must hit the store as "O+".
func TestDonorSearch_SpaceNormalization(t *testing.T) {
	store := &fakeDonorStore{}
	h := NewDonorHandler(service.NewDonorService(store, nil), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/donars?bloodGroup=O%20%2B", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if store.gotBloodGroup != "O+" {
		t.Errorf("expected normalized blood group O+, got %q", store.gotBloodGroup)
	}
}

func TestDonorSearch_EmptyResultIsArray(t *testing.T) {
	store := &fakeDonorStore{total: 5}
	h := NewDonorHandler(service.NewDonorService(store, nil), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/donars", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	body := rec.Body.String()
	var resp struct {
		Donars      []any `json:"donars"`
		DonarsCount int64 `json:"donarsCount"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Donars == nil {
		t.Errorf("expected donars to serialize as [], got: %s", body)
	}
	// The total stays global even with zero matches.
	if resp.DonarsCount != 5 {
		t.Errorf("expected donarsCount 5, got %d", resp.DonarsCount)
	}
}
