package service

import (
	"context"
	"errors"
	"testing"

	"github.com/roktodan/roktodan/internal/model"
)

// fakeRequestStore keeps requests in a slice keyed by id+email on delete.
type fakeRequestStore struct {
	requests []*model.BloodRequest
}

func (f *fakeRequestStore) CreateRequest(ctx context.Context, req *model.BloodRequest) error {
	f.requests = append(f.requests, req)
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

func TestRequestCreate_OwnerForced(t *testing.T) {
	store := &fakeRequestStore{}
	svc := NewRequestService(store, nil)

	created, err := svc.Create(context.Background(), "owner@x.com", CreateRequestInput{
		BloodGroup: "B+",
		Hospital:   "Dhaka Medical",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Email != "owner@x.com" {
		t.Errorf("expected owner email forced, got %q", created.Email)
	}
	if created.ID == "" {
		t.Error("expected generated id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected created_at set")
	}
}

func TestRequestCreate_MissingBloodGroup(t *testing.T) {
	svc := NewRequestService(&fakeRequestStore{}, nil)

	_, err := svc.Create(context.Background(), "owner@x.com", CreateRequestInput{})
	if !errors.Is(err, ErrMissingBloodGroup) {
		t.Errorf("expected ErrMissingBloodGroup, got %v", err)
	}
}

func TestRequestDelete_OwnerAndIDMustMatch(t *testing.T) {
	store := &fakeRequestStore{}
	svc := NewRequestService(store, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner@x.com", CreateRequestInput{BloodGroup: "O-"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Correct id, wrong caller: the request must survive and the miss is
	// reported as a zero-effect success.
	deleted, err := svc.Delete(ctx, "intruder@x.com", created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted {
		t.Error("expected delete with wrong owner to be a no-op")
	}
	if len(store.requests) != 1 {
		t.Fatalf("expected request to survive, store has %d", len(store.requests))
	}

	// The owner can delete it.
	deleted, err = svc.Delete(ctx, "owner@x.com", created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Error("expected owner delete to succeed")
	}

	// Duplicate delete converges to "already gone".
	deleted, err = svc.Delete(ctx, "owner@x.com", created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted {
		t.Error("expected duplicate delete to report no effect")
	}
}

func TestRequestListMine_FiltersByOwner(t *testing.T) {
	store := &fakeRequestStore{}
	svc := NewRequestService(store, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "a@x.com", CreateRequestInput{BloodGroup: "A+"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, "b@x.com", CreateRequestInput{BloodGroup: "B+"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 requests, got %d", len(all))
	}

	mine, err := svc.ListMine(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(mine) != 1 || mine[0].Email != "a@x.com" {
		t.Errorf("expected only a@x.com requests, got %+v", mine)
	}
}
