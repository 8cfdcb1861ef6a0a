package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/roktodan/roktodan/internal/metrics"
	"github.com/roktodan/roktodan/internal/model"
)

// ErrMissingBloodGroup is returned when a blood request has no blood group.
var ErrMissingBloodGroup = errors.New("blood group is required")

// RequestStore is the store surface the request ledger needs.
// *repository.Repository satisfies it.
type RequestStore interface {
	CreateRequest(ctx context.Context, req *model.BloodRequest) error
	ListRequests(ctx context.Context) ([]*model.BloodRequest, error)
	ListRequestsByEmail(ctx context.Context, email string) ([]*model.BloodRequest, error)
	DeleteRequest(ctx context.Context, email, id string) (bool, error)
}

// RequestService owns the blood-request ledger: create, list, and
// owner-scoped delete.
type RequestService struct {
	store   RequestStore
	metrics metrics.Recorder
}

// NewRequestService creates a new RequestService.
func NewRequestService(store RequestStore, recorder metrics.Recorder) *RequestService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RequestService{
		store:   store,
		metrics: recorder,
	}
}

// CreateRequestInput defines input for creating a blood request. The owner
// email is not part of it: it always comes from the authenticated identity.
type CreateRequestInput struct {
	PatientName string
	BloodGroup  string
	Units       int
	Hospital    string
	Location    string
	NeededBy    *time.Time
	Message     string
}

// Create stores a new blood request owned by email.
func (s *RequestService) Create(ctx context.Context, email string, input CreateRequestInput) (*model.BloodRequest, error) {
	if input.BloodGroup == "" {
		return nil, ErrMissingBloodGroup
	}

	req := &model.BloodRequest{
		ID:          ulid.Make().String(),
		Email:       email,
		PatientName: input.PatientName,
		BloodGroup:  input.BloodGroup,
		Units:       input.Units,
		Hospital:    input.Hospital,
		Location:    input.Location,
		NeededBy:    input.NeededBy,
		Message:     input.Message,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.CreateRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	s.metrics.IncRequestCreated()
	return req, nil
}

// ListAll returns every request. Public.
func (s *RequestService) ListAll(ctx context.Context) ([]*model.BloodRequest, error) {
	return s.store.ListRequests(ctx)
}

// ListMine returns the requests owned by email.
func (s *RequestService) ListMine(ctx context.Context, email string) ([]*model.BloodRequest, error) {
	return s.store.ListRequestsByEmail(ctx, email)
}

// Delete removes the request only when id and owner both match. A miss is
// reported as deleted=false, not as an error, so duplicate deletes converge.
func (s *RequestService) Delete(ctx context.Context, email, id string) (bool, error) {
	deleted, err := s.store.DeleteRequest(ctx, email, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.metrics.IncRequestDeleted()
	}
	return deleted, nil
}
