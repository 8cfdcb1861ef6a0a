package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/roktodan/roktodan/internal/metrics"
	"github.com/roktodan/roktodan/internal/model"
	"github.com/roktodan/roktodan/internal/repository"
)

// ErrEmptyPatch is returned when a profile update carries no fields.
var ErrEmptyPatch = errors.New("update contains no fields")

// ProfileStore is the store surface the profile service needs.
// *repository.Repository satisfies it.
type ProfileStore interface {
	GetProfile(ctx context.Context, email string) (*model.DonorProfile, error)
	UpsertProfile(ctx context.Context, email string, patch *model.ProfilePatch) error
}

// ProfileService owns donation-profile semantics: insert-or-update merges
// keyed by the authenticated email, never by anything in the payload.
type ProfileService struct {
	store   ProfileStore
	metrics metrics.Recorder
}

// NewProfileService creates a new ProfileService.
func NewProfileService(store ProfileStore, recorder metrics.Recorder) *ProfileService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ProfileService{
		store:   store,
		metrics: recorder,
	}
}

// Get returns the caller's profile, or nil when none exists yet. An absent
// profile is a normal state, not an error.
func (s *ProfileService) Get(ctx context.Context, email string) (*model.DonorProfile, error) {
	profile, err := s.store.GetProfile(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

// Upsert merges the patch into the profile owned by email, creating it if
// absent. Repeating the same patch is idempotent.
func (s *ProfileService) Upsert(ctx context.Context, email string, patch *model.ProfilePatch) error {
	if patch.IsEmpty() {
		return ErrEmptyPatch
	}

	if err := s.store.UpsertProfile(ctx, email, patch); err != nil {
		return err
	}

	s.metrics.IncProfileUpserted()
	return nil
}

// SetActive toggles only the active flag, through the same merge path as
// Upsert.
func (s *ProfileService) SetActive(ctx context.Context, email string, active bool) error {
	return s.Upsert(ctx, email, &model.ProfilePatch{Active: &active})
}
