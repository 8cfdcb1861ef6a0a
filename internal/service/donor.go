// Package service provides business logic for the application.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/roktodan/roktodan/internal/metrics"
	"github.com/roktodan/roktodan/internal/model"
)

// DonorStore is the store surface the donor matcher needs.
// *repository.Repository satisfies it.
type DonorStore interface {
	SearchDonors(ctx context.Context, bloodGroup, location string) ([]*model.DonorProfile, error)
	CountProfiles(ctx context.Context) (int64, error)
}

// DonorService matches donors against blood group and location queries.
type DonorService struct {
	store   DonorStore
	metrics metrics.Recorder
}

// NewDonorService creates a new DonorService.
func NewDonorService(store DonorStore, recorder metrics.Recorder) *DonorService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &DonorService{
		store:   store,
		metrics: recorder,
	}
}

// NormalizeBloodGroup restores a '+' that URL decoding turned into a space.
// Only the first space is substituted; "O +" becomes "O+" but any later
// spaces survive. Clients depend on this exact behavior.
func NormalizeBloodGroup(q string) string {
	return strings.Replace(q, " ", "+", 1)
}

// Search returns donors whose blood group and location contain the query
// fragments (case-insensitive substring, both must match), together with the
// total number of profiles in the store. The total is deliberately
// unfiltered: it is a global gauge, not a count of the matches.
func (s *DonorService) Search(ctx context.Context, bloodGroup, location string) ([]*model.DonorProfile, int64, error) {
	bloodGroup = NormalizeBloodGroup(bloodGroup)

	matches, err := s.store.SearchDonors(ctx, bloodGroup, location)
	if err != nil {
		return nil, 0, fmt.Errorf("donor search failed: %w", err)
	}

	total, err := s.store.CountProfiles(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("donor count failed: %w", err)
	}

	s.metrics.IncDonorSearch()
	return matches, total, nil
}
