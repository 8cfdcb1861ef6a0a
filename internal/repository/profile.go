package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/roktodan/roktodan/internal/model"
)

// ErrProfileNotFound is returned when no donation profile exists for an email.
var ErrProfileNotFound = errors.New("donor profile not found")

// GetProfile retrieves the donation profile owned by email.
func (r *Repository) GetProfile(ctx context.Context, email string) (*model.DonorProfile, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := `
		SELECT email, name, blood_group, location, phone, active, last_donation, updated_at
		FROM donor_profiles
		WHERE email = $1
	`

	var profile model.DonorProfile
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&profile.Email,
		&profile.Name,
		&profile.BloodGroup,
		&profile.Location,
		&profile.Phone,
		&profile.Active,
		&profile.LastDonation,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// UpsertProfile merges the patch into the profile owned by email, creating
// the row if absent. Only fields present in the patch are written, so
// concurrent upserts converge last-write-wins at field granularity.
func (r *Repository) UpsertProfile(ctx context.Context, email string, patch *model.ProfilePatch) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	cols := []string{"email"}
	args := []any{email}

	add := func(col string, val any) {
		cols = append(cols, col)
		args = append(args, val)
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.BloodGroup != nil {
		add("blood_group", *patch.BloodGroup)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Active != nil {
		add("active", *patch.Active)
	}
	if patch.LastDonation != nil {
		add("last_donation", *patch.LastDonation)
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sets := make([]string, 0, len(cols))
	for _, col := range cols[1:] {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	sets = append(sets, "updated_at = now()")

	query := fmt.Sprintf(`
		INSERT INTO donor_profiles (%s)
		VALUES (%s)
		ON CONFLICT (email) DO UPDATE SET %s
	`, strings.Join(cols, ", "), strings.Join(placeholders, ", "), strings.Join(sets, ", "))

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// SearchDonors returns donor profiles whose blood group and location both
// contain the given fragments, case-insensitively. An empty fragment matches
// every record.
func (r *Repository) SearchDonors(ctx context.Context, bloodGroup, location string) ([]*model.DonorProfile, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := `
		SELECT email, name, blood_group, location, phone, active, last_donation, updated_at
		FROM donor_profiles
		WHERE blood_group ILIKE '%' || $1 || '%'
		  AND location ILIKE '%' || $2 || '%'
	`

	rows, err := r.pool.Query(ctx, query, bloodGroup, location)
	if err != nil {
		return nil, fmt.Errorf("failed to search donors: %w", err)
	}
	defer rows.Close()

	var profiles []*model.DonorProfile
	for rows.Next() {
		var profile model.DonorProfile
		err := rows.Scan(
			&profile.Email,
			&profile.Name,
			&profile.BloodGroup,
			&profile.Location,
			&profile.Phone,
			&profile.Active,
			&profile.LastDonation,
			&profile.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, &profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	return profiles, nil
}

// CountProfiles returns the total number of donor profiles, unfiltered.
func (r *Repository) CountProfiles(ctx context.Context) (int64, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	var count int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM donor_profiles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	return count, nil
}
