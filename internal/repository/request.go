package repository

import (
	"context"
	"fmt"

	"github.com/roktodan/roktodan/internal/model"
)

// CreateRequest inserts a new blood request.
func (r *Repository) CreateRequest(ctx context.Context, req *model.BloodRequest) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := `
		INSERT INTO blood_requests
			(id, email, patient_name, blood_group, units, hospital, location, needed_by, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		req.ID,
		req.Email,
		req.PatientName,
		req.BloodGroup,
		req.Units,
		req.Hospital,
		req.Location,
		req.NeededBy,
		req.Message,
		req.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create blood request: %w", err)
	}

	return nil
}

// ListRequests returns every blood request regardless of owner.
func (r *Repository) ListRequests(ctx context.Context) ([]*model.BloodRequest, error) {
	return r.listRequests(ctx, "")
}

// ListRequestsByEmail returns the blood requests owned by email.
func (r *Repository) ListRequestsByEmail(ctx context.Context, email string) ([]*model.BloodRequest, error) {
	return r.listRequests(ctx, email)
}

func (r *Repository) listRequests(ctx context.Context, email string) ([]*model.BloodRequest, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := `
		SELECT id, email, patient_name, blood_group, units, hospital, location, needed_by, message, created_at
		FROM blood_requests
	`
	var args []any
	if email != "" {
		query += ` WHERE email = $1`
		args = append(args, email)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list blood requests: %w", err)
	}
	defer rows.Close()

	var requests []*model.BloodRequest
	for rows.Next() {
		var req model.BloodRequest
		err := rows.Scan(
			&req.ID,
			&req.Email,
			&req.PatientName,
			&req.BloodGroup,
			&req.Units,
			&req.Hospital,
			&req.Location,
			&req.NeededBy,
			&req.Message,
			&req.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blood request: %w", err)
		}
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blood requests: %w", err)
	}

	return requests, nil
}

// DeleteRequest removes a blood request only when both the id and the owning
// email match. Returns false, with no error, when nothing matched.
func (r *Repository) DeleteRequest(ctx context.Context, email, id string) (bool, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := `
		DELETE FROM blood_requests
		WHERE id = $1 AND email = $2
	`

	tag, err := r.pool.Exec(ctx, query, id, email)
	if err != nil {
		return false, fmt.Errorf("failed to delete blood request: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
