package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/synapsehq/synapse-api/internal/model"
)

func (r *clinicRepository) Create(ctx context.Context, clinic *model.Clinic) error {
	clinic.Stamp(time.Now())
	query := `
		INSERT INTO clinics (user_id, name, address, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		clinic.UserID,
		clinic.Name,
		clinic.Address,
		clinic.Phone,
		clinic.Email,
		clinic.CreatedAt,
		clinic.UpdatedAt,
	).Scan(&clinic.ID)
	if err != nil {
		return fmt.Errorf("failed to create clinic: %w", err)
	}
	return nil
}

func (r *clinicRepository) Get(ctx context.Context, id int64) (*model.Clinic, error) {
	query := `
		SELECT id, user_id, name, address, phone, email, created_at, updated_at
		FROM clinics
		WHERE id = $1
	`
	var clinic model.Clinic
	if err := r.db.GetContext(ctx, &clinic, query, id); err != nil {
		return nil, notFound(err, "Clinic", id)
	}
	return &clinic, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	clinic.Stamp(time.Now())
	query := `
		UPDATE clinics
		SET name = $1, address = $2, phone = $3, email = $4, updated_at = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		clinic.Name,
		clinic.Address,
		clinic.Phone,
		clinic.Email,
		clinic.UpdatedAt,
		clinic.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update clinic: %w", err)
	}
	return ensureAffected(res, "Clinic", clinic.ID)
}

func (r *clinicRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clinics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete clinic: %w", err)
	}
	return ensureAffected(res, "Clinic", id)
}

func (r *clinicRepository) List(ctx context.Context) ([]*model.Clinic, error) {
	query := `
		SELECT id, user_id, name, address, phone, email, created_at, updated_at
		FROM clinics
		ORDER BY id ASC
	`
	clinics := []*model.Clinic{}
	if err := r.db.SelectContext(ctx, &clinics, query); err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}
