package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/synapsehq/synapse-api/internal/model"
)

func (r *leadRepository) Create(ctx context.Context, lead *model.Lead) error {
	lead.Stamp(time.Now())
	query := `
		INSERT INTO leads (name, email, phone, source, status, notes, converted_at, converted_patient_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Source,
		lead.Status,
		lead.Notes,
		lead.ConvertedAt,
		lead.ConvertedPatientID,
		lead.CreatedAt,
		lead.UpdatedAt,
	).Scan(&lead.ID)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

func (r *leadRepository) Get(ctx context.Context, id int64) (*model.Lead, error) {
	query := `
		SELECT id, name, email, phone, source, status, notes, converted_at, converted_patient_id, created_at, updated_at
		FROM leads
		WHERE id = $1
	`
	var lead model.Lead
	if err := r.db.GetContext(ctx, &lead, query, id); err != nil {
		return nil, notFound(err, "Lead", id)
	}
	return &lead, nil
}

func (r *leadRepository) Update(ctx context.Context, lead *model.Lead) error {
	lead.Stamp(time.Now())
	query := `
		UPDATE leads
		SET name = $1, email = $2, phone = $3, source = $4, status = $5,
		    notes = $6, converted_at = $7, converted_patient_id = $8, updated_at = $9
		WHERE id = $10
	`
	res, err := r.db.ExecContext(ctx, query,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Source,
		lead.Status,
		lead.Notes,
		lead.ConvertedAt,
		lead.ConvertedPatientID,
		lead.UpdatedAt,
		lead.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	return ensureAffected(res, "Lead", lead.ID)
}

func (r *leadRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return ensureAffected(res, "Lead", id)
}

func (r *leadRepository) List(ctx context.Context) ([]*model.Lead, error) {
	query := `
		SELECT id, name, email, phone, source, status, notes, converted_at, converted_patient_id, created_at, updated_at
		FROM leads
		ORDER BY id ASC
	`
	leads := []*model.Lead{}
	if err := r.db.SelectContext(ctx, &leads, query); err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}
