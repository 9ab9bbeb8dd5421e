package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/synapsehq/synapse-api/internal/model"
)

// psychologistRow exists because themes is a TEXT[] column and needs
// pq.StringArray to scan.
type psychologistRow struct {
	model.Base
	UserID     int64          `db:"user_id"`
	Name       string         `db:"name"`
	CRP        string         `db:"crp"`
	Specialty  string         `db:"specialty"`
	Themes     pq.StringArray `db:"themes"`
	Bio        string         `db:"bio"`
	HourlyRate float64        `db:"hourly_rate"`
	IsActive   bool           `db:"is_active"`
}

func (row *psychologistRow) toModel() *model.Psychologist {
	return &model.Psychologist{
		Base:       row.Base,
		UserID:     row.UserID,
		Name:       row.Name,
		CRP:        row.CRP,
		Specialty:  row.Specialty,
		Themes:     []string(row.Themes),
		Bio:        row.Bio,
		HourlyRate: row.HourlyRate,
		IsActive:   row.IsActive,
	}
}

func (r *psychologistRepository) Create(ctx context.Context, psychologist *model.Psychologist) error {
	psychologist.Stamp(time.Now())
	query := `
		INSERT INTO psychologists (user_id, name, crp, specialty, themes, bio, hourly_rate, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		psychologist.UserID,
		psychologist.Name,
		psychologist.CRP,
		psychologist.Specialty,
		pq.Array(psychologist.Themes),
		psychologist.Bio,
		psychologist.HourlyRate,
		psychologist.IsActive,
		psychologist.CreatedAt,
		psychologist.UpdatedAt,
	).Scan(&psychologist.ID)
	if err != nil {
		return fmt.Errorf("failed to create psychologist: %w", err)
	}
	return nil
}

func (r *psychologistRepository) Get(ctx context.Context, id int64) (*model.Psychologist, error) {
	query := `
		SELECT id, user_id, name, crp, specialty, themes, bio, hourly_rate, is_active, created_at, updated_at
		FROM psychologists
		WHERE id = $1
	`
	var row psychologistRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, notFound(err, "Psychologist", id)
	}
	return row.toModel(), nil
}

func (r *psychologistRepository) Update(ctx context.Context, psychologist *model.Psychologist) error {
	psychologist.Stamp(time.Now())
	query := `
		UPDATE psychologists
		SET name = $1, crp = $2, specialty = $3, themes = $4, bio = $5,
		    hourly_rate = $6, is_active = $7, updated_at = $8
		WHERE id = $9
	`
	res, err := r.db.ExecContext(ctx, query,
		psychologist.Name,
		psychologist.CRP,
		psychologist.Specialty,
		pq.Array(psychologist.Themes),
		psychologist.Bio,
		psychologist.HourlyRate,
		psychologist.IsActive,
		psychologist.UpdatedAt,
		psychologist.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update psychologist: %w", err)
	}
	return ensureAffected(res, "Psychologist", psychologist.ID)
}

func (r *psychologistRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM psychologists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete psychologist: %w", err)
	}
	return ensureAffected(res, "Psychologist", id)
}

func (r *psychologistRepository) List(ctx context.Context) ([]*model.Psychologist, error) {
	query := `
		SELECT id, user_id, name, crp, specialty, themes, bio, hourly_rate, is_active, created_at, updated_at
		FROM psychologists
		ORDER BY id ASC
	`
	return r.selectMany(ctx, query)
}

func (r *psychologistRepository) selectMany(ctx context.Context, query string, args ...interface{}) ([]*model.Psychologist, error) {
	var rows []psychologistRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list psychologists: %w", err)
	}
	out := make([]*model.Psychologist, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}
