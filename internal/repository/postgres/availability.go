package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/synapsehq/synapse-api/internal/model"
)

func (r *availabilityRepository) Create(ctx context.Context, window *model.AvailabilityWindow) error {
	window.Stamp(time.Now())
	query := `
		INSERT INTO availabilities (psychologist_id, day_of_week, start_time, end_time, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		window.PsychologistID,
		window.DayOfWeek,
		window.StartTime,
		window.EndTime,
		window.IsActive,
		window.CreatedAt,
		window.UpdatedAt,
	).Scan(&window.ID)
	if err != nil {
		return fmt.Errorf("failed to create availability: %w", err)
	}
	return nil
}

func (r *availabilityRepository) Get(ctx context.Context, id int64) (*model.AvailabilityWindow, error) {
	query := `
		SELECT id, psychologist_id, day_of_week, start_time, end_time, is_active, created_at, updated_at
		FROM availabilities
		WHERE id = $1
	`
	var window model.AvailabilityWindow
	if err := r.db.GetContext(ctx, &window, query, id); err != nil {
		return nil, notFound(err, "Availability", id)
	}
	return &window, nil
}

func (r *availabilityRepository) Update(ctx context.Context, window *model.AvailabilityWindow) error {
	window.Stamp(time.Now())
	query := `
		UPDATE availabilities
		SET day_of_week = $1, start_time = $2, end_time = $3, is_active = $4, updated_at = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		window.DayOfWeek,
		window.StartTime,
		window.EndTime,
		window.IsActive,
		window.UpdatedAt,
		window.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	return ensureAffected(res, "Availability", window.ID)
}

func (r *availabilityRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM availabilities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	return ensureAffected(res, "Availability", id)
}

func (r *availabilityRepository) List(ctx context.Context) ([]*model.AvailabilityWindow, error) {
	query := `
		SELECT id, psychologist_id, day_of_week, start_time, end_time, is_active, created_at, updated_at
		FROM availabilities
		ORDER BY id ASC
	`
	windows := []*model.AvailabilityWindow{}
	if err := r.db.SelectContext(ctx, &windows, query); err != nil {
		return nil, fmt.Errorf("failed to list availabilities: %w", err)
	}
	return windows, nil
}

func (r *availabilityRepository) ListByPsychologist(ctx context.Context, psychologistID int64) ([]*model.AvailabilityWindow, error) {
	query := `
		SELECT id, psychologist_id, day_of_week, start_time, end_time, is_active, created_at, updated_at
		FROM availabilities
		WHERE psychologist_id = $1
		ORDER BY id ASC
	`
	windows := []*model.AvailabilityWindow{}
	if err := r.db.SelectContext(ctx, &windows, query, psychologistID); err != nil {
		return nil, fmt.Errorf("failed to list availabilities: %w", err)
	}
	return windows, nil
}
