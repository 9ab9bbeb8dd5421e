package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/synapsehq/synapse-api/internal/model"
)

const appointmentColumns = `id, patient_id, psychologist_id, date, time, duration_minutes, status, notes, cancellation_reason, created_at, updated_at`

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	appointment.Stamp(time.Now())
	query := `
		INSERT INTO appointments (patient_id, psychologist_id, date, time, duration_minutes, status, notes, cancellation_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		appointment.PatientID,
		appointment.PsychologistID,
		appointment.Date,
		appointment.Time,
		appointment.DurationMinutes,
		appointment.Status,
		appointment.Notes,
		appointment.CancellationReason,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	).Scan(&appointment.ID)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, notFound(err, "Appointment", id)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	appointment.Stamp(time.Now())
	query := `
		UPDATE appointments
		SET date = $1, time = $2, duration_minutes = $3, status = $4,
		    notes = $5, cancellation_reason = $6, updated_at = $7
		WHERE id = $8
	`
	res, err := r.db.ExecContext(ctx, query,
		appointment.Date,
		appointment.Time,
		appointment.DurationMinutes,
		appointment.Status,
		appointment.Notes,
		appointment.CancellationReason,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	return ensureAffected(res, "Appointment", appointment.ID)
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return ensureAffected(res, "Appointment", id)
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY id ASC`
	return r.selectMany(ctx, query)
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE patient_id = $1 ORDER BY id ASC`
	return r.selectMany(ctx, query, patientID)
}

func (r *appointmentRepository) ListByPsychologist(ctx context.Context, psychologistID int64) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE psychologist_id = $1 ORDER BY id ASC`
	return r.selectMany(ctx, query, psychologistID)
}

func (r *appointmentRepository) ListForDay(ctx context.Context, psychologistID int64, date model.Date) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE psychologist_id = $1 AND date = $2 ORDER BY id ASC`
	return r.selectMany(ctx, query, psychologistID, date)
}

func (r *appointmentRepository) selectMany(ctx context.Context, query string, args ...interface{}) ([]*model.Appointment, error) {
	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
