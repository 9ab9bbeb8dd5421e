package memory

import (
	"context"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
)

type appointmentRepository struct {
	s *store[*model.Appointment]
}

func NewAppointmentRepository() repository.AppointmentRepository {
	return &appointmentRepository{s: newStore[*model.Appointment]("Appointment")}
}

func (r *appointmentRepository) Create(_ context.Context, appointment *model.Appointment) error {
	r.s.create(appointment)
	return nil
}

func (r *appointmentRepository) Get(_ context.Context, id int64) (*model.Appointment, error) {
	return r.s.get(id)
}

func (r *appointmentRepository) Update(_ context.Context, appointment *model.Appointment) error {
	return r.s.update(appointment)
}

func (r *appointmentRepository) Delete(_ context.Context, id int64) error {
	return r.s.delete(id)
}

func (r *appointmentRepository) List(_ context.Context) ([]*model.Appointment, error) {
	return r.s.list(), nil
}

func (r *appointmentRepository) ListByPatient(_ context.Context, patientID int64) ([]*model.Appointment, error) {
	return r.s.filter(func(a *model.Appointment) bool {
		return a.PatientID == patientID
	}), nil
}

func (r *appointmentRepository) ListByPsychologist(_ context.Context, psychologistID int64) ([]*model.Appointment, error) {
	return r.s.filter(func(a *model.Appointment) bool {
		return a.PsychologistID == psychologistID
	}), nil
}

func (r *appointmentRepository) ListForDay(_ context.Context, psychologistID int64, date model.Date) ([]*model.Appointment, error) {
	return r.s.filter(func(a *model.Appointment) bool {
		return a.PsychologistID == psychologistID && a.Date.Equal(date)
	}), nil
}
