package repository

import (
	"context"

	"github.com/synapsehq/synapse-api/internal/model"
)

// All repository interfaces in one file. Implementations assign IDs
// monotonically on Create, return NotFound errors for unknown IDs, keep
// List results in insertion order, and hand out copies: mutating a
// returned entity does not change stored state until Update is called.
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int64) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Patient, error)
	}

	PsychologistRepository interface {
		Create(ctx context.Context, psychologist *model.Psychologist) error
		Get(ctx context.Context, id int64) (*model.Psychologist, error)
		Update(ctx context.Context, psychologist *model.Psychologist) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Psychologist, error)
	}

	ClinicRepository interface {
		Create(ctx context.Context, clinic *model.Clinic) error
		Get(ctx context.Context, id int64) (*model.Clinic, error)
		Update(ctx context.Context, clinic *model.Clinic) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Clinic, error)
	}

	LeadRepository interface {
		Create(ctx context.Context, lead *model.Lead) error
		Get(ctx context.Context, id int64) (*model.Lead, error)
		Update(ctx context.Context, lead *model.Lead) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Lead, error)
	}

	AvailabilityRepository interface {
		Create(ctx context.Context, window *model.AvailabilityWindow) error
		Get(ctx context.Context, id int64) (*model.AvailabilityWindow, error)
		Update(ctx context.Context, window *model.AvailabilityWindow) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.AvailabilityWindow, error)
		ListByPsychologist(ctx context.Context, psychologistID int64) ([]*model.AvailabilityWindow, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Appointment, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error)
		ListByPsychologist(ctx context.Context, psychologistID int64) ([]*model.Appointment, error)
		ListForDay(ctx context.Context, psychologistID int64, date model.Date) ([]*model.Appointment, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id int64) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.User, error)
	}
)

// Registry groups one repository per aggregate, so wiring code can pass the
// whole storage backend around as a unit.
type Registry struct {
	Users          UserRepository
	Patients       PatientRepository
	Psychologists  PsychologistRepository
	Clinics        ClinicRepository
	Leads          LeadRepository
	Availabilities AvailabilityRepository
	Appointments   AppointmentRepository
}
