// Package postgres is the durable alternative to the in-memory stores. It
// implements the same repository contracts: serial IDs, insertion order via
// id ascending, not-found mapping of sql.ErrNoRows.
package postgres

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/synapsehq/synapse-api/internal/repository"
	apperrors "github.com/synapsehq/synapse-api/pkg/errors"
	"github.com/synapsehq/synapse-api/pkg/security"
)

type patientRepository struct {
	db  *sqlx.DB
	enc security.Encryptor
}

type psychologistRepository struct {
	db *sqlx.DB
}

type clinicRepository struct {
	db *sqlx.DB
}

type leadRepository struct {
	db *sqlx.DB
}

type availabilityRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type userRepository struct {
	db *sqlx.DB
}

// NewPatientRepository creates the patient store. When enc is non-nil the
// CPF column is encrypted at rest.
func NewPatientRepository(db *sqlx.DB, enc security.Encryptor) repository.PatientRepository {
	return &patientRepository{db: db, enc: enc}
}

func NewPsychologistRepository(db *sqlx.DB) repository.PsychologistRepository {
	return &psychologistRepository{db: db}
}

func NewClinicRepository(db *sqlx.DB) repository.ClinicRepository {
	return &clinicRepository{db: db}
}

func NewLeadRepository(db *sqlx.DB) repository.LeadRepository {
	return &leadRepository{db: db}
}

func NewAvailabilityRepository(db *sqlx.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// notFound translates sql.ErrNoRows into the shared error taxonomy.
func notFound(err error, resource string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(resource, id)
	}
	return err
}

// ensureAffected maps a zero-row write to a not-found error.
func ensureAffected(res sql.Result, resource string, id int64) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound(resource, id)
	}
	return nil
}
