package memory

import (
	"context"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
)

type patientRepository struct {
	s *store[*model.Patient]
}

func NewPatientRepository() repository.PatientRepository {
	return &patientRepository{s: newStore[*model.Patient]("Patient")}
}

func (r *patientRepository) Create(_ context.Context, patient *model.Patient) error {
	r.s.create(patient)
	return nil
}

func (r *patientRepository) Get(_ context.Context, id int64) (*model.Patient, error) {
	return r.s.get(id)
}

func (r *patientRepository) Update(_ context.Context, patient *model.Patient) error {
	return r.s.update(patient)
}

func (r *patientRepository) Delete(_ context.Context, id int64) error {
	return r.s.delete(id)
}

func (r *patientRepository) List(_ context.Context) ([]*model.Patient, error) {
	return r.s.list(), nil
}
