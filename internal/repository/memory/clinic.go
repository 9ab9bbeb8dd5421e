package memory

import (
	"context"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
)

type clinicRepository struct {
	s *store[*model.Clinic]
}

func NewClinicRepository() repository.ClinicRepository {
	return &clinicRepository{s: newStore[*model.Clinic]("Clinic")}
}

func (r *clinicRepository) Create(_ context.Context, clinic *model.Clinic) error {
	r.s.create(clinic)
	return nil
}

func (r *clinicRepository) Get(_ context.Context, id int64) (*model.Clinic, error) {
	return r.s.get(id)
}

func (r *clinicRepository) Update(_ context.Context, clinic *model.Clinic) error {
	return r.s.update(clinic)
}

func (r *clinicRepository) Delete(_ context.Context, id int64) error {
	return r.s.delete(id)
}

func (r *clinicRepository) List(_ context.Context) ([]*model.Clinic, error) {
	return r.s.list(), nil
}
