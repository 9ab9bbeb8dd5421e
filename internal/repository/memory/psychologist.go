package memory

import (
	"context"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
)

type psychologistRepository struct {
	s *store[*model.Psychologist]
}

func NewPsychologistRepository() repository.PsychologistRepository {
	return &psychologistRepository{s: newStore[*model.Psychologist]("Psychologist")}
}

func (r *psychologistRepository) Create(_ context.Context, psychologist *model.Psychologist) error {
	r.s.create(psychologist)
	return nil
}

func (r *psychologistRepository) Get(_ context.Context, id int64) (*model.Psychologist, error) {
	return r.s.get(id)
}

func (r *psychologistRepository) Update(_ context.Context, psychologist *model.Psychologist) error {
	return r.s.update(psychologist)
}

func (r *psychologistRepository) Delete(_ context.Context, id int64) error {
	return r.s.delete(id)
}

func (r *psychologistRepository) List(_ context.Context) ([]*model.Psychologist, error) {
	return r.s.list(), nil
}
