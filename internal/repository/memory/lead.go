package memory

import (
	"context"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
)

type leadRepository struct {
	s *store[*model.Lead]
}

func NewLeadRepository() repository.LeadRepository {
	return &leadRepository{s: newStore[*model.Lead]("Lead")}
}

func (r *leadRepository) Create(_ context.Context, lead *model.Lead) error {
	r.s.create(lead)
	return nil
}

func (r *leadRepository) Get(_ context.Context, id int64) (*model.Lead, error) {
	return r.s.get(id)
}

func (r *leadRepository) Update(_ context.Context, lead *model.Lead) error {
	return r.s.update(lead)
}

func (r *leadRepository) Delete(_ context.Context, id int64) error {
	return r.s.delete(id)
}

func (r *leadRepository) List(_ context.Context) ([]*model.Lead, error) {
	return r.s.list(), nil
}
