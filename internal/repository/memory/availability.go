package memory

import (
	"context"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
)

type availabilityRepository struct {
	s *store[*model.AvailabilityWindow]
}

func NewAvailabilityRepository() repository.AvailabilityRepository {
	return &availabilityRepository{s: newStore[*model.AvailabilityWindow]("Availability")}
}

func (r *availabilityRepository) Create(_ context.Context, window *model.AvailabilityWindow) error {
	r.s.create(window)
	return nil
}

func (r *availabilityRepository) Get(_ context.Context, id int64) (*model.AvailabilityWindow, error) {
	return r.s.get(id)
}

func (r *availabilityRepository) Update(_ context.Context, window *model.AvailabilityWindow) error {
	return r.s.update(window)
}

func (r *availabilityRepository) Delete(_ context.Context, id int64) error {
	return r.s.delete(id)
}

func (r *availabilityRepository) List(_ context.Context) ([]*model.AvailabilityWindow, error) {
	return r.s.list(), nil
}

func (r *availabilityRepository) ListByPsychologist(_ context.Context, psychologistID int64) ([]*model.AvailabilityWindow, error) {
	return r.s.filter(func(w *model.AvailabilityWindow) bool {
		return w.PsychologistID == psychologistID
	}), nil
}
