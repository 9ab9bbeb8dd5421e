package psychologist

import (
	"context"
	"strings"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
	"github.com/synapsehq/synapse-api/pkg/errors"
)

type Service struct {
	psychologists repository.PsychologistRepository
}

func NewService(psychologists repository.PsychologistRepository) *Service {
	return &Service{psychologists: psychologists}
}

// List returns all psychologists, optionally filtered to active ones.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*model.Psychologist, error) {
	all, err := s.psychologists.List(ctx)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return all, nil
	}
	active := make([]*model.Psychologist, 0, len(all))
	for _, p := range all {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Psychologist, error) {
	return s.psychologists.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req *model.CreatePsychologistRequest) (*model.Psychologist, error) {
	if err := validateCRP(req.CRP); err != nil {
		return nil, err
	}
	if req.HourlyRate <= 0 {
		return nil, errors.Validation("hourly rate must be positive", "hourly_rate")
	}

	psychologist := &model.Psychologist{
		UserID:     req.UserID,
		Name:       req.Name,
		CRP:        req.CRP,
		Specialty:  req.Specialty,
		Themes:     req.Themes,
		Bio:        req.Bio,
		HourlyRate: req.HourlyRate,
		IsActive:   true,
	}
	if err := s.psychologists.Create(ctx, psychologist); err != nil {
		return nil, err
	}
	return psychologist, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdatePsychologistRequest) (*model.Psychologist, error) {
	psychologist, err := s.psychologists.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		psychologist.Name = *req.Name
	}
	if req.Specialty != nil {
		psychologist.Specialty = *req.Specialty
	}
	if req.Themes != nil {
		psychologist.Themes = req.Themes
	}
	if req.Bio != nil {
		psychologist.Bio = *req.Bio
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate <= 0 {
			return nil, errors.Validation("hourly rate must be positive", "hourly_rate")
		}
		psychologist.HourlyRate = *req.HourlyRate
	}
	if req.IsActive != nil {
		psychologist.IsActive = *req.IsActive
	}

	if err := s.psychologists.Update(ctx, psychologist); err != nil {
		return nil, err
	}
	return psychologist, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.psychologists.Get(ctx, id); err != nil {
		return err
	}
	return s.psychologists.Delete(ctx, id)
}

func (s *Service) Activate(ctx context.Context, id int64) (*model.Psychologist, error) {
	return s.setActive(ctx, id, true)
}

func (s *Service) Deactivate(ctx context.Context, id int64) (*model.Psychologist, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) setActive(ctx context.Context, id int64, active bool) (*model.Psychologist, error) {
	psychologist, err := s.psychologists.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if psychologist.IsActive != active {
		psychologist.IsActive = active
		if err := s.psychologists.Update(ctx, psychologist); err != nil {
			return nil, err
		}
	}
	return psychologist, nil
}

// validateCRP accepts the XX/XXXXX registration format.
func validateCRP(crp string) error {
	parts := strings.SplitN(crp, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return errors.Validation("crp must be in the XX/XXXXX format", "crp")
	}
	return nil
}
