package clinic

import (
	"context"
	"strings"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
	"github.com/synapsehq/synapse-api/pkg/errors"
)

type Service struct {
	clinics repository.ClinicRepository
}

func NewService(clinics repository.ClinicRepository) *Service {
	return &Service{clinics: clinics}
}

func (s *Service) List(ctx context.Context) ([]*model.Clinic, error) {
	return s.clinics.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Clinic, error) {
	return s.clinics.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req *model.CreateClinicRequest) (*model.Clinic, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.Validation("name cannot be empty", "name")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, errors.Validation("invalid email", "email")
	}

	clinic := &model.Clinic{
		UserID:  req.UserID,
		Name:    name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if err := s.clinics.Create(ctx, clinic); err != nil {
		return nil, err
	}
	return clinic, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateClinicRequest) (*model.Clinic, error) {
	clinic, err := s.clinics.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.Validation("name cannot be empty", "name")
		}
		clinic.Name = name
	}
	if req.Address != nil {
		clinic.Address = *req.Address
	}
	if req.Phone != nil {
		clinic.Phone = *req.Phone
	}
	if req.Email != nil {
		if !strings.Contains(*req.Email, "@") {
			return nil, errors.Validation("invalid email", "email")
		}
		clinic.Email = *req.Email
	}

	if err := s.clinics.Update(ctx, clinic); err != nil {
		return nil, err
	}
	return clinic, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.clinics.Get(ctx, id); err != nil {
		return err
	}
	return s.clinics.Delete(ctx, id)
}
