package patient

import (
	"context"
	"strings"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
	"github.com/synapsehq/synapse-api/pkg/errors"
)

const minPhoneLen = 8

type Service struct {
	patients repository.PatientRepository
}

func NewService(patients repository.PatientRepository) *Service {
	return &Service{patients: patients}
}

func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	return s.patients.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Patient, error) {
	return s.patients.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePhone(req.Phone); err != nil {
		return nil, err
	}

	patient := &model.Patient{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		CPF:   req.CPF,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.patients.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Email != nil {
		if err := validateEmail(*req.Email); err != nil {
			return nil, err
		}
		patient.Email = *req.Email
	}
	if req.Phone != nil {
		if err := validatePhone(*req.Phone); err != nil {
			return nil, err
		}
		patient.Phone = *req.Phone
	}
	if req.CPF != nil {
		patient.CPF = req.CPF
	}

	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.patients.Get(ctx, id); err != nil {
		return err
	}
	return s.patients.Delete(ctx, id)
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return errors.Validation("invalid email", "email")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) < minPhoneLen {
		return errors.Validation("phone must have at least 8 characters", "phone")
	}
	return nil
}
