package lead

import (
	"context"
	"strings"
	"time"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
	"github.com/synapsehq/synapse-api/pkg/errors"
)

// Service manages the lead pipeline: new leads arrive from marketing
// sources and move to contacted, lost, or converted.
type Service struct {
	leads    repository.LeadRepository
	patients repository.PatientRepository

	now func() time.Time
}

func NewService(leads repository.LeadRepository, patients repository.PatientRepository) *Service {
	return &Service{
		leads:    leads,
		patients: patients,
		now:      time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]*model.Lead, error) {
	return s.leads.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Lead, error) {
	return s.leads.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req *model.CreateLeadRequest) (*model.Lead, error) {
	lead := &model.Lead{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Source: req.Source,
		Status: model.LeadStatusNew,
		Notes:  req.Notes,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateLeadRequest) (*model.Lead, error) {
	lead, err := s.leads.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		lead.Name = *req.Name
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}

	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.leads.Get(ctx, id); err != nil {
		return err
	}
	return s.leads.Delete(ctx, id)
}

func (s *Service) MarkContacted(ctx context.Context, id int64, notes string) (*model.Lead, error) {
	lead, err := s.leads.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	lead.Status = model.LeadStatusContacted
	if notes = strings.TrimSpace(notes); notes != "" {
		lead.Notes = notes
	}
	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *Service) MarkLost(ctx context.Context, id int64, reason string) (*model.Lead, error) {
	lead, err := s.leads.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	lead.Status = model.LeadStatusLost
	if reason = strings.TrimSpace(reason); reason != "" {
		lead.Notes = reason
	}
	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// ConvertToPatient links the lead to an existing patient record. A lead can
// only be converted once.
func (s *Service) ConvertToPatient(ctx context.Context, id int64, patientID int64) (*model.Lead, error) {
	lead, err := s.leads.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead.Status == model.LeadStatusConverted {
		return nil, errors.BusinessRule("lead has already been converted")
	}
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}

	now := s.now()
	lead.Status = model.LeadStatusConverted
	lead.ConvertedAt = &now
	lead.ConvertedPatientID = &patientID

	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}
