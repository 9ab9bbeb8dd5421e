package email

import (
	"context"

	"github.com/synapsehq/synapse-api/internal/model"
)

// noopService is used when no SMTP host is configured.
type noopService struct{}

func NewNoopService() Service { return noopService{} }

func (noopService) SendAppointmentScheduled(context.Context, *model.Patient, *model.Appointment) error {
	return nil
}

func (noopService) SendAppointmentCancelled(context.Context, *model.Patient, *model.Appointment) error {
	return nil
}

func (noopService) SendCustom(context.Context, string, string, string) error { return nil }
