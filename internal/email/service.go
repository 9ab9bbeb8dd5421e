package email

import (
	"context"

	"github.com/synapsehq/synapse-api/internal/model"
)

// Service delivers appointment notifications to patients. Implementations
// must be safe for concurrent use.
type Service interface {
	SendAppointmentScheduled(ctx context.Context, patient *model.Patient, appt *model.Appointment) error
	SendAppointmentCancelled(ctx context.Context, patient *model.Patient, appt *model.Appointment) error
	SendCustom(ctx context.Context, to string, subject string, content string) error
}
