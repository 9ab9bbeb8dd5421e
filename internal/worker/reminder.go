package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/synapsehq/synapse-api/internal/email"
	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
	"github.com/synapsehq/synapse-api/pkg/logger"
)

// ReminderWorker periodically emails patients about their appointments on
// the following day. Reminders are tracked in memory per process; sending
// twice after a restart is acceptable.
type ReminderWorker struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	notifier     email.Service
	logger       *logger.Logger
	interval     time.Duration

	sent map[int64]struct{}
	now  func() time.Time
}

func NewReminderWorker(
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	notifier email.Service,
	logger *logger.Logger,
	interval time.Duration,
) *ReminderWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ReminderWorker{
		appointments: appointments,
		patients:     patients,
		notifier:     notifier,
		logger:       logger,
		interval:     interval,
		sent:         make(map[int64]struct{}),
		now:          time.Now,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.run(ctx); err != nil {
				w.logger.Error(err, "reminder pass failed")
			}
		}
	}
}

func (w *ReminderWorker) run(ctx context.Context) error {
	tomorrow := model.DateOf(w.now().AddDate(0, 0, 1))

	appointments, err := w.appointments.List(ctx)
	if err != nil {
		return err
	}

	for _, appt := range appointments {
		if !appt.Date.Equal(tomorrow) {
			continue
		}
		if appt.Status != model.AppointmentStatusScheduled && appt.Status != model.AppointmentStatusConfirmed {
			continue
		}
		if _, done := w.sent[appt.ID]; done {
			continue
		}

		patient, err := w.patients.Get(ctx, appt.PatientID)
		if err != nil {
			w.logger.Error(err, "failed to load patient for reminder", "appointment_id", appt.ID)
			continue
		}

		subject := "Appointment reminder"
		body := fmt.Sprintf(
			"Hello %s,\n\nThis is a reminder of your appointment tomorrow, %s at %s.\n\nSynapse",
			patient.Name, appt.Date, appt.Time,
		)
		if err := w.notifier.SendCustom(ctx, patient.Email, subject, body); err != nil {
			w.logger.Error(err, "failed to send reminder", "appointment_id", appt.ID)
			continue
		}
		w.sent[appt.ID] = struct{}{}
	}
	return nil
}
