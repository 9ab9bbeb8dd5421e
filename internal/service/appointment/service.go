package appointment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/synapsehq/synapse-api/internal/email"
	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
	"github.com/synapsehq/synapse-api/pkg/errors"
	"github.com/synapsehq/synapse-api/pkg/logger"
	"github.com/synapsehq/synapse-api/pkg/messaging"
	"github.com/synapsehq/synapse-api/pkg/metrics"
)

const (
	slotCacheTTL   = 30 * time.Second
	slotCacheSweep = 5 * time.Minute

	eventChannel = "appointments"

	EventScheduled = "appointment.scheduled"
	EventConfirmed = "appointment.confirmed"
	EventCompleted = "appointment.completed"
	EventCancelled = "appointment.cancelled"
)

// Service is the scheduling engine. It validates booking requests against
// the psychologist's weekly availability, serializes bookings per
// psychologist so two requests for the same slot cannot both succeed, and
// computes free slots on a 15 minute grid.
type Service struct {
	appointments  repository.AppointmentRepository
	patients      repository.PatientRepository
	psychologists repository.PsychologistRepository
	windows       repository.AvailabilityRepository

	emailSvc email.Service
	broker   messaging.Broker
	metrics  *metrics.Metrics
	logger   *logger.Logger

	slotCache *cache.Cache
	locks     sync.Map

	now func() time.Time
}

func NewService(
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	psychologists repository.PsychologistRepository,
	windows repository.AvailabilityRepository,
	emailSvc email.Service,
	broker messaging.Broker,
	m *metrics.Metrics,
	logger *logger.Logger,
) *Service {
	return &Service{
		appointments:  appointments,
		patients:      patients,
		psychologists: psychologists,
		windows:       windows,
		emailSvc:      emailSvc,
		broker:        broker,
		metrics:       m,
		logger:        logger,
		slotCache:     cache.New(slotCacheTTL, slotCacheSweep),
		now:           time.Now,
	}
}

// Schedule books an appointment. All requests for the same psychologist run
// under one mutex, so the conflict check and the insert are atomic with
// respect to concurrent bookings.
func (s *Service) Schedule(ctx context.Context, req *model.ScheduleAppointmentRequest) (*model.Appointment, error) {
	mu := s.lockFor(req.PsychologistID)
	mu.Lock()
	defer mu.Unlock()

	patient, err := s.patients.Get(ctx, req.PatientID)
	if err != nil {
		return nil, s.reject(err)
	}

	psychologist, err := s.psychologists.Get(ctx, req.PsychologistID)
	if err != nil {
		return nil, s.reject(err)
	}
	if !psychologist.IsActive {
		return nil, s.reject(errors.BusinessRule("psychologist is not accepting appointments"))
	}

	date, derr := model.ParseDate(req.Date)
	startTime, terr := model.ParseTimeOfDay(req.Time)
	if derr != nil || terr != nil {
		return nil, s.reject(errors.Validation("date or time in invalid format", ""))
	}

	if date.Before(model.DateOf(s.now())) {
		return nil, s.reject(errors.Validation("appointment date cannot be in the past", "date"))
	}

	duration := req.Duration
	if duration == 0 {
		duration = model.DefaultAppointmentDuration
	}
	if duration < model.MinAppointmentDuration || duration > model.MaxAppointmentDuration {
		return nil, s.reject(errors.Validation(
			fmt.Sprintf("duration must be between %d and %d minutes", model.MinAppointmentDuration, model.MaxAppointmentDuration),
			"duration_minutes",
		))
	}

	windows, err := s.activeWindows(ctx, req.PsychologistID, date.WeekdayIndex())
	if err != nil {
		return nil, s.reject(err)
	}
	if len(windows) == 0 {
		return nil, s.reject(errors.BusinessRule("psychologist has no availability on this day of the week"))
	}

	inWindow := false
	for _, w := range windows {
		if w.Contains(startTime, duration) {
			inWindow = true
			break
		}
	}
	if !inWindow {
		return nil, s.reject(errors.BusinessRule("requested time does not fit the psychologist's availability"))
	}

	existing, err := s.appointments.ListForDay(ctx, req.PsychologistID, date)
	if err != nil {
		return nil, s.reject(err)
	}
	for _, other := range existing {
		if other.Status != model.AppointmentStatusCancelled && other.Time == startTime {
			if s.metrics != nil {
				s.metrics.BookingConflicts.Inc()
			}
			return nil, s.reject(errors.Conflict("an appointment already exists at this time"))
		}
	}

	appt := &model.Appointment{
		PatientID:       req.PatientID,
		PsychologistID:  req.PsychologistID,
		Date:            date,
		Time:            startTime,
		DurationMinutes: duration,
		Status:          model.AppointmentStatusScheduled,
		Notes:           req.Notes,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.InvalidateSlots(req.PsychologistID)
	if s.metrics != nil {
		s.metrics.BookingsTotal.Inc()
	}
	s.logger.Info("appointment scheduled",
		"appointment_id", appt.ID,
		"psychologist_id", appt.PsychologistID,
		"patient_id", appt.PatientID,
		"date", appt.Date.String(),
		"time", appt.Time.String(),
	)

	s.publish(ctx, EventScheduled, appt)
	s.notifyScheduled(ctx, patient, appt)
	return appt, nil
}

// AvailableSlots returns the free "HH:MM" start times for one psychologist
// on one date, sorted ascending. An unparseable date yields an empty list
// rather than an error.
func (s *Service) AvailableSlots(ctx context.Context, psychologistID int64, dateStr string, duration int) ([]string, error) {
	if s.metrics != nil {
		s.metrics.SlotQueries.Inc()
	}
	if duration <= 0 {
		duration = model.DefaultAppointmentDuration
	}

	date, err := model.ParseDate(dateStr)
	if err != nil {
		return []string{}, nil
	}

	key := slotCacheKey(psychologistID, date, duration)
	if cached, ok := s.slotCache.Get(key); ok {
		if s.metrics != nil {
			s.metrics.SlotCacheHits.Inc()
		}
		// Hand out a copy so callers cannot mutate the cached entry.
		return append([]string{}, cached.([]string)...), nil
	}

	windows, err := s.activeWindows(ctx, psychologistID, date.WeekdayIndex())
	if err != nil {
		return nil, err
	}

	slots := []string{}
	if len(windows) > 0 {
		existing, err := s.appointments.ListForDay(ctx, psychologistID, date)
		if err != nil {
			return nil, err
		}
		booked := make(map[model.TimeOfDay]struct{}, len(existing))
		for _, a := range existing {
			if a.Status != model.AppointmentStatusCancelled {
				booked[a.Time] = struct{}{}
			}
		}

		for _, w := range windows {
			for t := w.StartTime; t < w.EndTime; t = t.Add(model.SlotStep) {
				if t.Add(duration) > w.EndTime {
					continue
				}
				if _, taken := booked[t]; taken {
					continue
				}
				slots = append(slots, t.String())
			}
		}
		sort.Strings(slots)
	}

	s.slotCache.Set(key, append([]string{}, slots...), cache.DefaultExpiration)
	return slots, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.appointments.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	return s.appointments.List(ctx)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.appointments.ListByPatient(ctx, patientID)
}

func (s *Service) ListByPsychologist(ctx context.Context, psychologistID int64) ([]*model.Appointment, error) {
	if _, err := s.psychologists.Get(ctx, psychologistID); err != nil {
		return nil, err
	}
	return s.appointments.ListByPsychologist(ctx, psychologistID)
}

// Cancel moves the appointment to cancelled. Cancelled and completed are
// terminal, cancelling twice is a business rule violation.
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*model.Appointment, error) {
	appt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Terminal() {
		return nil, errors.BusinessRule(fmt.Sprintf("appointment with status %q cannot be cancelled", appt.Status))
	}

	appt.Status = model.AppointmentStatusCancelled
	if reason = strings.TrimSpace(reason); reason != "" {
		appt.CancellationReason = &reason
	}
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}

	s.InvalidateSlots(appt.PsychologistID)
	s.publish(ctx, EventCancelled, appt)
	s.notifyCancelled(ctx, appt)
	return appt, nil
}

func (s *Service) Confirm(ctx context.Context, id int64) (*model.Appointment, error) {
	appt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != model.AppointmentStatusScheduled {
		return nil, errors.BusinessRule(fmt.Sprintf("appointment with status %q cannot be confirmed", appt.Status))
	}

	appt.Status = model.AppointmentStatusConfirmed
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}
	s.publish(ctx, EventConfirmed, appt)
	return appt, nil
}

func (s *Service) Complete(ctx context.Context, id int64) (*model.Appointment, error) {
	appt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != model.AppointmentStatusScheduled && appt.Status != model.AppointmentStatusConfirmed {
		return nil, errors.BusinessRule(fmt.Sprintf("appointment with status %q cannot be completed", appt.Status))
	}

	appt.Status = model.AppointmentStatusCompleted
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}
	s.publish(ctx, EventCompleted, appt)
	return appt, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	appt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.appointments.Delete(ctx, id); err != nil {
		return err
	}
	s.InvalidateSlots(appt.PsychologistID)
	return nil
}

func (s *Service) lockFor(psychologistID int64) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(psychologistID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *Service) activeWindows(ctx context.Context, psychologistID int64, dayOfWeek int) ([]*model.AvailabilityWindow, error) {
	all, err := s.windows.ListByPsychologist(ctx, psychologistID)
	if err != nil {
		return nil, err
	}
	var active []*model.AvailabilityWindow
	for _, w := range all {
		if w.IsActive && w.DayOfWeek == dayOfWeek {
			active = append(active, w)
		}
	}
	return active, nil
}

// InvalidateSlots drops every cached slot grid for a psychologist. The
// availability service calls it when windows change.
func (s *Service) InvalidateSlots(psychologistID int64) {
	prefix := fmt.Sprintf("%d|", psychologistID)
	for key := range s.slotCache.Items() {
		if strings.HasPrefix(key, prefix) {
			s.slotCache.Delete(key)
		}
	}
}

func slotCacheKey(psychologistID int64, date model.Date, duration int) string {
	return fmt.Sprintf("%d|%s|%d", psychologistID, date, duration)
}

func (s *Service) reject(err error) error {
	if s.metrics != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			s.metrics.BookingRejected.WithLabelValues(string(appErr.Code)).Inc()
		}
	}
	return err
}

// publish is best effort, a broker failure never fails the booking.
func (s *Service) publish(ctx context.Context, eventType string, appt *model.Appointment) {
	if s.broker == nil {
		return
	}
	msg := &messaging.Message{Type: eventType, Payload: appt}
	if err := s.broker.Publish(ctx, eventChannel, msg); err != nil {
		s.logger.Error(err, "failed to publish appointment event", "event_type", eventType, "appointment_id", appt.ID)
		if s.metrics != nil {
			s.metrics.EventsFailed.Inc()
		}
		return
	}
	if s.metrics != nil {
		s.metrics.EventsPublished.WithLabelValues(eventType).Inc()
	}
}

func (s *Service) notifyScheduled(ctx context.Context, patient *model.Patient, appt *model.Appointment) {
	if s.emailSvc == nil {
		return
	}
	if err := s.emailSvc.SendAppointmentScheduled(ctx, patient, appt); err != nil {
		s.logger.Error(err, "failed to send confirmation email", "appointment_id", appt.ID)
	}
}

func (s *Service) notifyCancelled(ctx context.Context, appt *model.Appointment) {
	if s.emailSvc == nil {
		return
	}
	patient, err := s.patients.Get(ctx, appt.PatientID)
	if err != nil {
		s.logger.Error(err, "failed to load patient for cancellation email", "appointment_id", appt.ID)
		return
	}
	if err := s.emailSvc.SendAppointmentCancelled(ctx, patient, appt); err != nil {
		s.logger.Error(err, "failed to send cancellation email", "appointment_id", appt.ID)
	}
}
