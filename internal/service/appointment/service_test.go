package appointment

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
	"github.com/synapsehq/synapse-api/internal/repository/memory"
	availabilityService "github.com/synapsehq/synapse-api/internal/service/availability"
	"github.com/synapsehq/synapse-api/pkg/errors"
	"github.com/synapsehq/synapse-api/pkg/logger"
)

type fixture struct {
	svc     *Service
	windows repository.AvailabilityRepository

	patientID      int64
	psychologistID int64
}

// newFixture wires the engine against in-memory stores with a patient, an
// active psychologist, and a Monday 09:00-12:00 window. The clock is pinned
// to Sunday 2026-03-01 so "2026-03-02" is the next Monday.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	appointments := memory.NewAppointmentRepository()
	patients := memory.NewPatientRepository()
	psychologists := memory.NewPsychologistRepository()
	windows := memory.NewAvailabilityRepository()
	log := logger.NewLogger(&logger.Config{Output: io.Discard})

	patient := &model.Patient{Name: "Ana Lima", Email: "ana@example.com", Phone: "11999990000"}
	require.NoError(t, patients.Create(ctx, patient))

	psy := &model.Psychologist{
		UserID:     1,
		Name:       "Dr. Helena Souza",
		CRP:        "06/12345",
		Specialty:  "CBT",
		HourlyRate: 150,
		IsActive:   true,
	}
	require.NoError(t, psychologists.Create(ctx, psy))

	window := &model.AvailabilityWindow{
		PsychologistID: psy.ID,
		DayOfWeek:      0,
		StartTime:      mustTime(t, "09:00"),
		EndTime:        mustTime(t, "12:00"),
		IsActive:       true,
	}
	require.NoError(t, windows.Create(ctx, window))

	svc := NewService(appointments, patients, psychologists, windows, nil, nil, nil, log)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	}

	return &fixture{
		svc:            svc,
		windows:        windows,
		patientID:      patient.ID,
		psychologistID: psy.ID,
	}
}

func mustTime(t *testing.T, s string) model.TimeOfDay {
	t.Helper()
	tod, err := model.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func (f *fixture) scheduleReq(date, timeStr string) *model.ScheduleAppointmentRequest {
	return &model.ScheduleAppointmentRequest{
		PatientID:      f.patientID,
		PsychologistID: f.psychologistID,
		Date:           date,
		Time:           timeStr,
	}
}

const monday = "2026-03-02"

func TestSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("books inside the window", func(t *testing.T) {
		f := newFixture(t)

		appt, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "09:00"))
		require.NoError(t, err)
		assert.NotZero(t, appt.ID)
		assert.Equal(t, model.AppointmentStatusScheduled, appt.Status)
		assert.Equal(t, model.DefaultAppointmentDuration, appt.DurationMinutes)
		assert.Equal(t, monday, appt.Date.String())
		assert.Equal(t, "09:00", appt.Time.String())

		fetched, err := f.svc.Get(ctx, appt.ID)
		require.NoError(t, err)
		assert.Equal(t, appt, fetched)
	})

	t.Run("unknown patient", func(t *testing.T) {
		f := newFixture(t)

		req := f.scheduleReq(monday, "09:00")
		req.PatientID = 999
		_, err := f.svc.Schedule(ctx, req)
		assert.True(t, errors.IsCode(err, errors.CodeNotFound))
	})

	t.Run("unknown psychologist", func(t *testing.T) {
		f := newFixture(t)

		req := f.scheduleReq(monday, "09:00")
		req.PsychologistID = 999
		_, err := f.svc.Schedule(ctx, req)
		assert.True(t, errors.IsCode(err, errors.CodeNotFound))
	})

	t.Run("inactive psychologist", func(t *testing.T) {
		f := newFixture(t)

		psy, err := f.svc.psychologists.Get(ctx, f.psychologistID)
		require.NoError(t, err)
		psy.IsActive = false
		require.NoError(t, f.svc.psychologists.Update(ctx, psy))

		_, err = f.svc.Schedule(ctx, f.scheduleReq(monday, "09:00"))
		assert.True(t, errors.IsCode(err, errors.CodeBusinessRule))
	})

	t.Run("malformed date or time", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Schedule(ctx, f.scheduleReq("02/03/2026", "09:00"))
		assert.True(t, errors.IsCode(err, errors.CodeValidation))

		_, err = f.svc.Schedule(ctx, f.scheduleReq(monday, "9am"))
		assert.True(t, errors.IsCode(err, errors.CodeValidation))
	})

	t.Run("past date", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Schedule(ctx, f.scheduleReq("2026-02-23", "09:00"))
		require.True(t, errors.IsCode(err, errors.CodeValidation))
		appErr, _ := errors.AsAppError(err)
		assert.Equal(t, "date", appErr.Field)
	})

	t.Run("duration out of bounds", func(t *testing.T) {
		f := newFixture(t)

		req := f.scheduleReq(monday, "09:00")
		req.Duration = 10
		_, err := f.svc.Schedule(ctx, req)
		assert.True(t, errors.IsCode(err, errors.CodeValidation))

		req.Duration = 200
		_, err = f.svc.Schedule(ctx, req)
		assert.True(t, errors.IsCode(err, errors.CodeValidation))
	})

	t.Run("no availability on that weekday", func(t *testing.T) {
		f := newFixture(t)

		// 2026-03-03 is a Tuesday, the fixture only has a Monday window.
		_, err := f.svc.Schedule(ctx, f.scheduleReq("2026-03-03", "09:00"))
		assert.True(t, errors.IsCode(err, errors.CodeBusinessRule))
	})

	t.Run("time outside the window", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "08:00"))
		assert.True(t, errors.IsCode(err, errors.CodeBusinessRule))
	})

	t.Run("appointment must end inside the window", func(t *testing.T) {
		f := newFixture(t)

		// 11:30 starts inside 09:00-12:00 but a 60 minute session runs past the end.
		_, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "11:30"))
		assert.True(t, errors.IsCode(err, errors.CodeBusinessRule))
	})

	t.Run("double booking conflicts", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "10:00"))
		require.NoError(t, err)

		_, err = f.svc.Schedule(ctx, f.scheduleReq(monday, "10:00"))
		assert.True(t, errors.IsCode(err, errors.CodeConflict))
	})

	t.Run("cancelled slot can be rebooked", func(t *testing.T) {
		f := newFixture(t)

		appt, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "10:00"))
		require.NoError(t, err)
		_, err = f.svc.Cancel(ctx, appt.ID, "patient request")
		require.NoError(t, err)

		_, err = f.svc.Schedule(ctx, f.scheduleReq(monday, "10:00"))
		assert.NoError(t, err)
	})

	t.Run("inactive window does not admit bookings", func(t *testing.T) {
		f := newFixture(t)

		all, err := f.windows.ListByPsychologist(ctx, f.psychologistID)
		require.NoError(t, err)
		all[0].IsActive = false
		require.NoError(t, f.windows.Update(ctx, all[0]))

		_, err = f.svc.Schedule(ctx, f.scheduleReq(monday, "09:00"))
		assert.True(t, errors.IsCode(err, errors.CodeBusinessRule))
	})

	t.Run("concurrent bookings for one slot admit exactly one", func(t *testing.T) {
		f := newFixture(t)

		const attempts = 16
		var wg sync.WaitGroup
		results := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "10:00"))
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		booked := 0
		for err := range results {
			if err == nil {
				booked++
			} else {
				assert.True(t, errors.IsCode(err, errors.CodeConflict))
			}
		}
		assert.Equal(t, 1, booked)
	})
}

func TestAvailableSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("grid excludes booked and overflowing slots", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "10:00"))
		require.NoError(t, err)

		slots, err := f.svc.AvailableSlots(ctx, f.psychologistID, monday, 60)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"09:00", "09:15", "09:30", "09:45",
			"10:15", "10:30", "10:45", "11:00",
		}, slots)
	})

	t.Run("unparsable date yields empty list", func(t *testing.T) {
		f := newFixture(t)

		slots, err := f.svc.AvailableSlots(ctx, f.psychologistID, "not-a-date", 60)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("no windows on that day yields empty list", func(t *testing.T) {
		f := newFixture(t)

		slots, err := f.svc.AvailableSlots(ctx, f.psychologistID, "2026-03-03", 60)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("deactivated window stops producing slots", func(t *testing.T) {
		f := newFixture(t)

		all, err := f.windows.ListByPsychologist(ctx, f.psychologistID)
		require.NoError(t, err)
		all[0].IsActive = false
		require.NoError(t, f.windows.Update(ctx, all[0]))

		slots, err := f.svc.AvailableSlots(ctx, f.psychologistID, monday, 60)
		require.NoError(t, err)
		assert.Empty(t, slots)

		fetched, err := f.windows.Get(ctx, all[0].ID)
		require.NoError(t, err)
		assert.False(t, fetched.IsActive)
	})

	t.Run("shorter duration reaches later slots", func(t *testing.T) {
		f := newFixture(t)

		slots, err := f.svc.AvailableSlots(ctx, f.psychologistID, monday, 15)
		require.NoError(t, err)
		assert.Contains(t, slots, "11:45")
		assert.NotContains(t, slots, "12:00")
	})

	t.Run("mutating a returned slice leaves the cache intact", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.svc.AvailableSlots(ctx, f.psychologistID, monday, 60)
		require.NoError(t, err)
		require.NotEmpty(t, first)
		first[0] = "corrupted"

		second, err := f.svc.AvailableSlots(ctx, f.psychologistID, monday, 60)
		require.NoError(t, err)
		assert.Equal(t, "09:00", second[0])
		second[0] = "corrupted"

		third, err := f.svc.AvailableSlots(ctx, f.psychologistID, monday, 60)
		require.NoError(t, err)
		assert.Equal(t, "09:00", third[0])
	})

	t.Run("booking invalidates cached slots", func(t *testing.T) {
		f := newFixture(t)

		before, err := f.svc.AvailableSlots(ctx, f.psychologistID, monday, 60)
		require.NoError(t, err)
		assert.Contains(t, before, "10:00")

		_, err = f.svc.Schedule(ctx, f.scheduleReq(monday, "10:00"))
		require.NoError(t, err)

		after, err := f.svc.AvailableSlots(ctx, f.psychologistID, monday, 60)
		require.NoError(t, err)
		assert.NotContains(t, after, "10:00")
	})

	t.Run("deactivating a window invalidates cached slots", func(t *testing.T) {
		f := newFixture(t)
		windowSvc := availabilityService.NewService(f.windows, f.svc.psychologists, f.svc, logger.NewLogger(&logger.Config{Output: io.Discard}))

		before, err := f.svc.AvailableSlots(ctx, f.psychologistID, monday, 60)
		require.NoError(t, err)
		assert.NotEmpty(t, before)

		all, err := f.windows.ListByPsychologist(ctx, f.psychologistID)
		require.NoError(t, err)
		_, err = windowSvc.Deactivate(ctx, all[0].ID)
		require.NoError(t, err)

		after, err := f.svc.AvailableSlots(ctx, f.psychologistID, monday, 60)
		require.NoError(t, err)
		assert.Empty(t, after)
	})
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel scheduled", func(t *testing.T) {
		f := newFixture(t)

		appt, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "09:00"))
		require.NoError(t, err)

		cancelled, err := f.svc.Cancel(ctx, appt.ID, "patient request")
		require.NoError(t, err)
		assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)
		require.NotNil(t, cancelled.CancellationReason)
		assert.Equal(t, "patient request", *cancelled.CancellationReason)
	})

	t.Run("cancel completed is rejected", func(t *testing.T) {
		f := newFixture(t)

		appt, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "09:00"))
		require.NoError(t, err)
		_, err = f.svc.Complete(ctx, appt.ID)
		require.NoError(t, err)

		_, err = f.svc.Cancel(ctx, appt.ID, "")
		assert.True(t, errors.IsCode(err, errors.CodeBusinessRule))
	})

	t.Run("cancel twice is rejected", func(t *testing.T) {
		f := newFixture(t)

		appt, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "09:00"))
		require.NoError(t, err)
		_, err = f.svc.Cancel(ctx, appt.ID, "")
		require.NoError(t, err)

		_, err = f.svc.Cancel(ctx, appt.ID, "")
		assert.True(t, errors.IsCode(err, errors.CodeBusinessRule))
	})

	t.Run("confirm then complete", func(t *testing.T) {
		f := newFixture(t)

		appt, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "09:00"))
		require.NoError(t, err)

		confirmed, err := f.svc.Confirm(ctx, appt.ID)
		require.NoError(t, err)
		assert.Equal(t, model.AppointmentStatusConfirmed, confirmed.Status)

		completed, err := f.svc.Complete(ctx, appt.ID)
		require.NoError(t, err)
		assert.Equal(t, model.AppointmentStatusCompleted, completed.Status)
	})

	t.Run("complete cancelled is rejected", func(t *testing.T) {
		f := newFixture(t)

		appt, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "09:00"))
		require.NoError(t, err)
		_, err = f.svc.Cancel(ctx, appt.ID, "")
		require.NoError(t, err)

		_, err = f.svc.Complete(ctx, appt.ID)
		assert.True(t, errors.IsCode(err, errors.CodeBusinessRule))
	})

	t.Run("confirm confirmed is rejected", func(t *testing.T) {
		f := newFixture(t)

		appt, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "09:00"))
		require.NoError(t, err)
		_, err = f.svc.Confirm(ctx, appt.ID)
		require.NoError(t, err)

		_, err = f.svc.Confirm(ctx, appt.ID)
		assert.True(t, errors.IsCode(err, errors.CodeBusinessRule))
	})

	t.Run("delete removes the appointment", func(t *testing.T) {
		f := newFixture(t)

		appt, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "09:00"))
		require.NoError(t, err)

		require.NoError(t, f.svc.Delete(ctx, appt.ID))
		_, err = f.svc.Get(ctx, appt.ID)
		assert.True(t, errors.IsCode(err, errors.CodeNotFound))
	})
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "09:00"))
	require.NoError(t, err)
	second, err := f.svc.Schedule(ctx, f.scheduleReq(monday, "10:00"))
	require.NoError(t, err)

	byPatient, err := f.svc.ListByPatient(ctx, f.patientID)
	require.NoError(t, err)
	require.Len(t, byPatient, 2)
	assert.Equal(t, first.ID, byPatient[0].ID)
	assert.Equal(t, second.ID, byPatient[1].ID)

	byPsy, err := f.svc.ListByPsychologist(ctx, f.psychologistID)
	require.NoError(t, err)
	assert.Len(t, byPsy, 2)

	_, err = f.svc.ListByPatient(ctx, 999)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}
