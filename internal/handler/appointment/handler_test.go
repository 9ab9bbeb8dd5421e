package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository/memory"
	appointmentService "github.com/synapsehq/synapse-api/internal/service/appointment"
	"github.com/synapsehq/synapse-api/pkg/logger"
)

type testServer struct {
	engine *gin.Engine

	patientID      int64
	psychologistID int64
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	appointments := memory.NewAppointmentRepository()
	patients := memory.NewPatientRepository()
	psychologists := memory.NewPsychologistRepository()
	windows := memory.NewAvailabilityRepository()
	log := logger.NewLogger(&logger.Config{Output: io.Discard})

	patient := &model.Patient{Name: "Ana Lima", Email: "ana@example.com", Phone: "11999990000"}
	require.NoError(t, patients.Create(ctx, patient))

	psy := &model.Psychologist{
		UserID: 1, Name: "Dr. Helena Souza", CRP: "06/12345",
		Specialty: "CBT", HourlyRate: 150, IsActive: true,
	}
	require.NoError(t, psychologists.Create(ctx, psy))

	start, _ := model.ParseTimeOfDay("09:00")
	end, _ := model.ParseTimeOfDay("12:00")
	require.NoError(t, windows.Create(ctx, &model.AvailabilityWindow{
		PsychologistID: psy.ID, DayOfWeek: 0, StartTime: start, EndTime: end, IsActive: true,
	}))

	svc := appointmentService.NewService(appointments, patients, psychologists, windows, nil, nil, nil, log)

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group("/api"))

	return &testServer{
		engine:         engine,
		patientID:      patient.ID,
		psychologistID: psy.ID,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// nextMonday keeps request dates in the future relative to the real clock.
func nextMonday() string {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func (s *testServer) scheduleBody(timeStr string) gin.H {
	return gin.H{
		"patient_id":      s.patientID,
		"psychologist_id": s.psychologistID,
		"date":            nextMonday(),
		"time":            timeStr,
	}
}

func TestScheduleEndpoint(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodPost, "/api/appointments", s.scheduleBody("09:00"))
		require.Equal(t, http.StatusCreated, w.Code)

		env := decode(t, w)
		assert.True(t, env.Success)

		var appt model.Appointment
		require.NoError(t, json.Unmarshal(env.Data, &appt))
		assert.NotZero(t, appt.ID)
		assert.Equal(t, model.AppointmentStatusScheduled, appt.Status)
	})

	t.Run("missing fields are a binding error", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodPost, "/api/appointments", gin.H{"patient_id": s.patientID})
		require.Equal(t, http.StatusBadRequest, w.Code)

		env := decode(t, w)
		assert.False(t, env.Success)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("unknown patient maps to 404", func(t *testing.T) {
		s := newTestServer(t)

		body := s.scheduleBody("09:00")
		body["patient_id"] = 999
		w := s.do(t, http.MethodPost, "/api/appointments", body)
		require.Equal(t, http.StatusNotFound, w.Code)

		env := decode(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})

	t.Run("double booking maps to 409", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodPost, "/api/appointments", s.scheduleBody("10:00"))
		require.Equal(t, http.StatusCreated, w.Code)

		w = s.do(t, http.MethodPost, "/api/appointments", s.scheduleBody("10:00"))
		require.Equal(t, http.StatusConflict, w.Code)

		env := decode(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("time outside availability maps to 422", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodPost, "/api/appointments", s.scheduleBody("20:00"))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		env := decode(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "BUSINESS_RULE_VIOLATION", env.Error.Code)
	})
}

func TestSlotsEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/appointments/available-slots", gin.H{
		"psychologist_id": s.psychologistID,
		"date":            nextMonday(),
		"duration":        60,
	})
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	var data struct {
		Items []string `json:"items"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, len(data.Items), data.Count)
	assert.Contains(t, data.Items, "09:00")
	assert.Contains(t, data.Items, "11:00")
	assert.NotContains(t, data.Items, "11:15")
}

func TestLifecycleEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/appointments", s.scheduleBody("09:00"))
	require.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w)
	var appt model.Appointment
	require.NoError(t, json.Unmarshal(env.Data, &appt))

	w = s.do(t, http.MethodPatch, fmt.Sprintf("/api/appointments/%d/cancel", appt.ID), gin.H{
		"cancellation_reason": "patient request",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPatch, fmt.Sprintf("/api/appointments/%d/cancel", appt.ID), nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/appointments/%d", appt.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/appointments/%d", appt.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
