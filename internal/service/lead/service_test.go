package lead

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository/memory"
	"github.com/synapsehq/synapse-api/pkg/errors"
)

func newTestService(t *testing.T) (*Service, int64) {
	t.Helper()

	patients := memory.NewPatientRepository()
	patient := &model.Patient{Name: "Ana Lima", Email: "ana@example.com", Phone: "11999990000"}
	require.NoError(t, patients.Create(context.Background(), patient))

	svc := NewService(memory.NewLeadRepository(), patients)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	}
	return svc, patient.ID
}

func newLead(t *testing.T, svc *Service) *model.Lead {
	t.Helper()
	lead, err := svc.Create(context.Background(), &model.CreateLeadRequest{
		Name:   "Bruno Costa",
		Email:  "bruno@example.com",
		Phone:  "11988887777",
		Source: "instagram",
	})
	require.NoError(t, err)
	return lead
}

func TestPipeline(t *testing.T) {
	ctx := context.Background()

	t.Run("new leads start as new", func(t *testing.T) {
		svc, _ := newTestService(t)
		lead := newLead(t, svc)
		assert.Equal(t, model.LeadStatusNew, lead.Status)
		assert.Equal(t, "instagram", lead.Source)
	})

	t.Run("mark contacted records notes", func(t *testing.T) {
		svc, _ := newTestService(t)
		lead := newLead(t, svc)

		updated, err := svc.MarkContacted(ctx, lead.ID, "called, asked for pricing")
		require.NoError(t, err)
		assert.Equal(t, model.LeadStatusContacted, updated.Status)
		assert.Equal(t, "called, asked for pricing", updated.Notes)
	})

	t.Run("mark lost records reason", func(t *testing.T) {
		svc, _ := newTestService(t)
		lead := newLead(t, svc)

		updated, err := svc.MarkLost(ctx, lead.ID, "chose another clinic")
		require.NoError(t, err)
		assert.Equal(t, model.LeadStatusLost, updated.Status)
		assert.Equal(t, "chose another clinic", updated.Notes)
	})

	t.Run("convert links the patient", func(t *testing.T) {
		svc, patientID := newTestService(t)
		lead := newLead(t, svc)

		converted, err := svc.ConvertToPatient(ctx, lead.ID, patientID)
		require.NoError(t, err)
		assert.Equal(t, model.LeadStatusConverted, converted.Status)
		require.NotNil(t, converted.ConvertedPatientID)
		assert.Equal(t, patientID, *converted.ConvertedPatientID)
		require.NotNil(t, converted.ConvertedAt)
		assert.Equal(t, 2026, converted.ConvertedAt.Year())
	})

	t.Run("convert twice is rejected", func(t *testing.T) {
		svc, patientID := newTestService(t)
		lead := newLead(t, svc)

		_, err := svc.ConvertToPatient(ctx, lead.ID, patientID)
		require.NoError(t, err)

		_, err = svc.ConvertToPatient(ctx, lead.ID, patientID)
		assert.True(t, errors.IsCode(err, errors.CodeBusinessRule))
	})

	t.Run("convert to unknown patient is rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		lead := newLead(t, svc)

		_, err := svc.ConvertToPatient(ctx, lead.ID, 999)
		assert.True(t, errors.IsCode(err, errors.CodeNotFound))

		fetched, err := svc.Get(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, model.LeadStatusNew, fetched.Status)
	})
}

func TestCRUD(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	lead := newLead(t, svc)

	name := "Bruno C. Costa"
	updated, err := svc.Update(ctx, lead.ID, &model.UpdateLeadRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, lead.ID))
	_, err = svc.Get(ctx, lead.ID)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}
