package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/pkg/errors"
)

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewPatientRepository()

	for i := 1; i <= 3; i++ {
		p := &model.Patient{Name: "P", Email: "p@example.com", Phone: "12345678"}
		require.NoError(t, repo.Create(ctx, p))
		assert.Equal(t, int64(i), p.ID)
		assert.False(t, p.CreatedAt.IsZero())
	}
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewPatientRepository()

	p := &model.Patient{Name: "Alice", Email: "alice@example.com", Phone: "12345678"}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	got.Name = "Mutated"

	again, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name, "mutating a fetched entity must not change stored state")
}

func TestUpdatePersistsChanges(t *testing.T) {
	ctx := context.Background()
	repo := NewPatientRepository()

	p := &model.Patient{Name: "Alice", Email: "alice@example.com", Phone: "12345678"}
	require.NoError(t, repo.Create(ctx, p))

	p.Name = "Alice B."
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", got.Name)
}

func TestNotFoundErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewPatientRepository()

	_, err := repo.Get(ctx, 99)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))

	err = repo.Update(ctx, &model.Patient{Base: model.Base{ID: 99}})
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))

	err = repo.Delete(ctx, 99)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository()

	names := []string{"first", "second", "third"}
	for _, n := range names {
		require.NoError(t, repo.Create(ctx, &model.Lead{Name: n, Email: n + "@x.com", Phone: "12345678", Source: "site", Status: model.LeadStatusNew}))
	}

	leads, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 3)
	for i, n := range names {
		assert.Equal(t, n, leads[i].Name)
	}

	require.NoError(t, repo.Delete(ctx, leads[1].ID))
	leads, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "first", leads[0].Name)
	assert.Equal(t, "third", leads[1].Name)
}

func TestAppointmentFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepository()

	monday, err := model.ParseDate("2026-03-02")
	require.NoError(t, err)
	tuesday, err := model.ParseDate("2026-03-03")
	require.NoError(t, err)
	ten, _ := model.ParseTimeOfDay("10:00")

	appts := []*model.Appointment{
		{PatientID: 1, PsychologistID: 1, Date: monday, Time: ten, DurationMinutes: 60, Status: model.AppointmentStatusScheduled},
		{PatientID: 2, PsychologistID: 1, Date: tuesday, Time: ten, DurationMinutes: 60, Status: model.AppointmentStatusScheduled},
		{PatientID: 1, PsychologistID: 2, Date: monday, Time: ten, DurationMinutes: 60, Status: model.AppointmentStatusScheduled},
	}
	for _, a := range appts {
		require.NoError(t, repo.Create(ctx, a))
	}

	byPatient, err := repo.ListByPatient(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byPatient, 2)

	byPsy, err := repo.ListByPsychologist(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byPsy, 2)

	forDay, err := repo.ListForDay(ctx, 1, monday)
	require.NoError(t, err)
	require.Len(t, forDay, 1)
	assert.Equal(t, int64(1), forDay[0].PatientID)
}

func TestUserGetByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, &model.User{Name: "Ana", Email: "ana@example.com", UserType: model.UserTypePatient}))

	u, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}
