package seed

import (
	"context"
	"fmt"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/repository"
	"github.com/synapsehq/synapse-api/pkg/logger"
	"github.com/synapsehq/synapse-api/pkg/security"
)

// Load populates the stores with a small demo dataset so the API is
// usable out of the box. Loading is skipped when users already exist.
func Load(ctx context.Context, repos repository.Registry, hasher security.PasswordHasher, log *logger.Logger) error {
	existing, err := repos.Users.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	password, err := hasher.Hash("synapse123")
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := []*model.User{
		{Name: "Ana Lima", Email: "ana@synapse.example", PasswordHash: password, UserType: model.UserTypePatient},
		{Name: "Dr. Helena Souza", Email: "helena@synapse.example", PasswordHash: password, UserType: model.UserTypePsychologist},
		{Name: "Dr. Rafael Nunes", Email: "rafael@synapse.example", PasswordHash: password, UserType: model.UserTypePsychologist},
		{Name: "Clínica Bem Estar", Email: "contato@bemestar.example", PasswordHash: password, UserType: model.UserTypeClinic},
	}
	for _, u := range users {
		if err := repos.Users.Create(ctx, u); err != nil {
			return err
		}
	}

	patients := []*model.Patient{
		{Name: "Ana Lima", Email: "ana@synapse.example", Phone: "11999990001"},
		{Name: "Bruno Costa", Email: "bruno@synapse.example", Phone: "11999990002"},
	}
	for _, p := range patients {
		if err := repos.Patients.Create(ctx, p); err != nil {
			return err
		}
	}

	psychologists := []*model.Psychologist{
		{
			UserID:     users[1].ID,
			Name:       "Dr. Helena Souza",
			CRP:        "06/12345",
			Specialty:  "Cognitive behavioral therapy",
			Themes:     []string{"anxiety", "depression"},
			Bio:        "15 years of clinical practice focused on anxiety disorders.",
			HourlyRate: 180,
			IsActive:   true,
		},
		{
			UserID:     users[2].ID,
			Name:       "Dr. Rafael Nunes",
			CRP:        "06/54321",
			Specialty:  "Psychoanalysis",
			Themes:     []string{"relationships", "grief"},
			Bio:        "Psychoanalyst working with adults and couples.",
			HourlyRate: 150,
			IsActive:   true,
		},
	}
	for _, p := range psychologists {
		if err := repos.Psychologists.Create(ctx, p); err != nil {
			return err
		}
	}

	// Weekday windows: mornings for both, afternoons for the first.
	for day := 0; day < 5; day++ {
		windows := []*model.AvailabilityWindow{
			{PsychologistID: psychologists[0].ID, DayOfWeek: day, StartTime: mustTime("09:00"), EndTime: mustTime("12:00"), IsActive: true},
			{PsychologistID: psychologists[0].ID, DayOfWeek: day, StartTime: mustTime("14:00"), EndTime: mustTime("18:00"), IsActive: true},
			{PsychologistID: psychologists[1].ID, DayOfWeek: day, StartTime: mustTime("08:00"), EndTime: mustTime("13:00"), IsActive: true},
		}
		for _, w := range windows {
			if err := repos.Availabilities.Create(ctx, w); err != nil {
				return err
			}
		}
	}

	clinic := &model.Clinic{
		UserID:  users[3].ID,
		Name:    "Clínica Bem Estar",
		Address: "Av. Paulista 1000, São Paulo",
		Phone:   "1133334444",
		Email:   "contato@bemestar.example",
	}
	if err := repos.Clinics.Create(ctx, clinic); err != nil {
		return err
	}

	leads := []*model.Lead{
		{Name: "Carla Dias", Email: "carla@example.com", Phone: "11988887777", Source: "instagram", Status: model.LeadStatusNew},
		{Name: "Diego Ramos", Email: "diego@example.com", Phone: "11977776666", Source: "referral", Status: model.LeadStatusNew},
	}
	for _, l := range leads {
		if err := repos.Leads.Create(ctx, l); err != nil {
			return err
		}
	}

	log.Info("seed data loaded",
		"users", len(users),
		"patients", len(patients),
		"psychologists", len(psychologists),
	)
	return nil
}

func mustTime(s string) model.TimeOfDay {
	t, err := model.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}
