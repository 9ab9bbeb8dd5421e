package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/synapsehq/synapse-api/internal/config"
	"github.com/synapsehq/synapse-api/internal/email"
	"github.com/synapsehq/synapse-api/internal/handler"
	appointmentHandler "github.com/synapsehq/synapse-api/internal/handler/appointment"
	authHandler "github.com/synapsehq/synapse-api/internal/handler/auth"
	availabilityHandler "github.com/synapsehq/synapse-api/internal/handler/availability"
	clinicHandler "github.com/synapsehq/synapse-api/internal/handler/clinic"
	leadHandler "github.com/synapsehq/synapse-api/internal/handler/lead"
	patientHandler "github.com/synapsehq/synapse-api/internal/handler/patient"
	psychologistHandler "github.com/synapsehq/synapse-api/internal/handler/psychologist"
	"github.com/synapsehq/synapse-api/internal/middleware"
	"github.com/synapsehq/synapse-api/internal/repository"
	"github.com/synapsehq/synapse-api/internal/repository/memory"
	"github.com/synapsehq/synapse-api/internal/repository/postgres"
	"github.com/synapsehq/synapse-api/internal/router"
	"github.com/synapsehq/synapse-api/internal/seed"
	appointmentService "github.com/synapsehq/synapse-api/internal/service/appointment"
	authService "github.com/synapsehq/synapse-api/internal/service/auth"
	availabilityService "github.com/synapsehq/synapse-api/internal/service/availability"
	clinicService "github.com/synapsehq/synapse-api/internal/service/clinic"
	leadService "github.com/synapsehq/synapse-api/internal/service/lead"
	patientService "github.com/synapsehq/synapse-api/internal/service/patient"
	psychologistService "github.com/synapsehq/synapse-api/internal/service/psychologist"
	"github.com/synapsehq/synapse-api/internal/worker"
	"github.com/synapsehq/synapse-api/pkg/auth"
	"github.com/synapsehq/synapse-api/pkg/logger"
	"github.com/synapsehq/synapse-api/pkg/messaging"
	redisBroker "github.com/synapsehq/synapse-api/pkg/messaging/redis"
	"github.com/synapsehq/synapse-api/pkg/metrics"
	"github.com/synapsehq/synapse-api/pkg/security"
	"github.com/synapsehq/synapse-api/pkg/validator"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Output: os.Stdout,
		Pretty: cfg.Log.Pretty,
	})

	if err := validator.RegisterCustom(); err != nil {
		log.Fatal(err, "failed to register request validators")
	}

	repos, cleanup, err := buildRepositories(cfg, log)
	if err != nil {
		log.Fatal(err, "failed to initialize storage")
	}
	defer cleanup()

	hasher := security.NewBcryptHasher(0)
	if cfg.Seed.Enabled && cfg.Storage.Driver == config.StorageMemory {
		if err := seed.Load(context.Background(), repos, hasher, log); err != nil {
			log.Fatal(err, "failed to load seed data")
		}
	}

	var broker messaging.Broker
	if cfg.Redis.Enabled {
		broker, err = redisBroker.NewRedisBroker(cfg.Redis.ToBrokerConfig(), log.Zerolog())
		if err != nil {
			log.Fatal(err, "failed to connect to redis")
		}
		defer broker.Close()
	}

	var notifier email.Service = email.NewNoopService()
	if cfg.SMTP.Host != "" {
		notifier = email.NewSMTPService(cfg.SMTP)
	}

	m := metrics.NewMetrics("synapse")
	tokens := auth.NewJWTService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.ExpiryHours)*time.Hour)

	authSvc := authService.NewService(repos.Users, hasher, tokens)
	patientSvc := patientService.NewService(repos.Patients)
	psychologistSvc := psychologistService.NewService(repos.Psychologists)
	clinicSvc := clinicService.NewService(repos.Clinics)
	leadSvc := leadService.NewService(repos.Leads, repos.Patients)
	appointmentSvc := appointmentService.NewService(
		repos.Appointments, repos.Patients, repos.Psychologists, repos.Availabilities,
		notifier, broker, m, log,
	)
	availabilitySvc := availabilityService.NewService(repos.Availabilities, repos.Psychologists, appointmentSvc, log)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	reminders := worker.NewReminderWorker(repos.Appointments, repos.Patients, notifier, log, time.Hour)
	go reminders.Start(workerCtx)

	rateLimit := rate.Limit(0)
	if cfg.RateLimit.Enabled {
		rateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
	}

	r := router.New(
		router.Config{
			Mode:        cfg.Server.Mode,
			RateLimit:   rateLimit,
			RateBurst:   cfg.RateLimit.Burst,
			CORS:        middleware.DefaultCORSConfig(),
			RequireAuth: cfg.Auth.RequireAuth,
		},
		log,
		m,
		middleware.NewAuthMiddleware(tokens),
		handler.NewHealthHandler(version),
		authHandler.NewHandler(authSvc),
		[]router.Handler{
			patientHandler.NewHandler(patientSvc),
			psychologistHandler.NewHandler(psychologistSvc),
			clinicHandler.NewHandler(clinicSvc),
			leadHandler.NewHandler(leadSvc),
			availabilityHandler.NewHandler(availabilitySvc),
			appointmentHandler.NewHandler(appointmentSvc),
		},
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server listening", "port", cfg.Server.Port, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited")
}

// buildRepositories wires the storage backend selected in configuration.
func buildRepositories(cfg *config.Config, log *logger.Logger) (repository.Registry, func(), error) {
	if cfg.Storage.Driver == config.StoragePostgres {
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			return repository.Registry{}, nil, err
		}
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			db.Close()
			return repository.Registry{}, nil, err
		}
		var enc security.Encryptor
		if cfg.Storage.EncryptionKey != "" {
			enc, err = security.NewAESEncryptor([]byte(cfg.Storage.EncryptionKey))
			if err != nil {
				db.Close()
				return repository.Registry{}, nil, fmt.Errorf("invalid storage encryption key: %w", err)
			}
		}
		log.Info("using postgres storage", "host", cfg.Database.Host)
		return repository.Registry{
			Users:          postgres.NewUserRepository(db),
			Patients:       postgres.NewPatientRepository(db, enc),
			Psychologists:  postgres.NewPsychologistRepository(db),
			Clinics:        postgres.NewClinicRepository(db),
			Leads:          postgres.NewLeadRepository(db),
			Availabilities: postgres.NewAvailabilityRepository(db),
			Appointments:   postgres.NewAppointmentRepository(db),
		}, func() { db.Close() }, nil
	}

	return repository.Registry{
		Users:          memory.NewUserRepository(),
		Patients:       memory.NewPatientRepository(),
		Psychologists:  memory.NewPsychologistRepository(),
		Clinics:        memory.NewClinicRepository(),
		Leads:          memory.NewLeadRepository(),
		Availabilities: memory.NewAvailabilityRepository(),
		Appointments:   memory.NewAppointmentRepository(),
	}, func() {}, nil
}
