package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/synapsehq/synapse-api/internal/model"
)

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendAppointmentScheduled(ctx context.Context, patient *model.Patient, appt *model.Appointment) error {
	subject := "Appointment confirmed"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment on %s at %s has been scheduled.\n\nSynapse",
		patient.Name, appt.Date, appt.Time,
	)
	return s.send(ctx, patient.Email, subject, body)
}

func (s *smtpService) SendAppointmentCancelled(ctx context.Context, patient *model.Patient, appt *model.Appointment) error {
	subject := "Appointment cancelled"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment on %s at %s has been cancelled.\n\nSynapse",
		patient.Name, appt.Date, appt.Time,
	)
	if appt.CancellationReason != nil && *appt.CancellationReason != "" {
		body = fmt.Sprintf(
			"Hello %s,\n\nYour appointment on %s at %s has been cancelled.\nReason: %s\n\nSynapse",
			patient.Name, appt.Date, appt.Time, *appt.CancellationReason,
		)
	}
	return s.send(ctx, patient.Email, subject, body)
}

func (s *smtpService) SendCustom(ctx context.Context, to string, subject string, content string) error {
	return s.send(ctx, to, subject, content)
}

func (s *smtpService) send(ctx context.Context, to string, subject string, body string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
