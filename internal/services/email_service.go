package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"probuild/internal/models"
)

// Notifier sends workflow notifications. Callers log failures and carry on.
type Notifier interface {
	JobStatusChanged(ctx context.Context, job *models.Job, client *models.Client, from, to string) error
	LeadConverted(ctx context.Context, lead *models.Lead, job *models.Job) error
}

type EmailSettings struct {
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	From          string
	OfficeAddress string
	DryRun        bool
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	office string
	dryRun bool
	send   func(m *gomail.Message) error
}

func NewEmailService(cfg EmailSettings) Notifier {
	s := &emailService{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.From,
		office: cfg.OfficeAddress,
		dryRun: cfg.DryRun,
	}
	s.send = func(m *gomail.Message) error { return s.dialer.DialAndSend(m) }
	return s
}

func (s *emailService) deliver(to, subject, body string) error {
	if s.dryRun {
		log.Info().Str("to", to).Str("subject", subject).Msg("email dry run")
		return nil
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	if err := s.send(m); err != nil {
		return fmt.Errorf("send %q: %w", subject, err)
	}
	return nil
}

func (s *emailService) JobStatusChanged(_ context.Context, job *models.Job, client *models.Client, from, to string) error {
	if client == nil || client.Email == "" {
		return nil
	}
	body := fmt.Sprintf(`
		<h3>Job %s update</h3>
		<p>Hello %s,</p>
		<p>Your job at %s has moved from <strong>%s</strong> to <strong>%s</strong>.</p>
	`, job.JobNumber, client.Name, job.SiteAddress, from, to)
	return s.deliver(client.Email, fmt.Sprintf("Job %s: %s", job.JobNumber, to), body)
}

func (s *emailService) LeadConverted(_ context.Context, lead *models.Lead, job *models.Job) error {
	if s.office == "" {
		return nil
	}
	body := fmt.Sprintf(`
		<h3>Lead #%d converted</h3>
		<p>Job <strong>%s</strong> was created for %s (%s, %.1f m).</p>
	`, lead.ID, job.JobNumber, job.SiteAddress, lead.FenceStyle, lead.FenceLength)
	return s.deliver(s.office, "New job "+job.JobNumber, body)
}
