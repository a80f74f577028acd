package email

import (
	"bytes"
	"fmt"
	"net/smtp"

	"github.com/Augustnerdaal/REALestate/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// Report is the content of a report e-mail
type Report struct {
	PropertyName string
	FileName     string
	Markdown     string
	HTML         string
}

// BuildReportEmail assembles the message: the HTML report as body, a
// plain-text fallback, and the Markdown attached
func BuildReportEmail(from, to string, r Report) (*email.Email, error) {
	e := email.NewEmail()
	e.From = from
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Property report: %s", r.PropertyName)
	e.Text = []byte(fmt.Sprintf(
		"Hello,\n\nAttached is the investment report for %s.\n\nBest regards,\nREALestate\n",
		r.PropertyName,
	))
	e.HTML = []byte(r.HTML)
	if _, err := e.Attach(bytes.NewReader([]byte(r.Markdown)), r.FileName, "text/markdown; charset=utf-8"); err != nil {
		return nil, fmt.Errorf("failed to attach report: %w", err)
	}
	return e, nil
}

// SendReport sends a rendered report to a single recipient
func (s *Sender) SendReport(to string, r Report) error {
	e, err := BuildReportEmail(s.cfg.SenderEmail, to, r)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send report to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
