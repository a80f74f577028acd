package email

import (
	"errors"
	"io"
	"net/smtp"
	"strings"
	"testing"

	"github.com/Augustnerdaal/REALestate/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

var testReport = Report{
	PropertyName: "Fabriken 12",
	FileName:     "report_Fabriken_12.md",
	Markdown:     "# Property report: Fabriken 12\n",
	HTML:         "<h1>Property report: Fabriken 12</h1>",
}

func TestBuildReportEmail(t *testing.T) {
	e, err := BuildReportEmail("rapport@example.com", "owner@example.com", testReport)
	if err != nil {
		t.Fatalf("BuildReportEmail: %v", err)
	}
	if e.Subject != "Property report: Fabriken 12" {
		t.Errorf("Subject = %q", e.Subject)
	}
	if len(e.To) != 1 || e.To[0] != "owner@example.com" {
		t.Errorf("To = %v", e.To)
	}
	if len(e.Attachments) != 1 || e.Attachments[0].Filename != "report_Fabriken_12.md" {
		t.Fatalf("Attachments = %+v", e.Attachments)
	}
	raw, err := e.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !strings.Contains(string(raw), "text/html") {
		t.Error("message has no HTML part")
	}
}

func newTestSender(cfg *config.Config) *Sender {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewSender(cfg, log)
}

func TestSendReport(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.example.com", SMTPPort: "587", SMTPUsername: "u", SMTPPassword: "p", SenderEmail: "rapport@example.com"}
	s := newTestSender(cfg)

	var gotAddr string
	var gotAuth smtp.Auth
	var gotMail *email.Email
	s.send = func(e *email.Email, addr string, auth smtp.Auth) error {
		gotMail, gotAddr, gotAuth = e, addr, auth
		return nil
	}

	if err := s.SendReport("owner@example.com", testReport); err != nil {
		t.Fatalf("SendReport: %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	if gotAuth == nil {
		t.Error("no auth with a username configured")
	}
	if gotMail.From != "rapport@example.com" {
		t.Errorf("From = %q", gotMail.From)
	}
}

func TestSendReport_Failure(t *testing.T) {
	s := newTestSender(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: "25"})
	boom := errors.New("connection refused")
	s.send = func(*email.Email, string, smtp.Auth) error { return boom }

	if err := s.SendReport("owner@example.com", testReport); !errors.Is(err, boom) {
		t.Errorf("SendReport() error = %v, want %v", err, boom)
	}
}
