package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"

	"github.com/resend/resend-go/v3"

	"newshub/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, name string) error
	SendSecurityAlertEmail(ctx context.Context, toEmail, name, title, message string) error
	SendBanNoticeEmail(ctx context.Context, toEmail, name, reason string) error
}

// Sender is the part of the resend client the service needs.
type Sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type service struct {
	sender    Sender
	config    *config.Config
	templates map[string]*template.Template
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	return NewServiceWithSender(cfg, client.Emails)
}

func NewServiceWithSender(cfg *config.Config, sender Sender) Service {
	s := &service{
		sender:    sender,
		config:    cfg,
		templates: make(map[string]*template.Template),
	}
	for _, name := range []string{"welcome.html", "security_alert.html", "ban_notice.html"} {
		s.templates[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name))
	}
	return s
}

func (s *service) sendEmail(toEmail, subject, templateName string, data any) error {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return fmt.Errorf("unknown email template %q", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("NewsHub <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	if _, err := s.sender.Send(params); err != nil {
		log.Printf("[Email] send %q to %s failed: %v", subject, toEmail, err)
		return err
	}
	return nil
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Welcome to NewsHub",
		Name:  name,
		Link:  fmt.Sprintf("https://%s/login", s.config.Domain),
	}
	return s.sendEmail(toEmail, "Welcome to NewsHub!", "welcome.html", data)
}

func (s *service) SendSecurityAlertEmail(ctx context.Context, toEmail, name, title, message string) error {
	data := struct {
		Title   string
		Name    string
		Message string
		Link    string
	}{
		Title:   title,
		Name:    name,
		Message: message,
		Link:    fmt.Sprintf("https://%s/notifications", s.config.Domain),
	}
	return s.sendEmail(toEmail, "Security alert - NewsHub", "security_alert.html", data)
}

func (s *service) SendBanNoticeEmail(ctx context.Context, toEmail, name, reason string) error {
	data := struct {
		Title  string
		Name   string
		Reason string
	}{
		Title:  "Your account has been suspended",
		Name:   name,
		Reason: reason,
	}
	return s.sendEmail(toEmail, "Account suspended - NewsHub", "ban_notice.html", data)
}
