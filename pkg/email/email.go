package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go-agency-backend/config"
	"go-agency-backend/internal/domain"

	"github.com/resend/resend-go/v2"
)

// EmailService dispatches contact notifications through Resend.
type EmailService struct {
	client    *resend.Client
	apiKey    string
	fromEmail string
	toEmail   string
	siteURL   string
}

// NewEmailService creates the Resend-backed sender. With no API key the
// service stays unconfigured and the usecase falls back to logging.
func NewEmailService(cfg *config.Config) *EmailService {
	svc := &EmailService{
		apiKey:    cfg.ResendAPIKey,
		fromEmail: cfg.EmailFrom,
		toEmail:   cfg.ContactEmailTo,
		siteURL:   cfg.SiteURL,
	}
	if cfg.ResendAPIKey != "" {
		svc.client = resend.NewCustomClient(&http.Client{Timeout: 10 * time.Second}, cfg.ResendAPIKey)
	}
	return svc
}

// timestampLayout fixes the notification timestamp format; rendering the
// same submission with the same timestamp must be byte-identical.
const timestampLayout = "Monday, 2 January 2006 at 15:04 MST"

// notificationTemplate is the HTML body for contact notifications
var notificationTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #6d28d9; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .value { margin-top: 5px; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #6d28d9; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Contact Form Submission</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">From:</div>
                <div class="value">{{.Name}} ({{.Email}})</div>
            </div>
            <div class="field">
                <div class="label">Service:</div>
                <div class="value">{{.ServiceLabel}}</div>
            </div>
            <div class="field">
                <div class="label">Message:</div>
                <div class="message-box">{{.Message}}</div>
            </div>
            <div class="field">
                <div class="label">Received:</div>
                <div class="value">{{.Timestamp}}</div>
            </div>
        </div>
        <div class="footer">
            <p>This email was sent from the contact form at {{.SiteURL}}.</p>
            <p>To reply, send an email to: {{.Email}}</p>
        </div>
    </div>
</body>
</html>`))

type templateData struct {
	Name         string
	Email        string
	ServiceLabel string
	Message      string
	Timestamp    string
	SiteURL      string
}

// renderHTML produces the HTML notification body.
func (s *EmailService) renderHTML(n domain.Notification) (string, error) {
	var body bytes.Buffer
	err := notificationTemplate.Execute(&body, templateData{
		Name:         n.Name,
		Email:        n.Email,
		ServiceLabel: n.ServiceLabel,
		Message:      n.Message,
		Timestamp:    n.SubmittedAt.Format(timestampLayout),
		SiteURL:      s.siteURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// renderText produces the plain-text alternative for clients that strip HTML.
func (s *EmailService) renderText(n domain.Notification) string {
	return fmt.Sprintf(
		"New contact form submission\n\n"+
			"From: %s (%s)\n"+
			"Service: %s\n"+
			"Received: %s\n\n"+
			"Message:\n%s\n",
		n.Name,
		n.Email,
		n.ServiceLabel,
		n.SubmittedAt.Format(timestampLayout),
		n.Message,
	)
}

// Send renders and dispatches the notification, returning the provider's
// message id.
func (s *EmailService) Send(ctx context.Context, n domain.Notification) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("email service is not configured")
	}

	html, err := s.renderHTML(n)
	if err != nil {
		return "", err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Contact Form <%s>", s.fromEmail),
		To:      []string{s.toEmail},
		ReplyTo: n.Email,
		Subject: fmt.Sprintf("New project inquiry from %s", n.Name),
		Html:    html,
		Text:    s.renderText(n),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return sent.Id, nil
}

// IsConfigured checks if the email service has a Resend API key.
func (s *EmailService) IsConfigured() bool {
	return s.apiKey != ""
}
