package email

import (
	"context"
	"testing"
	"time"

	"go-agency-backend/config"
	"go-agency-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotification() domain.Notification {
	return domain.Notification{
		Name:         "Ana",
		Email:        "ana@example.com",
		ServiceLabel: "Web Application",
		Message:      "I need a website built soon.",
		SubmittedAt:  time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC),
	}
}

func testService(apiKey string) *EmailService {
	return NewEmailService(&config.Config{
		ResendAPIKey:   apiKey,
		EmailFrom:      "noreply@codewave.agency",
		ContactEmailTo: "hello@codewave.agency",
		SiteURL:        "https://codewave.agency",
	})
}

func TestIsConfigured(t *testing.T) {
	assert.False(t, testService("").IsConfigured())
	assert.True(t, testService("re_test_key").IsConfigured())
}

func TestRenderingIsDeterministic(t *testing.T) {
	svc := testService("")
	n := testNotification()

	first, err := svc.renderHTML(n)
	require.NoError(t, err)
	second, err := svc.renderHTML(n)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same input and timestamp must render byte-identical HTML")

	assert.Equal(t, svc.renderText(n), svc.renderText(n))
}

func TestRenderHTMLContent(t *testing.T) {
	svc := testService("")
	html, err := svc.renderHTML(testNotification())
	require.NoError(t, err)

	assert.Contains(t, html, "Ana")
	assert.Contains(t, html, "ana@example.com")
	assert.Contains(t, html, "Web Application")
	assert.Contains(t, html, "I need a website built soon.")
	assert.Contains(t, html, "Saturday, 15 June 2024 at 14:30 UTC")
	assert.Contains(t, html, "https://codewave.agency")
}

func TestRenderHTMLEscapesInput(t *testing.T) {
	svc := testService("")
	n := testNotification()
	n.Message = `<script>alert("x")</script>`

	html, err := svc.renderHTML(n)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderText(t *testing.T) {
	svc := testService("")
	text := svc.renderText(testNotification())

	assert.Contains(t, text, "From: Ana (ana@example.com)")
	assert.Contains(t, text, "Service: Web Application")
	assert.Contains(t, text, "I need a website built soon.")
}

func TestSendUnconfigured(t *testing.T) {
	_, err := testService("").Send(context.Background(), testNotification())
	assert.Error(t, err)
}
