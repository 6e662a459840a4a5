package domain

import (
	"context"
	"time"
)

// SubmissionRequest is the contact form payload. The recaptcha token is
// optional: when the widget fails to load client-side the submission still
// goes through and the server simply skips verification.
type SubmissionRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Service        string `json:"service" binding:"required"`
	Message        string `json:"message" binding:"required"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// SubmissionOutcome is returned to the client as the response body. EmailID
// is only present when the provider actually dispatched a message.
type SubmissionOutcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	EmailID string `json:"emailId,omitempty"`
}

// VerificationResult is the interpreted outcome of a recaptcha check.
// Passed is true only when the remote service reports success AND the score
// clears the human threshold.
type VerificationResult struct {
	Passed     bool
	Score      float64
	Action     string
	ErrorCodes []string
}

// Notification is the rendered-email input: one per submission, formatted
// deterministically from the request plus the submission timestamp.
type Notification struct {
	Name         string
	Email        string
	ServiceLabel string
	Message      string
	SubmittedAt  time.Time
}

// serviceLabels maps the form's service slugs to the labels shown in the
// notification email. Unknown slugs fall through to the raw value.
var serviceLabels = map[string]string{
	"landing":     "Landing Page",
	"webapp":      "Web Application",
	"ecommerce":   "E-commerce Store",
	"maintenance": "Maintenance & Support",
	"seo":         "SEO Optimization",
	"other":       "Other",
}

// ServiceNotSpecified is used when the form arrives without a service slug.
const ServiceNotSpecified = "Not specified"

// ServiceLabel resolves a service slug to its display label.
func ServiceLabel(slug string) string {
	if slug == "" {
		return ServiceNotSpecified
	}
	if label, ok := serviceLabels[slug]; ok {
		return label
	}
	return slug
}

// ServiceSlugs returns the known form slugs (used by the form client to
// validate the selection).
func ServiceSlugs() []string {
	slugs := make([]string, 0, len(serviceLabels))
	for slug := range serviceLabels {
		slugs = append(slugs, slug)
	}
	return slugs
}

// ContactUsecase processes a contact submission end to end and reports the
// outcome plus the HTTP status category it falls into.
type ContactUsecase interface {
	Submit(ctx context.Context, req *SubmissionRequest, lang string) (*SubmissionOutcome, int)
}

// TokenVerifier checks a recaptcha token against the remote verification
// service. Configured reports whether a secret is present; when it is not,
// callers skip verification entirely.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*VerificationResult, error)
	Configured() bool
}

// EmailSender dispatches the operator notification and returns the
// provider's message identifier.
type EmailSender interface {
	Send(ctx context.Context, n Notification) (string, error)
	IsConfigured() bool
}

// GeoResolver looks up the caller's country for default-language selection.
type GeoResolver interface {
	CountryCode(ctx context.Context, ip string) (string, error)
}
