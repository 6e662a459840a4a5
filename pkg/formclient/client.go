package formclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"go-agency-backend/internal/domain"
)

// Status is the form's UI-facing submission state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

var (
	// ErrSubmissionInFlight is returned when Submit is called while a
	// previous submission has not finished.
	ErrSubmissionInFlight = errors.New("formclient: submission already in flight")
	// ErrValidation is returned when local validation fails; the field
	// errors are available via FieldErrors.
	ErrValidation = errors.New("formclient: validation failed")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minMessageLength = 10

// resetDelay is how long a terminal status is shown before the form returns
// to idle.
const defaultResetDelay = 5 * time.Second

// Fields holds the raw form input.
type Fields struct {
	Name    string
	Email   string
	Service string
	Message string
}

// Validate checks the form fields locally and returns a field-name to
// error-message mapping, empty when everything passes. It has no side
// effects.
func Validate(f Fields) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(f.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if f.Service == "" {
		errs["service"] = "Please select a service"
	} else if !knownService(f.Service) {
		errs["service"] = "Please select a service from the list"
	}
	if strings.TrimSpace(f.Message) == "" {
		errs["message"] = "Message is required"
	} else if len(strings.TrimSpace(f.Message)) < minMessageLength {
		errs["message"] = fmt.Sprintf("Message must be at least %d characters", minMessageLength)
	}

	return errs
}

func knownService(slug string) bool {
	for _, s := range domain.ServiceSlugs() {
		if s == slug {
			return true
		}
	}
	return false
}

// TokenSource produces a recaptcha token for a submission. Implementations
// wrap the browser-side widget or a test double.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is the form-side half of the contact pipeline: it validates input,
// acquires an anti-abuse token best-effort, posts the submission and tracks
// the idle/loading/success/error status with an automatic reset.
type Client struct {
	endpoint   string
	httpClient *http.Client
	tokens     TokenSource
	resetDelay time.Duration
	log        *slog.Logger

	mu          sync.Mutex
	fields      Fields
	fieldErrors map[string]string
	status      Status
	resetTimer  *time.Timer
}

// New creates a form client posting to the given submission endpoint.
// tokens may be nil when no recaptcha widget is available; submissions then
// go out without a token.
func New(endpoint string, tokens TokenSource, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		tokens:     tokens,
		resetDelay: defaultResetDelay,
		log:        log,
		status:     StatusIdle,
	}
}

// SetFields replaces the form input.
func (c *Client) SetFields(f Fields) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = f
}

// Fields returns the current form input.
func (c *Client) Fields() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// Status returns the current submission status.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// FieldErrors returns the validation errors from the last Submit attempt.
func (c *Client) FieldErrors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fieldErrors
}

// Submit runs the submission sequence: validate, acquire token, POST,
// interpret the response. Validation failures abort before any network
// call with ErrValidation. A second Submit while one is in flight returns
// ErrSubmissionInFlight. Network and decode failures are mapped onto the
// error status, never propagated.
func (c *Client) Submit(ctx context.Context) (*domain.SubmissionOutcome, error) {
	c.mu.Lock()
	if c.status == StatusLoading {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}

	fields := c.fields
	if errs := Validate(fields); len(errs) > 0 {
		c.fieldErrors = errs
		c.mu.Unlock()
		return nil, ErrValidation
	}

	c.fieldErrors = nil
	c.status = StatusLoading
	c.cancelResetLocked()
	c.mu.Unlock()

	outcome := c.send(ctx, fields)

	c.mu.Lock()
	if outcome.Success {
		c.status = StatusSuccess
		c.fields = Fields{}
	} else {
		c.status = StatusError
	}
	c.scheduleResetLocked()
	c.mu.Unlock()

	return outcome, nil
}

// send performs the network half of Submit. Every failure mode collapses
// into an unsuccessful outcome.
func (c *Client) send(ctx context.Context, fields Fields) *domain.SubmissionOutcome {
	token := ""
	if c.tokens != nil {
		t, err := c.tokens.Token(ctx)
		if err != nil {
			// Token acquisition is best-effort; the server degrades too
			c.log.Warn("recaptcha token unavailable, submitting without it", "error", err)
		} else {
			token = t
		}
	}

	payload, err := json.Marshal(domain.SubmissionRequest{
		Name:           fields.Name,
		Email:          fields.Email,
		Service:        fields.Service,
		Message:        fields.Message,
		RecaptchaToken: token,
	})
	if err != nil {
		return &domain.SubmissionOutcome{Success: false, Message: "Failed to prepare submission"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return &domain.SubmissionOutcome{Success: false, Message: "Failed to prepare submission"}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("contact submission failed", "error", err)
		return &domain.SubmissionOutcome{Success: false, Message: "Network error. Please try again."}
	}
	defer resp.Body.Close()

	var outcome domain.SubmissionOutcome
	if err := json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
		c.log.Error("contact response unreadable", "error", err)
		return &domain.SubmissionOutcome{Success: false, Message: "Unexpected server response. Please try again."}
	}

	// Non-2xx always means failure, whatever the body claims
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome.Success = false
	}
	return &outcome
}

// scheduleResetLocked arms the auto-reset so repeated failures never lock
// the form. Callers hold c.mu.
func (c *Client) scheduleResetLocked() {
	c.cancelResetLocked()
	c.resetTimer = time.AfterFunc(c.resetDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.status == StatusSuccess || c.status == StatusError {
			c.status = StatusIdle
		}
	})
}

func (c *Client) cancelResetLocked() {
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
}

// Close cancels any pending status reset. Call when the form is torn down.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelResetLocked()
}
