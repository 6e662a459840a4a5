package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go-agency-backend/internal/domain"
	"go-agency-backend/internal/i18n"
)

type contactUsecase struct {
	verifier domain.TokenVerifier
	sender   domain.EmailSender
	log      *slog.Logger
	now      func() time.Time
}

// NewContactUsecase creates the contact submission pipeline. A nil logger
// falls back to slog's default.
func NewContactUsecase(verifier domain.TokenVerifier, sender domain.EmailSender, log *slog.Logger) domain.ContactUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &contactUsecase{
		verifier: verifier,
		sender:   sender,
		log:      log,
		now:      time.Now,
	}
}

// Submit runs the authoritative server-side pipeline: re-validate, enforce
// the recaptcha gate, format the notification and dispatch it. The returned
// status encodes the failure category; the outcome body always carries a
// localized message.
func (uc *contactUsecase) Submit(ctx context.Context, req *domain.SubmissionRequest, lang string) (*domain.SubmissionOutcome, int) {
	// Client-side validation is advisory only; required fields are
	// re-derived here.
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)
	if name == "" || email == "" || message == "" {
		return failure(lang, i18n.KeyMissingFields), http.StatusBadRequest
	}

	if req.RecaptchaToken != "" {
		if !uc.verifier.Configured() {
			// Degrade-to-open: environments without a secret stay functional.
			uc.log.Warn("recaptcha secret not configured, skipping verification")
		} else {
			result, err := uc.verifier.Verify(ctx, req.RecaptchaToken)
			if err != nil {
				uc.log.Error("recaptcha verification failed", "error", err)
				return failure(lang, i18n.KeyInternalError), http.StatusInternalServerError
			}
			if !result.Passed {
				uc.log.Warn("recaptcha rejected submission",
					"score", result.Score,
					"error_codes", result.ErrorCodes)
				return failure(lang, i18n.KeyRecaptchaFailed), http.StatusUnauthorized
			}
		}
	}

	notification := domain.Notification{
		Name:         name,
		Email:        email,
		ServiceLabel: domain.ServiceLabel(strings.TrimSpace(req.Service)),
		Message:      message,
		SubmittedAt:  uc.now(),
	}

	if !uc.sender.IsConfigured() {
		// No email credentials: log the submission so nothing is lost and
		// report success so local/staging environments keep working.
		uc.log.Info("email service not configured, logging submission instead",
			"name", notification.Name,
			"email", notification.Email,
			"service", notification.ServiceLabel,
			"message", notification.Message)
		return &domain.SubmissionOutcome{
			Success: true,
			Message: i18n.Message(lang, i18n.KeyReceivedDevMode),
		}, http.StatusOK
	}

	emailID, err := uc.sender.Send(ctx, notification)
	if err != nil {
		uc.log.Error("failed to dispatch contact notification", "error", err)
		return failure(lang, i18n.KeySendFailed), http.StatusInternalServerError
	}

	uc.log.Info("contact notification dispatched", "email_id", emailID)
	return &domain.SubmissionOutcome{
		Success: true,
		Message: i18n.Message(lang, i18n.KeySent),
		EmailID: emailID,
	}, http.StatusOK
}

func failure(lang, key string) *domain.SubmissionOutcome {
	return &domain.SubmissionOutcome{
		Success: false,
		Message: i18n.Message(lang, key),
	}
}
