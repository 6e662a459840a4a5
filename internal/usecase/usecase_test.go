package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"go-agency-backend/internal/domain"
	"go-agency-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Collaborators

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, token string) (*domain.VerificationResult, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationResult), args.Error(1)
}

func (m *MockVerifier) Configured() bool {
	return m.Called().Bool(0)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, n domain.Notification) (string, error) {
	args := m.Called(ctx, n)
	return args.String(0), args.Error(1)
}

func (m *MockSender) IsConfigured() bool {
	return m.Called().Bool(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validRequest() *domain.SubmissionRequest {
	return &domain.SubmissionRequest{
		Name:    "Ana",
		Email:   "ana@example.com",
		Service: "webapp",
		Message: "I need a website built soon.",
	}
}

func TestSubmitValidation(t *testing.T) {
	verifier := new(MockVerifier)
	sender := new(MockSender)
	uc := usecase.NewContactUsecase(verifier, sender, testLogger())

	cases := []struct {
		name   string
		mutate func(*domain.SubmissionRequest)
	}{
		{"missing name", func(r *domain.SubmissionRequest) { r.Name = "" }},
		{"whitespace name", func(r *domain.SubmissionRequest) { r.Name = "   " }},
		{"missing email", func(r *domain.SubmissionRequest) { r.Email = "" }},
		{"missing message", func(r *domain.SubmissionRequest) { r.Message = "" }},
		{"whitespace message", func(r *domain.SubmissionRequest) { r.Message = "\t\n " }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)

			outcome, status := uc.Submit(context.Background(), req, "en")
			assert.Equal(t, http.StatusBadRequest, status)
			assert.False(t, outcome.Success)
			assert.NotEmpty(t, outcome.Message)
		})
	}

	// No collaborator is touched when validation fails
	verifier.AssertNotCalled(t, "Verify")
	sender.AssertNotCalled(t, "Send")
}

func TestSubmitDegradeToOpen(t *testing.T) {
	verifier := new(MockVerifier)
	sender := new(MockSender)
	uc := usecase.NewContactUsecase(verifier, sender, testLogger())

	// Secret unset: verification must be skipped regardless of token value
	verifier.On("Configured").Return(false)
	sender.On("IsConfigured").Return(true)
	sender.On("Send", mock.Anything, mock.Anything).Return("msg_abc123", nil)

	req := validRequest()
	req.RecaptchaToken = "some-token"

	outcome, status := uc.Submit(context.Background(), req, "en")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, outcome.Success)
	assert.Equal(t, "msg_abc123", outcome.EmailID)
	verifier.AssertNotCalled(t, "Verify")
}

func TestSubmitRecaptchaGate(t *testing.T) {
	t.Run("score below threshold returns 401", func(t *testing.T) {
		verifier := new(MockVerifier)
		sender := new(MockSender)
		uc := usecase.NewContactUsecase(verifier, sender, testLogger())

		verifier.On("Configured").Return(true)
		verifier.On("Verify", mock.Anything, "low-score-token").Return(&domain.VerificationResult{
			Passed: false,
			Score:  0.3,
		}, nil)

		req := validRequest()
		req.RecaptchaToken = "low-score-token"

		outcome, status := uc.Submit(context.Background(), req, "en")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.False(t, outcome.Success)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("remote rejection returns 401", func(t *testing.T) {
		verifier := new(MockVerifier)
		sender := new(MockSender)
		uc := usecase.NewContactUsecase(verifier, sender, testLogger())

		verifier.On("Configured").Return(true)
		verifier.On("Verify", mock.Anything, "rejected-token").Return(&domain.VerificationResult{
			Passed:     false,
			ErrorCodes: []string{"invalid-input-response"},
		}, nil)

		req := validRequest()
		req.RecaptchaToken = "rejected-token"

		_, status := uc.Submit(context.Background(), req, "en")
		assert.Equal(t, http.StatusUnauthorized, status)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("verification network failure returns 500", func(t *testing.T) {
		verifier := new(MockVerifier)
		sender := new(MockSender)
		uc := usecase.NewContactUsecase(verifier, sender, testLogger())

		verifier.On("Configured").Return(true)
		verifier.On("Verify", mock.Anything, "any-token").Return(nil, assert.AnError)

		req := validRequest()
		req.RecaptchaToken = "any-token"

		outcome, status := uc.Submit(context.Background(), req, "en")
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.False(t, outcome.Success)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("passing verification proceeds to dispatch", func(t *testing.T) {
		verifier := new(MockVerifier)
		sender := new(MockSender)
		uc := usecase.NewContactUsecase(verifier, sender, testLogger())

		verifier.On("Configured").Return(true)
		verifier.On("Verify", mock.Anything, "good-token").Return(&domain.VerificationResult{
			Passed: true,
			Score:  0.9,
		}, nil)
		sender.On("IsConfigured").Return(true)
		sender.On("Send", mock.Anything, mock.Anything).Return("msg_ok", nil)

		req := validRequest()
		req.RecaptchaToken = "good-token"

		outcome, status := uc.Submit(context.Background(), req, "en")
		assert.Equal(t, http.StatusOK, status)
		assert.True(t, outcome.Success)
		sender.AssertCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestSubmitDevModeFallback(t *testing.T) {
	verifier := new(MockVerifier)
	sender := new(MockSender)
	uc := usecase.NewContactUsecase(verifier, sender, testLogger())

	sender.On("IsConfigured").Return(false)

	outcome, status := uc.Submit(context.Background(), validRequest(), "en")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, outcome.Success)
	assert.Empty(t, outcome.EmailID)
	sender.AssertNotCalled(t, "Send")
}

func TestSubmitHappyPath(t *testing.T) {
	verifier := new(MockVerifier)
	sender := new(MockSender)
	uc := usecase.NewContactUsecase(verifier, sender, testLogger())

	sender.On("IsConfigured").Return(true)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Name == "Ana" &&
			n.Email == "ana@example.com" &&
			n.ServiceLabel == "Web Application" &&
			n.Message == "I need a website built soon."
	})).Return("msg_provider_id", nil)

	outcome, status := uc.Submit(context.Background(), validRequest(), "en")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, outcome.Success)
	assert.Equal(t, "msg_provider_id", outcome.EmailID)
}

func TestSubmitDispatchFailure(t *testing.T) {
	verifier := new(MockVerifier)
	sender := new(MockSender)
	uc := usecase.NewContactUsecase(verifier, sender, testLogger())

	sender.On("IsConfigured").Return(true)
	sender.On("Send", mock.Anything, mock.Anything).Return("", assert.AnError)

	outcome, status := uc.Submit(context.Background(), validRequest(), "en")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.False(t, outcome.Success)
	assert.Empty(t, outcome.EmailID)
}

func TestSubmitUnknownServiceFallsBackToRawValue(t *testing.T) {
	verifier := new(MockVerifier)
	sender := new(MockSender)
	uc := usecase.NewContactUsecase(verifier, sender, testLogger())

	sender.On("IsConfigured").Return(true)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.ServiceLabel == "something-custom"
	})).Return("msg_x", nil)

	req := validRequest()
	req.Service = "something-custom"

	_, status := uc.Submit(context.Background(), req, "en")
	assert.Equal(t, http.StatusOK, status)

	// Empty service resolves to the sentinel
	assert.Equal(t, "Not specified", domain.ServiceLabel(""))
}
