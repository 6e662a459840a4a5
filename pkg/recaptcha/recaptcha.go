package recaptcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-agency-backend/internal/domain"
)

// ScoreThreshold is the minimum reCAPTCHA v3 score accepted as human.
const ScoreThreshold = 0.5

// Client verifies reCAPTCHA tokens against Google's siteverify endpoint.
type Client struct {
	secret     string
	verifyURL  string
	httpClient *http.Client
}

// NewClient creates a verification client. An empty secret produces an
// unconfigured client; callers are expected to check Configured and skip
// verification in that case.
func NewClient(secret, verifyURL string) *Client {
	return &Client{
		secret:    secret,
		verifyURL: verifyURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Configured reports whether a shared secret is available.
func (c *Client) Configured() bool {
	return c.secret != ""
}

// siteverifyResponse mirrors Google's verification payload.
type siteverifyResponse struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

// Verify submits the token for verification. A returned error means the
// check itself could not be completed (network, non-200, bad payload); a
// completed check with a failing verdict comes back as Passed == false.
func (c *Client) Verify(ctx context.Context, token string) (*domain.VerificationResult, error) {
	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("recaptcha: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recaptcha: verification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recaptcha: verification service returned status %d", resp.StatusCode)
	}

	var sv siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&sv); err != nil {
		return nil, fmt.Errorf("recaptcha: decode verification response: %w", err)
	}

	return &domain.VerificationResult{
		Passed:     sv.Success && sv.Score >= ScoreThreshold,
		Score:      sv.Score,
		Action:     sv.Action,
		ErrorCodes: sv.ErrorCodes,
	}, nil
}
