package geoip

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client resolves country codes from IP addresses via ipapi.co. It backs the
// default-language hint only; lookup failures never block anything.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CountryCode returns the ISO 3166-1 alpha-2 country code for the given IP.
// An empty ip resolves the caller's own address.
func (c *Client) CountryCode(ctx context.Context, ip string) (string, error) {
	endpoint := c.baseURL + "/country/"
	if ip != "" {
		endpoint = fmt.Sprintf("%s/%s/country/", c.baseURL, ip)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("geoip: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geoip: lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geoip: lookup returned status %d", resp.StatusCode)
	}

	// ipapi.co answers with the bare country code as text/plain
	body, err := io.ReadAll(io.LimitReader(resp.Body, 16))
	if err != nil {
		return "", fmt.Errorf("geoip: read response: %w", err)
	}

	country := strings.ToUpper(strings.TrimSpace(string(body)))
	if len(country) != 2 {
		return "", fmt.Errorf("geoip: unexpected country response %q", country)
	}
	return country, nil
}
