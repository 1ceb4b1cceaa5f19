package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HealthPath is the server's liveness endpoint.
const HealthPath = "/health"

// HealthError reports an unexpected liveness answer.
type HealthError struct {
	StatusCode int
	Body       string
}

func (e *HealthError) Error() string {
	return fmt.Sprintf("health check returned %d: %s", e.StatusCode, e.Body)
}

// HTTPClient returns the client CheckHealth should use for o.
func HTTPClient(o Options) *http.Client {
	if !o.InsecureSkipVerify {
		return http.DefaultClient
	}
	return &http.Client{Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}}}
}

// CheckHealth issues GET /health against the server at baseURL.
func CheckHealth(ctx context.Context, client *http.Client, baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	u.Path = HealthPath
	u.RawQuery = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &HealthError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return nil
}
