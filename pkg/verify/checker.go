package verify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Checker runs verification checks against a base URL, normally the
// local web server on port 80.
type Checker struct {
	baseURL string
	client  *http.Client
}

// NewChecker creates a Checker for the given base URL.
func NewChecker(baseURL string, timeout time.Duration) *Checker {
	return &Checker{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// StatusCheck requests the root document and verifies the HTTP status
// code is 200.
func (c *Checker) StatusCheck(ctx context.Context) Check {
	check := Check{ID: IDHTTPStatus, Name: "HTTP status"}

	code, _, err := c.fetch(ctx)
	if err != nil {
		check.Status = StatusError
		check.Message = err.Error()
		return check
	}

	if code != http.StatusOK {
		check.Status = StatusFailed
		check.Message = fmt.Sprintf("expected status 200, got %d", code)
		return check
	}

	check.Status = StatusOK
	check.Message = "status 200"
	return check
}

// ContentCheck requests the root document and counts occurrences of
// marker in the body; at least one is required.
func (c *Checker) ContentCheck(ctx context.Context, marker string) Check {
	check := Check{ID: IDContent, Name: "Content marker"}

	_, body, err := c.fetch(ctx)
	if err != nil {
		check.Status = StatusError
		check.Message = err.Error()
		return check
	}

	count := strings.Count(body, marker)
	if count == 0 {
		check.Status = StatusFailed
		check.Message = fmt.Sprintf("marker %q not found in response", marker)
		return check
	}

	check.Status = StatusOK
	check.Message = fmt.Sprintf("marker %q found %d time(s)", marker, count)
	return check
}

// All runs every check and returns the results in order.
func (c *Checker) All(ctx context.Context, marker string) []Check {
	return []Check{
		c.StatusCheck(ctx),
		c.ContentCheck(ctx, marker),
	}
}

func (c *Checker) fetch(ctx context.Context) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return 0, "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, string(body), nil
}
