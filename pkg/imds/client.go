// Package imds is a minimal client for the EC2 Instance Metadata Service
// using the token-authenticated v2 protocol: a PUT to the token endpoint
// followed by GETs carrying the token in a header.
package imds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	tokenPath    = "/latest/api/token"
	metadataPath = "/latest/meta-data/"

	headerTokenTTL = "X-aws-ec2-metadata-token-ttl-seconds"
	headerToken    = "X-aws-ec2-metadata-token"
)

// Sentinel is returned in place of a metadata value when retrieval fails.
// It flows verbatim into generated content rather than aborting the run.
const Sentinel = "Unable to retrieve metadata"

// DefaultBaseURL is the link-local address of the metadata service.
const DefaultBaseURL = "http://169.254.169.254"

// Client queries the instance metadata service. Each call is a single
// attempt with no retries; the short timeout keeps a missing metadata
// service from stalling boot.
type Client struct {
	BaseURL  string
	TokenTTL time.Duration
	HTTP     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the metadata endpoint (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.BaseURL = strings.TrimRight(url, "/") }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTP.Timeout = d }
}

// WithTokenTTL overrides the requested token lifetime.
func WithTokenTTL(d time.Duration) Option {
	return func(c *Client) { c.TokenTTL = d }
}

// NewClient creates a Client with the standard endpoint, a 21600-second
// token TTL, and a 5-second timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		BaseURL:  DefaultBaseURL,
		TokenTTL: 21600 * time.Second,
		HTTP:     &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token obtains a session token from the metadata service.
func (c *Client) Token(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.BaseURL+tokenPath, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set(headerTokenTTL, fmt.Sprintf("%d", int(c.TokenTTL.Seconds())))

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	token := strings.TrimSpace(string(body))
	if token == "" {
		return "", errors.New("token endpoint returned an empty token")
	}
	return token, nil
}

// Get fetches a metadata value by path suffix, e.g. "instance-id" or
// "placement/availability-zone".
func (c *Client) Get(ctx context.Context, path string) (string, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return "", err
	}
	return c.getWithToken(ctx, token, path)
}

// GetOrSentinel fetches a metadata value, returning Sentinel instead of
// an error when retrieval fails.
func (c *Client) GetOrSentinel(ctx context.Context, path string) string {
	value, err := c.Get(ctx, path)
	if err != nil {
		return Sentinel
	}
	return value
}

func (c *Client) getWithToken(ctx context.Context, token, path string) (string, error) {
	url := c.BaseURL + metadataPath + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build metadata request: %w", err)
	}
	req.Header.Set(headerToken, token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("metadata request for %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("metadata request for %s returned status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read metadata value for %s: %w", path, err)
	}
	return strings.TrimSpace(string(body)), nil
}
