package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const HeaderCorrelationID = "X-Correlation-ID"

// TokenSource supplies the bearer credential for outbound calls and is told
// when a backend rejected it. The session store implements it; the client
// never touches the store beyond this interface.
type TokenSource interface {
	Token() string
	Invalidate()
}

// Client is the shared JSON-over-HTTP client all backend-facing components
// build on. One attempt per call, no retry: a failed user action stays failed
// until the user repeats it.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenSource
	log        *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log *slog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	return &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		tokens: tokens,
		log:    log,
	}, nil
}

// DoJSON issues a single request and decodes the JSON response into out when
// out is non-nil. Non-2xx statuses are mapped onto the package sentinels; a
// 401 additionally invalidates the session before the error is returned.
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	rel := &url.URL{Path: path, RawQuery: query.Encode()}
	u := c.baseURL.ResolveReference(rel)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderCorrelationID, uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if statusErr := errFromStatus(resp.StatusCode); statusErr != nil {
		if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil {
			c.log.Warn("backend rejected credential, invalidating session",
				"method", method, "path", path)
			c.tokens.Invalidate()
		}
		return fmt.Errorf("%s %s: %w", method, path, statusErr)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response for %s %s: %w", method, path, ErrBadPayload)
	}
	return nil
}
