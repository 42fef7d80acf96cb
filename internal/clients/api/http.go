package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/standoff/internal/common/sessiontoken"
	"github.com/KirkDiggler/standoff/internal/common/uuid"
	"go.uber.org/zap"
)

// httpClient implements the Client interface over net/http
type httpClient struct {
	baseURL string
	client  *http.Client
	uuid    uuid.UUID
	logger  *zap.Logger
}

// NewHTTP creates a new HTTP-backed API client
func NewHTTP(cfg *Config) (*httpClient, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrBadBaseURL
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.New()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		uuid:    gen,
		logger:  logger,
	}, nil
}

// Post sends a JSON-encoded payload to the endpoint
func (c *httpClient) Post(ctx context.Context, input *PostInput) (*Response, error) {
	if input == nil || input.Endpoint == "" {
		return nil, ErrEmptyEndpoint
	}

	body, err := json.Marshal(input.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return c.doRequest(ctx, http.MethodPost, input.Endpoint, bytes.NewReader(body), input.SessionToken)
}

// Get fetches the endpoint
func (c *httpClient) Get(ctx context.Context, input *GetInput) (*Response, error) {
	if input == nil || input.Endpoint == "" {
		return nil, ErrEmptyEndpoint
	}

	return c.doRequest(ctx, http.MethodGet, input.Endpoint, nil, input.SessionToken)
}

// doRequest performs one HTTP round trip and decodes the JSON response
func (c *httpClient) doRequest(ctx context.Context, method, endpoint string, body io.Reader, sessionToken string) (*Response, error) {
	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	requestID := c.uuid.NewUUID()

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: sessiontoken.CookieName, Value: sessionToken})
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("api request failed",
			zap.String("method", method),
			zap.String("url", target),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("url", target),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       raw,
		}
	}

	out := &Response{StatusCode: resp.StatusCode}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessiontoken.CookieName {
			out.SessionToken = cookie.Value
		}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&out.Body); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return out, nil
}
