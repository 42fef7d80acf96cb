package api

import (
	"net/http"
	"time"

	"github.com/KirkDiggler/standoff/internal/common/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is where the game server listens in development
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds a single request round trip
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader carries a per-request UUID for server-side tracing
	RequestIDHeader = "X-Request-ID"
)

// Config holds configuration for the HTTP client
type Config struct {
	// BaseURL of the game server. Defaults to DefaultBaseURL.
	BaseURL string

	// Timeout for each request. Ignored when HTTPClient is set.
	Timeout time.Duration

	// HTTPClient overrides the underlying client
	HTTPClient *http.Client

	// UUIDGenerator produces request IDs. Defaults to random UUIDs.
	UUIDGenerator uuid.UUID

	Logger *zap.Logger
}

// PostInput contains parameters for a POST request
type PostInput struct {
	// Endpoint is the path relative to the base URL, e.g. "game"
	Endpoint string

	// Payload is encoded as the JSON request body
	Payload any

	// SessionToken is sent as the session cookie when set
	SessionToken string
}

// GetInput contains parameters for a GET request
type GetInput struct {
	Endpoint string

	SessionToken string
}

// Response is a successful (2xx) response from the server
type Response struct {
	StatusCode int

	// Body is the decoded JSON body: map[string]any, []any, string, bool,
	// json.Number or nil. Numbers are kept as json.Number.
	Body any

	// SessionToken is the session cookie set by the response, if any
	SessionToken string
}
