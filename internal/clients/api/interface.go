package api

//go:generate mockgen -package=mocks -destination=mocks/mock_client.go github.com/KirkDiggler/standoff/internal/clients/api Client

import "context"

// Client is the generic transport to the game server. Each call is a single
// attempt; failures are returned to the caller as is.
type Client interface {
	// Post sends input.Payload as JSON to the endpoint
	Post(ctx context.Context, input *PostInput) (*Response, error)

	// Get fetches the endpoint
	Get(ctx context.Context, input *GetInput) (*Response, error)
}
