package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/standoff/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/standoff/internal/models"
)

// Repository defines the interface for session persistence between CLI runs
type Repository interface {
	// SaveSession persists a session under its profile, replacing any previous one
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves the session stored for a profile
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// DeleteSession removes the session stored for a profile
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// ListSessions retrieves every stored session
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)
}
