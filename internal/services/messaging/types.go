package messaging

import (
	"time"

	"github.com/KirkDiggler/standoff/internal/models"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// BaseURL is prefixed to relative join links so they can be shared
	BaseURL string
}

// GetGameSummaryMessageInput contains parameters for a game summary
type GetGameSummaryMessageInput struct {
	Game *models.Game
}

type GetGameSummaryMessageOutput struct {
	Message string
}

// GetRoundMessageInput contains parameters for a round summary; a nil Round
// means no round has been played yet
type GetRoundMessageInput struct {
	Round *models.Round
}

type GetRoundMessageOutput struct {
	Message string
}

// GetSessionMessageInput contains parameters for a session summary
type GetSessionMessageInput struct {
	Session *models.Session

	// Now is used to report the time left on the session
	Now time.Time
}

type GetSessionMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	Err error
}

type GetErrorMessageOutput struct {
	Message string
}
