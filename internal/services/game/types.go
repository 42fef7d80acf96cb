package game

import (
	"github.com/KirkDiggler/standoff/internal/clients/api"
	"github.com/KirkDiggler/standoff/internal/common/clock"
	"github.com/KirkDiggler/standoff/internal/common/sessiontoken"
	"github.com/KirkDiggler/standoff/internal/models"
	sessionRepo "github.com/KirkDiggler/standoff/internal/repositories/session"
	"go.uber.org/zap"
)

// Config holds configuration for the game service
type Config struct {
	// APIClient sends requests to the game server
	APIClient api.Client

	// SessionRepo stores sessions between runs. Optional; without it the
	// session-scoped operations return ErrNoSessionRepo.
	SessionRepo sessionRepo.Repository

	// TokenDecoder reads session tokens. Defaults to an unverified decoder.
	TokenDecoder sessiontoken.Decoder

	// Clock is used to stamp and expire sessions. Defaults to the system clock.
	Clock clock.Clock

	Logger *zap.Logger
}

// RequestGameDataInput contains parameters for creating a new game
type RequestGameDataInput struct {
	// Name is the display name of the player creating the game
	Name string

	// SecondsPerRound is the round length as typed by the user
	SecondsPerRound string

	// Profile to store the resulting session under. Defaults to "default".
	Profile string
}

// RequestGameDataOutput contains the result of creating a new game
type RequestGameDataOutput struct {
	Game *models.Game

	// Session is nil when the server did not set a readable session cookie
	Session *models.Session
}

// JoinGameInput contains parameters for joining a game
type JoinGameInput struct {
	// JoinToken is the last segment of the game's join link
	JoinToken string

	// Name is the display name of the player joining
	Name string

	Profile string
}

// JoinGameOutput contains the result of joining a game
type JoinGameOutput struct {
	Game *models.Game

	Session *models.Session
}

type GetGameInput struct {
	Profile string
}

type GetGameOutput struct {
	Game *models.Game
}

type StartRoundInput struct {
	Profile string
}

type StartRoundOutput struct {
	Round *models.Round
}

type GetRoundInput struct {
	Profile string
}

// GetRoundOutput contains the latest round; Round is nil before the first
// round has started
type GetRoundOutput struct {
	Round *models.Round
}

type EndSessionInput struct {
	Profile string
}

type EndSessionOutput struct {
	// Removed is false when there was no session to remove
	Removed bool
}

type ListSessionsInput struct {
}

type ListSessionsOutput struct {
	Sessions []*models.Session
}
