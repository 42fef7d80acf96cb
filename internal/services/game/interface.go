package game

import "context"

// Service defines the interface for game client operations
type Service interface {
	// RequestGameData creates a new game on the server with the caller as master
	RequestGameData(ctx context.Context, input *RequestGameDataInput) (*RequestGameDataOutput, error)

	// JoinGame joins an existing game using the token from its join link
	JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error)

	// GetGame fetches the current state of the session's game
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// StartRound starts the next debate round
	StartRound(ctx context.Context, input *StartRoundInput) (*StartRoundOutput, error)

	// GetRound fetches the latest round of the session's game
	GetRound(ctx context.Context, input *GetRoundInput) (*GetRoundOutput, error)

	// EndSession forgets the session stored for a profile
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)

	// ListSessions returns every stored session
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)
}
