package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig              GameError = "config cannot be nil"
	ErrNilAPIClient           GameError = "API client cannot be nil"
	ErrNilInput               GameError = "input cannot be nil"
	ErrInvalidSecondsPerRound GameError = "seconds per round is not a finite number"
	ErrEmptyJoinToken         GameError = "join token cannot be empty"
	ErrNoSessionRepo          GameError = "no session repository configured"
	ErrNoSession              GameError = "no session stored for profile"
	ErrSessionExpired         GameError = "session has expired"
	ErrNotGameMaster          GameError = "only the game master can start a round"
)
