package models

import (
	"time"
)

// DefaultProfile is used when no profile name is given
const DefaultProfile = "default"

// Session is the player's seat in a game, carried by the GAMESESSION cookie
type Session struct {
	// Profile is the local name the session is stored under
	Profile string

	// Token is the raw session token sent back to the server
	Token string

	// GameID is the game the session belongs to
	GameID int64

	// PlayerID is the player the session identifies
	PlayerID int64

	// IsMaster indicates the player created the game and can start rounds
	IsMaster bool

	// ExpiresAt is when the server stops accepting the token. Zero if the
	// token carries no expiry.
	ExpiresAt time.Time

	// SavedAt is when the session was stored locally
	SavedAt time.Time
}

// Expired reports whether the session is past its expiry at the given time
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.ExpiresAt.IsZero() {
		return false
	}

	return !now.Before(s.ExpiresAt)
}
