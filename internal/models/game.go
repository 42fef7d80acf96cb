package models

import "strings"

// GameStatus represents the server-side state of a game or round
type GameStatus string

const (
	// GameStatusPending indicates a game is waiting for players to join
	GameStatusPending GameStatus = "pending"

	// GameStatusPlaying indicates a game or round is in progress
	GameStatusPlaying GameStatus = "playing"

	// GameStatusFinished indicates a game or round is over
	GameStatusFinished GameStatus = "finished"
)

// Game is a game session as reported by the server
type Game struct {
	// ID is the server-assigned identifier of the game
	ID int64

	// Status is the current state of the game. It is passed through as
	// received and not checked against the constants above.
	Status GameStatus

	// SecondsPerRound is how long each debate round lasts
	SecondsPerRound int64

	// JoinLink is the path other players use to join, e.g. /game/join/<token>
	JoinLink string

	// Players in the order the server sent them
	Players []*Player
}

// JoinToken returns the last path segment of the join link
func (g *Game) JoinToken() string {
	if g == nil {
		return ""
	}

	link := strings.TrimRight(g.JoinLink, "/")
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}

	return link
}
