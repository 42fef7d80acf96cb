package models

// Player represents a participant in a game
type Player struct {
	// ID is the server-assigned identifier of the player
	ID int64

	// Name is the display name of the player
	Name string

	// Score is the player's current score in the game
	Score int64
}
