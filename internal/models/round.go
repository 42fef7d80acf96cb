package models

import (
	"time"
)

// Round is a single debate between two players
type Round struct {
	ID int64

	Status GameStatus

	// Statement is the claim being debated
	Statement string

	CreatedAt time.Time

	// PlayerFor argues in favour of the statement
	PlayerFor *Player

	// PlayerAgainst argues against the statement
	PlayerAgainst *Player

	// VoteResults holds the votes for and against, in that order
	VoteResults [2]int64
}
