package mapper

import (
	"time"

	"github.com/KirkDiggler/standoff/internal/models"
)

var roundSchema = schema[models.Round]{
	intField(func(r *models.Round) *int64 { return &r.ID }, "id"),
	stringField(func(r *models.Round) *models.GameStatus { return &r.Status }, "status"),
	stringField(func(r *models.Round) *string { return &r.Statement }, "statement"),
	timeField(func(r *models.Round) *time.Time { return &r.CreatedAt }, "createdAt"),
	objectField(playerSchema, func(r *models.Round) **models.Player { return &r.PlayerFor }, "playerFor"),
	objectField(playerSchema, func(r *models.Round) **models.Player { return &r.PlayerAgainst }, "playerAgainst"),
	pairField(func(r *models.Round) *[2]int64 { return &r.VoteResults }, "voteResults"),
}

// RoundFromPlainObject maps a decoded JSON body onto a Round
func RoundFromPlainObject(raw any) (*models.Round, error) {
	return roundSchema.copy(raw)
}
