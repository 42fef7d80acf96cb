package mapper

import (
	"github.com/KirkDiggler/standoff/internal/models"
)

var playerSchema = schema[models.Player]{
	intField(func(p *models.Player) *int64 { return &p.ID }, "id"),
	stringField(func(p *models.Player) *string { return &p.Name }, "name"),
	intField(func(p *models.Player) *int64 { return &p.Score }, "score"),
}

// The server sends "players"; older builds of the web client named the
// field "player", so both are accepted.
var gameSchema = schema[models.Game]{
	intField(func(g *models.Game) *int64 { return &g.ID }, "id"),
	stringField(func(g *models.Game) *models.GameStatus { return &g.Status }, "status"),
	intField(func(g *models.Game) *int64 { return &g.SecondsPerRound }, "secsPerRound"),
	stringField(func(g *models.Game) *string { return &g.JoinLink }, "joinLink"),
	listField(playerSchema, func(g *models.Game) *[]*models.Player { return &g.Players }, "players", "player"),
}

// GameFromPlainObject maps a decoded JSON body onto a Game. Only the known
// game and player fields are kept and raw is never modified.
func GameFromPlainObject(raw any) (*models.Game, error) {
	return gameSchema.copy(raw)
}

// PlayerFromPlainObject maps a decoded JSON object onto a Player
func PlayerFromPlainObject(raw any) (*models.Player, error) {
	return playerSchema.copy(raw)
}

// GameToPlainObject is the inverse of GameFromPlainObject. Nil players are
// skipped.
func GameToPlainObject(game *models.Game) map[string]any {
	if game == nil {
		return nil
	}

	obj := map[string]any{
		"id":           game.ID,
		"status":       string(game.Status),
		"secsPerRound": game.SecondsPerRound,
		"joinLink":     game.JoinLink,
	}

	if game.Players != nil {
		players := make([]any, 0, len(game.Players))
		for _, p := range game.Players {
			if p == nil {
				continue
			}
			players = append(players, PlayerToPlainObject(p))
		}
		obj["players"] = players
	}

	return obj
}

// PlayerToPlainObject is the inverse of PlayerFromPlainObject
func PlayerToPlainObject(player *models.Player) map[string]any {
	if player == nil {
		return nil
	}

	return map[string]any{
		"id":    player.ID,
		"name":  player.Name,
		"score": player.Score,
	}
}
