package messaging

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/KirkDiggler/standoff/internal/clients/api"
	"github.com/KirkDiggler/standoff/internal/mapper"
	"github.com/KirkDiggler/standoff/internal/models"
	"github.com/KirkDiggler/standoff/internal/services/game"
)

// service implements the Service interface
type service struct {
	baseURL string
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	s := &service{}
	if config != nil {
		s.baseURL = strings.TrimRight(config.BaseURL, "/")
	}
	return s, nil
}

// GetGameSummaryMessage describes a game and its players
func (s *service) GetGameSummaryMessage(ctx context.Context, input *GetGameSummaryMessageInput) (*GetGameSummaryMessageOutput, error) {
	if input == nil || input.Game == nil {
		return nil, errors.New("input and game cannot be nil")
	}

	g := input.Game
	var b strings.Builder

	fmt.Fprintf(&b, "Game #%d (%s), %ds per round\n", g.ID, statusLabel(g.Status), g.SecondsPerRound)
	if g.JoinLink != "" {
		fmt.Fprintf(&b, "Join link: %s\n", s.absoluteLink(g.JoinLink))
	}

	if len(g.Players) == 0 {
		b.WriteString("No players yet")
	} else {
		fmt.Fprintf(&b, "Players (%d):", len(g.Players))
		for _, p := range g.Players {
			if p == nil {
				continue
			}
			fmt.Fprintf(&b, "\n  %-20s %d", p.Name, p.Score)
		}
	}

	return &GetGameSummaryMessageOutput{
		Message: b.String(),
	}, nil
}

// GetRoundMessage describes the latest round
func (s *service) GetRoundMessage(ctx context.Context, input *GetRoundMessageInput) (*GetRoundMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	r := input.Round
	if r == nil {
		return &GetRoundMessageOutput{
			Message: "No round has started yet",
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Round #%d (%s)\n", r.ID, statusLabel(r.Status))
	fmt.Fprintf(&b, "%q\n", r.Statement)
	fmt.Fprintf(&b, "For: %s  Against: %s\n", playerName(r.PlayerFor), playerName(r.PlayerAgainst))
	fmt.Fprintf(&b, "Votes: %d for, %d against", r.VoteResults[0], r.VoteResults[1])

	return &GetRoundMessageOutput{
		Message: b.String(),
	}, nil
}

// GetSessionMessage describes a stored session
func (s *service) GetSessionMessage(ctx context.Context, input *GetSessionMessageInput) (*GetSessionMessageOutput, error) {
	if input == nil || input.Session == nil {
		return nil, errors.New("input and session cannot be nil")
	}

	sess := input.Session
	role := "player"
	if sess.IsMaster {
		role = "master"
	}

	msg := fmt.Sprintf("%s: game #%d as player #%d (%s)", sess.Profile, sess.GameID, sess.PlayerID, role)

	switch {
	case sess.ExpiresAt.IsZero():
	case sess.Expired(input.Now):
		msg += ", expired"
	default:
		msg += fmt.Sprintf(", expires in %s", sess.ExpiresAt.Sub(input.Now).Round(time.Minute))
	}

	return &GetSessionMessageOutput{
		Message: msg,
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input and error cannot be nil")
	}

	var statusErr *api.StatusError
	var message string

	switch {
	case errors.Is(input.Err, game.ErrInvalidSecondsPerRound):
		message = "Seconds per round must be a number, like 90."
	case errors.Is(input.Err, game.ErrEmptyJoinToken):
		message = "A join token is needed to join a game."
	case errors.Is(input.Err, game.ErrNoSession):
		message = "You're not in a game yet. Create or join one first."
	case errors.Is(input.Err, game.ErrSessionExpired):
		message = "Your game session has expired. Join the game again to continue."
	case errors.Is(input.Err, game.ErrNotGameMaster):
		message = "Only the player who created the game can start a round."
	case errors.Is(input.Err, game.ErrNoSessionRepo):
		message = "Session storage is not available."
	case errors.Is(input.Err, mapper.ErrMalformedField), errors.Is(input.Err, mapper.ErrNotAnObject):
		message = "The server sent a response we couldn't understand."
	case errors.As(input.Err, &statusErr):
		message = statusMessage(statusErr)
	default:
		message = fmt.Sprintf("Something went wrong: %v", input.Err)
	}

	return &GetErrorMessageOutput{
		Message: message,
	}, nil
}

func statusMessage(err *api.StatusError) string {
	switch err.StatusCode {
	case http.StatusUnauthorized:
		return "The server rejected your session. Join the game again to continue."
	case http.StatusNotFound:
		return "That game could not be found. Check the join link."
	case http.StatusUnprocessableEntity:
		return "The server rejected the request. Check the name and round length."
	}
	return fmt.Sprintf("The server returned an error (%s).", err.Status)
}

func (s *service) absoluteLink(link string) string {
	if s.baseURL == "" || !strings.HasPrefix(link, "/") {
		return link
	}
	return s.baseURL + link
}

func statusLabel(status models.GameStatus) string {
	if status == "" {
		return "unknown"
	}
	return string(status)
}

func playerName(p *models.Player) string {
	if p == nil || p.Name == "" {
		return "?"
	}
	return p.Name
}
