package game

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"

	"github.com/KirkDiggler/standoff/internal/clients/api"
	"github.com/KirkDiggler/standoff/internal/common/clock"
	"github.com/KirkDiggler/standoff/internal/common/sessiontoken"
	"github.com/KirkDiggler/standoff/internal/mapper"
	"github.com/KirkDiggler/standoff/internal/models"
	sessionRepo "github.com/KirkDiggler/standoff/internal/repositories/session"
	"go.uber.org/zap"
)

const (
	gameEndpoint     = "game"
	joinEndpointRoot = "game/join/"
	roundEndpoint    = "game/round"
)

// service implements the Service interface
type service struct {
	client       api.Client
	sessionRepo  sessionRepo.Repository
	tokenDecoder sessiontoken.Decoder
	clock        clock.Clock
	logger       *zap.Logger
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.APIClient == nil {
		return nil, ErrNilAPIClient
	}

	svc := &service{
		client:       cfg.APIClient,
		sessionRepo:  cfg.SessionRepo,
		tokenDecoder: cfg.TokenDecoder,
		clock:        cfg.Clock,
		logger:       cfg.Logger,
	}

	if svc.tokenDecoder == nil {
		svc.tokenDecoder = sessiontoken.New(nil)
	}
	if svc.clock == nil {
		svc.clock = clock.New()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}

	return svc, nil
}

// RequestGameData creates a new game on the server with the caller as master
func (s *service) RequestGameData(ctx context.Context, input *RequestGameDataInput) (*RequestGameDataOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	payload := NormalizePayload(input.Name, input.SecondsPerRound)

	// NaN and ±Inf have no JSON encoding; refuse before anything is sent
	secs := payload.Game.SecsPerRound
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSecondsPerRound, input.SecondsPerRound)
	}

	resp, err := s.client.Post(ctx, &api.PostInput{
		Endpoint: gameEndpoint,
		Payload:  payload,
	})
	if err != nil {
		return nil, err
	}

	game, err := mapper.GameFromPlainObject(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to map game: %w", err)
	}

	s.logger.Info("game created",
		zap.Int64("game_id", game.ID),
		zap.String("status", string(game.Status)),
		zap.Int64("secs_per_round", game.SecondsPerRound))

	return &RequestGameDataOutput{
		Game:    game,
		Session: s.storeSession(ctx, input.Profile, resp.SessionToken),
	}, nil
}

// JoinGame joins an existing game using the token from its join link
func (s *service) JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.JoinToken == "" {
		return nil, ErrEmptyJoinToken
	}

	resp, err := s.client.Post(ctx, &api.PostInput{
		Endpoint: joinEndpointRoot + url.PathEscape(input.JoinToken),
		Payload: &NewPlayerPayload{
			Player: PlayerPayload{Name: input.Name},
		},
	})
	if err != nil {
		return nil, err
	}

	game, err := mapper.GameFromPlainObject(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to map game: %w", err)
	}

	s.logger.Info("game joined",
		zap.Int64("game_id", game.ID),
		zap.Int("players", len(game.Players)))

	return &JoinGameOutput{
		Game:    game,
		Session: s.storeSession(ctx, input.Profile, resp.SessionToken),
	}, nil
}

// GetGame fetches the current state of the session's game
func (s *service) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	session, err := s.loadSession(ctx, input.Profile)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Get(ctx, &api.GetInput{
		Endpoint:     gameEndpoint,
		SessionToken: session.Token,
	})
	if err != nil {
		return nil, err
	}

	game, err := mapper.GameFromPlainObject(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to map game: %w", err)
	}

	return &GetGameOutput{
		Game: game,
	}, nil
}

// StartRound starts the next debate round. Only the game master may do so.
func (s *service) StartRound(ctx context.Context, input *StartRoundInput) (*StartRoundOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	session, err := s.loadSession(ctx, input.Profile)
	if err != nil {
		return nil, err
	}

	if !session.IsMaster {
		return nil, ErrNotGameMaster
	}

	resp, err := s.client.Post(ctx, &api.PostInput{
		Endpoint:     roundEndpoint,
		Payload:      map[string]any{},
		SessionToken: session.Token,
	})
	if err != nil {
		return nil, err
	}

	round, err := mapper.RoundFromPlainObject(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to map round: %w", err)
	}

	s.logger.Info("round started",
		zap.Int64("game_id", session.GameID),
		zap.Int64("round_id", round.ID))

	return &StartRoundOutput{
		Round: round,
	}, nil
}

// GetRound fetches the latest round of the session's game
func (s *service) GetRound(ctx context.Context, input *GetRoundInput) (*GetRoundOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	session, err := s.loadSession(ctx, input.Profile)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Get(ctx, &api.GetInput{
		Endpoint:     roundEndpoint,
		SessionToken: session.Token,
	})
	if err != nil {
		return nil, err
	}

	// No round has been played yet
	if resp.Body == nil {
		return &GetRoundOutput{}, nil
	}

	round, err := mapper.RoundFromPlainObject(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to map round: %w", err)
	}

	return &GetRoundOutput{
		Round: round,
	}, nil
}

// EndSession forgets the session stored for a profile
func (s *service) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if s.sessionRepo == nil {
		return nil, ErrNoSessionRepo
	}

	err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
		Profile: profileOrDefault(input.Profile),
	})
	if errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return &EndSessionOutput{Removed: false}, nil
	}
	if err != nil {
		return nil, err
	}

	return &EndSessionOutput{Removed: true}, nil
}

// ListSessions returns every stored session
func (s *service) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	if s.sessionRepo == nil {
		return nil, ErrNoSessionRepo
	}

	result, err := s.sessionRepo.ListSessions(ctx, &sessionRepo.ListSessionsInput{})
	if err != nil {
		return nil, err
	}

	return &ListSessionsOutput{
		Sessions: result.Sessions,
	}, nil
}

// storeSession decodes the session cookie of a create or join response and
// saves it when a repository is configured. Failures are logged rather than
// returned: the game has already been created on the server by this point.
func (s *service) storeSession(ctx context.Context, profile, token string) *models.Session {
	if token == "" {
		s.logger.Warn("response carried no session cookie")
		return nil
	}

	session, err := s.tokenDecoder.Decode(token)
	if err != nil {
		s.logger.Warn("failed to decode session token", zap.Error(err))
		return nil
	}

	session.Profile = profileOrDefault(profile)
	session.SavedAt = s.clock.Now()

	if s.sessionRepo == nil {
		return session
	}

	err = s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	})
	if err != nil {
		s.logger.Error("failed to save session",
			zap.String("profile", session.Profile),
			zap.Error(err))
	}

	return session
}

// loadSession fetches the stored session for a profile and checks it has
// not expired
func (s *service) loadSession(ctx context.Context, profile string) (*models.Session, error) {
	if s.sessionRepo == nil {
		return nil, ErrNoSessionRepo
	}

	profile = profileOrDefault(profile)

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		Profile: profile,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoSession, profile)
		}
		return nil, err
	}

	if session.Expired(s.clock.Now()) {
		return nil, fmt.Errorf("%w: %s", ErrSessionExpired, profile)
	}

	return session, nil
}

func profileOrDefault(profile string) string {
	if profile == "" {
		return models.DefaultProfile
	}
	return profile
}
