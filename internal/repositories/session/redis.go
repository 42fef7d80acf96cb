package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/standoff/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix = "session:"
	profilesKey      = "profiles"
)

// ErrSessionNotFound is returned when no session is stored for a profile
var ErrSessionNotFound = errors.New("session not found")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveSession persists a session to Redis. A session with an expiry is kept
// only until then.
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.Profile == "" {
		return errors.New("session profile cannot be empty")
	}

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := input.Session.ExpiresAt.Sub(input.Session.SavedAt)
	if input.Session.ExpiresAt.IsZero() || ttl < 0 {
		ttl = 0
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+input.Session.Profile, sessionJSON, ttl)
	pipe.SAdd(ctx, profilesKey, input.Session.Profile)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves the session for a profile from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.Profile == "" {
		return nil, errors.New("input and profile cannot be empty")
	}

	sessionJSON, err := r.client.Get(ctx, sessionKeyPrefix+input.Profile).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// DeleteSession removes the session for a profile from Redis
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.Profile == "" {
		return errors.New("input and profile cannot be empty")
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, sessionKeyPrefix+input.Profile)
	pipe.SRem(ctx, profilesKey, input.Profile)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if del.Val() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// ListSessions retrieves all stored sessions, sorted by profile
func (r *redisRepository) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	profiles, err := r.client.SMembers(ctx, profilesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}

	if len(profiles) == 0 {
		return &ListSessionsOutput{
			Sessions: []*models.Session{},
		}, nil
	}

	sort.Strings(profiles)

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(profiles))
	for i, profile := range profiles {
		cmds[i] = pipe.Get(ctx, sessionKeyPrefix+profile)
	}

	// redis.Nil from an expired session is expected here and handled below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(profiles))
	var expired []any
	for i, cmd := range cmds {
		sessionJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				expired = append(expired, profiles[i])
				continue
			}
			return nil, fmt.Errorf("failed to get session %s: %w", profiles[i], err)
		}

		var session models.Session
		if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", profiles[i], err)
		}

		sessions = append(sessions, &session)
	}

	if len(expired) > 0 {
		if err := r.client.SRem(ctx, profilesKey, expired...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune expired profiles: %w", err)
		}
	}

	return &ListSessionsOutput{
		Sessions: sessions,
	}, nil
}
