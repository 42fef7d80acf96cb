package session

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/standoff/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newSession(profile string, expiresIn time.Duration) *models.Session {
	session := &models.Session{
		Profile:  profile,
		Token:    "token-" + profile,
		GameID:   12,
		PlayerID: 4,
		IsMaster: true,
		SavedAt:  s.testNow,
	}
	if expiresIn > 0 {
		session.ExpiresAt = s.testNow.Add(expiresIn)
	}
	return session
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetSession() {
	session := s.newSession("ann", 3*time.Hour)

	err := s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: session})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetSession(s.ctx, &GetSessionInput{Profile: "ann"})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("ann", retrieved.Profile)
	s.Equal("token-ann", retrieved.Token)
	s.Equal(int64(12), retrieved.GameID)
	s.Equal(int64(4), retrieved.PlayerID)
	s.True(retrieved.IsMaster)
	s.True(session.ExpiresAt.Equal(retrieved.ExpiresAt))
	s.True(session.SavedAt.Equal(retrieved.SavedAt))

	s.Equal(3*time.Hour, s.mr.TTL(sessionKeyPrefix+"ann"))
}

func (s *RedisRepositoryTestSuite) TestSaveWithoutExpiryHasNoTTL() {
	err := s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: s.newSession("bob", 0)})
	s.Require().NoError(err)

	s.Equal(time.Duration(0), s.mr.TTL(sessionKeyPrefix+"bob"))
}

func (s *RedisRepositoryTestSuite) TestSessionExpires() {
	err := s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: s.newSession("ann", time.Minute)})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Minute)

	_, err = s.repo.GetSession(s.ctx, &GetSessionInput{Profile: "ann"})
	s.Equal(ErrSessionNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestSaveReplacesSession() {
	first := s.newSession("ann", 0)
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: first}))

	second := s.newSession("ann", 0)
	second.GameID = 99
	second.IsMaster = false
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: second}))

	retrieved, err := s.repo.GetSession(s.ctx, &GetSessionInput{Profile: "ann"})
	s.Require().NoError(err)
	s.Equal(int64(99), retrieved.GameID)
	s.False(retrieved.IsMaster)
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(s.ctx, &GetSessionInput{Profile: "nobody"})
	s.Equal(ErrSessionNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestDeleteSession() {
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: s.newSession("ann", 0)}))

	err := s.repo.DeleteSession(s.ctx, &DeleteSessionInput{Profile: "ann"})
	s.Require().NoError(err)

	_, err = s.repo.GetSession(s.ctx, &GetSessionInput{Profile: "ann"})
	s.Equal(ErrSessionNotFound, err)

	err = s.repo.DeleteSession(s.ctx, &DeleteSessionInput{Profile: "ann"})
	s.Equal(ErrSessionNotFound, err)

	result, err := s.repo.ListSessions(s.ctx, &ListSessionsInput{})
	s.Require().NoError(err)
	s.Len(result.Sessions, 0)
}

func (s *RedisRepositoryTestSuite) TestListSessions() {
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: s.newSession("cat", 0)}))
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: s.newSession("ann", time.Minute)}))
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: s.newSession("bob", time.Hour)}))

	result, err := s.repo.ListSessions(s.ctx, &ListSessionsInput{})
	s.Require().NoError(err)
	s.Require().Len(result.Sessions, 3)
	s.Equal("ann", result.Sessions[0].Profile)
	s.Equal("bob", result.Sessions[1].Profile)
	s.Equal("cat", result.Sessions[2].Profile)

	// ann's session lapses and is pruned from the profile set
	s.mr.FastForward(2 * time.Minute)

	result, err = s.repo.ListSessions(s.ctx, &ListSessionsInput{})
	s.Require().NoError(err)
	s.Require().Len(result.Sessions, 2)
	s.Equal("bob", result.Sessions[0].Profile)
	s.Equal("cat", result.Sessions[1].Profile)

	members, err := s.mr.SMembers(profilesKey)
	s.Require().NoError(err)
	s.Equal([]string{"bob", "cat"}, members)
}

func (s *RedisRepositoryTestSuite) TestSaveSessionValidation() {
	s.Error(s.repo.SaveSession(s.ctx, nil))
	s.Error(s.repo.SaveSession(s.ctx, &SaveSessionInput{}))
	s.Error(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: &models.Session{}}))
}

func TestNewRedis_Validation(t *testing.T) {
	if _, err := NewRedis(nil); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := NewRedis(&Config{}); err == nil {
		t.Error("expected error for nil redis client")
	}
}
