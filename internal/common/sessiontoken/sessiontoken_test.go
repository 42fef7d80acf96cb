package sessiontoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

type DecoderTestSuite struct {
	suite.Suite
	key       []byte
	expiresAt time.Time
	token     string
}

func TestDecoderTestSuite(t *testing.T) {
	suite.Run(t, new(DecoderTestSuite))
}

func (s *DecoderTestSuite) SetupTest() {
	s.key = []byte("test-signing-key")
	s.expiresAt = time.Date(2025, 4, 19, 15, 0, 0, 0, time.UTC)
	s.token = s.sign(s.key, &Claims{
		PlayerID: 4,
		GameID:   12,
		IsMaster: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.expiresAt),
		},
	})
}

func (s *DecoderTestSuite) sign(key []byte, claims *Claims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	s.Require().NoError(err)
	return token
}

func (s *DecoderTestSuite) TestDecodeUnverified() {
	session, err := New(nil).Decode(s.token)
	s.Require().NoError(err)

	s.Equal(s.token, session.Token)
	s.Equal(int64(12), session.GameID)
	s.Equal(int64(4), session.PlayerID)
	s.True(session.IsMaster)
	s.Equal(s.expiresAt, session.ExpiresAt)
}

func (s *DecoderTestSuite) TestDecodeVerified() {
	session, err := New(&Config{Key: s.key}).Decode(s.token)
	s.Require().NoError(err)
	s.Equal(int64(12), session.GameID)
}

func (s *DecoderTestSuite) TestDecodeExpiredTokenStillReturnsSession() {
	session, err := New(&Config{Key: s.key}).Decode(s.token)
	s.Require().NoError(err)
	s.True(session.Expired(s.expiresAt.Add(time.Second)))
	s.False(session.Expired(s.expiresAt.Add(-time.Second)))
}

func (s *DecoderTestSuite) TestDecodeWrongKey() {
	_, err := New(&Config{Key: []byte("other-key")}).Decode(s.token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *DecoderTestSuite) TestDecodeWithoutExpiry() {
	token := s.sign(s.key, &Claims{PlayerID: 1, GameID: 2})

	session, err := New(nil).Decode(token)
	s.Require().NoError(err)
	s.True(session.ExpiresAt.IsZero())
	s.False(session.Expired(time.Now()))
}

func (s *DecoderTestSuite) TestDecodeGarbage() {
	_, err := New(nil).Decode("not.a.token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *DecoderTestSuite) TestDecodeEmpty() {
	_, err := New(nil).Decode("")
	s.ErrorIs(err, ErrEmptyToken)
}
