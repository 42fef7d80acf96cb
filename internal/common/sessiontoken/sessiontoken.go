package sessiontoken

import (
	"errors"
	"fmt"

	"github.com/KirkDiggler/standoff/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_decoder.go github.com/KirkDiggler/standoff/internal/common/sessiontoken Decoder

// CookieName is the cookie the server sets after creating or joining a game
const CookieName = "GAMESESSION"

var (
	ErrEmptyToken   = errors.New("session token is empty")
	ErrInvalidToken = errors.New("session token is invalid")
)

// Decoder turns a raw session token into a Session
type Decoder interface {
	Decode(token string) (*models.Session, error)
}

// Claims mirrors the payload the server signs into the session token
type Claims struct {
	PlayerID int64 `json:"playerId"`
	GameID   int64 `json:"gameId"`
	IsMaster bool  `json:"isMaster"`
	jwt.RegisteredClaims
}

type Config struct {
	// Key verifies the HS256 signature. The server's secret is usually not
	// shared with clients, in which case the token is read unverified.
	Key []byte
}

type jwtDecoder struct {
	key    []byte
	parser *jwt.Parser
}

func New(cfg *Config) *jwtDecoder {
	d := &jwtDecoder{
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
	if cfg != nil {
		d.key = cfg.Key
	}
	return d
}

// Decode reads the session claims from token. Expiry is carried on the
// returned session rather than enforced here.
func (d *jwtDecoder) Decode(token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	claims := &Claims{}
	var err error
	if len(d.key) == 0 {
		_, _, err = d.parser.ParseUnverified(token, claims)
	} else {
		_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
			return d.key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	session := &models.Session{
		Token:    token,
		GameID:   claims.GameID,
		PlayerID: claims.PlayerID,
		IsMaster: claims.IsMaster,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}

	return session, nil
}
