package game

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// PlayerPayload names a player in create and join requests
type PlayerPayload struct {
	Name string `json:"name"`
}

// GameSettingsPayload carries the settings of a new game
type GameSettingsPayload struct {
	SecsPerRound float64 `json:"secsPerRound"`
}

// NewGamePayload is the body of a game creation request
type NewGamePayload struct {
	Player PlayerPayload       `json:"player"`
	Game   GameSettingsPayload `json:"game"`
}

// NewPlayerPayload is the body of a join request
type NewPlayerPayload struct {
	Player PlayerPayload `json:"player"`
}

// NormalizePayload builds the game creation body. name is passed through
// untouched and secondsPerRound is converted with ParseNumber, so text that
// is not a number yields NaN here.
func NormalizePayload(name, secondsPerRound string) *NewGamePayload {
	return &NewGamePayload{
		Player: PlayerPayload{Name: name},
		Game:   GameSettingsPayload{SecsPerRound: ParseNumber(secondsPerRound)},
	}
}

// ParseNumber converts user-typed text to a number the way a web form does:
// surrounding whitespace is ignored, blank text is 0, 0x/0o/0b prefixes
// select the base, "Infinity" is accepted and anything else that is not a
// plain decimal literal is NaN.
func ParseNumber(text string) float64 {
	s := strings.TrimFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})

	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		if base := prefixBase(s[1]); base != 0 {
			return parseInteger(s[2:], base)
		}
	}

	for _, r := range s {
		if !strings.ContainsRune("0123456789+-.eE", r) {
			return math.NaN()
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// out of range literals still produce ±Inf or 0, as expected
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}

	return f
}

func prefixBase(c byte) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

func parseInteger(digits string, base int) float64 {
	if strings.ContainsAny(digits, "+-_") {
		return math.NaN()
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}

	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}
