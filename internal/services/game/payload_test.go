package game

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePayload(t *testing.T) {
	payload := NormalizePayload("Ann", "30")

	require.Equal(t, &NewGamePayload{
		Player: PlayerPayload{Name: "Ann"},
		Game:   GameSettingsPayload{SecsPerRound: 30},
	}, payload)

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	require.JSONEq(t, `{"player":{"name":"Ann"},"game":{"secsPerRound":30}}`, string(body))
}

func TestNormalizePayload_NameUnchanged(t *testing.T) {
	for _, name := range []string{"", "  Ann  ", "Zoë 🎲", "<script>"} {
		require.Equal(t, name, NormalizePayload(name, "1").Player.Name)
	}
}

func TestNormalizePayload_NotANumber(t *testing.T) {
	payload := NormalizePayload("Ann", "thirty")
	require.True(t, math.IsNaN(payload.Game.SecsPerRound))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"30", 30},
		{" 30 ", 30},
		{"\t90\n", 90},
		{"", 0},
		{"   ", 0},
		{"+15", 15},
		{"-2.5", -2.5},
		{".5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"2E-1", 0.2},
		{"007", 7},
		{"0x1A", 26},
		{"0XfF", 255},
		{"0o17", 15},
		{"0b101", 5},
		{"Infinity", math.Inf(1)},
		{"+Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"1e400", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			require.Equal(t, tt.want, ParseNumber(tt.text))
		})
	}
}

func TestParseNumber_NaN(t *testing.T) {
	for _, text := range []string{
		"abc", "30s", "1,5", "1_000", "--1", "1-2", ".", "e5", "1e",
		"0x", "0xG", "0x-1", "0b2", "inf", "NaN", "infinity", "0x1p4",
	} {
		t.Run(text, func(t *testing.T) {
			require.True(t, math.IsNaN(ParseNumber(text)), "ParseNumber(%q) = %v", text, ParseNumber(text))
		})
	}
}
