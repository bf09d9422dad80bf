package game

import (
	"fmt"
	"strings"
)

type GameMode int

const (
	GameModeSurvival GameMode = iota
	GameModeCreative
	GameModeAdventure
	GameModeSpectator
)

var gameModeNames = map[GameMode]string{
	GameModeSurvival:  "survival",
	GameModeCreative:  "creative",
	GameModeAdventure: "adventure",
	GameModeSpectator: "spectator",
}

func (g GameMode) String() string {
	if s, ok := gameModeNames[g]; ok {
		return s
	}
	return fmt.Sprintf("gamemode(%d)", int(g))
}

func (g GameMode) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *GameMode) UnmarshalText(text []byte) error {
	for mode, name := range gameModeNames {
		if strings.EqualFold(name, string(text)) {
			*g = mode
			return nil
		}
	}
	return fmt.Errorf("unknown gamemode: %s", text)
}
