package settings

import (
	"encoding/json"
	"strings"
)

// NavigatorType selects which navigator a player opens.
type NavigatorType int

const (
	NavigatorOld NavigatorType = iota
	NavigatorNew
)

func (n NavigatorType) String() string {
	if n == NavigatorNew {
		return "NEW"
	}
	return "OLD"
}

func (n NavigatorType) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText never fails; unknown tokens become NavigatorOld.
func (n *NavigatorType) UnmarshalText(text []byte) error {
	if strings.EqualFold(strings.TrimSpace(string(text)), "NEW") {
		*n = NavigatorNew
	} else {
		*n = NavigatorOld
	}
	return nil
}

// DesignColor is the glass colour used to decorate menus.
type DesignColor int

const (
	ColorRed DesignColor = iota
	ColorOrange
	ColorYellow
	ColorPink
	ColorMagenta
	ColorPurple
	ColorBrown
	ColorLime
	ColorGreen
	ColorBlue
	ColorCyan
	ColorLightBlue
	ColorWhite
	ColorLightGray
	ColorGray
	ColorBlack
)

var colorTokens = []string{
	ColorRed:       "RED",
	ColorOrange:    "ORANGE",
	ColorYellow:    "YELLOW",
	ColorPink:      "PINK",
	ColorMagenta:   "MAGENTA",
	ColorPurple:    "PURPLE",
	ColorBrown:     "BROWN",
	ColorLime:      "LIME",
	ColorGreen:     "GREEN",
	ColorBlue:      "BLUE",
	ColorCyan:      "CYAN",
	ColorLightBlue: "LIGHT_BLUE",
	ColorWhite:     "WHITE",
	ColorLightGray: "LIGHT_GRAY",
	ColorGray:      "GRAY",
	ColorBlack:     "BLACK",
}

func (c DesignColor) String() string {
	if c < 0 || int(c) >= len(colorTokens) {
		return colorTokens[ColorBlack]
	}
	return colorTokens[c]
}

// ParseDesignColor falls back to ColorBlack for unknown tokens.
func ParseDesignColor(str string) (DesignColor, bool) {
	for i, tok := range colorTokens {
		if strings.EqualFold(tok, strings.TrimSpace(str)) {
			return DesignColor(i), true
		}
	}
	return ColorBlack, false
}

func (c DesignColor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *DesignColor) UnmarshalText(text []byte) error {
	*c, _ = ParseDesignColor(string(text))
	return nil
}

// Settings are one player's display and interaction preferences.
type Settings struct {
	NavigatorType NavigatorType `json:"type"`
	DesignColor   DesignColor   `json:"glass"`
	WorldSort     WorldSort     `json:"world_sort"`

	ClearInventory    bool `json:"clear_inventory"`
	DisableInteract   bool `json:"disable_interact"`
	HidePlayers       bool `json:"hide_players"`
	InstantPlaceSigns bool `json:"instant_place_signs"`
	KeepNavigator     bool `json:"keep_navigator"`
	NightVision       bool `json:"nightvision"`
	NoClip            bool `json:"no_clip"`
	PlacePlants       bool `json:"place_plants"`
	Scoreboard        bool `json:"scoreboard"`
	SlabBreaking      bool `json:"slab_breaking"`
	SpawnTeleport     bool `json:"spawn_teleport"`
	TrapDoor          bool `json:"trapdoor"`
}

// New returns the settings a player starts with.
func New() Settings {
	return Settings{
		NavigatorType: NavigatorOld,
		DesignColor:   ColorBlack,
		WorldSort:     SortNameAToZ,
		Scoreboard:    true,
		SpawnTeleport: true,
	}
}

// UnmarshalJSON starts from the defaults so that missing keys keep them.
func (s *Settings) UnmarshalJSON(b []byte) error {
	type alias Settings
	a := alias(New())
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*s = Settings(a)
	return nil
}

// Validate satisfies storage.ValidatingSpec.
func (s *Settings) Validate() error {
	return nil
}
