package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidLocation = errors.New("invalid location")

// Location is a position inside a named world.
type Location struct {
	World string  `json:"world"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
}

// String encodes the location as world:x:y:z:yaw:pitch.
func (l Location) String() string {
	return strings.Join([]string{
		l.World,
		strconv.FormatFloat(l.X, 'f', -1, 64),
		strconv.FormatFloat(l.Y, 'f', -1, 64),
		strconv.FormatFloat(l.Z, 'f', -1, 64),
		strconv.FormatFloat(float64(l.Yaw), 'f', -1, 32),
		strconv.FormatFloat(float64(l.Pitch), 'f', -1, 32),
	}, ":")
}

// ParseLocation decodes a location written by Location.String.
func ParseLocation(s string) (Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Location{}, fmt.Errorf("%w: empty", ErrInvalidLocation)
	}

	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return Location{}, fmt.Errorf("%w: expected 6 parts, got %d", ErrInvalidLocation, len(parts))
	}
	if parts[0] == "" {
		return Location{}, fmt.Errorf("%w: world name is empty", ErrInvalidLocation)
	}

	var coords [5]float64
	for i, p := range parts[1:] {
		bits := 64
		if i >= 3 {
			bits = 32
		}
		v, err := strconv.ParseFloat(p, bits)
		if err != nil {
			return Location{}, fmt.Errorf("%w: %q: %w", ErrInvalidLocation, p, err)
		}
		coords[i] = v
	}

	return Location{
		World: parts[0],
		X:     coords[0],
		Y:     coords[1],
		Z:     coords[2],
		Yaw:   float32(coords[3]),
		Pitch: float32(coords[4]),
	}, nil
}
