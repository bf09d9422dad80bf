package world

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStatusToken     = errors.New("invalid status")
	ErrInvalidVisibilityToken = errors.New("invalid visibility")
	ErrInvalidTypeToken       = errors.New("invalid world type")
)

// Status is the lifecycle label of a world. Any status may move to any other.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusAlmostFinished
	StatusFinished
	StatusArchive
	StatusUnknown
)

var statusTokens = []string{
	StatusNotStarted:     "NOT_STARTED",
	StatusInProgress:     "IN_PROGRESS",
	StatusAlmostFinished: "ALMOST_FINISHED",
	StatusFinished:       "FINISHED",
	StatusArchive:        "ARCHIVE",
	StatusUnknown:        "UNKNOWN",
}

// Statuses returns every status in declaration order.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusAlmostFinished, StatusFinished, StatusArchive, StatusUnknown}
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusTokens) {
		return statusTokens[StatusUnknown]
	}
	return statusTokens[s]
}

// ParseStatus matches a status token case-insensitively.
func ParseStatus(str string) (Status, error) {
	for i, tok := range statusTokens {
		if strings.EqualFold(tok, strings.TrimSpace(str)) {
			return Status(i), nil
		}
	}
	return StatusUnknown, fmt.Errorf("%w: %q", ErrInvalidStatusToken, str)
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText never fails; unknown tokens become StatusUnknown.
func (s *Status) UnmarshalText(text []byte) error {
	*s, _ = ParseStatus(string(text))
	return nil
}

// Visibility decides which navigator a world is listed in.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityPrivate
)

func (v Visibility) String() string {
	if v == VisibilityPrivate {
		return "PRIVATE"
	}
	return "PUBLIC"
}

// ParseVisibility returns VisibilityPublic alongside an error for unknown tokens.
func ParseVisibility(str string) (Visibility, error) {
	switch strings.ToUpper(strings.TrimSpace(str)) {
	case "PUBLIC":
		return VisibilityPublic, nil
	case "PRIVATE":
		return VisibilityPrivate, nil
	default:
		return VisibilityPublic, fmt.Errorf("%w: %q", ErrInvalidVisibilityToken, str)
	}
}

func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Visibility) UnmarshalText(text []byte) error {
	*v, _ = ParseVisibility(string(text))
	return nil
}

// Type is how the backing world was generated.
type Type int

const (
	TypeNormal Type = iota
	TypeFlat
	TypeNether
	TypeEnd
	TypeVoid
	TypeCustom
	TypeTemplate
	TypeImported
	TypeUnknown
)

var typeTokens = []string{
	TypeNormal:   "NORMAL",
	TypeFlat:     "FLAT",
	TypeNether:   "NETHER",
	TypeEnd:      "END",
	TypeVoid:     "VOID",
	TypeCustom:   "CUSTOM",
	TypeTemplate: "TEMPLATE",
	TypeImported: "IMPORTED",
	TypeUnknown:  "UNKNOWN",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeTokens) {
		return typeTokens[TypeUnknown]
	}
	return typeTokens[t]
}

func ParseType(str string) (Type, error) {
	for i, tok := range typeTokens {
		if strings.EqualFold(tok, strings.TrimSpace(str)) {
			return Type(i), nil
		}
	}
	return TypeUnknown, fmt.Errorf("%w: %q", ErrInvalidTypeToken, str)
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	*t, _ = ParseType(string(text))
	return nil
}
