package world

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestParseStatus(t *testing.T) {
	tests := map[string]struct {
		in     string
		exp    Status
		expErr bool
	}{
		"upper":   {in: "ARCHIVE", exp: StatusArchive},
		"lower":   {in: "in_progress", exp: StatusInProgress},
		"padded":  {in: " finished ", exp: StatusFinished},
		"unknown": {in: "DONE", exp: StatusUnknown, expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			testutil.AssertEqual(t, "status", got, tt.exp)
			testutil.AssertEqual(t, "error", errors.Is(err, ErrInvalidStatusToken), tt.expErr)
		})
	}
}

func TestVisibility_UnmarshalTextFallsBack(t *testing.T) {
	var v Visibility = VisibilityPrivate
	if err := v.UnmarshalText([]byte("nonsense")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "visibility", v, VisibilityPublic)

	if err := v.UnmarshalText([]byte("private")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "visibility", v, VisibilityPrivate)
}
