package display

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestFormat(t *testing.T) {
	tests := map[string]struct {
		text  string
		width int
		exp   string
	}{
		"short": {
			text:  "Teleported to lobby.",
			width: DefaultWidth,
			exp:   "» Teleported to lobby.",
		},
		"wrapped": {
			text:  "Builders of lobby: alex, sam",
			width: 20,
			exp:   "» Builders of lobby:\n» alex, sam",
		},
		"existing newlines": {
			text:  "one\ntwo",
			width: DefaultWidth,
			exp:   "» one\n» two",
		},
		"trimmed": {
			text:  "  done  ",
			width: DefaultWidth,
			exp:   "» done",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "formatted", Format(tt.text, tt.width), tt.exp)
		})
	}
}
