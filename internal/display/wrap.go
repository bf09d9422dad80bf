package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const (
	DefaultWidth = 80
	// Prefix starts every line sent to a player.
	Prefix = "» "
)

// Format word-wraps text so that every line, with Prefix in front, fits in
// width columns. ANSI escape sequences do not count towards the width.
func Format(text string, width int) string {
	inner := width - len([]rune(Prefix))
	if inner < 1 {
		inner = 1
	}

	lines := strings.Split(wordwrap.String(strings.TrimSpace(text), inner), "\n")
	for i, l := range lines {
		lines[i] = Prefix + strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
