package commands

import (
	"github.com/pixil98/go-buildsystem/internal/game"
)

// ParsedArg represents a validated and parsed command argument.
type ParsedArg struct {
	Spec  *InputSpec
	Raw   string // Original player input
	Value any    // Parsed value: int for number, string for string
}

// CommandContext is what a running command sees.
type CommandContext struct {
	Actor   game.Player
	Command *Command
	Args    map[string]ParsedArg
}

// String returns the named input, or "" when it was not given.
func (cc *CommandContext) String(name string) string {
	arg, ok := cc.Args[name]
	if !ok {
		return ""
	}
	s, _ := arg.Value.(string)
	return s
}

// Int returns the named number input and whether it was given.
func (cc *CommandContext) Int(name string) (int, bool) {
	arg, ok := cc.Args[name]
	if !ok {
		return 0, false
	}
	n, ok := arg.Value.(int)
	return n, ok
}

// Has reports whether the named input was given.
func (cc *CommandContext) Has(name string) bool {
	_, ok := cc.Args[name]
	return ok
}
