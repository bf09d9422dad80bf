package commands

import (
	"context"
	"fmt"
)

// InputType represents the type of a command input parameter.
type InputType string

const (
	InputTypeString InputType = "string" // Text input (single word if rest=false, multi-word if rest=true)
	InputTypeNumber InputType = "number" // Integer
)

// InputSpec defines an input parameter that a command accepts from user input.
type InputSpec struct {
	Name     string
	Type     InputType
	Required bool
	Rest     bool // If true, captures all remaining input
}

// CommandFunc runs a command whose inputs have already been parsed.
type CommandFunc func(ctx context.Context, cc *CommandContext) error

// Command is one player command.
type Command struct {
	Name       string
	Permission string
	// WorldInput names the input holding the target world. When set the
	// permission is checked against that world instead of globally.
	WorldInput string
	Inputs     []InputSpec
	Run        CommandFunc
}

// Usage renders the command line a player should type.
func (c *Command) Usage() string {
	usage := c.Name
	for _, in := range c.Inputs {
		name := in.Name
		if in.Rest {
			name += "..."
		}
		if in.Required {
			usage += " <" + name + ">"
		} else {
			usage += " [" + name + "]"
		}
	}
	return usage
}

func (c *Command) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("command name not set")
	}
	if c.Run == nil {
		return fmt.Errorf("command %q: run not set", c.Name)
	}

	seen := make(map[string]bool, len(c.Inputs))
	for i, input := range c.Inputs {
		if input.Name == "" {
			return fmt.Errorf("input %d: name is required", i)
		}
		if seen[input.Name] {
			return fmt.Errorf("input %q: declared twice", input.Name)
		}
		seen[input.Name] = true

		switch input.Type {
		case InputTypeString, InputTypeNumber:
		case "":
			return fmt.Errorf("input %q: type is required", input.Name)
		default:
			return fmt.Errorf("input %q: unknown type %q", input.Name, input.Type)
		}
		// Only the last input can have rest=true
		if input.Rest && i != len(c.Inputs)-1 {
			return fmt.Errorf("input %q: only the last input can have rest=true", input.Name)
		}
		if input.Required && i > 0 && !c.Inputs[i-1].Required {
			return fmt.Errorf("input %q: required input follows an optional one", input.Name)
		}
	}

	if c.WorldInput != "" && !seen[c.WorldInput] {
		return fmt.Errorf("world input %q does not exist in inputs", c.WorldInput)
	}

	return nil
}
