package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pixil98/go-buildsystem/internal/display"
	"github.com/pixil98/go-buildsystem/internal/game"
	"github.com/pixil98/go-buildsystem/internal/messages"
	"github.com/pixil98/go-buildsystem/internal/messaging"
	"github.com/pixil98/go-buildsystem/internal/navigator"
	"github.com/pixil98/go-buildsystem/internal/player"
	"github.com/pixil98/go-buildsystem/internal/spawn"
	"github.com/pixil98/go-buildsystem/internal/world"
)

// Notifier delivers text to a single player.
type Notifier interface {
	Notify(id uuid.UUID, msg string) error
}

// EventPublisher announces world changes to the rest of the process.
type EventPublisher interface {
	PublishWorldChange(ev messaging.WorldChange) error
}

// Deps are the collaborators commands act on.
type Deps struct {
	Worlds    *world.Registry
	Players   *player.Manager
	Projector *navigator.Projector
	Spawn     *spawn.Pointer
	Perms     game.Permissions
	Roster    game.Roster
	Messages  *messages.Catalog
	Notifier  Notifier
	Events    EventPublisher
}

type Handler struct {
	Deps
	commands map[string]*Command
}

func NewHandler(deps Deps) (*Handler, error) {
	h := &Handler{
		Deps:     deps,
		commands: make(map[string]*Command),
	}

	for _, c := range h.builtins() {
		if err := h.Register(c); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// Register adds a command. Names are matched case-insensitively.
func (h *Handler) Register(c *Command) error {
	if c == nil {
		return fmt.Errorf("command cannot be nil")
	}
	if err := c.Validate(); err != nil {
		return err
	}

	name := strings.ToLower(c.Name)
	if _, exists := h.commands[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}
	h.commands[name] = c
	return nil
}

// Dispatch runs a command line typed by actor. User errors are sent back to
// the actor and not returned.
func (h *Handler) Dispatch(ctx context.Context, actor game.Player, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	err := h.Exec(ctx, actor, fields[0], fields[1:]...)

	var ue *UserError
	if errors.As(err, &ue) {
		h.send(actor.ID(), ue.Message)
		return nil
	}
	return err
}

// Exec executes a command with the given arguments.
func (h *Handler) Exec(ctx context.Context, actor game.Player, name string, rawArgs ...string) error {
	c, ok := h.commands[strings.ToLower(name)]
	if !ok {
		return NewUserError(h.Messages.Render("unknown_command", map[string]any{"Name": name}))
	}

	args, err := h.parseArgs(c, rawArgs)
	if err != nil {
		return err
	}

	cc := &CommandContext{Actor: actor, Command: c, Args: args}
	if !h.permitted(cc) {
		return wrapUserError(h.Messages.Render("no_permission", nil), ErrPermissionDenied)
	}

	slog.DebugContext(ctx, "running command", "player", actor.Name(), "command", c.Name)
	return c.Run(ctx, cc)
}

func (h *Handler) permitted(cc *CommandContext) bool {
	c := cc.Command
	if c.Permission == "" {
		return true
	}
	if c.WorldInput != "" {
		return h.Worlds.IsPermitted(cc.Actor.ID(), c.Permission, cc.String(c.WorldInput))
	}
	id := cc.Actor.ID()
	return h.Perms.HasCapability(id, game.AdminPermission) || h.Perms.HasCapability(id, c.Permission)
}

// parseArgs validates rawArgs against the command's inputs.
func (h *Handler) parseArgs(c *Command, rawArgs []string) (map[string]ParsedArg, error) {
	specs := c.Inputs
	usage := func() error {
		return NewUserError(h.Messages.Render("usage", map[string]any{"Usage": c.Usage()}))
	}

	// If no rest param, check we don't have too many args
	hasRest := len(specs) > 0 && specs[len(specs)-1].Rest
	if !hasRest && len(rawArgs) > len(specs) {
		return nil, usage()
	}

	args := make(map[string]ParsedArg, len(specs))
	argIndex := 0

	for i := range specs {
		spec := &specs[i]

		if argIndex >= len(rawArgs) {
			// No more input - this param must be optional
			if spec.Required {
				return nil, usage()
			}
			continue
		}

		var raw string
		if spec.Rest {
			// Consume all remaining args joined with spaces
			raw = strings.Join(rawArgs[argIndex:], " ")
			argIndex = len(rawArgs)
		} else {
			raw = rawArgs[argIndex]
			argIndex++
		}

		value, err := h.parseValue(spec.Type, raw)
		if err != nil {
			return nil, err
		}

		args[spec.Name] = ParsedArg{
			Spec:  spec,
			Raw:   raw,
			Value: value,
		}
	}

	return args, nil
}

// parseValue parses a raw string into the appropriate type.
func (h *Handler) parseValue(inputType InputType, raw string) (any, error) {
	switch inputType {
	case InputTypeString:
		return raw, nil

	case InputTypeNumber:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, NewUserError(fmt.Sprintf("%q is not a valid number.", raw))
		}
		return n, nil

	default:
		return nil, fmt.Errorf("unknown parameter type %q", inputType)
	}
}

// reply renders message key and sends it to the actor.
func (h *Handler) reply(cc *CommandContext, key string, data any) {
	h.send(cc.Actor.ID(), h.Messages.Render(key, data))
}

// fail builds the user error for message key.
func (h *Handler) fail(key string, data any, err error) error {
	return wrapUserError(h.Messages.Render(key, data), err)
}

func (h *Handler) send(id uuid.UUID, msg string) {
	if h.Notifier == nil {
		return
	}
	if err := h.Notifier.Notify(id, display.Format(msg, display.DefaultWidth)); err != nil {
		slog.Warn("notifying player", "player", id, "error", err)
	}
}
