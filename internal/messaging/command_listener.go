package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-buildsystem/internal/game"
)

// Dispatcher runs a command line on behalf of a player.
type Dispatcher interface {
	Dispatch(ctx context.Context, actor game.Player, line string) error
}

// CommandListener runs command lines published on the bus.
type CommandListener struct {
	server     *NatsServer
	roster     game.Roster
	dispatcher Dispatcher
}

func NewCommandListener(server *NatsServer, roster game.Roster, dispatcher Dispatcher) *CommandListener {
	return &CommandListener{
		server:     server,
		roster:     roster,
		dispatcher: dispatcher,
	}
}

func (l *CommandListener) Start(ctx context.Context) error {
	if err := l.server.WaitReady(ctx); err != nil {
		return fmt.Errorf("waiting for bus before subscribing to commands: %w", err)
	}

	unsub, err := l.server.Subscribe(SubjectCommand, func(data []byte) {
		l.handle(ctx, data)
	})
	if err != nil {
		return fmt.Errorf("subscribing to commands: %w", err)
	}
	defer unsub()

	slog.InfoContext(ctx, "listening for commands", "subject", SubjectCommand)
	<-ctx.Done()
	return nil
}

func (l *CommandListener) handle(ctx context.Context, data []byte) {
	var req CommandRequest
	if err := json.Unmarshal(data, &req); err != nil {
		slog.Warn("dropping malformed command", "error", err)
		return
	}

	p, ok := l.roster.Player(req.PlayerID)
	if !ok {
		slog.Debug("command from offline player", "player", req.PlayerID)
		return
	}

	if err := l.dispatcher.Dispatch(ctx, p, req.Line); err != nil {
		slog.Error("running command", "player", p.Name(), "line", req.Line, "error", err)
	}
}
