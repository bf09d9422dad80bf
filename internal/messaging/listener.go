package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-buildsystem/internal/game"
)

// WorldChangeApplier reacts to a player arriving in a world.
type WorldChangeApplier interface {
	ApplyWorldChange(p game.Player, destination string) error
}

// WorldChangeListener feeds world change events from the bus into the
// player session manager.
type WorldChangeListener struct {
	server  *NatsServer
	roster  game.Roster
	applier WorldChangeApplier
}

func NewWorldChangeListener(server *NatsServer, roster game.Roster, applier WorldChangeApplier) *WorldChangeListener {
	return &WorldChangeListener{
		server:  server,
		roster:  roster,
		applier: applier,
	}
}

func (l *WorldChangeListener) Start(ctx context.Context) error {
	if err := l.server.WaitReady(ctx); err != nil {
		return fmt.Errorf("waiting for bus before subscribing to world changes: %w", err)
	}

	unsub, err := l.server.Subscribe(SubjectWorldChange, l.handle)
	if err != nil {
		return fmt.Errorf("subscribing to world changes: %w", err)
	}
	defer unsub()

	slog.InfoContext(ctx, "listening for world changes", "subject", SubjectWorldChange)
	<-ctx.Done()
	return nil
}

func (l *WorldChangeListener) handle(data []byte) {
	var ev WorldChange
	if err := json.Unmarshal(data, &ev); err != nil {
		slog.Warn("dropping malformed world change", "error", err)
		return
	}

	p, ok := l.roster.Player(ev.PlayerID)
	if !ok {
		slog.Debug("world change for offline player", "player", ev.PlayerID)
		return
	}

	if err := l.applier.ApplyWorldChange(p, ev.World); err != nil {
		slog.Error("applying world change", "player", p.Name(), "world", ev.World, "error", err)
	}
}
