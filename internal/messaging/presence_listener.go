package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-buildsystem/internal/game"
	"github.com/pixil98/go-buildsystem/internal/host"
)

// SessionTracker is told when players come and go.
type SessionTracker interface {
	Join(p game.Player) error
	Leave(p game.Player)
}

// PresenceListener keeps the roster in line with presence events.
type PresenceListener struct {
	server   *NatsServer
	roster   *host.Roster
	sessions SessionTracker
}

func NewPresenceListener(server *NatsServer, roster *host.Roster, sessions SessionTracker) *PresenceListener {
	return &PresenceListener{
		server:   server,
		roster:   roster,
		sessions: sessions,
	}
}

func (l *PresenceListener) Start(ctx context.Context) error {
	if err := l.server.WaitReady(ctx); err != nil {
		return fmt.Errorf("waiting for bus before subscribing to presence: %w", err)
	}

	unsub, err := l.server.Subscribe(SubjectPresence, l.handle)
	if err != nil {
		return fmt.Errorf("subscribing to presence: %w", err)
	}
	defer unsub()

	slog.InfoContext(ctx, "listening for presence", "subject", SubjectPresence)
	<-ctx.Done()
	return nil
}

func (l *PresenceListener) handle(data []byte) {
	var ev Presence
	if err := json.Unmarshal(data, &ev); err != nil {
		slog.Warn("dropping malformed presence", "error", err)
		return
	}

	if !ev.Online {
		p, ok := l.roster.Player(ev.PlayerID)
		if !ok {
			return
		}
		l.roster.Leave(ev.PlayerID)
		l.sessions.Leave(p)
		slog.Info("player left", "player", p.Name())
		return
	}

	if _, ok := l.roster.Player(ev.PlayerID); ok {
		return
	}
	p := host.NewPlayer(ev.PlayerID, ev.Name)
	l.roster.Join(p)
	if err := l.sessions.Join(p); err != nil {
		slog.Error("starting session", "player", p.Name(), "error", err)
	}
	slog.Info("player joined", "player", p.Name())
}
