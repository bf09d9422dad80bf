package player

import (
	"log/slog"

	"github.com/pixil98/go-buildsystem/internal/game"
)

// Join starts the session of p. A player whose logout world still exists is
// put back where they left.
func (m *Manager) Join(p game.Player) error {
	bp := m.GetOrCreate(p.ID())

	if loc, ok := bp.LogoutLocation(); ok {
		if _, known := m.worlds.Get(loc.World); known {
			m.worlds.EnsureLoaded(loc.World)
			p.SetFallDistance(0)
			p.Teleport(loc)
		} else {
			slog.Debug("logout world is gone", "player", p.Name(), "world", loc.World)
		}
	}

	return m.ApplyWorldChange(p, p.Location().World)
}

// Leave ends the session of p. Parked state is given back so that nothing is
// lost if the player never returns, and the current location is remembered.
func (m *Manager) Leave(p game.Player) {
	m.CloseNavigator(p)
	m.ExitBuildMode(p)

	bp := m.GetOrCreate(p.ID())
	bp.mu.Lock()
	bp.archive.restore(p)
	bp.mu.Unlock()

	m.SetLogoutLocation(p.ID(), p.Location())
}
