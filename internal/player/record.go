package player

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pixil98/go-buildsystem/internal/game"
	"github.com/pixil98/go-buildsystem/internal/settings"
)

// Record is the persisted form of a BuildPlayer.
type Record struct {
	ID             uuid.UUID         `json:"id"`
	Settings       settings.Settings `json:"settings"`
	LogoutLocation string            `json:"logout_location,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (r *Record) Validate() error {
	if r.ID == uuid.Nil {
		return fmt.Errorf("id is required")
	}
	return nil
}

// Records returns a snapshot of every known player.
func (m *Manager) Records() []Record {
	m.mu.RLock()
	players := make([]*BuildPlayer, 0, len(m.players))
	for _, bp := range m.players {
		players = append(players, bp)
	}
	m.mu.RUnlock()

	out := make([]Record, 0, len(players))
	for _, bp := range players {
		out = append(out, bp.record())
	}
	return out
}

// Load registers persisted players. Invalid records are skipped and a
// malformed logout location is dropped. It returns the number loaded.
func (m *Manager) Load(records []Record) int {
	n := 0
	for i := range records {
		rec := records[i]
		if err := rec.Validate(); err != nil {
			slog.Warn("skipping invalid player record", "error", err)
			continue
		}

		bp := newBuildPlayer(rec.ID, rec.Settings)
		if rec.LogoutLocation != "" {
			loc, err := game.ParseLocation(rec.LogoutLocation)
			if err != nil {
				slog.Warn("dropping logout location", "player", rec.ID, "error", err)
			} else {
				bp.logout = &loc
			}
		}

		m.mu.Lock()
		m.players[rec.ID] = bp
		m.mu.Unlock()
		n++
	}
	return n
}
