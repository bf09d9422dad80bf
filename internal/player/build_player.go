package player

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-buildsystem/internal/game"
	"github.com/pixil98/go-buildsystem/internal/settings"
)

const (
	selectedNameMax  = 17
	selectedNameKeep = 14
)

// BuildPlayer is the session state kept for one player. mu is held for the
// whole of every multi-step change so no caller sees a half-applied update.
type BuildPlayer struct {
	mu sync.Mutex

	id       uuid.UUID
	settings settings.Settings

	archive   SessionCache
	buildMode SessionCache

	walkSpeed *float32
	flySpeed  *float32

	logout   *game.Location
	selected string
}

func newBuildPlayer(id uuid.UUID, s settings.Settings) *BuildPlayer {
	return &BuildPlayer{id: id, settings: s}
}

func (bp *BuildPlayer) ID() uuid.UUID {
	return bp.id
}

// Settings returns a copy of the player's settings.
func (bp *BuildPlayer) Settings() settings.Settings {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.settings
}

// ArchiveCached reports whether an archive snapshot is waiting to be restored.
func (bp *BuildPlayer) ArchiveCached() bool {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.archive.Cached()
}

// LogoutLocation returns where the player last logged out.
func (bp *BuildPlayer) LogoutLocation() (game.Location, bool) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.logout == nil {
		return game.Location{}, false
	}
	return *bp.logout, true
}

// SelectedWorld returns the world the player last picked in a menu.
func (bp *BuildPlayer) SelectedWorld() string {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.selected
}

// SelectedWorldName returns the selected world shortened for display.
func (bp *BuildPlayer) SelectedWorldName() string {
	name := []rune(bp.SelectedWorld())
	if len(name) > selectedNameMax {
		return string(name[:selectedNameKeep]) + "..."
	}
	return string(name)
}

func (bp *BuildPlayer) record() Record {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	rec := Record{ID: bp.id, Settings: bp.settings}
	if bp.logout != nil {
		rec.LogoutLocation = bp.logout.String()
	}
	return rec
}
