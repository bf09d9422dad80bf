package spawn

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/pixil98/go-buildsystem/internal/game"
	"github.com/pixil98/go-buildsystem/internal/world"
)

// Pointer is the optional server spawn.
type Pointer struct {
	mu     sync.RWMutex
	loc    *game.Location
	worlds *world.Registry
}

func NewPointer(worlds *world.Registry) *Pointer {
	return &Pointer{worlds: worlds}
}

// Set points the spawn at loc inside worldName.
func (p *Pointer) Set(worldName string, loc game.Location) {
	loc.World = worldName

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loc = &loc
}

func (p *Pointer) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loc = nil
}

// Get returns the spawn location if one is set.
func (p *Pointer) Get() (game.Location, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.loc == nil {
		return game.Location{}, false
	}
	return *p.loc, true
}

// InWorld reports whether the spawn lies in the named world.
func (p *Pointer) InWorld(name string) bool {
	loc, ok := p.Get()
	return ok && strings.EqualFold(loc.World, name)
}

// Teleport moves pl to the spawn. The backing world is asked to load but
// the move does not wait for it. It returns false when no spawn is set.
func (p *Pointer) Teleport(pl game.Player) bool {
	loc, ok := p.Get()
	if !ok {
		return false
	}

	if !p.worlds.EnsureLoaded(loc.World) {
		slog.Debug("spawn world not loaded yet", "world", loc.World)
	}
	pl.SetFallDistance(0)
	pl.Teleport(loc)
	return true
}

// Encode returns the persisted form of the spawn, empty when unset.
func (p *Pointer) Encode() string {
	loc, ok := p.Get()
	if !ok {
		return ""
	}
	return loc.String()
}

// Load restores an encoded spawn. A malformed value leaves the spawn unset.
// A world the registry does not know is registered as a placeholder.
func (p *Pointer) Load(encoded string) {
	if strings.TrimSpace(encoded) == "" {
		p.Clear()
		return
	}

	loc, err := game.ParseLocation(encoded)
	if err != nil {
		slog.Warn("ignoring malformed spawn", "value", encoded, "error", err)
		p.Clear()
		return
	}

	if _, err := p.worlds.EnsurePlaceholder(loc.World); err != nil {
		slog.Warn("registering spawn world", "world", loc.World, "error", err)
	}
	p.Set(loc.World, loc)
}

// Record is the persisted form of the spawn.
type Record struct {
	Location string `json:"location"`
}

// Validate satisfies storage.ValidatingSpec. Bad locations are handled by
// Load.
func (r *Record) Validate() error {
	return nil
}
