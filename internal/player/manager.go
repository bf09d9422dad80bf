package player

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-buildsystem/internal/game"
	"github.com/pixil98/go-buildsystem/internal/settings"
	"github.com/pixil98/go-buildsystem/internal/world"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidSpeed   = errors.New("speed must be between 1 and 5")
)

const (
	// Gold block placed at the centre of fresh void worlds so there is
	// something to stand on.
	markerX, markerY, markerZ = 0, 64, 0
	markerMaterial            = "GOLD_BLOCK"

	fullHealth     = 20
	fullSaturation = 20
)

// Manager owns the session state of every player and the derived
// cross-player facts (build mode, open navigators, creation quotas).
type Manager struct {
	mu        sync.RWMutex
	players   map[uuid.UUID]*BuildPlayer
	buildMode map[uuid.UUID]struct{}
	navigator map[uuid.UUID]struct{}

	worlds *world.Registry
	perms  game.Permissions
	engine game.Engine
	roster game.Roster

	limits        Limits
	archiveVanish bool
	voidBlock     bool
	navigatorItem game.Item
}

// NewManager creates a player manager.
func NewManager(worlds *world.Registry, perms game.Permissions, engine game.Engine, roster game.Roster, opts ...ManagerOpt) *Manager {
	m := &Manager{
		players:       map[uuid.UUID]*BuildPlayer{},
		buildMode:     map[uuid.UUID]struct{}{},
		navigator:     map[uuid.UUID]struct{}{},
		worlds:        worlds,
		perms:         perms,
		engine:        engine,
		roster:        roster,
		limits:        Limits{MaxPublicWorlds: -1, MaxPrivateWorlds: -1},
		voidBlock:     true,
		navigatorItem: game.NewItem("CLOCK", "Navigator"),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// GetOrCreate returns the state of id, creating it with default settings on
// first contact.
func (m *Manager) GetOrCreate(id uuid.UUID) *BuildPlayer {
	m.mu.RLock()
	bp, ok := m.players[id]
	m.mu.RUnlock()
	if ok {
		return bp
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if bp, ok := m.players[id]; ok {
		return bp
	}
	bp = newBuildPlayer(id, settings.New())
	m.players[id] = bp
	return bp
}

// Get returns the state of a player that has already been seen.
func (m *Manager) Get(id uuid.UUID) (*BuildPlayer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bp, ok := m.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	return bp, nil
}

// Settings returns a copy of the settings of id.
func (m *Manager) Settings(id uuid.UUID) settings.Settings {
	return m.GetOrCreate(id).Settings()
}

// UpdateSettings applies fn to a copy of the settings of id and stores the
// result only if fn succeeds.
func (m *Manager) UpdateSettings(id uuid.UUID, fn func(*settings.Settings) error) error {
	bp := m.GetOrCreate(id)

	bp.mu.Lock()
	defer bp.mu.Unlock()

	s := bp.settings
	if err := fn(&s); err != nil {
		return err
	}
	bp.settings = s
	return nil
}

// SelectWorld remembers the world the player is working on in menus.
func (m *Manager) SelectWorld(id uuid.UUID, name string) {
	bp := m.GetOrCreate(id)
	bp.mu.Lock()
	defer bp.mu.Unlock()
	bp.selected = name
}

func (m *Manager) SetLogoutLocation(id uuid.UUID, loc game.Location) {
	bp := m.GetOrCreate(id)
	bp.mu.Lock()
	defer bp.mu.Unlock()
	bp.logout = &loc
}

// EnterBuildMode adds id to the build mode set.
func (m *Manager) EnterBuildMode(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buildMode[id] = struct{}{}
}

// CacheBuildModeState parks the gamemode and inventory of p so that leaving
// build mode can give them back. An already parked state is kept.
func (m *Manager) CacheBuildModeState(p game.Player) {
	bp := m.GetOrCreate(p.ID())
	bp.mu.Lock()
	defer bp.mu.Unlock()
	bp.buildMode.save(capture(p, false))
}

// ExitBuildMode removes p from build mode and restores the state parked by
// CacheBuildModeState. It returns false if p was not in build mode.
func (m *Manager) ExitBuildMode(p game.Player) bool {
	m.mu.Lock()
	_, ok := m.buildMode[p.ID()]
	delete(m.buildMode, p.ID())
	m.mu.Unlock()
	if !ok {
		return false
	}

	bp := m.GetOrCreate(p.ID())
	bp.mu.Lock()
	defer bp.mu.Unlock()
	bp.buildMode.restore(p)
	return true
}

func (m *Manager) InBuildMode(id uuid.UUID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.buildMode[id]
	return ok
}

// OpenNavigator marks the navigator of p as open. The new style navigator
// freezes the player in place; the previous speeds are kept until it closes.
func (m *Manager) OpenNavigator(p game.Player) {
	bp := m.GetOrCreate(p.ID())

	m.mu.Lock()
	m.navigator[p.ID()] = struct{}{}
	m.mu.Unlock()

	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.settings.NavigatorType != settings.NavigatorNew {
		return
	}
	if bp.walkSpeed == nil {
		ws := p.WalkSpeed()
		bp.walkSpeed = &ws
	}
	if bp.flySpeed == nil {
		fs := p.FlySpeed()
		bp.flySpeed = &fs
	}
	p.SetWalkSpeed(0)
	p.SetFlySpeed(0)
}

// CloseNavigator closes the navigator of p and restores any speeds parked
// when it opened. It returns false if no navigator was open.
func (m *Manager) CloseNavigator(p game.Player) bool {
	m.mu.Lock()
	_, ok := m.navigator[p.ID()]
	delete(m.navigator, p.ID())
	m.mu.Unlock()
	if !ok {
		return false
	}

	bp := m.GetOrCreate(p.ID())
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.walkSpeed != nil {
		p.SetWalkSpeed(*bp.walkSpeed)
		bp.walkSpeed = nil
	}
	if bp.flySpeed != nil {
		p.SetFlySpeed(*bp.flySpeed)
		bp.flySpeed = nil
	}
	return true
}

func (m *Manager) IsNavigatorOpen(id uuid.UUID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.navigator[id]
	return ok
}

// SetSpeed sets the walk or, while flying, the fly speed of p to one of five
// levels.
func (m *Manager) SetSpeed(p game.Player, level int) error {
	if level < 1 || level > 5 {
		return fmt.Errorf("%w: got %d", ErrInvalidSpeed, level)
	}

	speed := 0.2 * float32(level)
	if p.Flying() {
		p.SetFlySpeed(speed - 0.1)
	} else {
		p.SetWalkSpeed(speed)
	}
	return nil
}

// ApplyWorldChange brings the session of p in line with the world it has
// just arrived in. A restore of any parked archive state always happens
// before a new one is parked, and both run under the player's lock.
func (m *Manager) ApplyWorldChange(p game.Player, destination string) error {
	m.CloseNavigator(p)
	if m.ExitBuildMode(p) {
		slog.Debug("build mode left on world change", "player", p.Name())
	}

	bp := m.GetOrCreate(p.ID())
	bp.mu.Lock()
	defer bp.mu.Unlock()

	// Parked archive state comes back whatever the destination is, even one
	// the registry does not manage.
	bp.archive.restore(p)

	w, ok := m.worlds.Get(destination)
	if !ok {
		m.reveal(p)
		return nil
	}
	snap := w.Snapshot()

	if err := m.placeMarker(snap); err != nil {
		slog.Warn("placing void world marker", "world", snap.Name, "error", err)
	}

	if snap.Status == world.StatusArchive {
		bp.archive.save(capture(p, true))

		p.SetArmor(game.NewContents(game.ArmorSize))
		p.SetInventory(game.NewContents(game.InventorySize))
		p.SetItem(game.NavigatorSlot, m.navigatorItem)
		spectate(p)

		if m.archiveVanish {
			p.SetInvisible(true)
			m.roster.HideFromAll(p.ID())
		}
		return nil
	}

	m.ensureNavigator(p)
	m.reveal(p)
	return nil
}

// reveal undoes an archive vanish.
func (m *Manager) reveal(p game.Player) {
	if p.Invisible() {
		p.SetInvisible(false)
	}
	m.roster.ShowToAll(p.ID())
}

func (m *Manager) placeMarker(w world.Record) error {
	if !m.voidBlock || w.Type != world.TypeVoid || w.Status != world.StatusNotStarted {
		return nil
	}
	if !m.engine.Loaded(w.Name) {
		return nil
	}
	return m.engine.SetBlock(w.Name, markerX, markerY, markerZ, markerMaterial)
}

// ensureNavigator puts the navigator item into an empty navigator slot. An
// item already in the slot is left alone.
func (m *Manager) ensureNavigator(p game.Player) {
	inv := p.Inventory()
	if game.NavigatorSlot >= len(inv) {
		return
	}
	if cur := inv[game.NavigatorSlot]; !cur.IsEmpty() {
		if cur != m.navigatorItem {
			slog.Debug("navigator slot occupied", "player", p.Name(), "item", cur.Material)
		}
		return
	}
	p.SetItem(game.NavigatorSlot, m.navigatorItem)
}

func spectate(p game.Player) {
	p.SetGameMode(game.GameModeAdventure)
	p.SetSaturation(fullSaturation)
	p.SetHealth(fullHealth)
	p.SetAllowFlight(true)
	p.SetFlying(true)
}
