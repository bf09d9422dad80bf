package host

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-buildsystem/internal/game"
)

const (
	DefaultWalkSpeed = 0.2
	DefaultFlySpeed  = 0.1
)

// Player is an in-memory game.Player.
type Player struct {
	mu sync.Mutex

	id   uuid.UUID
	name string

	gameMode     game.GameMode
	inventory    game.Contents
	armor        game.Contents
	health       float64
	saturation   float64
	allowFlight  bool
	flying       bool
	invisible    bool
	walkSpeed    float32
	flySpeed     float32
	fallDistance float32
	location     game.Location
}

func NewPlayer(id uuid.UUID, name string) *Player {
	return &Player{
		id:         id,
		name:       name,
		gameMode:   game.GameModeSurvival,
		inventory:  game.NewContents(game.InventorySize),
		armor:      game.NewContents(game.ArmorSize),
		health:     20,
		saturation: 20,
		walkSpeed:  DefaultWalkSpeed,
		flySpeed:   DefaultFlySpeed,
	}
}

func (p *Player) ID() uuid.UUID { return p.id }
func (p *Player) Name() string  { return p.name }

func (p *Player) GameMode() game.GameMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gameMode
}

func (p *Player) SetGameMode(m game.GameMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gameMode = m
}

func (p *Player) Inventory() game.Contents {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inventory.Clone()
}

func (p *Player) SetInventory(c game.Contents) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inventory = resize(c, game.InventorySize)
}

func (p *Player) Armor() game.Contents {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.armor.Clone()
}

func (p *Player) SetArmor(c game.Contents) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.armor = resize(c, game.ArmorSize)
}

func (p *Player) SetItem(slot int, item game.Item) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if slot >= 0 && slot < len(p.inventory) {
		p.inventory[slot] = item
	}
}

func (p *Player) Health() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.health
}

func (p *Player) SetHealth(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.health = v
}

func (p *Player) SetSaturation(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saturation = v
}

func (p *Player) AllowFlight() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allowFlight
}

func (p *Player) SetAllowFlight(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.allowFlight = v
}

func (p *Player) Flying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flying
}

func (p *Player) SetFlying(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flying = v
}

func (p *Player) Invisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.invisible
}

func (p *Player) SetInvisible(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invisible = v
}

func (p *Player) WalkSpeed() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.walkSpeed
}

func (p *Player) SetWalkSpeed(v float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.walkSpeed = v
}

func (p *Player) FlySpeed() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flySpeed
}

func (p *Player) SetFlySpeed(v float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flySpeed = v
}

func (p *Player) FallDistance() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fallDistance
}

func (p *Player) SetFallDistance(v float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fallDistance = v
}

func (p *Player) Location() game.Location {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.location
}

func (p *Player) Teleport(l game.Location) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.location = l
}

func resize(c game.Contents, size int) game.Contents {
	out := game.NewContents(size)
	copy(out, c)
	return out
}
