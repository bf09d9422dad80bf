package game

import "github.com/google/uuid"

// AdminPermission bypasses every world and quota restriction.
const AdminPermission = "buildsystem.admin"

// Engine is the host capability that materialises worlds on disk.
// EnsureLoaded may finish asynchronously; callers must not wait on it.
type Engine interface {
	EnsureLoaded(name string) bool
	Unload(name string) error
	Delete(name string) error
	Loaded(name string) bool
	SetBlock(world string, x, y, z int, material string) error
}

// Permissions answers capability questions for an identity.
type Permissions interface {
	HasCapability(id uuid.UUID, perm string) bool
	EffectivePermissions(id uuid.UUID) []string
}

// Player is the host-side handle of a connected player.
type Player interface {
	ID() uuid.UUID
	Name() string

	GameMode() GameMode
	SetGameMode(GameMode)

	Inventory() Contents
	SetInventory(Contents)
	Armor() Contents
	SetArmor(Contents)
	SetItem(slot int, item Item)

	SetHealth(float64)
	SetSaturation(float64)
	SetAllowFlight(bool)
	SetFlying(bool)
	Flying() bool
	SetInvisible(bool)
	Invisible() bool

	WalkSpeed() float32
	SetWalkSpeed(float32)
	FlySpeed() float32
	SetFlySpeed(float32)

	SetFallDistance(float32)
	Location() Location
	Teleport(Location)
}

// Roster gives access to the set of online players.
type Roster interface {
	Player(id uuid.UUID) (Player, bool)
	Lookup(name string) (uuid.UUID, bool)
	HideFromAll(id uuid.UUID)
	ShowToAll(id uuid.UUID)
}
