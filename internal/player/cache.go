package player

import "github.com/pixil98/go-buildsystem/internal/game"

type cacheState int

const (
	cacheClean cacheState = iota
	cacheCached
)

// Snapshot is the part of a player's state that is parked while they are
// somewhere they should not keep it. Nil contents were not captured.
type Snapshot struct {
	GameMode  game.GameMode
	Inventory game.Contents
	Armor     game.Contents
}

func capture(p game.Player, withArmor bool) Snapshot {
	s := Snapshot{
		GameMode:  p.GameMode(),
		Inventory: p.Inventory().Clone(),
	}
	if withArmor {
		s.Armor = p.Armor().Clone()
	}
	return s
}

// SessionCache holds at most one snapshot. The first save wins until the
// snapshot is restored.
type SessionCache struct {
	state cacheState
	saved Snapshot
}

// Cached returns true while a snapshot is waiting to be restored.
func (c *SessionCache) Cached() bool {
	return c.state == cacheCached
}

// Saved returns the pending snapshot, if any.
func (c *SessionCache) Saved() (Snapshot, bool) {
	return c.saved, c.state == cacheCached
}

// save stores s unless a snapshot is already pending.
func (c *SessionCache) save(s Snapshot) bool {
	if c.state == cacheCached {
		return false
	}
	c.saved = s
	c.state = cacheCached
	return true
}

// restore applies the pending snapshot to p and clears the slot.
func (c *SessionCache) restore(p game.Player) bool {
	if c.state != cacheCached {
		return false
	}

	s := c.saved
	c.saved = Snapshot{}
	c.state = cacheClean

	p.SetGameMode(s.GameMode)
	if s.Inventory != nil {
		p.SetInventory(s.Inventory.Clone())
	}
	if s.Armor != nil {
		p.SetArmor(s.Armor.Clone())
	}
	return true
}
