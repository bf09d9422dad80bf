package host

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-buildsystem/internal/game"
)

// Roster is the set of online players.
type Roster struct {
	mu      sync.RWMutex
	players map[uuid.UUID]game.Player
	hidden  map[uuid.UUID]bool
}

func NewRoster() *Roster {
	return &Roster{
		players: map[uuid.UUID]game.Player{},
		hidden:  map[uuid.UUID]bool{},
	}
}

// Join adds p to the online players.
func (r *Roster) Join(p game.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[p.ID()] = p
}

// Leave removes the player with id.
func (r *Roster) Leave(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, id)
	delete(r.hidden, id)
}

func (r *Roster) Player(id uuid.UUID) (game.Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	return p, ok
}

func (r *Roster) Lookup(name string) (uuid.UUID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, p := range r.players {
		if strings.EqualFold(p.Name(), name) {
			return id, true
		}
	}
	return uuid.Nil, false
}

func (r *Roster) HideFromAll(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hidden[id] = true
}

func (r *Roster) ShowToAll(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.hidden, id)
}

// Hidden reports whether id is hidden from the other players.
func (r *Roster) Hidden(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hidden[id]
}
