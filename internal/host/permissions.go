package host

import (
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Permissions is a static permission table keyed by player id.
// A granted "prefix.*" matches every permission below prefix.
type Permissions struct {
	mu     sync.RWMutex
	grants map[uuid.UUID][]string
}

func NewPermissions() *Permissions {
	return &Permissions{grants: map[uuid.UUID][]string{}}
}

// Grant adds permissions to id.
func (p *Permissions) Grant(id uuid.UUID, perms ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.grants[id] = append(p.grants[id], perms...)
}

// Revoke removes a single permission from id.
func (p *Permissions) Revoke(id uuid.UUID, perm string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.grants[id] = slices.DeleteFunc(p.grants[id], func(s string) bool {
		return strings.EqualFold(s, perm)
	})
}

func (p *Permissions) HasCapability(id uuid.UUID, perm string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, g := range p.grants[id] {
		if strings.EqualFold(g, perm) {
			return true
		}
		if prefix, ok := strings.CutSuffix(g, ".*"); ok && len(perm) > len(prefix) &&
			strings.EqualFold(perm[:len(prefix)+1], prefix+".") {
			return true
		}
	}
	return false
}

func (p *Permissions) EffectivePermissions(id uuid.UUID) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.grants[id])
}
