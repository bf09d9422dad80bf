package player

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pixil98/go-buildsystem/internal/game"
	"github.com/pixil98/go-buildsystem/internal/world"
)

// Limits are the server-wide caps on the number of worlds per visibility.
// A negative cap means unlimited.
type Limits struct {
	MaxPublicWorlds  int
	MaxPrivateWorlds int
}

func (l Limits) max(vis world.Visibility) int {
	if vis == world.VisibilityPrivate {
		return l.MaxPrivateWorlds
	}
	return l.MaxPublicWorlds
}

// CanCreateWorld reports whether id may create another world of the given
// visibility. Both the server cap and the player's own cap must allow it.
func (m *Manager) CanCreateWorld(id uuid.UUID, vis world.Visibility) bool {
	if serverMax := m.limits.max(vis); serverMax >= 0 && m.worlds.Count(vis) >= serverMax {
		return false
	}

	playerMax, unlimited := m.MaxWorlds(id, vis)
	if unlimited {
		return true
	}
	return len(m.worlds.CreatedBy(id, vis)) < playerMax
}

// MaxWorlds resolves how many worlds of the given visibility id may create,
// from permissions shaped buildsystem.create.<public|private>.<amount>.
// Admins and an amount of "*" are unlimited. Without a matching permission
// the cap is zero.
func (m *Manager) MaxWorlds(id uuid.UUID, vis world.Visibility) (limit int, unlimited bool) {
	if m.perms.HasCapability(id, game.AdminPermission) {
		return 0, true
	}

	for _, perm := range m.perms.EffectivePermissions(id) {
		amount, all, ok := parseCreatePermission(perm, vis)
		if !ok {
			continue
		}
		if all {
			return 0, true
		}
		if amount > limit {
			limit = amount
		}
	}
	return limit, false
}

// parseCreatePermission matches perm against
// buildsystem.create.<visibility>.<amount>. Malformed amounts do not match.
func parseCreatePermission(perm string, vis world.Visibility) (amount int, unlimited bool, ok bool) {
	parts := strings.Split(perm, ".")
	if len(parts) != 4 {
		return 0, false, false
	}
	if !strings.EqualFold(parts[0], "buildsystem") || !strings.EqualFold(parts[1], "create") {
		return 0, false, false
	}
	if !strings.EqualFold(parts[2], strings.ToLower(vis.String())) {
		return 0, false, false
	}

	if parts[3] == "*" {
		return 0, true, true
	}
	n, err := strconv.Atoi(parts[3])
	if err != nil || n < 0 {
		return 0, false, false
	}
	return n, false, true
}
