package player

import "github.com/pixil98/go-buildsystem/internal/game"

type ManagerOpt func(*Manager)

// WithLimits sets the server-wide world caps.
func WithLimits(l Limits) ManagerOpt {
	return func(m *Manager) {
		m.limits = l
	}
}

// WithArchiveVanish hides players from everyone while they visit an archived world.
func WithArchiveVanish(vanish bool) ManagerOpt {
	return func(m *Manager) {
		m.archiveVanish = vanish
	}
}

// WithVoidBlock toggles the gold block placed in fresh void worlds.
func WithVoidBlock(enabled bool) ManagerOpt {
	return func(m *Manager) {
		m.voidBlock = enabled
	}
}

// WithNavigatorItem sets the item kept in the navigator slot.
func WithNavigatorItem(item game.Item) ManagerOpt {
	return func(m *Manager) {
		m.navigatorItem = item
	}
}
