package navigator

import (
	"slices"

	"github.com/pixil98/go-buildsystem/internal/world"
)

// VisibilityFilter restricts a projection to one visibility, or to none.
type VisibilityFilter int

const (
	VisibilityIgnore VisibilityFilter = iota
	OnlyPublic
	OnlyPrivate
)

func (v VisibilityFilter) matches(vis world.Visibility) bool {
	switch v {
	case OnlyPublic:
		return vis == world.VisibilityPublic
	case OnlyPrivate:
		return vis == world.VisibilityPrivate
	default:
		return true
	}
}

// Filter selects the worlds a projection may contain before access checks.
type Filter struct {
	Visibility VisibilityFilter
	Statuses   []world.Status
}

func (f Filter) matches(r world.Record) bool {
	return f.Visibility.matches(r.Visibility) && slices.Contains(f.Statuses, r.Status)
}

// View is a named filter whose page position is remembered per viewer.
type View struct {
	Name   string
	Filter Filter
}

var (
	WorldsView = View{
		Name: "worlds",
		Filter: Filter{
			Visibility: OnlyPublic,
			Statuses: []world.Status{
				world.StatusNotStarted,
				world.StatusInProgress,
				world.StatusAlmostFinished,
				world.StatusFinished,
			},
		},
	}

	ArchiveView = View{
		Name: "archive",
		Filter: Filter{
			Visibility: OnlyPublic,
			Statuses:   []world.Status{world.StatusArchive},
		},
	}

	PrivateView = View{
		Name: "private",
		Filter: Filter{
			Visibility: OnlyPrivate,
			Statuses: []world.Status{
				world.StatusNotStarted,
				world.StatusInProgress,
				world.StatusAlmostFinished,
				world.StatusFinished,
				world.StatusArchive,
			},
		},
	}
)

// Views returns every predefined view.
func Views() []View {
	return []View{WorldsView, ArchiveView, PrivateView}
}
