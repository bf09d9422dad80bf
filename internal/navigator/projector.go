package navigator

import (
	"slices"

	"github.com/google/uuid"
	"github.com/pixil98/go-buildsystem/internal/game"
	"github.com/pixil98/go-buildsystem/internal/settings"
	"github.com/pixil98/go-buildsystem/internal/world"
)

// DefaultCapacity is the number of worlds on one navigator page.
const DefaultCapacity = 36

// Preferences supplies the sort order a viewer has chosen.
type Preferences interface {
	Settings(id uuid.UUID) settings.Settings
}

// Page is one page of a projection.
type Page struct {
	Worlds []world.Record
	Index  int
	Pages  int
}

// Projector produces the filtered, sorted and paginated views of the world
// registry that a viewer is allowed to see.
type Projector struct {
	worlds   *world.Registry
	perms    game.Permissions
	prefs    Preferences
	cursor   *Cursor
	capacity int
}

type ProjectorOpt func(*Projector)

// WithCapacity sets the page size. Values below one are ignored.
func WithCapacity(n int) ProjectorOpt {
	return func(p *Projector) {
		if n > 0 {
			p.capacity = n
		}
	}
}

func NewProjector(worlds *world.Registry, perms game.Permissions, prefs Preferences, opts ...ProjectorOpt) *Projector {
	p := &Projector{
		worlds:   worlds,
		perms:    perms,
		prefs:    prefs,
		cursor:   NewCursor(),
		capacity: DefaultCapacity,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Projector) Capacity() int {
	return p.capacity
}

// Project returns page index of the worlds matching f that viewer may see,
// in the viewer's preferred order. An out of range index is clamped. There
// is always at least one page, possibly empty.
func (p *Projector) Project(viewer uuid.UUID, f Filter, index int) Page {
	visible := p.visible(viewer, f)
	slices.SortStableFunc(visible, comparatorFor(p.prefs.Settings(viewer).WorldSort))

	pages := max(1, (len(visible)+p.capacity-1)/p.capacity)
	index = clamp(index, pages)

	start := min(index*p.capacity, len(visible))
	end := min(start+p.capacity, len(visible))

	return Page{
		Worlds: visible[start:end:end],
		Index:  index,
		Pages:  pages,
	}
}

// Current projects the page the viewer was last on in view.
func (p *Projector) Current(viewer uuid.UUID, v View) Page {
	pages := p.pageCount(viewer, v.Filter)
	return p.Project(viewer, v.Filter, p.cursor.Page(viewer, v.Name, pages))
}

// Next moves the viewer one page forward in view, wrapping at the end.
func (p *Projector) Next(viewer uuid.UUID, v View) Page {
	pages := p.pageCount(viewer, v.Filter)
	return p.Project(viewer, v.Filter, p.cursor.Next(viewer, v.Name, pages))
}

// Previous moves the viewer one page back in view, wrapping at the start.
func (p *Projector) Previous(viewer uuid.UUID, v View) Page {
	pages := p.pageCount(viewer, v.Filter)
	return p.Project(viewer, v.Filter, p.cursor.Previous(viewer, v.Name, pages))
}

// Forget drops the page positions of viewer.
func (p *Projector) Forget(viewer uuid.UUID) {
	p.cursor.Reset(viewer)
}

func (p *Projector) pageCount(viewer uuid.UUID, f Filter) int {
	return max(1, (len(p.visible(viewer, f))+p.capacity-1)/p.capacity)
}

func (p *Projector) visible(viewer uuid.UUID, f Filter) []world.Record {
	admin := p.perms.HasCapability(viewer, game.AdminPermission)

	var out []world.Record
	for _, w := range p.worlds.All() {
		r := w.Snapshot()
		if !f.matches(r) {
			continue
		}
		if admin || p.canSee(viewer, r) {
			out = append(out, r)
		}
	}
	return out
}

// canSee lists a world for its creator and builders, and otherwise for
// anyone holding its permission as long as the world is not expected to be
// loaded while missing from the engine.
func (p *Projector) canSee(viewer uuid.UUID, r world.Record) bool {
	if r.IsCreator(viewer) || r.IsBuilder(viewer) {
		return true
	}
	if r.Permission != world.NoPermission && !p.perms.HasCapability(viewer, r.Permission) {
		return false
	}
	return !r.Loaded || p.worlds.Materialized(r.Name)
}
