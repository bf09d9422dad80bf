package world

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-buildsystem/internal/game"
	"golang.org/x/text/cases"
)

// Registry is the single owner of every World. All access must go through
// its methods.
type Registry struct {
	mu      sync.RWMutex
	worlds  map[string]*World
	nextSeq uint64

	engine game.Engine
	perms  game.Permissions
	now    func() time.Time
}

// NewRegistry creates an empty registry backed by the given engine and
// permission oracle.
func NewRegistry(engine game.Engine, perms game.Permissions, opts ...RegistryOpt) *Registry {
	r := &Registry{
		worlds: make(map[string]*World),
		engine: engine,
		perms:  perms,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

type RegistryOpt func(*Registry)

// WithClock overrides the time source used for creation timestamps.
func WithClock(now func() time.Time) RegistryOpt {
	return func(r *Registry) {
		r.now = now
	}
}

// normalize folds a world name into its registry key.
func normalize(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Create registers a new world. The world is fully initialised before it
// becomes visible to other readers.
func (r *Registry) Create(name string, creator Identity, typ Type, vis Visibility) (*World, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	rec := Record{
		Name:       name,
		Creator:    creator,
		Permission: NoPermission,
		Project:    "-",
		Status:     StatusNotStarted,
		Visibility: vis,
		Type:       typ,
		CreatedAt:  r.now(),
		Loaded:     true,
		Physics:    true,
	}

	w, err := r.register(rec)
	if err != nil {
		return nil, err
	}

	slog.Info("world created", "world", name, "creator", creator.Name, "type", typ, "visibility", vis)
	return w, nil
}

func (r *Registry) register(rec Record) (*World, error) {
	k := normalize(rec.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.worlds[k]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, rec.Name)
	}

	r.nextSeq++
	w := newWorld(rec, r.nextSeq)
	r.worlds[k] = w
	return w, nil
}

// Get looks a world up by name, ignoring case.
func (r *Registry) Get(name string) (*World, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.worlds[normalize(name)]
	return w, ok
}

func (r *Registry) mustGet(name string) (*World, error) {
	w, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return w, nil
}

// Delete removes a world and asks the engine to drop its backing storage.
// The world is gone from the registry even if the engine fails.
func (r *Registry) Delete(name string) error {
	r.mu.Lock()
	k := normalize(name)
	w, ok := r.worlds[k]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(r.worlds, k)
	r.mu.Unlock()

	if err := r.engine.Unload(w.Name()); err != nil {
		return fmt.Errorf("unloading world %q: %w", w.Name(), err)
	}
	if err := r.engine.Delete(w.Name()); err != nil {
		return fmt.Errorf("deleting world %q: %w", w.Name(), err)
	}

	slog.Info("world deleted", "world", w.Name())
	return nil
}

// SetStatus changes the status of a world and returns the previous one.
func (r *Registry) SetStatus(name string, status Status) (Status, error) {
	w, err := r.mustGet(name)
	if err != nil {
		return StatusUnknown, err
	}

	var prev Status
	_ = w.update(func(w *World) error {
		prev = w.status
		w.status = status
		return nil
	})
	return prev, nil
}

// AddBuilder grants b edit access to the world.
func (r *Registry) AddBuilder(name string, b Identity) error {
	w, err := r.mustGet(name)
	if err != nil {
		return err
	}

	return w.update(func(w *World) error {
		if containsIdentity(w.builders, b.ID) {
			return fmt.Errorf("%w: %s", ErrAlreadyBuilder, b.Name)
		}
		w.builders = append(slices.Clone(w.builders), b)
		return nil
	})
}

// RemoveBuilder revokes the edit access of id. Callers are responsible for
// refusing a creator that tries to remove themself.
func (r *Registry) RemoveBuilder(name string, id uuid.UUID) error {
	w, err := r.mustGet(name)
	if err != nil {
		return err
	}

	return w.update(func(w *World) error {
		i := slices.IndexFunc(w.builders, func(b Identity) bool { return b.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNotBuilder, id)
		}
		w.builders = slices.Delete(slices.Clone(w.builders), i, i+1)
		return nil
	})
}

// SetPermission sets the extra permission needed to see and use the world.
// An empty permission resets it to NoPermission.
func (r *Registry) SetPermission(name, perm string) error {
	w, err := r.mustGet(name)
	if err != nil {
		return err
	}

	perm = strings.TrimSpace(perm)
	if perm == "" {
		perm = NoPermission
	}
	return w.update(func(w *World) error {
		w.permission = perm
		return nil
	})
}

func (r *Registry) SetProject(name, project string) error {
	w, err := r.mustGet(name)
	if err != nil {
		return err
	}

	project = strings.TrimSpace(project)
	if project == "" {
		project = "-"
	}
	return w.update(func(w *World) error {
		w.project = project
		return nil
	})
}

func (r *Registry) SetCreator(name string, creator Identity) error {
	w, err := r.mustGet(name)
	if err != nil {
		return err
	}

	return w.update(func(w *World) error {
		w.creator = creator
		return nil
	})
}

func (r *Registry) SetPhysics(name string, physics bool) error {
	w, err := r.mustGet(name)
	if err != nil {
		return err
	}

	return w.update(func(w *World) error {
		w.physics = physics
		return nil
	})
}

// IsPermitted reports whether actor may use the feature guarded by required
// on the named world. Admins always may. Otherwise actor needs required and,
// when the world sets one, the world's own permission as well.
func (r *Registry) IsPermitted(actor uuid.UUID, required, worldName string) bool {
	if r.perms.HasCapability(actor, game.AdminPermission) {
		return true
	}

	if !r.perms.HasCapability(actor, required) {
		return false
	}

	w, ok := r.Get(worldName)
	if !ok {
		return true
	}

	perm := w.Permission()
	return strings.EqualFold(perm, NoPermission) || r.perms.HasCapability(actor, perm)
}

func (r *Registry) IsCreator(worldName string, id uuid.UUID) bool {
	w, ok := r.Get(worldName)
	return ok && w.IsCreator(id)
}

func (r *Registry) IsBuilder(worldName string, id uuid.UUID) bool {
	w, ok := r.Get(worldName)
	return ok && w.IsBuilder(id)
}

// All returns every world in registry order.
func (r *Registry) All() []*World {
	r.mu.RLock()
	worlds := make([]*World, 0, len(r.worlds))
	for _, w := range r.worlds {
		worlds = append(worlds, w)
	}
	r.mu.RUnlock()

	slices.SortFunc(worlds, func(a, b *World) int {
		return cmp.Compare(a.seq, b.seq)
	})
	return worlds
}

// CreatedBy returns the worlds of the given visibility created by id.
func (r *Registry) CreatedBy(id uuid.UUID, vis Visibility) []*World {
	var out []*World
	for _, w := range r.All() {
		if w.IsCreator(id) && w.Visibility() == vis {
			out = append(out, w)
		}
	}
	return out
}

// Count returns the number of worlds with the given visibility.
func (r *Registry) Count(vis Visibility) int {
	n := 0
	for _, w := range r.All() {
		if w.Visibility() == vis {
			n++
		}
	}
	return n
}

// EnsureLoaded asks the engine to materialise the world and returns without
// waiting for it to finish.
func (r *Registry) EnsureLoaded(name string) bool {
	w, ok := r.Get(name)
	if !ok {
		return r.engine.EnsureLoaded(name)
	}

	if !r.engine.EnsureLoaded(w.Name()) {
		return false
	}
	_ = w.update(func(w *World) error {
		w.loaded = true
		return nil
	})
	return true
}

// Unload releases the backing world and marks it as not loaded.
func (r *Registry) Unload(name string) error {
	w, err := r.mustGet(name)
	if err != nil {
		return err
	}

	if err := r.engine.Unload(w.Name()); err != nil {
		return fmt.Errorf("unloading world %q: %w", w.Name(), err)
	}
	return w.update(func(w *World) error {
		w.loaded = false
		return nil
	})
}

// Materialized reports whether the engine currently has the world in memory.
func (r *Registry) Materialized(name string) bool {
	return r.engine.Loaded(name)
}

// EnsurePlaceholder registers an UNKNOWN world under name if none exists so
// references to it stay resolvable.
func (r *Registry) EnsurePlaceholder(name string) (*World, error) {
	if w, ok := r.Get(name); ok {
		return w, nil
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrInvalidName)
	}

	w, err := r.register(Record{
		Name:       name,
		Creator:    UnknownCreator,
		Permission: NoPermission,
		Project:    "-",
		Status:     StatusUnknown,
		Visibility: VisibilityPublic,
		Type:       TypeUnknown,
		CreatedAt:  r.now(),
		Physics:    true,
	})
	if err != nil {
		// Lost a race with another registration of the same name.
		if existing, ok := r.Get(name); ok {
			return existing, nil
		}
		return nil, err
	}

	slog.Info("registered placeholder world", "world", name)
	return w, nil
}

// Records returns a snapshot of every world in registry order.
func (r *Registry) Records() []Record {
	worlds := r.All()
	out := make([]Record, 0, len(worlds))
	for _, w := range worlds {
		out = append(out, w.Snapshot())
	}
	return out
}

// Load registers persisted worlds in the given order. Invalid or duplicate
// records are logged and skipped. It returns the number of worlds loaded.
func (r *Registry) Load(records []Record) int {
	n := 0
	for i := range records {
		rec := records[i]
		if err := rec.Validate(); err != nil {
			slog.Warn("skipping invalid world record", "world", rec.Name, "error", err)
			continue
		}
		if _, err := r.register(rec); err != nil {
			slog.Warn("skipping world record", "world", rec.Name, "error", err)
			continue
		}
		n++
	}
	return n
}
