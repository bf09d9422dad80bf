package world

import (
	"fmt"
	"regexp"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
)

// NoPermission is the permission value of a world that needs no extra permission.
const NoPermission = "-"

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Identity is a player id paired with the name it was last seen under.
type Identity struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UnknownCreator owns worlds whose creator was never recorded.
var UnknownCreator = Identity{ID: uuid.Nil, Name: "-"}

// Known returns false for the unknown-owner sentinel.
func (i Identity) Known() bool {
	return i.ID != uuid.Nil
}

// World is one managed build world. All fields are guarded by mu; the
// registry is the only writer.
type World struct {
	mu sync.RWMutex

	name string
	seq  uint64

	creator    Identity
	builders   []Identity
	permission string
	project    string
	status     Status
	visibility Visibility
	typ        Type
	createdAt  time.Time
	loaded     bool
	physics    bool
}

func newWorld(r Record, seq uint64) *World {
	return &World{
		name:       r.Name,
		seq:        seq,
		creator:    r.Creator,
		builders:   slices.Clone(r.Builders),
		permission: r.Permission,
		project:    r.Project,
		status:     r.Status,
		visibility: r.Visibility,
		typ:        r.Type,
		createdAt:  r.CreatedAt,
		loaded:     r.Loaded,
		physics:    r.Physics,
	}
}

// Name returns the case-preserved world name.
func (w *World) Name() string {
	return w.name
}

func (w *World) Status() Status {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.status
}

func (w *World) Visibility() Visibility {
	return w.Snapshot().Visibility
}

func (w *World) Type() Type {
	return w.Snapshot().Type
}

func (w *World) Permission() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.permission
}

func (w *World) Loaded() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loaded
}

// IsCreator returns true if id created this world.
func (w *World) IsCreator(id uuid.UUID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.creator.Known() && w.creator.ID == id
}

// IsBuilder returns true if id was explicitly added as a builder.
func (w *World) IsBuilder(id uuid.UUID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return containsIdentity(w.builders, id)
}

// Snapshot returns a consistent copy of every field.
func (w *World) Snapshot() Record {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return Record{
		Name:       w.name,
		Creator:    w.creator,
		Builders:   slices.Clone(w.builders),
		Permission: w.permission,
		Project:    w.project,
		Status:     w.status,
		Visibility: w.visibility,
		Type:       w.typ,
		CreatedAt:  w.createdAt,
		Loaded:     w.loaded,
		Physics:    w.physics,
		Seq:        w.seq,
	}
}

// update applies fn to the world while holding the write lock.
func (w *World) update(fn func(w *World) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn(w)
}

func containsIdentity(ids []Identity, id uuid.UUID) bool {
	return slices.ContainsFunc(ids, func(b Identity) bool { return b.ID == id })
}

// Record is the persisted and listed form of a World.
type Record struct {
	Name       string     `json:"name"`
	Creator    Identity   `json:"creator"`
	Builders   []Identity `json:"builders,omitempty"`
	Permission string     `json:"permission"`
	Project    string     `json:"project"`
	Status     Status     `json:"status"`
	Visibility Visibility `json:"visibility"`
	Type       Type       `json:"type"`
	CreatedAt  time.Time  `json:"created_at"`
	Loaded     bool       `json:"loaded"`
	Physics    bool       `json:"physics"`

	// Seq is the registry order; it is assigned on registration.
	Seq uint64 `json:"-"`
}

// Validate satisfies storage.ValidatingSpec.
func (r *Record) Validate() error {
	el := errors.NewErrorList()

	if err := ValidateName(r.Name); err != nil {
		el.Add(err)
	}
	if r.Permission == "" {
		el.Add(fmt.Errorf("permission is required (use %q for none)", NoPermission))
	}
	for i, b := range r.Builders {
		if b.ID == uuid.Nil {
			el.Add(fmt.Errorf("builder %d: id is required", i))
		}
	}

	return el.Err()
}

func (r *Record) IsCreator(id uuid.UUID) bool {
	return r.Creator.Known() && r.Creator.ID == id
}

func (r *Record) IsBuilder(id uuid.UUID) bool {
	return containsIdentity(r.Builders, id)
}

// ValidateName checks that name can be used as a world name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q may only contain letters, digits, '_' and '-'", ErrInvalidName, name)
	}
	return nil
}
