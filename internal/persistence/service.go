package persistence

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/pixil98/go-buildsystem/internal/player"
	"github.com/pixil98/go-buildsystem/internal/spawn"
	"github.com/pixil98/go-buildsystem/internal/storage"
	"github.com/pixil98/go-buildsystem/internal/world"
	"github.com/pixil98/go-errors"
)

const spawnID = "spawn"

// Stores are the record stores the service reads and writes.
type Stores struct {
	Worlds  storage.Storer[*world.Record]
	Players storage.Storer[*player.Record]
	Spawn   storage.Storer[*spawn.Record]
}

// Backup is the content of one compressed snapshot.
type Backup struct {
	TakenAt time.Time       `json:"taken_at"`
	Worlds  []world.Record  `json:"worlds"`
	Players []player.Record `json:"players"`
	Spawn   string          `json:"spawn,omitempty"`
}

// Service moves state between the in-memory registries and the stores.
type Service struct {
	stores  Stores
	worlds  *world.Registry
	players *player.Manager
	spawn   *spawn.Pointer

	backupDir  string
	backupKeep int
	now        func() time.Time

	// Serialises whole saves so two writers never interleave.
	saveMu sync.Mutex
}

func NewService(stores Stores, worlds *world.Registry, players *player.Manager, sp *spawn.Pointer, opts ...ServiceOpt) *Service {
	s := &Service{
		stores:     stores,
		worlds:     worlds,
		players:    players,
		spawn:      sp,
		backupKeep: 10,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load fills the registries from the stores. Worlds are registered oldest
// first so registry order survives a restart. Bad records are skipped.
func (s *Service) Load(ctx context.Context) error {
	stored := s.stores.Worlds.GetAll()
	worlds := make([]world.Record, 0, len(stored))
	for _, rec := range stored {
		if rec == nil {
			continue
		}
		worlds = append(worlds, *rec)
	}
	slices.SortFunc(worlds, func(a, b world.Record) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.Name, b.Name))
	})
	nWorlds := s.worlds.Load(worlds)

	storedPlayers := s.stores.Players.GetAll()
	players := make([]player.Record, 0, len(storedPlayers))
	for _, rec := range storedPlayers {
		if rec == nil {
			continue
		}
		players = append(players, *rec)
	}
	nPlayers := s.players.Load(players)

	if rec := s.stores.Spawn.Get(spawnID); rec != nil {
		s.spawn.Load(rec.Location)
	}

	slog.InfoContext(ctx, "state loaded", "worlds", nWorlds, "players", nPlayers)
	return nil
}

// Save writes the current state to the stores. The state is captured first
// and written afterwards so no world or player lock is held during I/O.
func (s *Service) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	backup := Backup{
		TakenAt: s.now(),
		Worlds:  s.worlds.Records(),
		Players: s.players.Records(),
		Spawn:   s.spawn.Encode(),
	}

	el := errors.NewErrorList()

	keep := make(map[string]struct{}, len(backup.Worlds))
	for i := range backup.Worlds {
		rec := backup.Worlds[i]
		if err := storage.ValidateIdentifier(rec.Name); err != nil {
			slog.WarnContext(ctx, "world name cannot be stored", "world", rec.Name, "error", err)
			continue
		}
		keep[rec.Name] = struct{}{}
		if err := s.stores.Worlds.Save(rec.Name, &rec); err != nil {
			el.Add(fmt.Errorf("saving world %s: %w", rec.Name, err))
		}
	}
	for id := range s.stores.Worlds.GetAll() {
		if _, ok := keep[id]; ok {
			continue
		}
		if err := s.stores.Worlds.Delete(id); err != nil {
			el.Add(fmt.Errorf("removing world %s: %w", id, err))
		}
	}

	for i := range backup.Players {
		rec := backup.Players[i]
		if err := s.stores.Players.Save(rec.ID.String(), &rec); err != nil {
			el.Add(fmt.Errorf("saving player %s: %w", rec.ID, err))
		}
	}

	if err := s.stores.Spawn.Save(spawnID, &spawn.Record{Location: backup.Spawn}); err != nil {
		el.Add(fmt.Errorf("saving spawn: %w", err))
	}

	if s.backupDir != "" {
		el.Add(s.writeBackup(ctx, backup))
	}

	if err := el.Err(); err != nil {
		return err
	}

	slog.DebugContext(ctx, "state saved", "worlds", len(backup.Worlds), "players", len(backup.Players))
	return nil
}

func (s *Service) writeBackup(ctx context.Context, b Backup) error {
	path, err := storage.WriteBackup(s.backupDir, b.TakenAt, b)
	if err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	if err := storage.PruneBackups(s.backupDir, s.backupKeep); err != nil {
		slog.WarnContext(ctx, "pruning backups", "error", err)
	}
	slog.DebugContext(ctx, "backup written", "path", path)
	return nil
}

// Tick saves on every driver tick. Failures are logged so one bad write
// does not stop the driver.
func (s *Service) Tick(ctx context.Context) error {
	if err := s.Save(ctx); err != nil {
		slog.ErrorContext(ctx, "autosave failed", "error", err)
	}
	return nil
}
