package player

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/pixil98/go-buildsystem/internal/game"
	"github.com/pixil98/go-buildsystem/internal/host"
	"github.com/pixil98/go-buildsystem/internal/settings"
	"github.com/pixil98/go-buildsystem/internal/world"
	"github.com/pixil98/go-testutil"
)

type fixture struct {
	engine  *host.Engine
	perms   *host.Permissions
	roster  *host.Roster
	worlds  *world.Registry
	manager *Manager
}

func newBareFixture(opts ...ManagerOpt) *fixture {
	f := &fixture{
		engine: host.NewEngine(),
		perms:  host.NewPermissions(),
		roster: host.NewRoster(),
	}
	f.worlds = world.NewRegistry(f.engine, f.perms)
	f.manager = NewManager(f.worlds, f.perms, f.engine, f.roster, opts...)
	return f
}

func newFixture(t *testing.T, opts ...ManagerOpt) *fixture {
	t.Helper()
	f := newBareFixture(opts...)

	for name, status := range map[string]world.Status{
		"build":    world.StatusInProgress,
		"lobby":    world.StatusFinished,
		"museum":   world.StatusArchive,
		"vault":    world.StatusArchive,
		"void":     world.StatusNotStarted,
		"voidDone": world.StatusFinished,
	} {
		typ := world.TypeNormal
		if name == "void" || name == "voidDone" {
			typ = world.TypeVoid
		}
		if _, err := f.worlds.Create(name, world.UnknownCreator, typ, world.VisibilityPublic); err != nil {
			t.Fatalf("creating %q: %v", name, err)
		}
		if _, err := f.worlds.SetStatus(name, status); err != nil {
			t.Fatalf("setting status of %q: %v", name, err)
		}
		f.engine.EnsureLoaded(name)
	}
	return f
}

func newTestPlayer(f *fixture) *host.Player {
	p := host.NewPlayer(uuid.New(), "steve")
	inv := game.NewContents(game.InventorySize)
	inv[0] = game.NewItem("diamond_pickaxe", "")
	inv[5] = game.Item{Material: "STONE", Amount: 64}
	inv[game.NavigatorSlot] = f.manager.navigatorItem
	p.SetInventory(inv)

	armor := game.NewContents(game.ArmorSize)
	armor[3] = game.NewItem("iron_helmet", "")
	p.SetArmor(armor)
	p.SetGameMode(game.GameModeCreative)

	f.roster.Join(p)
	return p
}

func TestManager_GetOrCreate(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	_, err := f.manager.Get(id)
	if err == nil {
		t.Fatal("expected error for unseen player")
	}

	bp := f.manager.GetOrCreate(id)
	testutil.AssertEqual(t, "same instance", f.manager.GetOrCreate(id) == bp, true)
	testutil.AssertEqual(t, "default settings", bp.Settings(), settings.New())
	testutil.AssertEqual(t, "archive cached", bp.ArchiveCached(), false)
}

func TestManager_ArchiveRoundTrip(t *testing.T) {
	f := newFixture(t)
	p := newTestPlayer(f)
	origInv, origArmor, origMode := p.Inventory(), p.Armor(), p.GameMode()

	if err := f.manager.ApplyWorldChange(p, "museum"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inv := p.Inventory()
	for i, it := range inv {
		if i == game.NavigatorSlot {
			testutil.AssertEqual(t, "navigator item", it, f.manager.navigatorItem)
			continue
		}
		if !it.IsEmpty() {
			t.Errorf("slot %d holds %v, expected empty", i, it)
		}
	}
	testutil.AssertEqual(t, "armor empty", p.Armor().Empty(), true)
	testutil.AssertEqual(t, "gamemode", p.GameMode(), game.GameModeAdventure)
	testutil.AssertEqual(t, "flying", p.Flying(), true)
	testutil.AssertEqual(t, "cached", f.manager.GetOrCreate(p.ID()).ArchiveCached(), true)

	if err := f.manager.ApplyWorldChange(p, "build"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "inventory restored", p.Inventory(), origInv)
	testutil.AssertEqual(t, "armor restored", p.Armor(), origArmor)
	testutil.AssertEqual(t, "gamemode restored", p.GameMode(), origMode)
	testutil.AssertEqual(t, "cached", f.manager.GetOrCreate(p.ID()).ArchiveCached(), false)
}

func TestManager_ConsecutiveArchivesKeepOriginal(t *testing.T) {
	f := newFixture(t)
	p := newTestPlayer(f)
	origInv, origArmor, origMode := p.Inventory(), p.Armor(), p.GameMode()

	for _, dest := range []string{"museum", "vault", "museum"} {
		if err := f.manager.ApplyWorldChange(p, dest); err != nil {
			t.Fatalf("entering %s: %v", dest, err)
		}
		snap, ok := f.manager.GetOrCreate(p.ID()).archive.Saved()
		testutil.AssertEqual(t, "cached in "+dest, ok, true)
		testutil.AssertEqual(t, "snapshot inventory in "+dest, snap.Inventory, origInv)
		testutil.AssertEqual(t, "snapshot gamemode in "+dest, snap.GameMode, origMode)
	}

	if err := f.manager.ApplyWorldChange(p, "lobby"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "inventory restored", p.Inventory(), origInv)
	testutil.AssertEqual(t, "armor restored", p.Armor(), origArmor)
	testutil.AssertEqual(t, "gamemode restored", p.GameMode(), origMode)
}

func TestManager_ArchiveVanish(t *testing.T) {
	tests := map[string]struct {
		vanish bool
	}{
		"vanish enabled":  {vanish: true},
		"vanish disabled": {vanish: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, WithArchiveVanish(tt.vanish))
			p := newTestPlayer(f)

			if err := f.manager.ApplyWorldChange(p, "museum"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "invisible", p.Invisible(), tt.vanish)
			testutil.AssertEqual(t, "hidden", f.roster.Hidden(p.ID()), tt.vanish)

			if err := f.manager.ApplyWorldChange(p, "lobby"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "invisible after leaving", p.Invisible(), false)
			testutil.AssertEqual(t, "hidden after leaving", f.roster.Hidden(p.ID()), false)
		})
	}
}

func TestManager_NonArchiveGivesNavigator(t *testing.T) {
	f := newFixture(t)
	p := host.NewPlayer(uuid.New(), "alex")

	if err := f.manager.ApplyWorldChange(p, "build"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "navigator", p.Inventory()[game.NavigatorSlot], f.manager.navigatorItem)
}

func TestManager_NavigatorSlotOccupied(t *testing.T) {
	f := newFixture(t)
	p := host.NewPlayer(uuid.New(), "alex")
	dirt := game.Item{Material: "DIRT", Amount: 1}
	p.SetItem(game.NavigatorSlot, dirt)

	if err := f.manager.ApplyWorldChange(p, "build"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "slot kept", p.Inventory()[game.NavigatorSlot], dirt)
}

func TestManager_UnknownDestination(t *testing.T) {
	tests := map[string]struct {
		from   string
		delete bool
	}{
		"from a managed world": {
			from: "build",
		},
		"out of an archive": {
			from: "museum",
		},
		"archive deleted underfoot": {
			from:   "museum",
			delete: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, WithArchiveVanish(true))
			p := newTestPlayer(f)
			origInv, origArmor, origMode := p.Inventory(), p.Armor(), p.GameMode()

			if err := f.manager.ApplyWorldChange(p, tt.from); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.delete {
				if err := f.worlds.Delete(tt.from); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			if err := f.manager.ApplyWorldChange(p, "world_nether"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "inventory", p.Inventory(), origInv)
			testutil.AssertEqual(t, "armor", p.Armor(), origArmor)
			testutil.AssertEqual(t, "gamemode", p.GameMode(), origMode)
			testutil.AssertEqual(t, "cached", f.manager.GetOrCreate(p.ID()).ArchiveCached(), false)
			testutil.AssertEqual(t, "invisible", p.Invisible(), false)
			testutil.AssertEqual(t, "hidden", f.roster.Hidden(p.ID()), false)
		})
	}
}

func TestManager_VoidMarker(t *testing.T) {
	tests := map[string]struct {
		voidBlock bool
		world     string
		exp       string
	}{
		"fresh void world":    {voidBlock: true, world: "void", exp: "GOLD_BLOCK"},
		"finished void world": {voidBlock: true, world: "voidDone", exp: ""},
		"marker disabled":     {voidBlock: false, world: "void", exp: ""},
		"not a void world":    {voidBlock: true, world: "build", exp: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, WithVoidBlock(tt.voidBlock))
			p := newTestPlayer(f)

			if err := f.manager.ApplyWorldChange(p, tt.world); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "block", f.engine.Block(tt.world, 0, 64, 0), tt.exp)
		})
	}
}

func TestManager_BuildMode(t *testing.T) {
	f := newFixture(t)
	p := newTestPlayer(f)
	origInv, origMode := p.Inventory(), p.GameMode()

	testutil.AssertEqual(t, "exit without entering", f.manager.ExitBuildMode(p), false)

	f.manager.EnterBuildMode(p.ID())
	f.manager.CacheBuildModeState(p)
	p.SetGameMode(game.GameModeSurvival)
	p.SetInventory(game.NewContents(game.InventorySize))

	testutil.AssertEqual(t, "in build mode", f.manager.InBuildMode(p.ID()), true)
	testutil.AssertEqual(t, "exit", f.manager.ExitBuildMode(p), true)
	testutil.AssertEqual(t, "in build mode after exit", f.manager.InBuildMode(p.ID()), false)
	testutil.AssertEqual(t, "inventory", p.Inventory(), origInv)
	testutil.AssertEqual(t, "gamemode", p.GameMode(), origMode)

	p.SetGameMode(game.GameModeSpectator)
	testutil.AssertEqual(t, "second exit", f.manager.ExitBuildMode(p), false)
	testutil.AssertEqual(t, "gamemode untouched", p.GameMode(), game.GameModeSpectator)
}

func TestManager_WorldChangeLeavesBuildMode(t *testing.T) {
	f := newFixture(t)
	p := newTestPlayer(f)

	f.manager.EnterBuildMode(p.ID())
	if err := f.manager.ApplyWorldChange(p, "lobby"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "in build mode", f.manager.InBuildMode(p.ID()), false)
}

func TestManager_Navigator(t *testing.T) {
	f := newFixture(t)
	p := newTestPlayer(f)
	if err := f.manager.UpdateSettings(p.ID(), func(s *settings.Settings) error {
		s.NavigatorType = settings.NavigatorNew
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.manager.OpenNavigator(p)
	testutil.AssertEqual(t, "open", f.manager.IsNavigatorOpen(p.ID()), true)
	testutil.AssertEqual(t, "walk speed frozen", p.WalkSpeed(), float32(0))

	testutil.AssertEqual(t, "close", f.manager.CloseNavigator(p), true)
	testutil.AssertEqual(t, "open after close", f.manager.IsNavigatorOpen(p.ID()), false)
	testutil.AssertEqual(t, "walk speed restored", p.WalkSpeed(), float32(host.DefaultWalkSpeed))
	testutil.AssertEqual(t, "fly speed restored", p.FlySpeed(), float32(host.DefaultFlySpeed))
	testutil.AssertEqual(t, "close twice", f.manager.CloseNavigator(p), false)
}

func TestManager_SetSpeed(t *testing.T) {
	f := newFixture(t)
	p := newTestPlayer(f)

	if err := f.manager.SetSpeed(p, 0); err == nil {
		t.Error("expected error for speed 0")
	}
	if err := f.manager.SetSpeed(p, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "walk speed", p.WalkSpeed(), float32(1.0))
}

func TestManager_UpdateSettingsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	err := f.manager.UpdateSettings(id, func(s *settings.Settings) error {
		s.NoClip = true
		return ErrInvalidSpeed
	})
	if err == nil {
		t.Fatal("expected error")
	}
	testutil.AssertEqual(t, "no clip", f.manager.Settings(id).NoClip, false)
}

func TestManager_SelectedWorldName(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.manager.SelectWorld(id, "short")
	testutil.AssertEqual(t, "short", f.manager.GetOrCreate(id).SelectedWorldName(), "short")

	f.manager.SelectWorld(id, "a_really_long_world_name")
	testutil.AssertEqual(t, "long", f.manager.GetOrCreate(id).SelectedWorldName(), "a_really_long_...")

	f.manager.SelectWorld(id, "ÿÿÿÿÿÿÿÿÿÿÿÿÿÿÿÿÿÿ")
	testutil.AssertEqual(t, "multibyte", f.manager.GetOrCreate(id).SelectedWorldName(), "ÿÿÿÿÿÿÿÿÿÿÿÿÿÿ...")
}

func TestManager_Records(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()
	f.manager.SetLogoutLocation(id, game.Location{World: "lobby", X: 1, Y: 2, Z: 3})
	_ = f.manager.UpdateSettings(id, func(s *settings.Settings) error {
		s.WorldSort = settings.SortNewestFirst
		return nil
	})

	recs := f.manager.Records()
	testutil.AssertEqual(t, "records", len(recs), 1)

	other := newFixture(t).manager
	n := other.Load(append(recs,
		Record{ID: uuid.Nil},
		Record{ID: uuid.New(), Settings: settings.New(), LogoutLocation: "broken"},
	))
	testutil.AssertEqual(t, "loaded", n, 2)

	bp, err := other.Get(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loc, ok := bp.LogoutLocation()
	testutil.AssertEqual(t, "has logout", ok, true)
	testutil.AssertEqual(t, "logout", loc, game.Location{World: "lobby", X: 1, Y: 2, Z: 3})
	testutil.AssertEqual(t, "sort", bp.Settings().WorldSort, settings.SortNewestFirst)
}

func TestManager_ConcurrentWorldChanges(t *testing.T) {
	f := newFixture(t)
	p := newTestPlayer(f)
	origInv := p.Inventory()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dest := "museum"
			if i%2 == 0 {
				dest = "vault"
			}
			_ = f.manager.ApplyWorldChange(p, dest)
		}(i)
	}
	wg.Wait()

	if err := f.manager.ApplyWorldChange(p, "lobby"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "inventory restored", p.Inventory(), origInv)
}
