package player

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pixil98/go-buildsystem/internal/game"
	"github.com/pixil98/go-buildsystem/internal/host"
	"github.com/pixil98/go-testutil"
)

func TestSessionCache_FirstSaveWins(t *testing.T) {
	var c SessionCache
	p := host.NewPlayer(uuid.New(), "alex")

	p.SetGameMode(game.GameModeCreative)
	testutil.AssertEqual(t, "first save", c.save(capture(p, true)), true)

	p.SetGameMode(game.GameModeSurvival)
	testutil.AssertEqual(t, "second save", c.save(capture(p, true)), false)

	snap, ok := c.Saved()
	testutil.AssertEqual(t, "cached", ok, true)
	testutil.AssertEqual(t, "gamemode", snap.GameMode, game.GameModeCreative)
}

func TestSessionCache_Restore(t *testing.T) {
	var c SessionCache
	p := host.NewPlayer(uuid.New(), "alex")
	armor := game.NewContents(game.ArmorSize)
	armor[0] = game.NewItem("LEATHER_BOOTS", "")
	p.SetArmor(armor)

	testutil.AssertEqual(t, "restore empty", c.restore(p), false)

	c.save(capture(p, false))
	p.SetArmor(game.NewContents(game.ArmorSize))
	p.SetGameMode(game.GameModeSpectator)

	testutil.AssertEqual(t, "restore", c.restore(p), true)
	testutil.AssertEqual(t, "cached", c.Cached(), false)
	testutil.AssertEqual(t, "gamemode", p.GameMode(), game.GameModeSurvival)
	testutil.AssertEqual(t, "armor left alone", p.Armor().Empty(), true)
}
