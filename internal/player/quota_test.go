package player

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/pixil98/go-buildsystem/internal/game"
	"github.com/pixil98/go-buildsystem/internal/world"
	"github.com/pixil98/go-testutil"
)

func TestParseCreatePermission(t *testing.T) {
	tests := map[string]struct {
		perm         string
		vis          world.Visibility
		expAmount    int
		expUnlimited bool
		expOk        bool
	}{
		"public amount":     {perm: "buildsystem.create.public.5", vis: world.VisibilityPublic, expAmount: 5, expOk: true},
		"private amount":    {perm: "buildsystem.create.private.2", vis: world.VisibilityPrivate, expAmount: 2, expOk: true},
		"wildcard":          {perm: "buildsystem.create.public.*", vis: world.VisibilityPublic, expUnlimited: true, expOk: true},
		"wrong visibility":  {perm: "buildsystem.create.private.5", vis: world.VisibilityPublic},
		"malformed amount":  {perm: "buildsystem.create.public.lots", vis: world.VisibilityPublic},
		"negative amount":   {perm: "buildsystem.create.public.-1", vis: world.VisibilityPublic},
		"too short":         {perm: "buildsystem.create.public", vis: world.VisibilityPublic},
		"too long":          {perm: "buildsystem.create.public.5.extra", vis: world.VisibilityPublic},
		"other plugin":      {perm: "otherplugin.create.public.5", vis: world.VisibilityPublic},
		"not a create node": {perm: "buildsystem.delete.public.5", vis: world.VisibilityPublic},
		"case insensitive":  {perm: "BuildSystem.Create.PUBLIC.3", vis: world.VisibilityPublic, expAmount: 3, expOk: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			amount, unlimited, ok := parseCreatePermission(tt.perm, tt.vis)
			testutil.AssertEqual(t, "amount", amount, tt.expAmount)
			testutil.AssertEqual(t, "unlimited", unlimited, tt.expUnlimited)
			testutil.AssertEqual(t, "ok", ok, tt.expOk)
		})
	}
}

func TestManager_CanCreateWorld(t *testing.T) {
	tests := map[string]struct {
		limits   Limits
		grants   []string
		existing int
		others   int
		exp      bool
	}{
		"at player cap": {
			limits:   Limits{MaxPublicWorlds: -1, MaxPrivateWorlds: -1},
			grants:   []string{"buildsystem.create.public.5"},
			existing: 5,
			exp:      false,
		},
		"below player cap": {
			limits:   Limits{MaxPublicWorlds: -1, MaxPrivateWorlds: -1},
			grants:   []string{"buildsystem.create.public.5"},
			existing: 4,
			exp:      true,
		},
		"wildcard ignores count": {
			limits:   Limits{MaxPublicWorlds: -1, MaxPrivateWorlds: -1},
			grants:   []string{"buildsystem.create.public.*"},
			existing: 50,
			exp:      true,
		},
		"highest amount wins": {
			limits:   Limits{MaxPublicWorlds: -1, MaxPrivateWorlds: -1},
			grants:   []string{"buildsystem.create.public.1", "buildsystem.create.public.10", "buildsystem.create.public.x"},
			existing: 5,
			exp:      true,
		},
		"no permission": {
			limits: Limits{MaxPublicWorlds: -1, MaxPrivateWorlds: -1},
			exp:    false,
		},
		"admin is unlimited": {
			limits:   Limits{MaxPublicWorlds: -1, MaxPrivateWorlds: -1},
			grants:   []string{game.AdminPermission},
			existing: 20,
			exp:      true,
		},
		"server cap reached by others": {
			limits: Limits{MaxPublicWorlds: 3, MaxPrivateWorlds: -1},
			grants: []string{"buildsystem.create.public.*"},
			others: 3,
			exp:    false,
		},
		"server cap binds admins too": {
			limits: Limits{MaxPublicWorlds: 0, MaxPrivateWorlds: -1},
			grants: []string{game.AdminPermission},
			exp:    false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newBareFixture(WithLimits(tt.limits))
			actor := uuid.New()
			f.perms.Grant(actor, tt.grants...)

			for i := 0; i < tt.existing; i++ {
				mustCreate(t, f.worlds, fmt.Sprintf("mine%d", i), world.Identity{ID: actor, Name: "me"})
			}
			for i := 0; i < tt.others; i++ {
				mustCreate(t, f.worlds, fmt.Sprintf("theirs%d", i), world.Identity{ID: uuid.New(), Name: "them"})
			}

			testutil.AssertEqual(t, "can create", f.manager.CanCreateWorld(actor, world.VisibilityPublic), tt.exp)
		})
	}
}

func mustCreate(t *testing.T, r *world.Registry, name string, creator world.Identity) {
	t.Helper()
	if _, err := r.Create(name, creator, world.TypeNormal, world.VisibilityPublic); err != nil {
		t.Fatalf("creating %q: %v", name, err)
	}
}
