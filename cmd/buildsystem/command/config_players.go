package command

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pixil98/go-buildsystem/internal/game"
	"github.com/pixil98/go-buildsystem/internal/host"
	"github.com/pixil98/go-buildsystem/internal/player"
	"github.com/pixil98/go-errors"
)

type PlayersConfig struct {
	// Server wide world caps. Unset means unlimited.
	MaxPublicWorlds  *int `json:"max_public_worlds"`
	MaxPrivateWorlds *int `json:"max_private_worlds"`

	ArchiveVanish    bool       `json:"archive_vanish"`
	DisableVoidBlock bool       `json:"disable_void_block"`
	NavigatorItem    ItemConfig `json:"navigator_item"`
}

type ItemConfig struct {
	Material string `json:"material"`
	Name     string `json:"name"`
}

func (c *PlayersConfig) validate() error {
	el := errors.NewErrorList()

	if c.NavigatorItem.Name != "" && c.NavigatorItem.Material == "" {
		el.Add(fmt.Errorf("players: navigator_item.material is required when a name is set"))
	}

	return el.Err()
}

func (c *PlayersConfig) managerOpts() []player.ManagerOpt {
	limits := player.Limits{MaxPublicWorlds: -1, MaxPrivateWorlds: -1}
	if c.MaxPublicWorlds != nil {
		limits.MaxPublicWorlds = *c.MaxPublicWorlds
	}
	if c.MaxPrivateWorlds != nil {
		limits.MaxPrivateWorlds = *c.MaxPrivateWorlds
	}

	opts := []player.ManagerOpt{
		player.WithLimits(limits),
		player.WithArchiveVanish(c.ArchiveVanish),
		player.WithVoidBlock(!c.DisableVoidBlock),
	}
	if c.NavigatorItem.Material != "" {
		opts = append(opts, player.WithNavigatorItem(game.NewItem(c.NavigatorItem.Material, c.NavigatorItem.Name)))
	}
	return opts
}

type NavigatorConfig struct {
	PageSize int `json:"page_size"`
}

func (c *NavigatorConfig) validate() error {
	if c.PageSize < 0 {
		return fmt.Errorf("navigator: page_size cannot be negative")
	}
	return nil
}

// PermissionsConfig grants capabilities to player ids.
type PermissionsConfig struct {
	Grants map[string][]string `json:"grants"`
}

func (c *PermissionsConfig) validate() error {
	el := errors.NewErrorList()

	for id := range c.Grants {
		if _, err := uuid.Parse(id); err != nil {
			el.Add(fmt.Errorf("permissions: invalid player id %q: %w", id, err))
		}
	}

	return el.Err()
}

func (c *PermissionsConfig) buildPermissions() *host.Permissions {
	perms := host.NewPermissions()
	for id, grants := range c.Grants {
		perms.Grant(uuid.MustParse(id), grants...)
	}
	return perms
}
