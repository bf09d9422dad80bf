package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-buildsystem/internal/commands"
	"github.com/pixil98/go-buildsystem/internal/driver"
	"github.com/pixil98/go-buildsystem/internal/host"
	"github.com/pixil98/go-buildsystem/internal/messages"
	"github.com/pixil98/go-buildsystem/internal/messaging"
	"github.com/pixil98/go-buildsystem/internal/navigator"
	"github.com/pixil98/go-buildsystem/internal/persistence"
	"github.com/pixil98/go-buildsystem/internal/player"
	"github.com/pixil98/go-buildsystem/internal/spawn"
	"github.com/pixil98/go-buildsystem/internal/world"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}
	ctx := context.Background()

	// Host stand-ins
	engine := host.NewEngine()
	perms := cfg.Permissions.buildPermissions()
	roster := host.NewRoster()

	worlds := world.NewRegistry(engine, perms)
	players := player.NewManager(worlds, perms, engine, roster, cfg.Players.managerOpts()...)
	sp := spawn.NewPointer(worlds)

	var projOpts []navigator.ProjectorOpt
	if cfg.Navigator.PageSize > 0 {
		projOpts = append(projOpts, navigator.WithCapacity(cfg.Navigator.PageSize))
	}
	projector := navigator.NewProjector(worlds, perms, players, projOpts...)

	// Load saved state
	stores, err := cfg.Storage.buildStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating stores: %w", err)
	}
	persist := persistence.NewService(stores, worlds, players, sp, cfg.Storage.serviceOpts()...)
	if err := persist.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	catalog, err := messages.Load(cfg.Messages)
	if err != nil {
		return nil, fmt.Errorf("loading messages: %w", err)
	}

	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	publisher := messaging.NewNatsPublisher(natsServer)

	handler, err := commands.NewHandler(commands.Deps{
		Worlds:    worlds,
		Players:   players,
		Projector: projector,
		Spawn:     sp,
		Perms:     perms,
		Roster:    roster,
		Messages:  catalog,
		Notifier:  publisher,
		Events:    publisher,
	})
	if err != nil {
		return nil, fmt.Errorf("creating command handler: %w", err)
	}

	// Setup the autosave driver
	d := driver.NewDriver([]driver.Manager{
		persist,
	}, driver.WithTickLength(cfg.autosaveInterval()))

	// Create a worker list
	return service.WorkerList{
		"nats":          natsServer,
		"presence":      messaging.NewPresenceListener(natsServer, roster, players),
		"world-changes": messaging.NewWorldChangeListener(natsServer, roster, players),
		"commands":      messaging.NewCommandListener(natsServer, roster, handler),
		"driver":        d,
	}, nil
}
