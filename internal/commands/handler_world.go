package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pixil98/go-buildsystem/internal/game"
	"github.com/pixil98/go-buildsystem/internal/messaging"
	"github.com/pixil98/go-buildsystem/internal/world"
)

// arrivalHeight is where players land in a world without a spawn.
const arrivalHeight = 65

func (h *Handler) create(_ context.Context, cc *CommandContext) error {
	name := cc.String("world")
	data := map[string]any{"World": name}

	vis := world.VisibilityPublic
	if cc.Has("visibility") {
		v, err := world.ParseVisibility(cc.String("visibility"))
		if err != nil {
			return h.fail("invalid_visibility", map[string]any{"Visibility": cc.String("visibility")}, err)
		}
		vis = v
	}
	data["Visibility"] = vis.String()

	typ := world.TypeNormal
	if cc.Has("type") {
		t, err := world.ParseType(cc.String("type"))
		if err != nil {
			return h.fail("invalid_type", map[string]any{"Type": cc.String("type")}, err)
		}
		typ = t
	}

	if err := world.ValidateName(name); err != nil {
		return h.fail("world_invalid_name", data, err)
	}
	if !h.Players.CanCreateWorld(cc.Actor.ID(), vis) {
		return h.fail("world_quota", data, ErrQuotaExceeded)
	}

	creator := world.Identity{ID: cc.Actor.ID(), Name: cc.Actor.Name()}
	if _, err := h.Worlds.Create(name, creator, typ, vis); err != nil {
		if errors.Is(err, world.ErrDuplicateName) {
			return h.fail("world_exists", data, err)
		}
		return fmt.Errorf("creating world %q: %w", name, err)
	}

	h.reply(cc, "world_created", data)
	return nil
}

func (h *Handler) delete(_ context.Context, cc *CommandContext) error {
	w, err := h.world(cc)
	if err != nil {
		return err
	}

	if err := h.Worlds.Delete(w.Name()); err != nil {
		if errors.Is(err, world.ErrNotFound) {
			return h.fail("world_not_found", map[string]any{"World": w.Name()}, err)
		}
		// The world is gone from the registry even if the engine failed.
		slog.Error("deleting world files", "world", w.Name(), "error", err)
	}
	if h.Spawn.InWorld(w.Name()) {
		h.Spawn.Clear()
	}

	h.reply(cc, "world_deleted", map[string]any{"World": w.Name()})
	return nil
}

func (h *Handler) info(_ context.Context, cc *CommandContext) error {
	w, err := h.world(cc)
	if err != nil {
		return err
	}

	r := w.Snapshot()
	h.reply(cc, "world_info", map[string]any{
		"World":      r.Name,
		"Creator":    r.Creator.Name,
		"Type":       r.Type.String(),
		"Visibility": r.Visibility.String(),
		"Status":     r.Status.String(),
		"Project":    r.Project,
		"Permission": r.Permission,
		"Builders":   builderNames(r),
		"CreatedAt":  r.CreatedAt,
	})
	return nil
}

func (h *Handler) builders(_ context.Context, cc *CommandContext) error {
	w, err := h.world(cc)
	if err != nil {
		return err
	}

	r := w.Snapshot()
	h.reply(cc, "builders", map[string]any{"World": r.Name, "Builders": builderNames(r)})
	return nil
}

func (h *Handler) addBuilder(_ context.Context, cc *CommandContext) error {
	w, err := h.world(cc)
	if err != nil {
		return err
	}
	target, err := h.player(cc)
	if err != nil {
		return err
	}

	data := map[string]any{"World": w.Name(), "Player": target.Name}
	if err := h.Worlds.AddBuilder(w.Name(), target); err != nil {
		if errors.Is(err, world.ErrAlreadyBuilder) {
			return h.fail("builder_exists", data, err)
		}
		return fmt.Errorf("adding builder: %w", err)
	}

	h.reply(cc, "builder_added", data)
	return nil
}

func (h *Handler) removeBuilder(_ context.Context, cc *CommandContext) error {
	w, err := h.world(cc)
	if err != nil {
		return err
	}
	target, err := h.player(cc)
	if err != nil {
		return err
	}

	if target.ID == cc.Actor.ID() && w.IsCreator(cc.Actor.ID()) {
		return h.fail("builder_self", nil, ErrPermissionDenied)
	}

	data := map[string]any{"World": w.Name(), "Player": target.Name}
	if err := h.Worlds.RemoveBuilder(w.Name(), target.ID); err != nil {
		if errors.Is(err, world.ErrNotBuilder) {
			return h.fail("builder_missing", data, err)
		}
		return fmt.Errorf("removing builder: %w", err)
	}

	h.reply(cc, "builder_removed", data)
	return nil
}

func (h *Handler) setStatus(_ context.Context, cc *CommandContext) error {
	w, err := h.world(cc)
	if err != nil {
		return err
	}

	status, err := world.ParseStatus(cc.String("status"))
	if err != nil {
		return h.fail("invalid_status", map[string]any{"Status": cc.String("status")}, err)
	}

	prev, err := h.Worlds.SetStatus(w.Name(), status)
	if err != nil {
		return fmt.Errorf("setting status: %w", err)
	}

	h.reply(cc, "world_status", map[string]any{
		"World":    w.Name(),
		"Status":   status.String(),
		"Previous": prev.String(),
	})
	return nil
}

func (h *Handler) setPermission(_ context.Context, cc *CommandContext) error {
	w, err := h.world(cc)
	if err != nil {
		return err
	}

	if err := h.Worlds.SetPermission(w.Name(), cc.String("permission")); err != nil {
		return fmt.Errorf("setting permission: %w", err)
	}

	h.reply(cc, "world_permission", map[string]any{"World": w.Name(), "Permission": w.Permission()})
	return nil
}

func (h *Handler) setProject(_ context.Context, cc *CommandContext) error {
	w, err := h.world(cc)
	if err != nil {
		return err
	}

	if err := h.Worlds.SetProject(w.Name(), cc.String("project")); err != nil {
		return fmt.Errorf("setting project: %w", err)
	}

	h.reply(cc, "world_project", map[string]any{"World": w.Name(), "Project": w.Snapshot().Project})
	return nil
}

func (h *Handler) setCreator(_ context.Context, cc *CommandContext) error {
	w, err := h.world(cc)
	if err != nil {
		return err
	}
	target, err := h.player(cc)
	if err != nil {
		return err
	}

	if err := h.Worlds.SetCreator(w.Name(), target); err != nil {
		return fmt.Errorf("setting creator: %w", err)
	}

	h.reply(cc, "world_creator", map[string]any{"World": w.Name(), "Player": target.Name})
	return nil
}

func (h *Handler) teleport(_ context.Context, cc *CommandContext) error {
	w, err := h.world(cc)
	if err != nil {
		return err
	}

	id := cc.Actor.ID()
	if w.Visibility() == world.VisibilityPrivate &&
		!w.IsCreator(id) && !w.IsBuilder(id) && !h.Perms.HasCapability(id, game.AdminPermission) {
		return h.fail("no_permission", nil, ErrPermissionDenied)
	}

	h.Worlds.EnsureLoaded(w.Name())

	loc := game.Location{World: w.Name(), X: 0.5, Y: arrivalHeight, Z: 0.5}
	if h.Spawn.InWorld(w.Name()) {
		loc, _ = h.Spawn.Get()
	}
	cc.Actor.SetFallDistance(0)
	cc.Actor.Teleport(loc)
	h.arrived(cc.Actor, w.Name())

	h.reply(cc, "world_teleport", map[string]any{"World": w.Name()})
	return nil
}

// arrived hands a world change to the session manager, through the event
// bus when there is one.
func (h *Handler) arrived(p game.Player, worldName string) {
	if h.Events != nil {
		err := h.Events.PublishWorldChange(messaging.WorldChange{PlayerID: p.ID(), World: worldName})
		if err == nil {
			return
		}
		slog.Warn("publishing world change, applying directly", "player", p.Name(), "error", err)
	}

	if err := h.Players.ApplyWorldChange(p, worldName); err != nil {
		slog.Error("applying world change", "player", p.Name(), "world", worldName, "error", err)
	}
}

// world resolves the command's world input.
func (h *Handler) world(cc *CommandContext) (*world.World, error) {
	name := cc.String(cc.Command.WorldInput)
	w, ok := h.Worlds.Get(name)
	if !ok {
		return nil, h.fail("world_not_found", map[string]any{"World": name}, world.ErrNotFound)
	}
	return w, nil
}

// player resolves the command's player input to a known identity.
func (h *Handler) player(cc *CommandContext) (world.Identity, error) {
	name := cc.String("player")
	id, ok := h.Roster.Lookup(name)
	if !ok || id == uuid.Nil {
		return world.Identity{}, h.fail("player_not_found", map[string]any{"Player": name}, errPlayerUnknown)
	}
	if p, ok := h.Roster.Player(id); ok {
		name = p.Name()
	}
	return world.Identity{ID: id, Name: name}, nil
}

var errPlayerUnknown = errors.New("player unknown")

func builderNames(r world.Record) []string {
	names := make([]string, 0, len(r.Builders))
	for _, b := range r.Builders {
		names = append(names, b.Name)
	}
	return names
}
