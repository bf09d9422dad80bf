package commands

import (
	"context"

	"github.com/pixil98/go-buildsystem/internal/world"
)

func (h *Handler) setSpawn(_ context.Context, cc *CommandContext) error {
	loc := cc.Actor.Location()
	w, ok := h.Worlds.Get(loc.World)
	if !ok {
		return h.fail("world_not_found", map[string]any{"World": loc.World}, world.ErrNotFound)
	}

	h.Spawn.Set(w.Name(), loc)
	h.reply(cc, "spawn_set", map[string]any{"World": w.Name()})
	return nil
}

func (h *Handler) removeSpawn(_ context.Context, cc *CommandContext) error {
	h.Spawn.Clear()
	h.reply(cc, "spawn_removed", nil)
	return nil
}

func (h *Handler) spawn(_ context.Context, cc *CommandContext) error {
	if !h.Spawn.Teleport(cc.Actor) {
		return h.fail("spawn_missing", nil, errSpawnUnset)
	}

	loc, _ := h.Spawn.Get()
	h.arrived(cc.Actor, loc.World)
	return nil
}
