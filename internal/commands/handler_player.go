package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pixil98/go-buildsystem/internal/game"
	"github.com/pixil98/go-buildsystem/internal/navigator"
	"github.com/pixil98/go-buildsystem/internal/player"
	"github.com/pixil98/go-buildsystem/internal/settings"
)

var (
	errSpawnUnset   = errors.New("spawn not set")
	errUnknownView  = errors.New("unknown view")
	errBadDirection = errors.New("direction must be next or previous")
)

func (h *Handler) worlds(_ context.Context, cc *CommandContext) error {
	view := navigator.WorldsView
	if cc.Has("view") {
		v, ok := findView(cc.String("view"))
		if !ok {
			return h.fail("usage", map[string]any{"Usage": cc.Command.Usage()}, errUnknownView)
		}
		view = v
	}

	id := cc.Actor.ID()
	var page navigator.Page
	switch strings.ToLower(cc.String("page")) {
	case "":
		page = h.Projector.Current(id, view)
	case "next":
		page = h.Projector.Next(id, view)
	case "previous", "prev":
		page = h.Projector.Previous(id, view)
	default:
		return h.fail("usage", map[string]any{"Usage": cc.Command.Usage()}, errBadDirection)
	}

	names := make([]string, 0, len(page.Worlds))
	for _, r := range page.Worlds {
		names = append(names, r.Name)
	}

	h.reply(cc, "page", map[string]any{
		"View":   view.Name,
		"Page":   page.Index,
		"Pages":  page.Pages,
		"Worlds": names,
	})
	return nil
}

func findView(name string) (navigator.View, bool) {
	for _, v := range navigator.Views() {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return navigator.View{}, false
}

func (h *Handler) sort(_ context.Context, cc *CommandContext) error {
	var step func(settings.WorldSort) settings.WorldSort
	switch strings.ToLower(cc.String("direction")) {
	case "", "next":
		step = settings.WorldSort.Next
	case "previous", "prev":
		step = settings.WorldSort.Previous
	default:
		return h.fail("usage", map[string]any{"Usage": cc.Command.Usage()}, errBadDirection)
	}

	var sorted settings.WorldSort
	err := h.Players.UpdateSettings(cc.Actor.ID(), func(s *settings.Settings) error {
		s.WorldSort = step(s.WorldSort)
		sorted = s.WorldSort
		return nil
	})
	if err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}

	h.reply(cc, "sort", map[string]any{"Sort": sorted.String()})
	return nil
}

func (h *Handler) speed(_ context.Context, cc *CommandContext) error {
	level, _ := cc.Int("level")
	if err := h.Players.SetSpeed(cc.Actor, level); err != nil {
		if errors.Is(err, player.ErrInvalidSpeed) {
			return h.fail("invalid_speed", nil, err)
		}
		return err
	}

	h.reply(cc, "speed", map[string]any{"Level": level})
	return nil
}

func (h *Handler) build(_ context.Context, cc *CommandContext) error {
	p := cc.Actor
	if h.Players.InBuildMode(p.ID()) {
		h.Players.ExitBuildMode(p)
		h.reply(cc, "build_off", nil)
		return nil
	}

	h.Players.CacheBuildModeState(p)
	h.Players.EnterBuildMode(p.ID())
	p.SetGameMode(game.GameModeCreative)
	h.reply(cc, "build_on", nil)
	return nil
}
