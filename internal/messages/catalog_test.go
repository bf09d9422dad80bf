package messages

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func TestCatalog_Render(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]struct {
		key  string
		data any
		exp  string
	}{
		"simple": {
			key:  "world_created",
			data: map[string]any{"World": "lobby", "Visibility": "PUBLIC"},
			exp:  "Created public world lobby.",
		},
		"status formatting": {
			key:  "world_status",
			data: map[string]any{"World": "lobby", "Status": "ALMOST_FINISHED", "Previous": "IN_PROGRESS"},
			exp:  "lobby is now almost finished (was in progress).",
		},
		"empty list": {
			key:  "builders",
			data: map[string]any{"World": "lobby", "Builders": []string{}},
			exp:  "Builders of lobby: none",
		},
		"joined list": {
			key:  "builders",
			data: map[string]any{"World": "lobby", "Builders": []string{"alex", "steve"}},
			exp:  "Builders of lobby: alex, steve",
		},
		"page numbers start at one": {
			key:  "page",
			data: map[string]any{"View": "archive", "Page": 0, "Pages": 2, "Worlds": []string{"museum"}},
			exp:  "Archive (1/2): museum",
		},
		"info folds lines": {
			key: "world_info",
			data: map[string]any{
				"World": "lobby", "Creator": "steve", "Type": "FLAT", "Visibility": "PUBLIC",
				"Status": "NOT_STARTED", "Project": "-", "Permission": "-", "Builders": []string{"alex"},
				"CreatedAt": time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
			},
			exp: "lobby: creator steve, type flat, public, status not started, project -, permission -, 1 builder(s), created 2024-02-03.",
		},
		"unknown key": {
			key: "nope",
			exp: "nope",
		},
		"missing data": {
			key:  "world_created",
			data: map[string]any{},
			exp:  "world_created",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "rendered", c.Render(tt.key, tt.data), tt.exp)
		})
	}
}

func TestLoad_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	err := os.WriteFile(path, []byte("world_deleted: \"{{ .World | upper }} is gone\"\nextra: hi\n"), 0o644)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "overridden", c.Render("world_deleted", map[string]any{"World": "lobby"}), "LOBBY is gone")
	testutil.AssertEqual(t, "kept", c.Has("world_created"), true)
	testutil.AssertEqual(t, "extra", c.Render("extra", nil), "hi")
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("world_deleted: \"{{ .World \"\n"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	testutil.AssertErrorContains(t, err, "reading messages")

	_, err = Load(bad)
	testutil.AssertErrorContains(t, err, "parsing message")
}
