package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-buildsystem/internal/game"
	"github.com/pixil98/go-buildsystem/internal/host"
	"github.com/pixil98/go-testutil"
)

func startServer(t *testing.T) *NatsServer {
	t.Helper()

	s, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := s.Start(ctx); err != nil {
			t.Errorf("server stopped: %v", err)
		}
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	if err := s.WaitReady(waitCtx); err != nil {
		t.Fatalf("server not ready: %v", err)
	}
	return s
}

type recordingApplier struct {
	calls chan string
}

func (a *recordingApplier) ApplyWorldChange(p game.Player, destination string) error {
	select {
	case a.calls <- p.Name() + "@" + destination:
	default:
	}
	return nil
}

func TestNatsPublisher_Notify(t *testing.T) {
	s := startServer(t)
	pub := NewNatsPublisher(s)
	id := uuid.New()

	got := make(chan string, 1)
	unsub, err := s.Subscribe(PlayerSubject(id), func(data []byte) {
		got <- string(data)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer unsub()

	if err := pub.Notify(id, "World created"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case msg := <-got:
		testutil.AssertEqual(t, "message", msg, "World created")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestWorldChangeListener(t *testing.T) {
	s := startServer(t)
	roster := host.NewRoster()
	p := host.NewPlayer(uuid.New(), "steve")
	roster.Join(p)

	applier := &recordingApplier{calls: make(chan string, 4)}
	l := NewWorldChangeListener(s, roster, applier)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = l.Start(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	pub := NewNatsPublisher(s)
	deadline := time.After(5 * time.Second)
	for {
		// The listener subscribes asynchronously; publish until it answers.
		if err := pub.PublishWorldChange(WorldChange{PlayerID: uuid.New(), World: "lobby"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := pub.PublishWorldChange(WorldChange{PlayerID: p.ID(), World: "museum"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.Publish(SubjectWorldChange, []byte("not json")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		select {
		case call := <-applier.calls:
			testutil.AssertEqual(t, "call", call, "steve@museum")
			return
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatal("timed out waiting for world change")
		}
	}
}

func TestNatsServer_NotStarted(t *testing.T) {
	s, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertErrorContains(t, s.Publish("x", nil), "not started")
	_, err = s.Subscribe("x", func([]byte) {})
	testutil.AssertErrorContains(t, err, "not started")
}

type recordingDispatcher struct {
	lines chan string
}

func (d *recordingDispatcher) Dispatch(_ context.Context, actor game.Player, line string) error {
	select {
	case d.lines <- actor.Name() + ": " + line:
	default:
	}
	return nil
}

func TestCommandListener(t *testing.T) {
	s := startServer(t)
	roster := host.NewRoster()
	p := host.NewPlayer(uuid.New(), "alex")
	roster.Join(p)

	dispatcher := &recordingDispatcher{lines: make(chan string, 4)}
	l := NewCommandListener(s, roster, dispatcher)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = l.Start(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	pub := NewNatsPublisher(s)
	deadline := time.After(5 * time.Second)
	for {
		if err := pub.PublishCommand(CommandRequest{PlayerID: uuid.New(), Line: "spawn"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := pub.PublishCommand(CommandRequest{PlayerID: p.ID(), Line: "tp lobby"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		select {
		case line := <-dispatcher.lines:
			testutil.AssertEqual(t, "line", line, "alex: tp lobby")
			return
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatal("timed out waiting for command")
		}
	}
}

type recordingTracker struct {
	events chan string
}

func (r *recordingTracker) Join(p game.Player) error {
	r.events <- "join " + p.Name()
	return nil
}

func (r *recordingTracker) Leave(p game.Player) {
	r.events <- "leave " + p.Name()
}

func TestPresenceListener(t *testing.T) {
	s := startServer(t)
	roster := host.NewRoster()
	tracker := &recordingTracker{events: make(chan string, 4)}
	l := NewPresenceListener(s, roster, tracker)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = l.Start(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	pub := NewNatsPublisher(s)
	id := uuid.New()
	deadline := time.After(5 * time.Second)

	// Joins of an online player are ignored, so repeating is safe.
	joined := false
	for !joined {
		if err := pub.PublishPresence(Presence{PlayerID: id, Name: "alex", Online: true}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		select {
		case ev := <-tracker.events:
			testutil.AssertEqual(t, "event", ev, "join alex")
			joined = true
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatal("timed out waiting for join")
		}
	}

	_, ok := roster.Player(id)
	testutil.AssertEqual(t, "online", ok, true)

	if err := pub.PublishPresence(Presence{PlayerID: id, Online: false}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case ev := <-tracker.events:
		testutil.AssertEqual(t, "event", ev, "leave alex")
	case <-deadline:
		t.Fatal("timed out waiting for leave")
	}
	_, ok = roster.Player(id)
	testutil.AssertEqual(t, "online", ok, false)
}

func TestListeners_BusNeverReady(t *testing.T) {
	s, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	roster := host.NewRoster()

	tests := map[string]interface {
		Start(context.Context) error
	}{
		"world changes": NewWorldChangeListener(s, roster, &recordingApplier{calls: make(chan string, 1)}),
		"commands":      NewCommandListener(s, roster, &recordingDispatcher{lines: make(chan string, 1)}),
		"presence":      NewPresenceListener(s, roster, &recordingTracker{events: make(chan string, 1)}),
	}

	for name, l := range tests {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			err := l.Start(ctx)
			testutil.AssertErrorContains(t, err, "waiting for bus")
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("expected deadline exceeded, got %v", err)
			}
		})
	}
}
