package driver

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type countingManager struct {
	ticks atomic.Int32
	err   error
}

func (m *countingManager) Tick(context.Context) error {
	m.ticks.Add(1)
	return m.err
}

func TestDriver_Tick(t *testing.T) {
	tests := map[string]struct {
		managers []*countingManager
		expErr   string
		expTicks []int32
	}{
		"all managers tick": {
			managers: []*countingManager{{}, {}},
			expTicks: []int32{1, 1},
		},
		"error stops the tick": {
			managers: []*countingManager{{err: errors.New("disk full")}, {}},
			expErr:   "disk full",
			expTicks: []int32{1, 0},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var managers []Manager
			for _, m := range tt.managers {
				managers = append(managers, m)
			}

			err := NewDriver(managers).Tick(context.Background())
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for i, m := range tt.managers {
				testutil.AssertEqual(t, "ticks", m.ticks.Load(), tt.expTicks[i])
			}
		})
	}
}

func TestDriver_FinalTickOnShutdown(t *testing.T) {
	m := &countingManager{}
	d := NewDriver([]Manager{m}, WithTickLength(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "ticks", m.ticks.Load(), int32(1))
}
