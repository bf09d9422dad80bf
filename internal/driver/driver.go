package driver

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Minute * 5
)

// Manager is anything that does periodic work on the driver's tick.
type Manager interface {
	Tick(context.Context) error
}

// Driver ticks its managers on a fixed interval and once more on shutdown
// so pending state is not lost.
type Driver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewDriver(managers []Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "driver stopping, running final tick")
			return d.Tick(context.WithoutCancel(ctx))
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *Driver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
