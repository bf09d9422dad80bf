package command

import (
	"fmt"
	"os"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	AutosaveInterval string            `json:"autosave_interval"`
	Storage          StorageConfig     `json:"storage"`
	Nats             NatsConfig        `json:"nats"`
	Players          PlayersConfig     `json:"players"`
	Navigator        NavigatorConfig   `json:"navigator"`
	Permissions      PermissionsConfig `json:"permissions"`
	// Messages optionally points at a YAML file overriding player messages.
	Messages string `json:"messages"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.AutosaveInterval != "" {
		d, err := time.ParseDuration(c.AutosaveInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing autosave_interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("autosave_interval must be at least 1 second"))
		}
	}

	if c.Messages != "" {
		if _, err := os.Stat(c.Messages); err != nil {
			el.Add(fmt.Errorf("invalid messages path %q: %w", c.Messages, err))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Players.validate())
	el.Add(c.Navigator.validate())
	el.Add(c.Permissions.validate())

	return el.Err()
}

func (c *Config) autosaveInterval() time.Duration {
	d, err := time.ParseDuration(c.AutosaveInterval)
	if err != nil {
		return 0
	}
	return d
}
