package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/zachmann/go-utils/duration"
)

type sessionsConf struct {
	// Secret signs session tokens; it may also come from the
	// DARKROOM_SESSION_SECRET environment variable.
	Secret   string                  `yaml:"secret"`
	Lifetime duration.DurationOption `yaml:"lifetime"`
}

func (c *sessionsConf) validate() error {
	if c.Secret == "" {
		c.Secret = os.Getenv("DARKROOM_SESSION_SECRET")
	}
	if c.Secret == "" {
		return errors.New("session secret must be set")
	}
	return nil
}

var defaultSessionsConf = sessionsConf{}
