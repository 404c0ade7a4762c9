package main

import (
	"strings"
	"sync"

	"spritegen/internal/config"
)

type commandContext struct {
	configFlag *string

	once   sync.Once
	cfg    *config.Config
	path   string
	exists bool
	err    error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// load resolves configuration once per process and caches the result.
func (c *commandContext) load() (*config.Config, error) {
	c.once.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		c.cfg, c.path, c.exists, c.err = config.Load(path)
	})
	return c.cfg, c.err
}

// source reports where the loaded configuration came from and whether the
// file existed. Valid only after load.
func (c *commandContext) source() (string, bool) {
	return c.path, c.exists
}
