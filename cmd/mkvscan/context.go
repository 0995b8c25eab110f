package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"mkvscan/internal/config"
	"mkvscan/internal/logging"
	"mkvscan/internal/media/ffprobe"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	// proberFor is swapped out in tests to avoid invoking the real tool.
	proberFor func(cfg *config.Config) ffprobe.Prober
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		proberFor: func(cfg *config.Config) ffprobe.Prober {
			return ffprobe.Command{
				Binary:  cfg.Probe.Binary,
				Timeout: time.Duration(cfg.Probe.TimeoutSeconds) * time.Second,
			}
		},
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// newLogger builds the configured logger writing to the command's stderr so
// stdout stays reserved for scan results.
func (c *commandContext) newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, cmd.ErrOrStderr())
}
