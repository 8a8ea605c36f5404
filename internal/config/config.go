// Package config loads the TOML configuration used by the command-line tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/leandrodaf/midiwire/internal/logger"
	"github.com/leandrodaf/midiwire/sdk/contracts"
	"github.com/leandrodaf/midiwire/sdk/message"
)

// Config is the structure of a mididump config file.
type Config struct {
	Log    LogSection    `toml:"log"`
	Decode DecodeSection `toml:"decode"`
}

type LogSection struct {
	Level   string `toml:"level"`   // debug, info, warn, error
	Backend string `toml:"backend"` // zap or logrus
	File    string `toml:"file"`    // empty means stderr
}

type DecodeSection struct {
	RunningStatus bool     `toml:"running_status"`
	Verify        bool     `toml:"verify"` // re-encode and decode every message
	Kinds         []string `toml:"kinds"`  // message kinds to keep, empty keeps all
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogSection{
			Level:   "info",
			Backend: "zap",
		},
		Decode: DecodeSection{
			RunningStatus: true,
		},
	}
}

// Load reads path on top of the defaults. An empty path yields the
// defaults; a path that cannot be read is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config file %s does not exist: %w", path, err)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config keys: %v", undecoded)
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if _, ok := contracts.ParseLogLevel(strings.ToLower(c.Log.Level)); !ok {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Backend {
	case "zap", "logrus":
	default:
		return fmt.Errorf("invalid log backend %q", c.Log.Backend)
	}
	_, err := c.kinds()
	return err
}

// Logger builds the configured logger.
func (c Config) Logger() contracts.Logger {
	var l contracts.Logger
	if c.Log.Backend == "logrus" {
		l = logger.NewStandardLogger()
	} else {
		l = logger.NewZapLogger()
	}
	level, _ := contracts.ParseLogLevel(strings.ToLower(c.Log.Level))
	l.SetLevel(level)
	if c.Log.File != "" {
		l.SetDestination(contracts.FileLog, c.Log.File)
	}
	return l
}

// StreamOptions converts the config into Reader/Writer options using l.
func (c Config) StreamOptions(l contracts.Logger) ([]contracts.StreamOption, error) {
	kinds, err := c.kinds()
	if err != nil {
		return nil, err
	}
	level, _ := contracts.ParseLogLevel(strings.ToLower(c.Log.Level))

	opts := []contracts.StreamOption{
		contracts.WithStreamLogger(l),
		contracts.WithStreamLogLevel(level),
		contracts.WithRunningStatus(c.Decode.RunningStatus),
	}
	if len(kinds) > 0 {
		opts = append(opts, contracts.WithStreamFilter(contracts.MIDIEventFilter{Kinds: kinds}))
	}
	return opts, nil
}

func (c Config) kinds() ([]message.Kind, error) {
	kinds := make([]message.Kind, 0, len(c.Decode.Kinds))
	for _, name := range c.Decode.Kinds {
		k, ok := message.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("invalid message kind %q", name)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
