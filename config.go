package l3

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config tunes an Interpreter. The zero value is not useful, start from
// DefaultConfig.
type Config struct {
	// MaxDepth bounds nested closure applications; 0 means no bound.
	MaxDepth int `yaml:"max_depth"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
	// Trace logs every closure application and fresh name.
	Trace bool `yaml:"trace"`
}

func DefaultConfig() *Config {
	return &Config{MaxDepth: 10000, LogLevel: "warn"}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := ParseConfig(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func ParseConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("max_depth must not be negative, got %d", cfg.MaxDepth)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Level is the logrus level the config asks for; Trace wins over LogLevel.
func (c *Config) Level() logrus.Level {
	if c.Trace {
		return logrus.TraceLevel
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return lvl
}
