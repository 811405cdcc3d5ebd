package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/keshon/hashwatch/internal/fingerprint"
	"github.com/keshon/hashwatch/internal/fs"
)

const (
	DefaultStorePath = "hash_database.json"
	DefaultInterval  = 30 * time.Second
	DefaultCooldown  = 60 * time.Second
	DefaultNotifier  = "auto"
	DefaultLogLevel  = "info"
	DefaultChunkSize = 4096
	DefaultHash      = string(fingerprint.DefaultAlgorithm)
)

var notifierKinds = []string{"auto", "dialog", "terminal", "console"}

// Config is handed to the monitor at construction.
type Config struct {
	StorePath string        `yaml:"store"`
	Interval  time.Duration `yaml:"interval"`
	Cooldown  time.Duration `yaml:"cooldown"`
	Notifier  string        `yaml:"notifier"`
	LogLevel  string        `yaml:"log_level"`
	ChunkSize int           `yaml:"chunk_size"`
	Hash      string        `yaml:"hash"`
}

func Default() Config {
	return Config{
		StorePath: DefaultStorePath,
		Interval:  DefaultInterval,
		Cooldown:  DefaultCooldown,
		Notifier:  DefaultNotifier,
		LogLevel:  DefaultLogLevel,
		ChunkSize: DefaultChunkSize,
		Hash:      DefaultHash,
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns
// the defaults unchanged.
func Load(fsys fs.FS, path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.StorePath) == "" {
		return errors.New("store path is empty")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.Cooldown < 0 {
		return fmt.Errorf("cooldown must not be negative, got %s", c.Cooldown)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	if !contains(notifierKinds, c.Notifier) {
		return fmt.Errorf("unknown notifier %q (want one of %s)", c.Notifier, strings.Join(notifierKinds, ", "))
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := fingerprint.ParseAlgorithm(c.Hash); err != nil {
		return err
	}
	return nil
}

// Level maps LogLevel to a slog level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return lvl, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
