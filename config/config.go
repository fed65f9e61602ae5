// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds configuration for the gitkb service and CLI.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	EnableCORS     bool          `yaml:"enable_cors"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	MaxRequestSize int64         `yaml:"max_request_size"`
	StaticDir      string        `yaml:"static_dir"` // Optional directory served at /
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// KnowledgeConfig selects where the knowledge set comes from.
// With neither field set the built-in Git knowledge base is used.
type KnowledgeConfig struct {
	File     string `yaml:"file"`     // YAML knowledge file
	Snapshot string `yaml:"snapshot"` // BadgerDB snapshot directory
}

// RetrievalConfig tunes ranking and response memoization.
type RetrievalConfig struct {
	TopK     int           `yaml:"top_k"`
	CacheTTL time.Duration `yaml:"cache_ttl"` // 0 disables the response cache
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Option is a functional option for configuring a Config.
type Option func(*Config)

// WithPort sets the HTTP port.
func WithPort(port int) Option {
	return func(c *Config) {
		c.Server.Port = port
	}
}

// WithKnowledgeFile sets the YAML knowledge file.
func WithKnowledgeFile(path string) Option {
	return func(c *Config) {
		c.Knowledge.File = path
	}
}

// WithSnapshot sets the BadgerDB snapshot directory.
func WithSnapshot(path string) Option {
	return func(c *Config) {
		c.Knowledge.Snapshot = path
	}
}

// WithTopK sets how many entries retrieval keeps.
func WithTopK(k int) Option {
	return func(c *Config) {
		c.Retrieval.TopK = k
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level string) Option {
	return func(c *Config) {
		c.Logging.Level = level
	}
}

// DefaultConfig returns a Config with sensible defaults for local use.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "",
			Port:           3000,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			IdleTimeout:    60 * time.Second,
			EnableCORS:     true,
			AllowedOrigins: []string{"*"},
			MaxRequestSize: 1 << 20,
		},
		Retrieval: RetrievalConfig{
			TopK: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Load reads a YAML configuration file over the defaults, then applies
// environment overrides. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML configuration over the defaults and applies environment overrides.
func Decode(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables:
// PORT, GITKB_KNOWLEDGE_FILE, GITKB_SNAPSHOT, GITKB_TOP_K, GITKB_LOG_LEVEL.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("GITKB_KNOWLEDGE_FILE"); ok && v != "" {
		c.Knowledge.File = v
	}
	if v, ok := lookup("GITKB_SNAPSHOT"); ok && v != "" {
		c.Knowledge.Snapshot = v
	}
	if v, ok := lookup("GITKB_TOP_K"); ok && v != "" {
		k, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid GITKB_TOP_K %q: %w", v, err)
		}
		c.Retrieval.TopK = k
	}
	if v, ok := lookup("GITKB_LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = v
	}
	return nil
}

// EnvLookup returns a lookup over the process environment that falls back to
// the dotenv file at path. Non-empty process variables win over file values.
// A missing file is only an error when required is set.
func EnvLookup(path string, required bool) (func(string) (string, bool), error) {
	fileEnv := map[string]string{}
	if path != "" {
		values, err := godotenv.Read(path)
		switch {
		case err == nil:
			fileEnv = values
		case errors.Is(err, fs.ErrNotExist) && !required:
		default:
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}, nil
}

// Normalize ensures the configuration is in a canonical form.
func (c *Config) Normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Server.StaticDir = strings.TrimSpace(c.Server.StaticDir)
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("config: server port must be between 1 and 65535")
	}
	if c.Server.MaxRequestSize < 1 {
		return errors.New("config: server max_request_size must be positive")
	}
	if c.Knowledge.File != "" && c.Knowledge.Snapshot != "" {
		return errors.New("config: knowledge file and snapshot are mutually exclusive")
	}
	if c.Retrieval.TopK < 1 {
		return errors.New("config: retrieval top_k must be at least 1")
	}
	if c.Retrieval.CacheTTL < 0 {
		return errors.New("config: retrieval cache_ttl cannot be negative")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config: unknown logging level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown logging format %q", c.Logging.Format)
	}
	return nil
}
