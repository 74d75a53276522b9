package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultProvider      = "openrouter"
	DefaultModel         = "openai/gpt-4"
	DefaultBlipCharacter = "axolotl"
	DefaultStorage       = "file"
)

// Config is the persistent user preference document: a flat JSON object at
// <dir>/config.json. Every Set rewrites the whole file; concurrent writers
// are not coordinated (last writer wins).
type Config struct {
	path   string
	values map[string]any
}

func DefaultConfigDir() string {
	if base, err := os.UserHomeDir(); err == nil && base != "" {
		return filepath.Join(base, ".blonde")
	}
	return filepath.Join(os.TempDir(), "blonde")
}

func NewConfig(dir string) *Config {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		path:   filepath.Join(dir, "config.json"),
		values: map[string]any{},
	}
}

// Load reads the config file. A missing file yields an empty document; a
// malformed file propagates the parse error (no auto-repair).
func (c *Config) Load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.values = map[string]any{}
			return nil
		}
		return err
	}
	values := map[string]any{}
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parse config %s: %w", c.path, err)
	}
	c.values = values
	return nil
}

// Save serializes the entire document, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c.values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}

func (c *Config) Get(key string, def any) any {
	if v, ok := c.values[key]; ok {
		return v
	}
	return def
}

// Set mutates in memory and persists immediately (write-through).
func (c *Config) Set(key string, value any) error {
	c.values[key] = value
	return c.Save()
}

func (c *Config) GetString(key, def string) string {
	if v, ok := c.values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func (c *Config) Provider() string {
	return c.GetString("provider", DefaultProvider)
}

func (c *Config) SetProvider(provider string) error {
	return c.Set("provider", provider)
}

func (c *Config) Model() string {
	return c.GetString("model", DefaultModel)
}

func (c *Config) SetModel(model string) error {
	return c.Set("model", model)
}

func (c *Config) BlipCharacter() string {
	return c.GetString("blip_character", DefaultBlipCharacter)
}

func (c *Config) SetBlipCharacter(name string) error {
	return c.Set("blip_character", name)
}

// APIKey returns the stored key for a provider ("<provider>_api_key"),
// or "" if none is configured.
func (c *Config) APIKey(provider string) string {
	return c.GetString(provider+"_api_key", "")
}

func (c *Config) SetAPIKey(provider, key string) error {
	return c.Set(provider+"_api_key", key)
}

// Storage selects the session store backend: "file" or "sqlite".
func (c *Config) Storage() string {
	return c.GetString("storage", DefaultStorage)
}

func (c *Config) Path() string {
	return c.path
}
