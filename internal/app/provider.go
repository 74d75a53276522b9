package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrUnknownProvider is returned when a provider name is not in the closed
// set of supported backends.
var ErrUnknownProvider = errors.New("unknown provider")

// Adapter wraps exactly one LLM backend behind a single capability.
// Chat may fail for any reason (network, auth, rate limit, inference); the
// manager applies no retry or timeout policy of its own.
type Adapter interface {
	Name() string
	Chat(ctx context.Context, prompt string) (string, error)
}

// ProviderInfo is descriptive catalog metadata; it says nothing about what
// is actually installed or configured.
type ProviderInfo struct {
	ID      string
	Name    string
	Privacy string
	Cost    string
}

// ListProviders returns the static provider catalog.
func ListProviders() []ProviderInfo {
	return []ProviderInfo{
		{ID: "local", Name: "Local (llama-server)", Privacy: "★★★★★", Cost: "Free"},
		{ID: "openrouter", Name: "OpenRouter", Privacy: "★★", Cost: "Per API call"},
		{ID: "openai", Name: "OpenAI", Privacy: "★★", Cost: "Per API call"},
		{ID: "anthropic", Name: "Anthropic (Claude)", Privacy: "★★★", Cost: "Per API call"},
	}
}

// ProviderManager resolves provider names to lazily-constructed, cached
// adapters. The current provider and model live in Config.
type ProviderManager struct {
	config *Config
	logger *zap.Logger

	mu       sync.Mutex
	adapters map[string]Adapter
}

func NewProviderManager(config *Config, logger *zap.Logger) *ProviderManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProviderManager{
		config:   config,
		logger:   logger,
		adapters: map[string]Adapter{},
	}
}

// Adapter resolves name (or the configured default when empty) to a cached
// adapter, constructing it on first use. Unknown names fail with
// ErrUnknownProvider; construction failures inside a specific adapter
// propagate to the caller.
func (m *ProviderManager) Adapter(name string) (Adapter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = m.config.Provider()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if adapter, ok := m.adapters[name]; ok {
		return adapter, nil
	}
	adapter, err := m.buildAdapter(name)
	if err != nil {
		return nil, err
	}
	m.adapters[name] = adapter
	return adapter, nil
}

func (m *ProviderManager) buildAdapter(name string) (Adapter, error) {
	switch name {
	case "openrouter":
		return NewOpenRouterAdapter(m.config.APIKey("openrouter"), m.config.Model())
	case "openai":
		return NewOpenAIAdapter(m.config.APIKey("openai"), m.config.Model())
	case "anthropic":
		return NewAnthropicAdapter(m.config.APIKey("anthropic"), m.config.Model())
	case "local":
		return NewLocalAdapter("", m.config.Model()), nil
	case "mock":
		return NewMockAdapter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
}

// SwitchProvider makes name the configured default and eagerly constructs
// its adapter. The adapter is built before the config is touched, so a
// failed switch leaves the previously active provider in place.
func (m *ProviderManager) SwitchProvider(name string) bool {
	if _, err := m.Adapter(name); err != nil {
		m.logger.Warn("provider switch failed", zap.String("provider", name), zap.Error(err))
		return false
	}
	if err := m.config.SetProvider(name); err != nil {
		m.logger.Warn("provider switch failed", zap.String("provider", name), zap.Error(err))
		return false
	}
	m.logger.Info("provider switched", zap.String("provider", name))
	return true
}

// TestProvider is a best-effort liveness probe; all errors are swallowed
// into a false result.
func (m *ProviderManager) TestProvider(ctx context.Context, name string) bool {
	adapter, err := m.Adapter(name)
	if err != nil {
		return false
	}
	if _, err := adapter.Chat(ctx, "Hello!"); err != nil {
		return false
	}
	return true
}

func (m *ProviderManager) CurrentProvider() string {
	return m.config.Provider()
}

func (m *ProviderManager) CurrentModel() string {
	return m.config.Model()
}

func (m *ProviderManager) SetModel(model string) error {
	return m.config.SetModel(model)
}
