package app

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// Application wires the config, provider, and session layers together. It is
// constructed once at process start and passed by reference to consumers;
// there are no package-level singletons.
type Application struct {
	Config    *Config
	Logger    *zap.Logger
	Providers *ProviderManager
	Sessions  *SessionManager

	configDir string
}

func NewApplication(configDir string, debug bool) (*Application, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	logger := NewLogger(configDir, debug)

	cfg := NewConfig(configDir)
	if err := cfg.Load(); err != nil {
		return nil, err
	}

	sessionsDir := filepath.Join(configDir, "sessions")
	var store SessionStore
	switch cfg.Storage() {
	case "sqlite":
		st, err := NewSQLiteSessionStore(sessionsDir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite session store: %w", err)
		}
		store = st
	default:
		store = NewFileSessionStore(sessionsDir)
	}

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Providers: NewProviderManager(cfg, logger),
		Sessions:  NewSessionManager(store, logger),
		configDir: configDir,
	}, nil
}

// Team builds an AgentTeam over the currently configured adapter, applying
// any template overrides from <configdir>/agents.yaml.
func (a *Application) Team() (*AgentTeam, error) {
	adapter, err := a.Providers.Adapter("")
	if err != nil {
		return nil, err
	}
	team := NewAgentTeam(adapter, a.Logger)
	if err := team.LoadTemplateOverrides(filepath.Join(a.configDir, "agents.yaml")); err != nil {
		a.Logger.Warn("agent template overrides ignored", zap.Error(err))
	}
	return team, nil
}

// ExecuteTurn sends one user turn to the configured adapter and records both
// sides of the exchange, token usage, and estimated cost on the current
// session (creating one when none is active).
func (a *Application) ExecuteTurn(ctx context.Context, input string) (string, error) {
	adapter, err := a.Providers.Adapter("")
	if err != nil {
		return "", err
	}

	if a.Sessions.Current() == nil {
		a.Sessions.CreateSession(a.Providers.CurrentProvider(), a.Providers.CurrentModel())
	}
	sess := a.Sessions.Current()

	if err := a.Sessions.AddMessage("user", input); err != nil {
		return "", err
	}

	reply, err := adapter.Chat(ctx, input)
	if err != nil {
		return "", err
	}

	if err := a.Sessions.AddMessage("assistant", reply); err != nil {
		a.Logger.Warn("failed to persist assistant turn", zap.Error(err))
	}

	inTokens := EstimateTokens(input)
	outTokens := EstimateTokens(reply)
	pct := 0.0
	if window, ok := ContextWindowTokens(sess.Model); ok && window > 0 {
		pct = float64(sess.ContextUsage.TotalTokens+inTokens+outTokens) / float64(window) * 100
		if pct > 100 {
			pct = 100
		}
	}
	if err := a.Sessions.UpdateContextUsage(inTokens+outTokens, pct); err != nil {
		a.Logger.Warn("failed to persist context usage", zap.Error(err))
	}
	if cost := EstimateCost(sess.Provider, sess.Model, inTokens, outTokens); cost > 0 {
		if err := a.Sessions.UpdateCost(cost); err != nil {
			a.Logger.Warn("failed to persist cost", zap.Error(err))
		}
	}
	return reply, nil
}
