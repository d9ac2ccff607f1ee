package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/langcards/internal/auth"
	"github.com/at-ishikawa/langcards/internal/bootstrap"
	"github.com/at-ishikawa/langcards/internal/config"
	"github.com/at-ishikawa/langcards/internal/settings"
	"github.com/at-ishikawa/langcards/internal/storage"
	"github.com/at-ishikawa/langcards/internal/translation"
	"github.com/at-ishikawa/langcards/internal/translation/openai"
	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

var application = bootstrap.New()

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// LanguageFlag is a target language given on the command line.
// The zero value means the saved preference is used.
type LanguageFlag vocabulary.Language

// Set implements pflag.Value.
func (l *LanguageFlag) Set(v string) error {
	language, err := vocabulary.ParseLanguage(v)
	if err != nil {
		return fmt.Errorf("invalid value %q, valid values are %v", v, vocabulary.Languages())
	}
	*l = LanguageFlag(language)
	return nil
}

// String implements pflag.Value.
func (l *LanguageFlag) String() string {
	if l == nil {
		return ""
	}
	return string(*l)
}

// Type implements pflag.Value.
func (l *LanguageFlag) Type() string {
	return "LanguageFlag"
}

var (
	_ pflag.Value = (*LanguageFlag)(nil)
)

// environment holds what every command opens from the configuration.
type environment struct {
	cfg      *config.Config
	kv       storage.KeyValue
	accounts *auth.Service
	settings *settings.Settings

	mu      sync.Mutex
	closers []func() error
	closed  bool
}

func openEnvironment(ctx context.Context) (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	kv, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage.Open() > %w", err)
	}

	env := &environment{
		cfg:      cfg,
		kv:       kv,
		accounts: auth.NewService(kv),
		settings: settings.New(kv),
		closers:  []func() error{kv.Close},
	}
	application.AddShutdownHook(func(ctx context.Context) error {
		return env.close()
	})
	return env, nil
}

func (env *environment) onClose(fn func() error) {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.closers = append(env.closers, fn)
}

func (env *environment) close() error {
	env.mu.Lock()
	defer env.mu.Unlock()
	if env.closed {
		return nil
	}
	env.closed = true

	var errs []error
	for i := len(env.closers) - 1; i >= 0; i-- {
		if err := env.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// userID is the logged in user, or the configured default namespace.
func (env *environment) userID(ctx context.Context) (string, error) {
	user, ok, err := env.accounts.Current(ctx)
	if err != nil {
		return "", fmt.Errorf("accounts.Current() > %w", err)
	}
	if ok {
		return user.ID, nil
	}
	return env.cfg.User.DefaultID, nil
}

func (env *environment) openStore(ctx context.Context) (*vocabulary.Store, error) {
	userID, err := env.userID(ctx)
	if err != nil {
		return nil, err
	}
	store, err := vocabulary.Open(ctx, env.kv, userID)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.Open() > %w", err)
	}
	return store, nil
}

func (env *environment) language(ctx context.Context, flag LanguageFlag) (vocabulary.Language, error) {
	if flag != "" {
		return vocabulary.Language(flag), nil
	}
	language, err := env.settings.TargetLanguage(ctx)
	if err != nil {
		return "", fmt.Errorf("settings.TargetLanguage() > %w", err)
	}
	return language, nil
}

func (env *environment) provider() (translation.Provider, error) {
	cfg := env.cfg.Translation
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
		client := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, cfg.OpenAI.RetryAttempts)
		env.onClose(client.Close)
		slog.Default().Debug("using openai translation", "model", client.Model(), "cache", cfg.Cache)
		if !cfg.Cache {
			return client, nil
		}
		return translation.NewCached(client, env.kv), nil
	default:
		if cfg.Phrasebook == "" {
			return translation.NewDemo(), nil
		}
		demo, err := translation.NewDemoFromFile(cfg.Phrasebook)
		if err != nil {
			return nil, fmt.Errorf("translation.NewDemoFromFile(%s) > %w", cfg.Phrasebook, err)
		}
		return demo, nil
	}
}
