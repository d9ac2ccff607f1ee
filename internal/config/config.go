package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	User        UserConfig        `mapstructure:"user"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Translation TranslationConfig `mapstructure:"translation"`
	Practice    PracticeConfig    `mapstructure:"practice"`
	Outputs     OutputsConfig     `mapstructure:"outputs"`
}

// UserConfig holds the user namespace used when nobody has logged in.
type UserConfig struct {
	DefaultID string `mapstructure:"default_id" validate:"required"`
}

type StorageConfig struct {
	Driver    string         `mapstructure:"driver" validate:"oneof=memory file sqlite3 mysql postgres"`
	Directory string         `mapstructure:"directory" validate:"required_if=Driver file"`
	Database  DatabaseConfig `mapstructure:"database"`
}

type DatabaseConfig struct {
	Path            string            `mapstructure:"path"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port" validate:"gte=0,lte=65535"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds" validate:"gte=0"`
}

type TranslationConfig struct {
	Provider   string       `mapstructure:"provider" validate:"oneof=demo openai"`
	Phrasebook string       `mapstructure:"phrasebook" validate:"omitempty,file"`
	Cache      bool         `mapstructure:"cache"`
	OpenAI     OpenAIConfig `mapstructure:"openai"`
}

type OpenAIConfig struct {
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	BaseURL       string `mapstructure:"base_url" validate:"omitempty,url"`
	RetryAttempts uint   `mapstructure:"retry_attempts" validate:"lte=10"`
}

type PracticeConfig struct {
	Deck string `mapstructure:"deck" validate:"oneof=words flashcards"`
}

type OutputsConfig struct {
	ExportDirectory string `mapstructure:"export_directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	// Secrets may come from a local .env file; a missing file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/langcards")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("user.default_id", "1")
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.directory", filepath.Join("data", "storage"))
	v.SetDefault("storage.database.path", filepath.Join("data", "langcards.db"))
	v.SetDefault("storage.database.host", "localhost")
	v.SetDefault("storage.database.port", 3306)
	v.SetDefault("storage.database.database", "langcards")
	v.SetDefault("storage.database.username", "user")
	v.SetDefault("translation.provider", "demo")
	v.SetDefault("translation.phrasebook", "")
	v.SetDefault("translation.cache", true)
	v.SetDefault("translation.openai.model", "gpt-4o-mini")
	v.SetDefault("translation.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("translation.openai.retry_attempts", 0)
	v.SetDefault("practice.deck", "flashcards")
	v.SetDefault("outputs.export_directory", filepath.Join("outputs", "vocabulary"))

	// Bind OpenAI config to environment variables only (not from config file)
	if err := v.BindEnv("translation.openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("translation.openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}

	// Bind database password to environment variable
	if err := v.BindEnv("storage.database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
