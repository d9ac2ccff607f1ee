package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		User: UserConfig{DefaultID: "1"},
		Storage: StorageConfig{
			Driver:    "file",
			Directory: filepath.Join("data", "storage"),
			Database: DatabaseConfig{
				Path:     filepath.Join("data", "langcards.db"),
				Host:     "localhost",
				Port:     3306,
				Database: "langcards",
				Username: "user",
			},
		},
		Translation: TranslationConfig{
			Provider: "demo",
			Cache:    true,
			OpenAI: OpenAIConfig{
				Model:   "gpt-4o-mini",
				BaseURL: "https://api.openai.com/v1",
			},
		},
		Practice: PracticeConfig{Deck: "flashcards"},
		Outputs:  OutputsConfig{ExportDirectory: filepath.Join("outputs", "vocabulary")},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:          "no config file uses defaults",
			configContent: "",
			want:          defaultConfig,
		},
		{
			name: "sqlite storage with custom values",
			configContent: `user:
  default_id: learner
storage:
  driver: sqlite3
  database:
    path: custom/vocab.db
practice:
  deck: words
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.User.DefaultID = "learner"
				cfg.Storage.Driver = "sqlite3"
				cfg.Storage.Database.Path = "custom/vocab.db"
				cfg.Practice.Deck = "words"
				return cfg
			},
		},
		{
			name: "explicit config file path with openai provider",
			configContent: `translation:
  provider: openai
  openai:
    retry_attempts: 2
`,
			useExplicitPath: true,
			env: map[string]string{
				"OPENAI_API_KEY": "sk-test",
				"DB_PASSWORD":    "secret",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Translation.Provider = "openai"
				cfg.Translation.OpenAI.APIKey = "sk-test"
				cfg.Translation.OpenAI.RetryAttempts = 2
				cfg.Storage.Database.Password = "secret"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `storage:
  driver: file
  invalid yaml format here [[[
`,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unsupported storage driver",
			configContent: `storage:
  driver: redis
`,
			wantErrorContains: []string{"invalid configuration", "driver"},
		},
		{
			name: "unsupported practice deck",
			configContent: `practice:
  deck: sentences
`,
			wantErrorContains: []string{"invalid configuration", "deck"},
		},
		{
			name: "phrasebook file does not exist",
			configContent: `translation:
  phrasebook: missing.yml
`,
			wantErrorContains: []string{"translation.phrasebook must be an existing and readable file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			originalDir, err := os.Getwd()
			require.NoError(t, err)
			t.Cleanup(func() {
				require.NoError(t, os.Chdir(originalDir))
			})
			require.NoError(t, os.Chdir(tempDir))

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "custom.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else if tt.configContent != "" {
				require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yml"), []byte(tt.configContent), 0644))
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if len(tt.wantErrorContains) > 0 {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestConfigLoader_Load_DotEnv(t *testing.T) {
	tempDir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
		require.NoError(t, os.Unsetenv("OPENAI_API_KEY"))
	})
	require.NoError(t, os.Chdir(tempDir))
	require.NoError(t, os.Unsetenv("OPENAI_API_KEY"))
	require.NoError(t, os.WriteFile(".env", []byte("OPENAI_API_KEY=from-dotenv\n"), 0644))

	loader, err := NewConfigLoader("")
	require.NoError(t, err)
	got, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", got.Translation.OpenAI.APIKey)
}

func TestIsFileReadable(t *testing.T) {
	dir := t.TempDir()
	readable := filepath.Join(dir, "phrasebook.yml")
	require.NoError(t, os.WriteFile(readable, []byte("{}"), 0644))

	validate, _, err := newValidator()
	require.NoError(t, err)

	assert.NoError(t, validate.Var(readable, "file"))
	assert.Error(t, validate.Var(dir, "file"))
	assert.Error(t, validate.Var(filepath.Join(dir, "missing.yml"), "file"))
	assert.Error(t, validate.Var("", "file"))
}
