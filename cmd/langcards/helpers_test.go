package main

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/langcards/internal/testutil"
	"github.com/at-ishikawa/langcards/internal/translation"
	"github.com/at-ishikawa/langcards/internal/translation/openai"
	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

func subcommandNames(commands []*cobra.Command) []string {
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name())
	}
	return names
}

func TestLanguageFlag_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    LanguageFlag
		wantErr bool
	}{
		{
			name:  "lowercase",
			value: "spanish",
			want:  LanguageFlag(vocabulary.Spanish),
		},
		{
			name:  "mixed case",
			value: "German",
			want:  LanguageFlag(vocabulary.German),
		},
		{
			name:    "unsupported language",
			value:   "japanese",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flag LanguageFlag
			err := flag.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid value")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, flag)
		})
	}
}

func TestLanguageFlag_String(t *testing.T) {
	var nilFlag *LanguageFlag
	assert.Equal(t, "", nilFlag.String())

	flag := LanguageFlag(vocabulary.French)
	assert.Equal(t, "french", flag.String())
	assert.Equal(t, "LanguageFlag", flag.Type())
}

func TestOpenEnvironment_InvalidConfig(t *testing.T) {
	setConfigFile(t, setupBrokenConfigFile(t))

	_, err := openEnvironment(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "configuration")
}

func TestEnvironment_Provider(t *testing.T) {
	t.Run("demo by default", func(t *testing.T) {
		cfgPath, _ := setupConfig(t)
		setConfigFile(t, cfgPath)

		env, err := openEnvironment(context.Background())
		require.NoError(t, err)
		defer func() {
			_ = env.close()
		}()

		provider, err := env.provider()
		require.NoError(t, err)
		assert.IsType(t, &translation.Demo{}, provider)
	})

	t.Run("openai requires an api key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		cfgPath := testutil.SetupTestConfigWithOpenAI(t, t.TempDir(), "http://127.0.0.1:1/v1")
		setConfigFile(t, cfgPath)

		env, err := openEnvironment(context.Background())
		require.NoError(t, err)
		defer func() {
			_ = env.close()
		}()

		_, err = env.provider()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})

	t.Run("openai with an api key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "test-key")
		cfgPath := testutil.SetupTestConfigWithOpenAI(t, t.TempDir(), "http://127.0.0.1:1/v1")
		setConfigFile(t, cfgPath)

		env, err := openEnvironment(context.Background())
		require.NoError(t, err)

		provider, err := env.provider()
		require.NoError(t, err)
		assert.IsType(t, &translation.Cached{}, provider)
		assert.NoError(t, env.close())
		assert.NoError(t, env.close())
	})

	t.Run("openai without the cache", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "test-key")
		cfgPath := testutil.SetupTestConfigWithOpenAI(t, t.TempDir(), "http://127.0.0.1:1/v1")
		setConfigFile(t, cfgPath)

		env, err := openEnvironment(context.Background())
		require.NoError(t, err)
		defer func() {
			_ = env.close()
		}()
		env.cfg.Translation.Cache = false

		provider, err := env.provider()
		require.NoError(t, err)
		require.IsType(t, &openai.Client{}, provider)
		assert.Equal(t, env.cfg.Translation.OpenAI.Model, provider.(*openai.Client).Model())
	})
}

func TestEnvironment_UserID(t *testing.T) {
	cfgPath, _ := setupConfig(t)
	setConfigFile(t, cfgPath)
	ctx := context.Background()

	env, err := openEnvironment(ctx)
	require.NoError(t, err)
	defer func() {
		_ = env.close()
	}()

	got, err := env.userID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", got)

	user, err := env.accounts.Register(ctx, "Ana", "ana@example.com", "")
	require.NoError(t, err)
	got, err = env.userID(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got)
}
