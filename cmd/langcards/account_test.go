package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/langcards/internal/auth"
	"github.com/at-ishikawa/langcards/internal/vocabulary"
)

func TestAccountCommands(t *testing.T) {
	cfgPath, _ := setupConfig(t)

	got, err := runCommand(t, cfgPath, "", "account", "whoami")
	require.NoError(t, err)
	assert.Contains(t, got, "Not logged in, using user 1")

	got, err = runCommand(t, cfgPath, "", "account", "login", "demo@example.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, got, "Logged in as Demo User (demo@example.com)")

	got, err = runCommand(t, cfgPath, "", "account", "whoami")
	require.NoError(t, err)
	assert.Contains(t, got, "Demo User (demo@example.com), id 1")

	got, err = runCommand(t, cfgPath, "", "account", "register", "Ana", "ana@example.com")
	require.NoError(t, err)
	assert.Contains(t, got, "Registered Ana (ana@example.com)")

	// A registered user gets a vocabulary separate from the demo user.
	_, err = runCommand(t, cfgPath, "", "words", "add", "gato", "cat")
	require.NoError(t, err)

	got, err = runCommand(t, cfgPath, "", "account", "logout")
	require.NoError(t, err)
	assert.Contains(t, got, "Logged out")

	got, err = runCommand(t, cfgPath, "", "words", "list")
	require.NoError(t, err)
	assert.NotContains(t, got, "gato")

	_, err = runCommand(t, cfgPath, "", "account", "login", "not-an-email")
	assert.ErrorIs(t, err, auth.ErrInvalidEmail)

	_, err = runCommand(t, cfgPath, "", "account", "register", " ", "ana@example.com")
	assert.ErrorIs(t, err, auth.ErrEmptyName)
}

func TestLanguageCommands(t *testing.T) {
	cfgPath, _ := setupConfig(t)

	got, err := runCommand(t, cfgPath, "", "language", "get")
	require.NoError(t, err)
	assert.Equal(t, "English\n", got)

	got, err = runCommand(t, cfgPath, "", "language", "set", "Spanish")
	require.NoError(t, err)
	assert.Contains(t, got, "Target language set to Spanish")

	got, err = runCommand(t, cfgPath, "", "language", "get")
	require.NoError(t, err)
	assert.Equal(t, "Spanish\n", got)

	// Commands without --language use the saved preference.
	_, err = runCommand(t, cfgPath, "", "words", "add", "gato", "gato")
	require.NoError(t, err)
	got, err = runCommand(t, cfgPath, "", "words", "list")
	require.NoError(t, err)
	assert.Contains(t, got, "gato")
	assert.NotContains(t, got, "casa")

	_, err = runCommand(t, cfgPath, "", "language", "set", "japanese")
	assert.ErrorIs(t, err, vocabulary.ErrInvalidLanguage)
}
