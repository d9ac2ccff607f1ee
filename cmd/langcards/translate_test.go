package main

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/langcards/internal/extractor"
	"github.com/at-ishikawa/langcards/internal/testutil"
)

func TestTranslateCommand_RunE_InvalidConfig(t *testing.T) {
	setConfigFile(t, setupBrokenConfigFile(t))

	cmd := newTranslateCommand()
	cmd.SetArgs([]string{"Olá"})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "configuration")
}

func TestTranslateCommand(t *testing.T) {
	t.Run("adds every extracted word", func(t *testing.T) {
		cfgPath, _ := setupConfig(t)

		got, err := runCommand(t, cfgPath, "", "translate", "Eu gosto de comer frutas e beber água todos os dias.")
		require.NoError(t, err)
		assert.Contains(t, got, "I like to eat fruits and drink water every day.")
		assert.Contains(t, got, "Added 10 new words, 1 already in your vocabulary")

		got, err = runCommand(t, cfgPath, "", "words", "list", "--level", "unknown")
		require.NoError(t, err)
		assert.Contains(t, got, "frutas")
		assert.Contains(t, got, "carro")
		assert.NotContains(t, got, "água")
	})

	t.Run("translates into the flag language", func(t *testing.T) {
		cfgPath, _ := setupConfig(t)

		got, err := runCommand(t, cfgPath, "", "translate", "--language", "spanish", "O clima está muito bom hoje, vamos à praia.")
		require.NoError(t, err)
		assert.Contains(t, got, "El clima está muy bueno hoy, vamos a la playa.")
		assert.Contains(t, got, "Added 9 new words, 0 already in your vocabulary")
	})

	t.Run("review marks chosen words as known", func(t *testing.T) {
		cfgPath, _ := setupConfig(t)

		got, err := runCommand(t, cfgPath, "1\ns\n", "translate", "--review", "Eu gosto de comer frutas e beber água todos os dias.")
		require.NoError(t, err)
		assert.Contains(t, got, "Saved 10 new words, 1 already in your vocabulary")

		got, err = runCommand(t, cfgPath, "", "words", "list", "--level", "mastered")
		require.NoError(t, err)
		assert.Contains(t, got, "eu")
		assert.NotContains(t, got, "gosto")
	})

	t.Run("review quit saves nothing", func(t *testing.T) {
		cfgPath, _ := setupConfig(t)

		got, err := runCommand(t, cfgPath, "q\n", "translate", "--review", "Eu gosto de comer frutas e beber água todos os dias.")
		require.NoError(t, err)
		assert.Contains(t, got, "Discarded.")

		got, err = runCommand(t, cfgPath, "", "words", "list")
		require.NoError(t, err)
		assert.NotContains(t, got, "frutas")
	})

	t.Run("empty text", func(t *testing.T) {
		cfgPath, _ := setupConfig(t)

		_, err := runCommand(t, cfgPath, "", "translate", "   ")
		assert.ErrorIs(t, err, extractor.ErrNothingToExtract)
	})

	t.Run("text and url together", func(t *testing.T) {
		cfgPath, _ := setupConfig(t)

		_, err := runCommand(t, cfgPath, "", "translate", "--url", "http://example.com", "Olá")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not both")
	})

	t.Run("invalid language flag", func(t *testing.T) {
		cfgPath, _ := setupConfig(t)

		_, err := runCommand(t, cfgPath, "", "translate", "--language", "japanese", "Olá")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid value")
	})
}

func TestTranslateCommand_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html lang="pt">
<head><title>Um dia na praia</title></head>
<body>
<article>
<h1>Um dia na praia</h1>
<p>O clima está muito bom hoje, vamos à praia. Eu gosto de comer frutas e beber água todos os dias, principalmente quando o sol está forte e o mar está calmo.</p>
<p>Na praia, as crianças brincam na areia enquanto os adultos conversam debaixo dos guarda-sóis. O vendedor de milho passa devagar, oferecendo comida quente para todos.</p>
</article>
</body>
</html>`))
	}))
	defer server.Close()

	cfgPath, _ := setupConfig(t)
	got, err := runCommand(t, cfgPath, "", "translate", "--url", server.URL+"/praia")
	require.NoError(t, err)
	assert.Contains(t, got, "Um dia na praia")
	assert.Contains(t, got, "[Translated to english]")

	got, err = runCommand(t, cfgPath, "", "words", "list")
	require.NoError(t, err)
	assert.Contains(t, got, "crianças")
}

func TestTranslateCommand_OpenAI(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"The cat sleeps."}}]}`))
	}))
	defer server.Close()

	t.Setenv("OPENAI_API_KEY", "test-key")
	cfgPath := testutil.SetupTestConfigWithOpenAI(t, t.TempDir(), server.URL+"/v1")

	got, err := runCommand(t, cfgPath, "", "translate", "O gato dorme.")
	require.NoError(t, err)
	assert.Contains(t, got, "The cat sleeps.")
	assert.Contains(t, got, "Added 3 new words, 0 already in your vocabulary")

	got, err = runCommand(t, cfgPath, "", "translate", "O gato dorme.")
	require.NoError(t, err)
	assert.Contains(t, got, "The cat sleeps.")
	assert.Contains(t, got, "Added 0 new words, 3 already in your vocabulary")
	assert.Equal(t, int32(1), requests.Load())
}
