package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMarkdownToPDF(t *testing.T) {
	dir := t.TempDir()

	t.Run("writes a pdf next to the markdown file", func(t *testing.T) {
		markdownPath := filepath.Join(dir, "vocabulary.md")
		require.NoError(t, os.WriteFile(markdownPath, []byte("# Vocabulary\n\n| Portuguese | Translation |\n|---|---|\n| casa | house |\n"), 0o644))

		got, err := ConvertMarkdownToPDF(markdownPath)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "vocabulary.pdf"), got)

		info, err := os.Stat(got)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("rejects other extensions", func(t *testing.T) {
		_, err := ConvertMarkdownToPDF(filepath.Join(dir, "vocabulary.txt"))
		assert.Error(t, err)
		_, err = Render([]byte("# x"), filepath.Join(dir, "vocabulary.md"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ConvertMarkdownToPDF(filepath.Join(dir, "missing.md"))
		assert.Error(t, err)
	})

	t.Run("creates the output directory", func(t *testing.T) {
		got, err := Render([]byte("# Vocabulary\n"), filepath.Join(dir, "nested", "out.pdf"))
		require.NoError(t, err)
		assert.FileExists(t, got)
	})
}
