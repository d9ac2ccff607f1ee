// Package testutil provides shared test helpers for creating config files.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a config file that keeps storage and exports under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()
	return writeConfig(t, tmpDir, "")
}

// SetupTestConfigWithOpenAI is like SetupTestConfig but points the openai provider at baseURL.
func SetupTestConfigWithOpenAI(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()
	return writeConfig(t, tmpDir, fmt.Sprintf(`translation:
  provider: openai
  openai:
    base_url: %s
`, baseURL))
}

// SetupBrokenConfig writes a config file that cannot be parsed.
func SetupBrokenConfig(t *testing.T, tmpDir string) string {
	t.Helper()
	path := filepath.Join(tmpDir, "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [\n  driver"), 0644))
	return path
}

func writeConfig(t *testing.T, tmpDir string, extra string) string {
	t.Helper()

	dirs := []string{"storage", "outputs"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`storage:
  driver: file
  directory: %s
outputs:
  export_directory: %s
`,
		filepath.Join(tmpDir, "storage"),
		filepath.Join(tmpDir, "outputs"),
	)
	configContent += extra

	configPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	return configPath
}
