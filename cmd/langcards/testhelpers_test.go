package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/langcards/internal/testutil"
)

// setConfigFile sets the package-level configFile and restores it after the test.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// runCommand executes the root command with args against the config at cfgPath.
func runCommand(t *testing.T, cfgPath string, stdin string, args ...string) (string, error) {
	t.Helper()
	setConfigFile(t, cfgPath)

	var out bytes.Buffer
	rootCommand := newRootCommand()
	rootCommand.SetOut(&out)
	rootCommand.SetErr(&out)
	rootCommand.SetIn(strings.NewReader(stdin))
	rootCommand.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := rootCommand.Execute()
	return out.String(), err
}

func setupConfig(t *testing.T) (string, string) {
	t.Helper()
	tmpDir := t.TempDir()
	return testutil.SetupTestConfig(t, tmpDir), tmpDir
}
