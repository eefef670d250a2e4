package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Executes(t *testing.T) {
	// Save and restore version
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	// Point config at an empty temp dir so the user's real config is
	// never read.
	originalConfigPath := configPath
	configPath = filepath.Join(t.TempDir(), "config.toml")
	defer func() { configPath = originalConfigPath }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "prospect version test-version-1.0.0")
}
