package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arclight-labs/prospect-cli/internal/core/domain"
)

// execute runs the root command against an isolated config file.
func execute(t *testing.T, args ...string) error {
	t.Helper()

	originalConfigPath := configPath
	configPath = filepath.Join(t.TempDir(), "config.toml")
	t.Cleanup(func() {
		configPath = originalConfigPath
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestCollectCmd_RequiresAPIKey(t *testing.T) {
	t.Setenv("APOLLO_API_KEY", "")

	err := execute(t, "collect")
	assert.ErrorContains(t, err, "apollo api key")
}

func TestCollectCmd_RejectsUnknownMode(t *testing.T) {
	t.Setenv("APOLLO_API_KEY", "key")

	err := execute(t, "collect", "--mode", "bogus")
	assert.ErrorIs(t, err, domain.ErrUnknownRecipe)
}

func TestDispatchCmd_RequiresSender(t *testing.T) {
	t.Setenv("SENDER_UPN", "")

	err := execute(t, "dispatch")
	assert.ErrorContains(t, err, "graph sender")
}
