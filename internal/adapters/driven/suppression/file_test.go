package suppression

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	set, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestLoadEmptyPath(t *testing.T) {
	set, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestLoadNormalizesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dnc.txt")
	content := "Jane@Acme.com\n\n  bob@globex.com  \n# a comment\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	set, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, set, 2)
	_, ok := set["jane@acme.com"]
	assert.True(t, ok)
	_, ok = set["bob@globex.com"]
	assert.True(t, ok)
}
