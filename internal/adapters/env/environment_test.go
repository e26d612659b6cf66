package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProcessValuesWinOverDotenv(t *testing.T) {
	t.Parallel()

	dotenvPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenvPath, []byte("COSMOS_KEY=from-file\nCOSMOS_ENDPOINT=https://file\n"), 0o600))

	process := Static{"COSMOS_KEY": "from-process"}
	environment, err := load(dotenvPath, process.Lookup)
	require.NoError(t, err)

	value, ok := environment.Lookup("COSMOS_KEY")
	require.True(t, ok)
	assert.Equal(t, "from-process", value)

	value, ok = environment.Lookup("COSMOS_ENDPOINT")
	require.True(t, ok)
	assert.Equal(t, "https://file", value)

	_, ok = environment.Lookup("CONTOSO_SEARCH_KEY")
	assert.False(t, ok)
}

func TestLoadMissingDotenvFileIsNotAnError(t *testing.T) {
	t.Parallel()

	environment, err := load(filepath.Join(t.TempDir(), ".env"), Static{"A": "1"}.Lookup)
	require.NoError(t, err)

	value, ok := environment.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "1", value)
}

func TestLoadEmptyPathUsesProcessOnly(t *testing.T) {
	t.Setenv("PFCONN_ENV_TEST", "set")

	environment, err := Load("")
	require.NoError(t, err)

	value, ok := environment.Lookup("PFCONN_ENV_TEST")
	require.True(t, ok)
	assert.Equal(t, "set", value)
}

func TestLoadHandlesQuotedAndExportedValues(t *testing.T) {
	t.Parallel()

	dotenvPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenvPath, []byte(
		"export CONTOSO_SEARCH_ENDPOINT=\"https://search.example\"\n# comment\nCONTOSO_SEARCH_KEY='k3'\n",
	), 0o600))

	environment, err := load(dotenvPath, Static{}.Lookup)
	require.NoError(t, err)

	value, _ := environment.Lookup("CONTOSO_SEARCH_ENDPOINT")
	assert.Equal(t, "https://search.example", value)
	value, _ = environment.Lookup("CONTOSO_SEARCH_KEY")
	assert.Equal(t, "k3", value)
}
