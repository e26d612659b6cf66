package cmd

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var provisionEnv = map[string]string{
	"CONTOSO_AI_SERVICES_KEY":      "aoai-secret-1",
	"CONTOSO_AI_SERVICES_ENDPOINT": "https://e1",
	"COSMOS_ENDPOINT":              "https://e2",
	"COSMOS_KEY":                   "cosmos-secret-2",
	"CONTOSO_SEARCH_ENDPOINT":      "https://e3",
	"CONTOSO_SEARCH_KEY":           "search-secret-3",
}

func TestProvisionCreatesAllConnections(t *testing.T) {
	home := t.TempDir()
	setProvisionEnv(t, provisionEnv)

	stdout, _, err := executeCLI(t, home, "provision")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Creating connection aoai-connection...")
	assert.Contains(t, stdout, "Creating connection contoso-cosmos...")
	assert.Contains(t, stdout, "Creating connection contoso-search...")
	assert.Contains(t, stdout, "api_base: https://e1")
	assert.Contains(t, stdout, "databaseId: contoso-outdoor")
	assertNoSecrets(t, stdout)

	connections, err := os.ReadFile(filepath.Join(home, ".pfconn", "connections.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(connections), `name = "aoai-connection"`)
	assert.Contains(t, string(connections), `name = "contoso-cosmos"`)
	assert.Contains(t, string(connections), `name = "contoso-search"`)
	assertNoSecrets(t, string(connections))

	key, err := os.ReadFile(filepath.Join(home, ".pfconn", "secrets", "pfconn", "connections", "contoso-cosmos", "key"))
	require.NoError(t, err)
	assert.Equal(t, "cosmos-secret-2", string(key))
}

func TestRootWithoutSubcommandProvisions(t *testing.T) {
	home := t.TempDir()
	setProvisionEnv(t, provisionEnv)

	stdout, _, err := executeCLI(t, home)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Creating connection contoso-search...")
}

func TestProvisionMissingVariableFailsAfterEarlierSteps(t *testing.T) {
	home := t.TempDir()
	setProvisionEnv(t, provisionEnv)
	t.Setenv("COSMOS_KEY", "")

	stdout, _, err := executeCLI(t, home, "provision")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COSMOS_KEY")
	assert.Contains(t, stdout, "Creating connection aoai-connection...")
	assert.NotContains(t, stdout, "contoso-cosmos")

	stdout, _, err = executeCLI(t, home, "connection", "list", "--json")
	require.NoError(t, err)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "aoai-connection", docs[0]["name"])
}

func TestProvisionReadsDotenvFile(t *testing.T) {
	home := t.TempDir()
	setProvisionEnv(t, provisionEnv)
	t.Setenv("CONTOSO_SEARCH_KEY", "")
	require.NoError(t, os.Unsetenv("CONTOSO_SEARCH_KEY"))

	envFile := filepath.Join(t.TempDir(), "contoso.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CONTOSO_SEARCH_KEY=search-from-dotenv\nCOSMOS_ENDPOINT=https://ignored\n"), 0o600))

	stdout, _, err := executeCLI(t, home, "--env-file", envFile, "provision")
	require.NoError(t, err)
	assert.Contains(t, stdout, "endpoint: https://e2")
	assert.NotContains(t, stdout, "https://ignored")

	key, err := os.ReadFile(filepath.Join(home, ".pfconn", "secrets", "pfconn", "connections", "contoso-search", "api_key"))
	require.NoError(t, err)
	assert.Equal(t, "search-from-dotenv", string(key))
}

func TestProvisionDryRunStoresNothing(t *testing.T) {
	home := t.TempDir()
	setProvisionEnv(t, provisionEnv)

	stdout, _, err := executeCLI(t, home, "provision", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Would create connection aoai-connection...")
	assertNoSecrets(t, stdout)

	_, err = os.Stat(filepath.Join(home, ".pfconn", "connections.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProvisionTwiceKeepsThreeConnections(t *testing.T) {
	home := t.TempDir()
	setProvisionEnv(t, provisionEnv)

	_, _, err := executeCLI(t, home, "provision")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "provision")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "connection", "list", "--json")
	require.NoError(t, err)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &docs))
	require.Len(t, docs, 3)
	assert.Equal(t, "aoai-connection", docs[0]["name"])
	assert.Equal(t, "contoso-cosmos", docs[1]["name"])
	assert.Equal(t, "contoso-search", docs[2]["name"])
}

func TestConnectionListRendersTable(t *testing.T) {
	home := t.TempDir()
	setProvisionEnv(t, provisionEnv)

	_, _, err := executeCLI(t, home, "provision")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "connection", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "connections: 3")
	assert.Contains(t, stdout, "contoso-cosmos")
	assert.Contains(t, stdout, "https://e3")
	assertNoSecrets(t, stdout)
}

func TestConnectionShowScrubsSecrets(t *testing.T) {
	home := t.TempDir()
	setProvisionEnv(t, provisionEnv)

	_, _, err := executeCLI(t, home, "provision")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "connection", "show", "contoso-cosmos")
	require.NoError(t, err)
	assert.Contains(t, stdout, "name: contoso-cosmos")
	assert.Contains(t, stdout, "******")
	assertNoSecrets(t, stdout)

	stdout, _, err = executeCLI(t, home, "connection", "show", "contoso-search", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"type": "cognitive_search"`)
}

func TestConnectionShowUnknownName(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "connection", "show", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection not found")
}

func TestConnectionCreateFromFileThenDelete(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PFCONN_SECRETS_BACKEND", "file")
	t.Setenv("EXTRA_TOKEN", "extra-secret")

	file := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
name: extra
type: custom
configs:
  url: https://extra.example
secrets:
  token: ${env:EXTRA_TOKEN}
`), 0o600))

	stdout, _, err := executeCLI(t, home, "connection", "create", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, stdout, "name: extra")
	assert.NotContains(t, stdout, "extra-secret")

	secretPath := filepath.Join(home, ".pfconn", "secrets", "pfconn", "connections", "extra", "token")
	_, err = os.Stat(secretPath)
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "connection", "delete", "extra")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Deleted connection extra")

	_, err = os.Stat(secretPath)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConnectionCreateRequiresFileFlag(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "connection", "create")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"file\" not set")
}

func TestConnectionVerifyProbesSearchService(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	home := t.TempDir()
	setProvisionEnv(t, provisionEnv)
	t.Setenv("CONTOSO_SEARCH_ENDPOINT", server.URL)
	t.Setenv("PFCONN_VERIFY_ALLOW_HTTP", "true")

	_, _, err := executeCLI(t, home, "provision")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "connection", "verify", "contoso-search")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Connection contoso-search verified")
	assert.Equal(t, "search-secret-3", gotKey)
}

func TestConnectionVerifyUnsupportedCustomConnection(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PFCONN_SECRETS_BACKEND", "file")

	file := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(file, []byte("name: extra\ntype: custom\nsecrets:\n  token: t\n"), 0o600))
	_, _, err := executeCLI(t, home, "connection", "create", "--file", file)
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "connection", "verify", "extra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be verified")
}

func TestVerifySignsCosmosRequest(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	home := t.TempDir()
	setProvisionEnv(t, provisionEnv)
	t.Setenv("COSMOS_ENDPOINT", server.URL)
	t.Setenv("COSMOS_KEY", base64.StdEncoding.EncodeToString([]byte("cosmos-master")))
	t.Setenv("PFCONN_VERIFY_ALLOW_HTTP", "true")

	_, _, err := executeCLI(t, home, "provision")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "connection", "verify", "contoso-cosmos")
	require.NoError(t, err)
	assert.Contains(t, gotAuth, "type%3Dmaster")
}

func TestUnknownSecretsBackend(t *testing.T) {
	home := t.TempDir()
	setProvisionEnv(t, provisionEnv)
	t.Setenv("PFCONN_SECRETS_BACKEND", "vault")

	_, _, err := executeCLI(t, home, "provision")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown secrets backend "vault"`)
}

func TestUnknownCommand(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "limit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"limit\"")
}

func TestVersionCommand(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestVerboseLogsToStderr(t *testing.T) {
	home := t.TempDir()
	setProvisionEnv(t, provisionEnv)

	_, stderr, err := executeCLI(t, home, "-vv", "provision")
	require.NoError(t, err)
	assert.Contains(t, stderr, "submitting connection")
	assertNoSecrets(t, stderr)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func setProvisionEnv(t *testing.T, values map[string]string) {
	t.Helper()

	t.Setenv("PFCONN_SECRETS_BACKEND", "file")
	for key, value := range values {
		t.Setenv(key, value)
	}
}

func assertNoSecrets(t *testing.T, output string) {
	t.Helper()

	for _, secret := range []string{"aoai-secret-1", "cosmos-secret-2", "search-secret-3"} {
		assert.NotContains(t, output, secret)
	}
}
