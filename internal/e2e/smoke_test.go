package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var provisionEnv = []string{
	"CONTOSO_AI_SERVICES_KEY=k1",
	"CONTOSO_AI_SERVICES_ENDPOINT=https://e1",
	"COSMOS_ENDPOINT=https://e2",
	"COSMOS_KEY=k2",
	"CONTOSO_SEARCH_ENDPOINT=https://e3",
	"CONTOSO_SEARCH_KEY=k3",
	"PFCONN_SECRETS_BACKEND=file",
}

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runPfconn(t, binaryPath, home, provisionEnv)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Creating connection aoai-connection...")
	assert.Contains(t, stdout, "Creating connection contoso-search...")

	stdout, stderr, err = runPfconn(t, binaryPath, home, nil, "connection", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "connections: 3")
	assert.Contains(t, stdout, "contoso-cosmos")
}

func TestSmokeMissingVariableExitsNonZero(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	env := append([]string{}, provisionEnv...)
	env = append(env, "COSMOS_KEY=")

	_, stderr, err := runPfconn(t, binaryPath, home, env, "provision")
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, stderr, "COSMOS_KEY")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "pfconn-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/pfconn")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build pfconn binary: %s", string(output))
	return binaryPath
}

func runPfconn(t *testing.T, binaryPath, home string, env []string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), "HOME="+home, "PFCONN_SECRETS_BACKEND=file")
	cmd.Env = append(cmd.Env, env...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
