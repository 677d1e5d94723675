package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/evader/internal/core/observability/log"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRunCommand(t *testing.T) {
	a := writeFile(t, "a.yaml", "name: a\nticks: 30\nshots: [{tick: 1, x: 395, y: 130}]\n")
	b := writeFile(t, "b.yaml", "ticks: 10\n")

	err := makeapp().Run([]string{"evader", "run", "--level", "error", a, b})
	assert.NoError(t, err)
}

func TestRunCommandRejectsBadInput(t *testing.T) {
	assert.Error(t, runAction([]string{filepath.Join(t.TempDir(), "missing.yaml")}, log.LevelError, 0, ""))

	bad := writeFile(t, "bad.yaml", "ticks: -4\n")
	assert.Error(t, runAction([]string{bad}, log.LevelError, 0, ""))

	ok := writeFile(t, "ok.yaml", "ticks: 1\n")
	policy := writeFile(t, "policy.yaml", "root: r\nnodes:\n  r: {type: action, action: fly}\n")
	assert.Error(t, runAction([]string{ok}, log.LevelError, 0, policy))
}

func TestPolicyCommand(t *testing.T) {
	assert.NoError(t, policyAction(""))

	custom := writeFile(t, "policy.yaml", "name: still\nroot: hold\nnodes:\n  hold: {type: action}\n")
	assert.NoError(t, policyAction(custom))

	assert.Error(t, policyAction(filepath.Join(t.TempDir(), "nope.yaml")))
}
