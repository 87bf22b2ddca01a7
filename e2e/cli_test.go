//go:build e2e && unix

package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	assert.Contains(t, output, "Usage")
	assert.Contains(t, output, "--manifest")
	assert.Contains(t, output, "search")
	assert.Contains(t, output, "fetch")
}

func TestSearchSubcommand(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	workspace, err := tf.CreateTestWorkspace(DefaultLogos)
	require.NoError(t, err)

	cmd := exec.Command(binPath, "search", "volks")
	cmd.Dir = workspace
	cmd.Env = append(cmd.Environ(), "HOME="+workspace, "NO_COLOR=1")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	assert.Contains(t, string(out), "Volkswagen")
	assert.NotContains(t, string(out), "Audi")
}

func TestListSubcommand(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	workspace, err := tf.CreateTestWorkspace(DefaultLogos)
	require.NoError(t, err)

	cmd := exec.Command(binPath, "list")
	cmd.Dir = workspace
	cmd.Env = append(cmd.Environ(), "HOME="+workspace, "NO_COLOR=1")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	for _, l := range DefaultLogos {
		assert.Contains(t, string(out), l.Slug)
	}
	assert.Contains(t, string(out), "3 logos")
}
