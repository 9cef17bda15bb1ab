package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/skirmish/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSettings(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"run", "view", "config"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	cfg := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, cfg)
	assert.Equal(t, "", cfg.DefValue)
}

func TestRunCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	run, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)

	assert.Equal(t, "6000", run.Flags().Lookup("ticks").DefValue)
	assert.Equal(t, "true", run.Flags().Lookup("autopilot").DefValue)
	assert.NotNil(t, run.Flags().Lookup("metrics-addr"))
	assert.NotNil(t, run.Flags().Lookup("auto-restart"))
}

func TestConfigCommandPrintsLoadableSettings(t *testing.T) {
	path := writeSettings(t, "spawns:\n  max_concurrent: 2\n")

	out, err := execute(t, "config", "--config", path, "--verbose")
	require.NoError(t, err)

	s, err := config.Decode(bytes.NewBufferString(out))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Spawns.MaxConcurrent)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, config.Defaults().Tick, s.Tick)
}

func TestConfigCommandRejectsUnknownKeys(t *testing.T) {
	path := writeSettings(t, "arena:\n  depth: 3\n")

	_, err := execute(t, "config", "--config", path)
	assert.Error(t, err)
}

func TestRunHeadless(t *testing.T) {
	path := writeSettings(t, "spawns:\n  max_concurrent: 2\n  interval: 500ms\n")

	out, err := execute(t, "run", "--config", path, "--ticks", "400")
	require.NoError(t, err)
	assert.Contains(t, out, "ticks 400")
	assert.Contains(t, out, "spawned")
}
