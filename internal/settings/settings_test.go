package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devries/synacor/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, args ...string) (Settings, error) {
	t.Helper()
	return Load(Flags("test"), args)
}

func TestDefaults(t *testing.T) {
	s, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, search.DefaultConfig(), s.Search)
	assert.Equal(t, "info", s.LogLevel)
}

func TestFlags(t *testing.T) {
	s, err := load(t, "--x", "2", "--y=3", "--target", "39", "--k-max", "300", "-w", "4", "--memo", "map", "--on-exhaustion", "skip")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Search.X)
	assert.Equal(t, 3, s.Search.Y)
	assert.Equal(t, 39, s.Search.Target)
	assert.Equal(t, 300, s.Search.KMax)
	assert.Equal(t, 4, s.Search.Workers)
	assert.Equal(t, search.MapMemo, s.Search.Memo)
	assert.Equal(t, search.Skip, s.Search.OnExhaustion)
}

func TestEnvironmentBelowFlags(t *testing.T) {
	t.Setenv("TELEPORTER_K_MIN", "100")
	t.Setenv("TELEPORTER_TARGET", "9")

	s, err := load(t, "--target", "12")
	require.NoError(t, err)
	assert.Equal(t, 100, s.Search.KMin)
	assert.Equal(t, 12, s.Search.Target)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teleporter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x: 3\nk-max: 1000\nmax-depth: 4096\n"), 0o644))

	s, err := load(t, "-c", path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Search.X)
	assert.Equal(t, 1000, s.Search.KMax)
	assert.Equal(t, 4096, s.Search.Limits.MaxDepth)
}

func TestDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teleporter.env")
	require.NoError(t, os.WriteFile(path, []byte("TELEPORTER_WORKERS=6\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("TELEPORTER_WORKERS") })

	s, err := load(t, "--env-file", path)
	require.NoError(t, err)
	assert.Equal(t, 6, s.Search.Workers)
}

func TestMissingDotEnvIgnored(t *testing.T) {
	_, err := load(t, "--env-file", filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := load(t, "-c", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestInvalidValuesRejected(t *testing.T) {
	_, err := load(t, "--x", "32768", "--k-min", "9", "--k-max", "3")
	require.ErrorIs(t, err, search.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "x=32768")
	assert.Contains(t, err.Error(), "empty k range")
}

func TestUnknownFlag(t *testing.T) {
	_, err := load(t, "--warp")
	assert.Error(t, err)
}
