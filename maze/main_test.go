package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveVaultDoor(t *testing.T) {
	path, err := solve(vault, Point{0, 0}, Point{3, 3}, 30)
	require.NoError(t, err)
	assert.Equal(t, Path{
		"north", "east", "east", "north", "west", "south",
		"east", "east", "west", "north", "north", "east",
	}, path)

	value, err := replay(vault, Point{0, 0}, path)
	require.NoError(t, err)
	assert.Equal(t, 30, value)
}

func TestSolveOtherTarget(t *testing.T) {
	path, err := solve(vault, Point{0, 0}, Point{3, 3}, 31)
	require.NoError(t, err)
	assert.Len(t, path, 10)

	value, err := replay(vault, Point{0, 0}, path)
	require.NoError(t, err)
	assert.Equal(t, 31, value)
}

func TestSolveNoPath(t *testing.T) {
	v := Vault{
		Point{0, 0}: Room{'n', 5},
		Point{1, 0}: Room{'n', 3},
	}
	_, err := solve(v, Point{0, 0}, Point{1, 0}, 6)
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestSolveBadStart(t *testing.T) {
	_, err := solve(vault, Point{1, 0}, Point{3, 3}, 30)
	assert.Error(t, err)
}

func TestReplayRejectsUnknownStep(t *testing.T) {
	_, err := replay(vault, Point{0, 0}, Path{"up"})
	assert.Error(t, err)

	_, err = replay(vault, Point{0, 0}, Path{"south"})
	assert.Error(t, err)
}

func TestRunPrintsCheckedPath(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"--log-level", "error"}, &out)
	require.Equal(t, 0, code)

	path := Path(strings.Fields(out.String()))
	assert.Len(t, path, 12)
	value, err := replay(vault, Point{0, 0}, path)
	require.NoError(t, err)
	assert.Equal(t, 30, value)
}

func TestRunBadLevel(t *testing.T) {
	assert.Equal(t, 2, run([]string{"--log-level", "loud"}, &bytes.Buffer{}))
}
