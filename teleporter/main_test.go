package main

import (
	"bytes"
	"testing"

	"github.com/devries/synacor/search"

	"github.com/stretchr/testify/assert"
)

func TestRunFound(t *testing.T) {
	code := run([]string{"--x", "1", "--y", "0", "--k-max", "20", "--log-level", "error", "--env-file", ""})
	assert.Equal(t, exitFound, code)
}

func TestRunNotFound(t *testing.T) {
	code := run([]string{"--x", "0", "--y", "5", "--target", "7", "--k-max", "20", "--log-level", "error", "--env-file", ""})
	assert.Equal(t, exitNotFound, code)
}

func TestRunBadConfig(t *testing.T) {
	assert.Equal(t, exitBadConfig, run([]string{"--target", "40000", "--env-file", ""}))
	assert.Equal(t, exitBadConfig, run([]string{"--log-level", "loud", "--k-max", "0", "--env-file", ""}))
}

func TestRunAborted(t *testing.T) {
	code := run([]string{"--x", "2", "--y", "100", "--k-max", "3", "--max-depth", "4", "--log-level", "error", "--env-file", ""})
	assert.Equal(t, exitAborted, code)
}

func TestHelp(t *testing.T) {
	assert.Equal(t, exitFound, run([]string{"--help"}))
}

func TestReportNotFoundOnStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := search.DefaultConfig()
	cfg.KMin, cfg.KMax, cfg.Target = 3, 9, 7

	code := report(&stdout, &stderr, search.Outcome{Status: search.Exhausted, Tried: 7}, cfg)
	assert.Equal(t, exitNotFound, code)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "teleporter: no k in [3, 9] produces 7\n", stderr.String())
}

func TestReportFound(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := report(&stdout, &stderr, search.Outcome{Status: search.Found, K: 25734, Value: 6}, search.DefaultConfig())
	assert.Equal(t, exitFound, code)
	assert.Equal(t, "Correct Value: 25734\n", stdout.String())
	assert.Empty(t, stderr.String())
}
