package app

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindDefaults(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, "torus", cfg.Sim)
	assert.Equal(t, 16, cfg.Scale)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, map[string]string{"rule": "B3/S23", "tiles": "3"}, cfg.SimOptions())
}

func TestBindOverrides(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{
		"-rule", "highlife",
		"-tiles", "0",
		"-board", "0x1c00000000",
		"-set", "nh=vn",
		"-set", " max_period = 60 ",
		"-set", "ignored",
	}))

	assert.Equal(t, "0x1c00000000", cfg.Board)
	assert.Equal(t, map[string]string{
		"rule":       "highlife",
		"nh":         "vn",
		"max_period": "60",
	}, cfg.SimOptions())

	assert.Error(t, fs.Parse([]string{"-scale", "big"}))
}
