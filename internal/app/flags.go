package app

import (
	"flag"
	"strconv"
	"strings"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64
	Rule  string
	Board string
	Tiles int
	// Set holds extra key=value options passed to the sim factory.
	Set []string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "torus", Scale: 16, TPS: 4, Seed: 42, Rule: "B3/S23", Tiles: 3}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule in B/S notation or by name")
	fs.StringVar(&c.Board, "board", c.Board, "starting board (hex, decimal or rows); overrides -seed")
	fs.IntVar(&c.Tiles, "tiles", c.Tiles, "copies of the board along each axis")
	fs.Func("set", "extra sim option key=value (repeatable)", func(v string) error {
		c.Set = append(c.Set, v)
		return nil
	})
}

// SimOptions flattens the config into the map handed to a sim factory.
func (c *Config) SimOptions() map[string]string {
	opts := map[string]string{"rule": c.Rule}
	if c.Tiles > 0 {
		opts["tiles"] = strconv.Itoa(c.Tiles)
	}
	for _, kv := range c.Set {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		opts[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return opts
}
