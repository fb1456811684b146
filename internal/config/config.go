// Package config holds the process-wide settings for classification and
// predecessor search: the rule, the neighbourhood, table sizes, bounds and
// limits. Values come from defaults, an optional YAML file and key=value
// overrides, in that order, and are validated once before use.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"bwlife/internal/arena"
	"bwlife/internal/core"
	"bwlife/internal/predecessor"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// LogConfig selects log verbosity and format.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

// Config is the full set of tunables.
type Config struct {
	Rule         core.Rule         `yaml:"rule"`
	Neighborhood core.Neighborhood `yaml:"neighborhood" validate:"lte=2"`

	// TableLen is the number of primary cycle-table buckets.
	TableLen int `yaml:"table_len" validate:"gt=0,pow2"`
	// ArenaLen is the number of overflow slots shared by colliding boards.
	ArenaLen int `yaml:"arena_len" validate:"gte=0"`

	MaxPeriod    uint32 `yaml:"max_period" validate:"gt=0"`
	MaxTransient uint32 `yaml:"max_transient" validate:"gtfield=MaxPeriod"`

	// ScratchLen overrides the scratch size derived from the table sizes.
	ScratchLen int `yaml:"scratch_len" validate:"gte=0"`
	// MaxStates bounds any partial-state list; 0 means unlimited.
	MaxStates    int                  `yaml:"max_states" validate:"gte=0"`
	Strategy     predecessor.Strategy `yaml:"strategy" validate:"lte=1"`
	Canonicalize bool                 `yaml:"canonicalize"`

	// Checkpoint is how often long sweeps flush and reset their totals.
	Checkpoint time.Duration `yaml:"checkpoint" validate:"gte=0"`

	Log LogConfig `yaml:"log"`
}

// DefaultConfig returns the standard configuration: Life on the Moore
// neighbourhood with a 512-bucket table.
func DefaultConfig() Config {
	return Config{
		Rule:         core.Life,
		Neighborhood: core.Moore,
		TableLen:     512,
		ArenaLen:     256,
		MaxPeriod:    135,
		MaxTransient: 447,
		MaxStates:    1 << 24,
		Strategy:     predecessor.DivideAndConquer,
		Canonicalize: true,
		Checkpoint:   12 * time.Hour,
		Log:          LogConfig{Level: "info"},
	}
}

// ScratchCapacity returns the number of boards the scratch buffer holds.
func (c Config) ScratchCapacity() int {
	if c.ScratchLen > 0 {
		return c.ScratchLen
	}
	return arena.CapacityFor(c.TableLen, c.ArenaLen)
}

var validate = func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("pow2", func(fl validator.FieldLevel) bool {
		n := fl.Field().Int()
		return n > 0 && n&(n-1) == 0
	})
	return v
}()

// Validate checks field ranges and cross-field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !c.Rule.Fits(c.Neighborhood) {
		return fmt.Errorf("%w: rule %s uses counts above %d for the %s neighborhood",
			ErrInvalid, c.Rule, c.Neighborhood.Size(), c.Neighborhood)
	}
	if c.ScratchLen == 0 && c.ScratchCapacity() < 2*(1<<c.Neighborhood.Size()) {
		return fmt.Errorf("%w: scratch of %d boards cannot hold one cell's states", ErrInvalid, c.ScratchCapacity())
	}
	return nil
}

// Set applies one key=value override.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	var err error
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "rule":
		c.Rule, err = core.ParseRule(value)
	case "neighborhood", "nh":
		c.Neighborhood, err = core.ParseNeighborhood(value)
	case "table_len":
		c.TableLen, err = strconv.Atoi(value)
	case "arena_len":
		c.ArenaLen, err = strconv.Atoi(value)
	case "max_period":
		c.MaxPeriod, err = parseUint32(value)
	case "max_transient":
		c.MaxTransient, err = parseUint32(value)
	case "scratch_len":
		c.ScratchLen, err = strconv.Atoi(value)
	case "max_states":
		c.MaxStates, err = strconv.Atoi(value)
	case "strategy":
		c.Strategy, err = predecessor.ParseStrategy(value)
	case "canonicalize":
		c.Canonicalize, err = strconv.ParseBool(value)
	case "checkpoint":
		c.Checkpoint, err = time.ParseDuration(value)
	case "log_level", "log.level":
		c.Log.Level = strings.ToLower(value)
	case "log_json", "log.json":
		c.Log.JSON, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("config: unknown key %q", key)
	}
	if err != nil {
		return fmt.Errorf("config: %s=%q: %w", key, value, err)
	}
	return nil
}

// Apply runs Set for each pair in overrides and stops at the first error.
func (c *Config) Apply(overrides map[string]string) error {
	for k, v := range overrides {
		if err := c.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unknown keys and unparsable values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	for k, v := range cfg {
		prev := c
		if err := c.Set(k, v); err != nil {
			c = prev
		}
	}
	return c
}

// Load reads a YAML file over the defaults. Unknown fields are rejected.
// The result is not validated; callers apply overrides first.
func Load(path string) (Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: read %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return c, nil
}

// YAML renders the config in the format Load reads.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}
