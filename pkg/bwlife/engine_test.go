package bwlife

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwlife/internal/classify"
	"bwlife/internal/config"
	"bwlife/internal/core"
	"bwlife/internal/partial"
)

const (
	blinker Board = 0x0000001c00000000
	full    Board = 0xffffffffffffffff
)

func vonNeumann() Config {
	cfg := config.DefaultConfig()
	cfg.Neighborhood = core.VonNeumann
	return cfg
}

func newEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	eng, err := New(cfg, nil)
	require.NoError(t, err)
	return eng
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TableLen = 100
	_, err := New(cfg, nil)
	assert.True(t, errors.Is(err, config.ErrInvalid), "got %v", err)
}

func TestStepAndClassify(t *testing.T) {
	eng := newEngine(t, config.DefaultConfig())
	assert.Equal(t, core.Life, eng.Config().Rule)
	assert.Equal(t, blinker, eng.StepN(blinker, 2))
	assert.NotEqual(t, blinker, eng.Step(blinker))

	rec, err := eng.Classify(blinker)
	require.NoError(t, err)
	assert.Equal(t, Record{Start: blinker, End: blinker, Class: classify.Cycle, Period: 2}, rec)

	rec, err = eng.Classify(full)
	require.NoError(t, err)
	assert.Equal(t, classify.Empty, rec.Class)
	assert.Equal(t, uint32(1), rec.Transient)
}

func TestFindPredecessors(t *testing.T) {
	eng := newEngine(t, vonNeumann())
	target := Board(0xcccde8290fa425fc)

	preds, err := eng.FindPredecessors(target)
	require.NoError(t, err)
	require.Len(t, preds, 11)
	assert.Contains(t, preds, Board(0xcdcc69292f45e678))
	for i, p := range preds {
		assert.Equal(t, target, eng.Step(p))
		if i > 0 {
			assert.Less(t, uint64(preds[i-1]), uint64(p))
		}
	}

	one, err := eng.Ancestors(target, 1)
	require.NoError(t, err)
	assert.Equal(t, preds, one)
}

func TestAncestors(t *testing.T) {
	eng := newEngine(t, vonNeumann())
	target := Board(0xfedfb5da8e8c3b1d)

	parents, err := eng.FindPredecessors(target)
	require.NoError(t, err)
	require.Len(t, parents, 7)

	grand, err := eng.AdvancePredecessors(parents)
	require.NoError(t, err)
	got, err := eng.Ancestors(target, 2)
	require.NoError(t, err)
	assert.Equal(t, grand, got)
	for _, g := range got {
		assert.Equal(t, target, eng.StepN(g, 2))
	}

	same, err := eng.Ancestors(target, 0)
	require.NoError(t, err)
	assert.Equal(t, []Board{target}, same)
}

func TestAncestorsOfGardenOfEden(t *testing.T) {
	eng := newEngine(t, config.DefaultConfig())
	got, err := eng.Ancestors(full, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAncestorsReportsGeneration(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MaxStates = 100000
	eng := newEngine(t, cfg)

	_, err := eng.Ancestors(0, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, partial.ErrTooManyStates))
	assert.Contains(t, err.Error(), "generation 1")
}
