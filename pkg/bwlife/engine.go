// Package bwlife is the public entry point for classifying 8x8 toroidal
// boards by their forward fate and for enumerating their predecessors.
//
// An Engine fixes the rule and neighbourhood at construction and owns all
// working memory. Engines are cheap enough to create one per goroutine; a
// single Engine is not safe for concurrent use.
//
//	eng, err := bwlife.New(config.DefaultConfig(), nil)
//	rec, err := eng.Classify(0x0000001c00000000)
//	preds, err := eng.FindPredecessors(rec.End)
package bwlife

import (
	"fmt"
	"log/slog"

	"bwlife/internal/arena"
	"bwlife/internal/classify"
	"bwlife/internal/config"
	"bwlife/internal/core"
	"bwlife/internal/cycletable"
	"bwlife/internal/logging"
	"bwlife/internal/partial"
	"bwlife/internal/predecessor"
)

type (
	// Board is an 8x8 toroidal board, bit 8*row+col.
	Board = core.Board
	// Record is the result of a classification.
	Record = classify.Record
	// Config holds the engine settings.
	Config = config.Config
)

// Engine bundles an evaluator, a classifier and a predecessor searcher that
// share one rule.
type Engine struct {
	cfg        config.Config
	eval       *core.Evaluator
	classifier *classify.Classifier
	searcher   *predecessor.Searcher
}

// New validates cfg and allocates an engine. A nil logger discards output.
func New(cfg config.Config, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = logging.OrDiscard(logger)

	table, err := cycletable.New(cfg.TableLen, cfg.ArenaLen)
	if err != nil {
		return nil, fmt.Errorf("bwlife: %w", err)
	}
	eval := core.NewEvaluator(cfg.Rule, cfg.Neighborhood)
	scratch := arena.New(cfg.ScratchCapacity())
	merger := partial.NewMerger(cfg.MaxStates, logger)

	return &Engine{
		cfg:  cfg,
		eval: eval,
		classifier: classify.New(eval, table, classify.Options{
			MaxPeriod:    cfg.MaxPeriod,
			MaxTransient: cfg.MaxTransient,
			Logger:       logger,
		}),
		searcher: predecessor.New(eval, scratch, merger, predecessor.Options{
			Strategy:     cfg.Strategy,
			Canonicalize: cfg.Canonicalize,
			Logger:       logger,
		}),
	}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() config.Config { return e.cfg }

// Step returns the next generation of b.
func (e *Engine) Step(b Board) Board { return e.eval.Step(b) }

// StepN returns the board n generations after b.
func (e *Engine) StepN(b Board, n int) Board { return e.eval.StepN(b, n) }

// Classify runs b forward until it repeats. Errors match
// classify.ErrOverflow or classify.ErrOutOfBounds and abort only this trial.
func (e *Engine) Classify(b Board) (Record, error) {
	return e.classifier.Classify(b)
}

// FindPredecessors returns every board that steps to b, sorted ascending.
func (e *Engine) FindPredecessors(b Board) ([]Board, error) {
	return e.searcher.Find(b)
}

// AdvancePredecessors returns the union of the predecessors of boards,
// sorted ascending without duplicates.
func (e *Engine) AdvancePredecessors(boards []Board) ([]Board, error) {
	return e.searcher.Advance(boards)
}

// Ancestors applies AdvancePredecessors generations times starting from
// {b}. It stops early once no boards remain.
func (e *Engine) Ancestors(b Board, generations int) ([]Board, error) {
	cur := []Board{b}
	for g := 0; g < generations && len(cur) > 0; g++ {
		next, err := e.AdvancePredecessors(cur)
		if err != nil {
			return nil, fmt.Errorf("bwlife: generation %d: %w", g+1, err)
		}
		cur = next
	}
	return cur, nil
}
