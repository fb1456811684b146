package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"bwlife/internal/config"
	"bwlife/internal/core"
	"bwlife/internal/stats"
	"bwlife/pkg/bwlife"
	pcore "bwlife/pkg/core"
)

type sweepOptions struct {
	trials      uint64
	workers     int
	seed        int64
	backward    bool
	metricsAddr string
	checkpoint  time.Duration
	progress    time.Duration
	tables      bool
}

func newSweepCmd(opts *rootOptions) *cobra.Command {
	so := &sweepOptions{}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Classify random boards, or count their predecessors, and summarize",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("checkpoint") {
				cfg.Checkpoint = so.checkpoint
			}
			return runSweep(cmd.Context(), cfg, so, opts.logger, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.Uint64Var(&so.trials, "trials", 10000, "number of random boards")
	f.IntVar(&so.workers, "workers", 4, "parallel workers, each with its own engine")
	f.Int64Var(&so.seed, "seed", 1, "base seed; worker i uses stream i")
	f.BoolVar(&so.backward, "backward", false, "count predecessors instead of classifying")
	f.StringVar(&so.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	f.DurationVar(&so.checkpoint, "checkpoint", 0, "flush and reset totals this often (default from config)")
	f.DurationVar(&so.progress, "progress", 10*time.Second, "minimum interval between progress logs")
	f.BoolVar(&so.tables, "tables", true, "print histogram tables after the YAML summary")
	return cmd
}

// sweeper is the state shared by the workers of one sweep.
type sweeper struct {
	cfg    config.Config
	opts   *sweepOptions
	logger *slog.Logger
	out    io.Writer
	runID  string

	coll     *stats.Collector
	done     atomic.Uint64
	progress rate.Sometimes

	ckptMu sync.Mutex
	ckpt   *core.Checkpoint
	outMu  sync.Mutex
}

func runSweep(ctx context.Context, cfg config.Config, so *sweepOptions, logger *slog.Logger, out io.Writer) error {
	if so.workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", so.workers)
	}
	reg := prometheus.NewRegistry()
	s := &sweeper{
		cfg:    cfg,
		opts:   so,
		logger: logger,
		out:    out,
		runID:  uuid.NewString(),
		coll: stats.NewCollector(stats.Options{
			MaxPeriod:    cfg.MaxPeriod,
			MaxTransient: cfg.MaxTransient,
			Metrics:      stats.NewMetrics(reg),
		}),
		progress: rate.Sometimes{Interval: so.progress},
		ckpt:     core.NewCheckpoint(cfg.Checkpoint),
	}
	s.logger = logger.With("run_id", s.runID)

	if so.metricsAddr != "" {
		stop := s.serveMetrics(reg)
		defer stop()
	}

	mode := "forward"
	if so.backward {
		mode = "backward"
	}
	s.logger.Info("sweep started",
		"mode", mode,
		"rule", cfg.Rule,
		"neighborhood", cfg.Neighborhood,
		"trials", so.trials,
		"workers", so.workers,
		"seed", so.seed)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < so.workers; w++ {
		g.Go(func() error {
			return s.work(gctx, w)
		})
	}
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		s.logger.Warn("sweep interrupted", "done", s.done.Load())
		err = nil
	}
	if err != nil {
		return err
	}

	s.logger.Info("sweep finished", "done", s.done.Load(), "elapsed", time.Since(start).Round(time.Millisecond))
	return s.flush("final", s.coll.Snapshot())
}

// work runs trials w, w+workers, w+2*workers, ... on a private engine.
func (s *sweeper) work(ctx context.Context, w int) error {
	eng, err := bwlife.New(s.cfg, s.logger.With("worker", w))
	if err != nil {
		return err
	}
	rng := pcore.NewStream(s.opts.seed, uint64(w))
	for i := uint64(w); i < s.opts.trials; i += uint64(s.opts.workers) {
		if err := ctx.Err(); err != nil {
			return err
		}
		b := rng.Board()
		if s.opts.backward {
			err = s.backward(eng, b)
		} else {
			err = s.forward(eng, b)
		}
		if err != nil {
			return err
		}

		n := s.done.Add(1)
		s.progress.Do(func() {
			s.logger.Info("progress", "done", n, "of", s.opts.trials)
		})
		if err := s.maybeCheckpoint(); err != nil {
			return err
		}
	}
	return nil
}

func (s *sweeper) forward(eng *bwlife.Engine, b core.Board) error {
	rec, err := eng.Classify(b)
	if err != nil {
		if s.coll.AddError(err) {
			s.logger.Debug("trial abandoned", "start", b.Hex(), "err", err)
			return nil
		}
		return err
	}
	if in := s.coll.Add(rec); in != 0 {
		s.logger.Info("interesting",
			"start", rec.Start.Hex(),
			"end", rec.End.Hex(),
			"class", rec.Class,
			"transient", rec.Transient,
			"period", rec.Period,
			"flags", in.Names())
	}
	return nil
}

func (s *sweeper) backward(eng *bwlife.Engine, b core.Board) error {
	preds, err := eng.FindPredecessors(b)
	if err != nil {
		if s.coll.AddError(err) {
			s.logger.Debug("search abandoned", "target", b.Hex(), "err", err)
			return nil
		}
		return err
	}
	if seen := s.coll.AddIndegree(uint64(len(preds))); seen == 1 && len(preds) > 0 {
		s.logger.Info("new predecessor count", "target", b.Hex(), "count", len(preds))
	}
	return nil
}

func (s *sweeper) maybeCheckpoint() error {
	s.ckptMu.Lock()
	due := s.ckpt.Due()
	s.ckptMu.Unlock()
	if !due {
		return nil
	}
	return s.flush("checkpoint", s.coll.SnapshotAndReset())
}

// flush writes sum as a YAML document followed by tables.
func (s *sweeper) flush(kind string, sum stats.Summary) error {
	sum.RunID = s.runID
	sum.Rule = s.cfg.Rule.String()

	data, err := yaml.Marshal(struct {
		Kind    string        `yaml:"kind"`
		At      string        `yaml:"at"`
		Summary stats.Summary `yaml:",inline"`
	}{kind, time.Now().UTC().Format(time.RFC3339), sum})
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintln(s.out, "---")
	if _, err := s.out.Write(data); err != nil {
		return err
	}
	if s.opts.tables {
		sum.WriteTables(s.out)
	}
	s.logger.Info("summary written", "kind", kind, "trials", sum.Trials, "searches", sum.Searches)
	return nil
}

func (s *sweeper) serveMetrics(reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Addr:              s.opts.metricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server", "addr", srv.Addr, "err", err)
		}
	}()
	s.logger.Info("serving metrics", "addr", srv.Addr)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
