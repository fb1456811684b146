package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bwlife/internal/config"
	"bwlife/internal/core"
	"bwlife/internal/logging"
	"bwlife/internal/render"
)

// rootOptions carries the persistent flags and the state derived from them
// for one invocation.
type rootOptions struct {
	configPath   string
	rule         string
	neighborhood string
	logLevel     string
	jsonOut      bool
	set          []string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "bwlife",
		Short:         "Classify and run backwards 8x8 toroidal Life-like boards",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}
	root.SetErr(os.Stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML config file")
	pf.StringVar(&opts.rule, "rule", "", "rule in B/S notation or by name (overrides config)")
	pf.StringVar(&opts.neighborhood, "neighborhood", "", "moore, vonneumann or diagonal (overrides config)")
	pf.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	pf.BoolVar(&opts.jsonOut, "json", false, "print results as JSON")
	pf.StringArrayVar(&opts.set, "set", nil, "config override key=value (repeatable)")

	root.AddCommand(
		newStepCmd(opts),
		newClassifyCmd(opts),
		newPredsCmd(opts),
		newAdvanceCmd(opts),
		newSweepCmd(opts),
		newRulesCmd(opts),
	)

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n%s", err, cmd.UsageString())
	})
	return root
}

// load resolves the effective config: defaults, then the file, then the
// explicit flags, then --set overrides.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.rule != "" {
		if err := cfg.Set("rule", o.rule); err != nil {
			return err
		}
	}
	if o.neighborhood != "" {
		if err := cfg.Set("neighborhood", o.neighborhood); err != nil {
			return err
		}
	}
	if o.logLevel != "" {
		if err := cfg.Set("log_level", o.logLevel); err != nil {
			return err
		}
	}
	for _, kv := range o.set {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("--set %q: want key=value", kv)
		}
		if err := cfg.Set(k, v); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = logging.New(logging.Config{
		Level:   level,
		JSON:    cfg.Log.JSON,
		Writer:  cmd.ErrOrStderr(),
		Service: "bwlife",
	})
	return nil
}

// text picks a board renderer for the command's output stream.
func (o *rootOptions) text(w io.Writer) *render.Text {
	if f, ok := w.(*os.File); ok && !o.jsonOut {
		return render.ForFile(f)
	}
	return render.NewText(false)
}

func parseBoards(args []string) ([]core.Board, error) {
	boards := make([]core.Board, 0, len(args))
	for _, a := range args {
		b, err := core.ParseBoard(a)
		if err != nil {
			return nil, fmt.Errorf("board %q: %w", a, err)
		}
		boards = append(boards, b)
	}
	return boards, nil
}
