package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bwlife/internal/core"
	"bwlife/internal/stats"
	"bwlife/pkg/bwlife"
)

func newStepCmd(opts *rootOptions) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "step BOARD",
		Short: "Advance a board by N generations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 0 {
				return fmt.Errorf("-n must be non-negative, got %d", n)
			}
			boards, err := parseBoards(args)
			if err != nil {
				return err
			}
			eng, err := bwlife.New(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			b := eng.StepN(boards[0], n)
			if opts.jsonOut {
				return json.NewEncoder(out).Encode(struct {
					Start       core.Board `json:"start"`
					Generations int        `json:"generations"`
					End         core.Board `json:"end"`
				}{boards[0], n, b})
			}
			fmt.Fprintln(out, opts.text(out).Titled(fmt.Sprintf("%s after %d", b.Hex(), n), b))
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "generations", "n", 1, "number of generations")
	return cmd
}

func newClassifyCmd(opts *rootOptions) *cobra.Command {
	var showEnd bool
	cmd := &cobra.Command{
		Use:   "classify BOARD...",
		Short: "Run boards forward until they repeat and report how each orbit ends",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := parseBoards(args)
			if err != nil {
				return err
			}
			eng, err := bwlife.New(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			text := opts.text(out)
			var failed int
			for _, b := range boards {
				rec, err := eng.Classify(b)
				if err != nil {
					// a failed trial does not stop the others
					opts.logger.Warn("classification failed", "start", b.Hex(), "err", err)
					failed++
					continue
				}
				if opts.jsonOut {
					if err := enc.Encode(rec); err != nil {
						return err
					}
					continue
				}
				writeRecord(out, rec)
				if showEnd {
					fmt.Fprintln(out, text.Board(rec.End))
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d boards could not be classified", failed, len(boards))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showEnd, "show-end", false, "draw the first repeated board")
	return cmd
}

func writeRecord(w io.Writer, rec bwlife.Record) {
	fmt.Fprintf(w, "%s %-5s t=%d p=%d end=%s\n",
		rec.Start.Hex(), rec.Class, rec.Transient, rec.Period, rec.End.Hex())
}

func newPredsCmd(opts *rootOptions) *cobra.Command {
	var (
		generations int
		show        int
	)
	cmd := &cobra.Command{
		Use:   "preds BOARD",
		Short: "List every board that steps to BOARD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if generations < 1 {
				return fmt.Errorf("--generations must be at least 1, got %d", generations)
			}
			boards, err := parseBoards(args)
			if err != nil {
				return err
			}
			eng, err := bwlife.New(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			preds, err := eng.Ancestors(boards[0], generations)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return json.NewEncoder(out).Encode(struct {
					Target      core.Board   `json:"target"`
					Generations int          `json:"generations"`
					Count       int          `json:"count"`
					Boards      []core.Board `json:"boards"`
				}{boards[0], generations, len(preds), preds})
			}
			fmt.Fprintf(out, "%s: %d boards %d generation(s) back\n", boards[0].Hex(), len(preds), generations)
			if len(preds) == 0 {
				return nil
			}
			shown := preds
			if show >= 0 && len(shown) > show {
				shown = shown[:show]
			}
			text := opts.text(out)
			if text.Color() {
				fmt.Fprintln(out, text.Row(shown, 4))
			} else {
				for _, p := range shown {
					fmt.Fprintln(out, p.Hex())
				}
			}
			if len(shown) < len(preds) {
				fmt.Fprintf(out, "... %d more\n", len(preds)-len(shown))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&generations, "generations", 1, "how many generations to go back")
	cmd.Flags().IntVar(&show, "show", 16, "print at most this many boards (-1 for all)")
	return cmd
}

func newAdvanceCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "advance BOARD...",
		Short: "Print the union of the predecessors of every BOARD, one per line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := parseBoards(args)
			if err != nil {
				return err
			}
			eng, err := bwlife.New(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			preds, err := eng.AdvancePredecessors(boards)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOut {
				if preds == nil {
					preds = []bwlife.Board{}
				}
				return json.NewEncoder(out).Encode(preds)
			}
			for _, p := range preds {
				fmt.Fprintln(out, p.Hex())
			}
			opts.logger.Info("advanced", "boards", len(boards), "predecessors", len(preds))
			return nil
		},
	}
}

func newRulesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the named rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			names := core.RuleNames()
			if opts.jsonOut {
				m := make(map[string]string, len(names))
				for _, n := range names {
					m[n] = core.Rules[n].String()
				}
				return json.NewEncoder(out).Encode(m)
			}
			rows := make([][]string, 0, len(names))
			for _, n := range names {
				r := core.Rules[n]
				fits := "all"
				if !r.Fits(core.VonNeumann) {
					fits = "moore"
				}
				rows = append(rows, []string{n, r.String(), fits})
			}
			stats.WriteTable(out, []string{"name", "rule", "neighborhoods"}, rows, nil)
			return nil
		},
	}
}
