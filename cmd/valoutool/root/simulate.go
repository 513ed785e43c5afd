package root

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/valouniversaire/internal/game/engine"
	"github.com/cory-johannsen/valouniversaire/internal/game/sim"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

func newSimulateCmd() *cobra.Command {
	var (
		seed      uint64
		cps       int
		maxTime   time.Duration
		runs      int
		tracePath string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play complete runs with a greedy bot and report the time to win",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1, got %d", runs)
			}
			c, err := loadCatalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, Title.Render("Simulation"))

			var won []time.Duration
			for i := 0; i < runs; i++ {
				opts := sim.Options{Catalog: c, Seed: seed + uint64(i), ClicksPerSecond: cps, MaxDuration: maxTime}
				var trace *sim.TraceWriter
				var f *os.File
				if tracePath != "" && i == 0 {
					if f, err = os.Create(tracePath); err != nil {
						return fmt.Errorf("creating trace file: %w", err)
					}
					if trace, err = sim.NewTraceWriter(f); err != nil {
						_ = f.Close()
						return err
					}
					opts.Trace = trace.Write
				}

				rep, err := sim.Run(opts)
				if trace != nil {
					if cerr := trace.Close(); cerr != nil && err == nil {
						err = cerr
					}
					if cerr := f.Close(); cerr != nil && err == nil {
						err = cerr
					}
				}
				if err != nil {
					return err
				}
				printReport(cmd, opts.Seed, rep)
				if rep.Won {
					won = append(won, rep.Duration)
				}
			}

			if runs > 1 {
				fmt.Fprintln(out, LabelValue("Won", fmt.Sprintf("%d/%d", len(won), runs)))
				if len(won) > 0 {
					sort.Slice(won, func(i, j int) bool { return won[i] < won[j] })
					fmt.Fprintln(out, LabelValue("Median time", engine.FormatDuration(won[len(won)/2])))
				}
			}
			if tracePath != "" {
				fmt.Fprintln(out, Muted.Render("trace of the first run written to "+tracePath))
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 1, "seed of the first run")
	cmd.Flags().IntVar(&cps, "cps", sim.DefaultClicksPerSecond, "bot clicks per second")
	cmd.Flags().DurationVar(&maxTime, "max", sim.DefaultMaxDuration, "give up after this much game time")
	cmd.Flags().IntVar(&runs, "runs", 1, "number of runs, with consecutive seeds")
	cmd.Flags().StringVar(&tracePath, "trace", "", "write the first run's purchases as zstd JSON lines")
	return cmd
}

func printReport(cmd *cobra.Command, seed uint64, rep sim.Report) {
	out := cmd.OutOrStdout()
	status := Good.Render("won")
	if !rep.Won {
		status = Bad.Render("gave up")
	}
	fmt.Fprintf(out, "%s seed=%d %s in %s, %d clicks\n", Key.Render("run"), seed, status,
		engine.FormatDuration(rep.Duration), rep.Clicks)

	ids := make([]tuning.PurchasableID, 0, len(rep.Purchases))
	for id := range rep.Purchases {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fmt.Fprintf(out, "  %s %d\n", Muted.Render(string(id)), rep.Purchases[id])
	}
}
