// Command dpll reads a DIMACS CNF formula and reports SAT or UNSAT using the
// dpll package's backtracking search engine.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dronperminov/dpll"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dpll:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		heuristic   string
		dedup       bool
		subsume     bool
		seed        int64
		verbose     bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:           "dpll [flags] <input.cnf>",
		Short:         "Decide satisfiability of a DIMACS CNF formula by DPLL search.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			entry := log.WithField("run_id", uuid.New().String())

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			n, clauses, err := dpll.ParseDIMACS(f, dedup)
			if err != nil {
				return err
			}

			var reg prometheus.Registerer
			if metricsAddr != "" {
				registry := prometheus.NewRegistry()
				reg = registry
				server := &http.Server{
					Addr:    metricsAddr,
					Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
				}
				go func() {
					if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						entry.WithError(err).Warn("metrics server stopped")
					}
				}()
				defer server.Close()
			}

			result, err := dpll.Solve(context.Background(), n, clauses, dpll.Options{
				Heuristic:  heuristic,
				Seed:       seed,
				Dedup:      dedup,
				Subsume:    subsume,
				Registerer: reg,
				Tracer:     dpll.NewLogrusTracer(entry),
			})
			if err != nil {
				return err
			}

			entry.WithField("decisions", result.Decisions).
				WithField("backtracks", result.Backtracks).
				Debug("search finished")

			if !result.Satisfiable {
				fmt.Println("UNSAT")
				return nil
			}
			fmt.Println("SAT")
			for i, v := range result.Assignment {
				if i > 0 {
					fmt.Print(" ")
				}
				fmt.Print(v)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&heuristic, "heuristic", "first",
		"branching heuristic: first, random, max, moms, weighted, up, aupc")
	cmd.Flags().BoolVarP(&dedup, "dedup", "d", false, "enable duplicate-clause removal")
	cmd.Flags().BoolVarP(&subsume, "subsume", "s", false, "enable subsumption elimination")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for the random heuristic")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log decisions and propagations at debug level")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "",
		"if set, serve Prometheus metrics at this address for the duration of the solve")

	return cmd
}
