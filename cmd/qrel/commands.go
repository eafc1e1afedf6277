package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/qrel"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("QREL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "qrel",
		Short:         "Estimate k-out-of-n system reliability from a sampled threshold network",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newEvaluateCmd(v))
	return rootCmd
}

func newEvaluateCmd(v *viper.Viper) *cobra.Command {
	var (
		configFile string
		probs      []float64
		k          int
		showQASM   bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run the sampling evaluation and print the report as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				v.SetConfigFile(configFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("reading config %s: %w", configFile, err)
				}
			}

			cfg, err := qrel.LoadConfig(v)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if showQASM {
				if err := printQASM(out, probs, k, cfg.Construction); err != nil {
					return err
				}
			}

			ev := qrel.NewEvaluator(nil)
			ev.Out = cmd.ErrOrStderr()

			report, err := ev.Evaluate(cmd.Context(), probs, k, cfg)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "YAML/JSON/TOML config file")
	flags.Float64SliceVar(&probs, "p", nil, "component success probabilities, comma separated")
	flags.IntVar(&k, "k", 0, "minimum number of working components")
	flags.BoolVar(&showQASM, "qasm", false, "print the network as OpenQASM 2.0 before evaluating")

	flags.Int("simulations", qrel.DefaultSimulations, "independent repetitions")
	flags.Int("shots", qrel.DefaultShots, "shots per repetition")
	flags.Float64("confidence", qrel.DefaultConfidence, "confidence level of the interval")
	flags.String("interval", qrel.IntervalNormal.String(), "interval method: normal or student-t")
	flags.String("construction", qrel.ConstructionCombination.String(), "network construction: combination or pattern")
	flags.Int("workers", 1, "repetitions sampled concurrently")
	flags.Uint64("seed", 0, "simulator seed, 0 for random")
	flags.Bool("render", true, "draw the network to stderr")

	for _, name := range []string{"simulations", "shots", "confidence", "interval", "construction", "workers", "seed", "render"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	_ = cmd.MarkFlagRequired("p")
	_ = cmd.MarkFlagRequired("k")

	return cmd
}

func printQASM(w io.Writer, probs []float64, k int, construction qrel.Construction) error {
	sys, err := qrel.NewSystem(probs, k)
	if err != nil {
		return err
	}

	net, err := qrel.BuildNetwork(sys, construction)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, qrel.QASM(net))
	return err
}
