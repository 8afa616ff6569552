package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go-ml.dev/pkg/wqnn/dataset"
	"go-ml.dev/pkg/wqnn/history"
	"go-ml.dev/pkg/wqnn/model"
	"go-ml.dev/pkg/wqnn/model/hyperopt"
)

func predictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "predict <lambda> <Lq> [<lambda> <Lq> ...]",
		Short: "predict Wq for raw (lambda, Lq) pairs using the stored bundle",
		Args:  pairArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			pairs := make([][]float64, 0, len(args)/2)
			for i := 0; i < len(args); i += 2 {
				l, err := strconv.ParseFloat(args[i], 64)
				if err != nil {
					return fmt.Errorf("bad lambda %q: %v", args[i], err)
				}
				q, err := strconv.ParseFloat(args[i+1], 64)
				if err != nil {
					return fmt.Errorf("bad Lq %q: %v", args[i+1], err)
				}
				pairs = append(pairs, []float64{l, q})
			}
			bundle, err := model.Lookup(modelPath())
			if err != nil {
				return err
			}
			preds, err := model.Predict(bundle, pairs)
			if err != nil {
				return err
			}
			for i, p := range pairs {
				fmt.Printf("lambda=%g, Lq=%g -> predicted Wq = %.4f\n", p[0], p[1], preds[i])
			}
			return nil
		},
	}
}

func pairArgs(_ *cobra.Command, args []string) error {
	if len(args) == 0 || len(args)%2 != 0 {
		return fmt.Errorf("arguments must be one or more <lambda> <Lq> pairs")
	}
	return nil
}

func evaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <data.csv>",
		Short: "evaluate the stored bundle against a labeled CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			tbl, err := dataset.Load(args[0])
			if err != nil {
				return err
			}
			filtered, removed := tbl.Filter()
			bundle, err := model.Lookup(modelPath())
			if err != nil {
				return err
			}
			m, err := model.Evaluate(bundle, filtered.Features(), filtered.Targets())
			if err != nil {
				return err
			}
			fmt.Printf("%d rows (%d invalid removed)\n", filtered.Len(), removed)
			fmt.Println(m)
			return nil
		},
	}
}

func hyperoptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hyperopt",
		Short: "random-search learning rate, L2 strength and network width",
		RunE: func(cmd *cobra.Command, _ []string) error {
			trials, _ := cmd.Flags().GetInt("trials")
			tbl, err := dataset.Load(viper.GetString("data"))
			if err != nil {
				return err
			}
			filtered, _ := tbl.Filter()
			report, err := hyperopt.Space{
				Trials:     trials,
				Seed:       viper.GetInt64("train.seed"),
				Validation: viper.GetFloat64("train.validation"),
				Verbose:    func(s string) { fmt.Println(s) },
				Variance: hyperopt.Variance{
					"learning_rate": hyperopt.LogRange{1e-4, 1e-2},
					"alpha":         hyperopt.LogRange{1e-5, 1e-2},
					"width":         hyperopt.List{16, 32, 64},
					"iterations":    hyperopt.Value(viper.GetInt("train.iterations")),
				},
			}.RandomSearch(filtered)
			if err != nil {
				return err
			}
			fmt.Printf("best params: %v\nbest score: %.6f\n", report.Params, report.Score)
			fmt.Printf("train %v\ntest  %v\n", report.Best.Train, report.Best.Test)
			return nil
		},
	}
	cmd.Flags().Int("trials", 10, "count of sampled parameter sets")
	return cmd
}

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "show the most recent training runs from the ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, _ := cmd.Flags().GetInt("last")
			store, err := history.Open(viper.GetString("history"))
			if err != nil {
				return err
			}
			defer store.Close()
			rs, err := store.Last(n)
			if err != nil {
				return err
			}
			if len(rs) == 0 {
				fmt.Println("no recorded runs")
				return nil
			}
			for _, r := range rs {
				fmt.Printf("%s  samples: %d (-%d)  iters: %d  train{%v}  test{%v}\n",
					r.Started.Format("2006-01-02 15:04:05"), r.Samples, r.Removed,
					r.Iterations, r.Train, r.Test)
			}
			return nil
		},
	}
	cmd.Flags().Int("last", 10, "how many runs to show")
	return cmd
}
