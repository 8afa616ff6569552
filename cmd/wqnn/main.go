/*
wqnn fits a feed-forward regression model predicting the expected queueing
wait time Wq from the arrival rate λ and the expected queue length Lq.

Running without arguments loads dataset.csv, trains, stores the model
bundle, renders diagnostic plots and prints predictions for a fixed set of
test inputs.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wqnn",
		Short:         "train and query the Wq wait-time regression model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd)
		},
		RunE: runPipeline,
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default wqnn.yaml in . or $WQNN_CFG_PATH)")
	pf.String("model", "wq_model.zip", "model bundle file, relative names go to the models cache")
	pf.String("data", "dataset.csv", "input CSV file (may be .xz compressed)")
	pf.String("plots-dir", "plots", "directory for diagnostic plots")
	pf.Bool("no-plots", false, "skip diagnostic plots")
	pf.String("history", "wqnn_runs.db", "sqlite run-history file, empty disables the ledger")

	cmd.AddCommand(predictCmd(), evaluateCmd(), hyperoptCmd(), runsCmd())
	return cmd
}

// viper resolves precedence: flags, then WQNN_* environment, then the
// optional yaml config, then defaults.
func initConfig(cmd *cobra.Command) error {
	viper.SetEnvPrefix("wqnn")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	for _, name := range []string{"model", "data", "plots-dir", "no-plots", "history"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := viper.BindPFlag(name, f); err != nil {
				return err
			}
		}
	}

	viper.SetDefault("train.learning_rate", 0.001)
	viper.SetDefault("train.alpha", 0.001)
	viper.SetDefault("train.iterations", 1000)
	viper.SetDefault("train.patience", 50)
	viper.SetDefault("train.validation", 0.2)
	viper.SetDefault("train.seed", 42)
	viper.SetDefault("train.hidden", []int{256, 128, 64})

	altPath := os.Getenv("WQNN_CFG_PATH")
	if altPath == "" {
		altPath = "."
	}
	viper.AddConfigPath(altPath)
	viper.SetConfigName("wqnn")
	if cfg, _ := cmd.Flags().GetString("config"); cfg != "" {
		viper.SetConfigFile(cfg)
	}
	if err := viper.ReadInConfig(); err != nil {
		if cfg, _ := cmd.Flags().GetString("config"); cfg != "" {
			// an explicitly named config file must exist and parse
			return err
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}
