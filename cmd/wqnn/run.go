package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros/zlog"

	"go-ml.dev/pkg/wqnn/dataset"
	"go-ml.dev/pkg/wqnn/fu"
	"go-ml.dev/pkg/wqnn/history"
	"go-ml.dev/pkg/wqnn/model"
	"go-ml.dev/pkg/wqnn/plots"
)

// fixed probe inputs predicted at the end of every training run
var testCases = [][]float64{
	{0.5, 10},
	{1.0, 5},
	{2.0, 8},
	{0.1, 2},
	{0.8, 16},
}

func trainConfig() model.Config {
	return model.Config{
		HiddenLayers:  viper.GetIntSlice("train.hidden"),
		LearningRate:  viper.GetFloat64("train.learning_rate"),
		Alpha:         viper.GetFloat64("train.alpha"),
		MaxIterations: viper.GetInt("train.iterations"),
		Patience:      viper.GetInt("train.patience"),
		Seed:          viper.GetInt64("train.seed"),
	}
}

func modelPath() string {
	return fu.ModelPath(viper.GetString("model"))
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	started := time.Now()

	tbl, err := dataset.Load(viper.GetString("data"))
	if err != nil {
		return err
	}
	filtered, removed := tbl.Filter()
	fmt.Printf("loaded %d rows, removed %d invalid\n", tbl.Len(), removed)

	report, err := model.Training{
		Config:     trainConfig(),
		Validation: viper.GetFloat64("train.validation"),
		Seed:       viper.GetInt64("train.seed"),
		ModelFile:  iokit.File(modelPath()),
		Verbose:    func(s string) { fmt.Println(s) },
	}.Train(filtered)
	if err != nil {
		return err
	}
	fmt.Printf("model saved to %s\n", modelPath())

	recordRun(started, filtered.Len(), removed, report)
	renderPlots(filtered, report.Bundle)

	fmt.Println("\ntest predictions:")
	preds, err := model.Predict(report.Bundle, testCases)
	if err != nil {
		return err
	}
	for i, tc := range testCases {
		fmt.Printf("  lambda=%.1f, Lq=%.0f -> predicted Wq = %.4f\n", tc[0], tc[1], preds[i])
	}
	return nil
}

// best effort, a broken ledger never fails the run
func recordRun(started time.Time, samples, removed int, report *model.Report) {
	path := viper.GetString("history")
	if path == "" {
		return
	}
	store, err := history.Open(path)
	if err != nil {
		zlog.Warning(fmt.Sprintf("run history unavailable: %v", err))
		return
	}
	defer store.Close()
	err = store.Append(history.RunRecord{
		Started:    started,
		Samples:    samples,
		Removed:    removed,
		TrainSize:  report.TrainSize,
		TestSize:   report.TestSize,
		Iterations: report.Iterations,
		Train:      report.Train,
		Test:       report.Test,
	})
	if err != nil {
		zlog.Warning(fmt.Sprintf("cannot record run: %v", err))
	}
}

// best effort, plotting failures never affect the pipeline state
func renderPlots(tbl *dataset.Table, b *model.Bundle) {
	if viper.GetBool("no-plots") {
		return
	}
	dir := viper.GetString("plots-dir")
	if err := ensureDir(dir); err != nil {
		zlog.Warning(fmt.Sprintf("cannot create plots dir: %v", err))
		return
	}
	pred, err := model.Predict(b, tbl.Features())
	if err != nil {
		zlog.Warning(fmt.Sprintf("cannot predict for plots: %v", err))
		return
	}
	for _, p := range []struct {
		err  error
		name string
	}{
		{plots.ActualVsPredicted(tbl.Wq, pred, filepath.Join(dir, "actual_vs_predicted.png")), "actual vs predicted"},
		{plots.Against(tbl.Lambda, tbl.Wq, pred, "Lambda", filepath.Join(dir, "wq_vs_lambda.png")), "Wq vs lambda"},
		{plots.Against(tbl.Lq, tbl.Wq, pred, "Lq", filepath.Join(dir, "wq_vs_lq.png")), "Wq vs Lq"},
		{plots.Against(tbl.Rho, tbl.Wq, pred, "Rho", filepath.Join(dir, "wq_vs_rho.png")), "Wq vs rho"},
	} {
		if p.err != nil {
			zlog.Warning(fmt.Sprintf("plot %s failed: %v", p.name, p.err))
		}
	}
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
