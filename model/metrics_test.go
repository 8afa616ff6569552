package model_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
	"gotest.tools/assert"

	"go-ml.dev/pkg/wqnn/model"
)

func Test_PerfectPredictionsZeroMetrics(t *testing.T) {
	y := []float64{1, 2, 3, 4, 5}
	m := model.EvalMetrics(y, y)
	assert.Equal(t, m.MSE, 0.0)
	assert.Equal(t, m.MAE, 0.0)
	assert.Equal(t, m.RMSE, 0.0)
	assert.Assert(t, m.Finite())
}

func Test_MetricsRmseIsSqrtMse(t *testing.T) {
	truth := []float64{1, 2, 3, 4}
	pred := []float64{1.5, 2.5, 2.5, 3.5}
	m := model.EvalMetrics(truth, pred)
	assert.Equal(t, m.RMSE, math.Sqrt(m.MSE))
	assert.Assert(t, m.Finite())
}

// a constant predictor at the mean of y has MSE equal to the population
// variance of y
func Test_ConstantMeanPredictorMatchesVariance(t *testing.T) {
	y := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mean := stat.Mean(y, nil)
	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = mean
	}
	m := model.EvalMetrics(y, pred)
	n := float64(len(y))
	popVar := stat.Variance(y, nil) * (n - 1) / n
	assert.Assert(t, math.Abs(m.MSE-popVar) < 1e-12)
}

func Test_MetricsFinite(t *testing.T) {
	m := model.Metrics{MSE: math.NaN(), MAE: 0, RMSE: 0}
	assert.Assert(t, !m.Finite())
	m = model.Metrics{MSE: 1, MAE: -1, RMSE: 1}
	assert.Assert(t, !m.Finite())
}
