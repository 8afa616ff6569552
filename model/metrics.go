package model

import (
	"fmt"
	"math"

	"go-ml.dev/pkg/wqnn/fu"
)

/*
Metrics are regression accuracy metrics computed in original (unscaled)
units.
*/
type Metrics struct {
	MSE  float64
	MAE  float64
	RMSE float64
}

// EvalMetrics computes MSE/MAE/RMSE of predictions against ground truth.
func EvalMetrics(truth, pred []float64) Metrics {
	mse := fu.Mse(truth, pred)
	return Metrics{
		MSE:  mse,
		MAE:  fu.Mae(truth, pred),
		RMSE: math.Sqrt(mse),
	}
}

// Finite reports whether all metric values are finite and non-negative.
func (m Metrics) Finite() bool {
	for _, v := range []float64{m.MSE, m.MAE, m.RMSE} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}

func (m Metrics) String() string {
	return fmt.Sprintf("mse: %.6f, mae: %.6f, rmse: %.6f", m.MSE, m.MAE, m.RMSE)
}
