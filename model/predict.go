package model

import (
	"golang.org/x/xerrors"
)

/*
Predict maps raw (λ, Lq) pairs to Wq in original units using a trained
bundle. It never mutates the bundle, identical inputs always yield
identical outputs.
*/
func Predict(b *Bundle, pairs [][]float64) ([]float64, error) {
	if !b.Complete() {
		return nil, xerrors.Errorf("predict: %w", ErrNotTrained)
	}
	xs, err := b.Features.Transform(pairs)
	if err != nil {
		return nil, err
	}
	ps, err := b.Net.Predict(xs)
	if err != nil {
		return nil, err
	}
	return b.Target.InverseVec(ps)
}

/*
Evaluate predicts pairs and computes MSE/MAE/RMSE against provided ground
truth, in original units.
*/
func Evaluate(b *Bundle, pairs [][]float64, trueWq []float64) (Metrics, error) {
	if len(pairs) != len(trueWq) {
		return Metrics{}, xerrors.Errorf("evaluate: %d pairs vs %d targets", len(pairs), len(trueWq))
	}
	pred, err := Predict(b, pairs)
	if err != nil {
		return Metrics{}, err
	}
	return EvalMetrics(trueWq, pred), nil
}
