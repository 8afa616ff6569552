package model

import (
	"reflect"

	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"

	"go-ml.dev/pkg/wqnn/dataset"
)

// ErrNotTrained is returned when a prediction is attempted on an
// incomplete bundle.
var ErrNotTrained = xerrors.New("model is not trained")

// ErrInsufficientData is returned when too few valid rows remain to train on.
var ErrInsufficientData = xerrors.New("not enough samples to train")

/*
Regressor is a trainable function approximator. Fit learns from scaled
features and targets, Predict maps scaled features to scaled targets.
Any conforming implementation can back the training pipeline.
*/
type Regressor interface {
	Fit(x [][]float64, y []float64) error
	Predict(x [][]float64) ([]float64, error)
}

/*
Iterator is implemented by regressors reporting how many training
iterations were actually spent.
*/
type Iterator interface {
	Iterations() int
}

/*
Bundle is a trained model together with the scalings it was trained with.
The three parts are co-dependent and only ever travel as one unit, a model
paired with alien scalings predicts garbage.
*/
type Bundle struct {
	Net      Regressor
	Features dataset.Scaling
	Target   dataset.Scaling
}

// Complete reports whether the bundle carries everything prediction needs.
func (b *Bundle) Complete() bool {
	return b != nil && b.Net != nil && b.Features.Fitted() && b.Target.Fitted()
}

/*
Score compares train/test metrics of two candidate models, bigger is better.
Used by hyper-parameter search to rank trials.
*/
type Score func(train, test Metrics) float64

// ValidationScore ranks models by validation MSE alone.
func ValidationScore(_, test Metrics) float64 { return -test.MSE }

/*
Params is a set of hyper-parameters used by hyper-parameter optimization to
generate new model configurations
*/
type Params map[string]float64

/*
Get value of the parameter by name if exists and dflt value otherwise
*/
func (p Params) Get(name string, dflt float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return dflt
}

func (p Params) Apply(m map[string]reflect.Value) {
	for k, v := range p {
		ref, ok := m[k]
		if !ok {
			panic(zorros.Panic(zorros.Errorf("model does not have field `%v`", k)))
		}
		ref.Elem().Set(reflect.ValueOf(v).Convert(ref.Type().Elem()))
	}
}
