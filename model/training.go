package model

import (
	"fmt"
	"math/rand"
	"reflect"

	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"

	"go-ml.dev/pkg/wqnn/dataset"
	"go-ml.dev/pkg/wqnn/fu"
)

const (
	DefaultValidation = 0.2
	DefaultMinSamples = 10
	DefaultSeed       = 42
)

/*
Training is the train/evaluate pipeline configuration
*/
type Training struct {
	Config     Config       // regressor configuration
	Validation float64      // validation split fraction
	MinSamples int          // minimal viable sample count
	Seed       int64        // split reproducibility seed
	ModelFile  iokit.Output // file to store the trained bundle
	Verbose    interface{}  // print function func(string)
}

/*
Report is a training report
*/
type Report struct {
	Train      Metrics // metrics on the training partition, original units
	Test       Metrics // metrics on the validation partition, original units
	Iterations int     // iterations actually spent
	TrainSize  int
	TestSize   int
	Bundle     *Bundle // the fitted bundle
}

/*
Train scales the table, splits it reproducibly, fits the regressor and
reports per-partition metrics in original units. The bundle is written to
ModelFile only after a successful fit, a failed run leaves no file behind.
*/
func (t Training) Train(tbl *dataset.Table) (*Report, error) {
	minSamples := t.MinSamples
	if minSamples <= 0 {
		minSamples = DefaultMinSamples
	}
	if tbl == nil || tbl.Len() < minSamples {
		n := 0
		if tbl != nil {
			n = tbl.Len()
		}
		return nil, xerrors.Errorf("%d valid rows, want at least %d: %w", n, minSamples, ErrInsufficientData)
	}

	x, y := tbl.Features(), tbl.Targets()
	fs := dataset.FitScaling(x)
	ts := dataset.FitScalingVec(y)
	xs, err := fs.Transform(x)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	ys, err := ts.TransformVec(y)
	if err != nil {
		return nil, zorros.Trace(err)
	}

	trainIdx, testIdx := t.split(tbl.Len())
	xTrain, yTrain := pick(xs, ys, trainIdx)
	xTest, yTest := pick(xs, ys, testIdx)

	t.verbose(fmt.Sprintf("training with %d samples, validating with %d samples",
		len(trainIdx), len(testIdx)))
	lmin, lmax := fu.MinMax(tbl.Lambda)
	qmin, qmax := fu.MinMax(tbl.Lq)
	wmin, wmax := fu.MinMax(tbl.Wq)
	t.verbose(fmt.Sprintf("input ranges: lambda=[%.4f, %.4f], Lq=[%.4f, %.4f]", lmin, lmax, qmin, qmax))
	t.verbose(fmt.Sprintf("target range: Wq=[%.4f, %.4f]", wmin, wmax))

	mlp := NewMLP(t.Config)
	mlp.Verbose = t.verboseFunc()
	if err := mlp.Fit(xTrain, yTrain); err != nil {
		return nil, zorros.Wrapf(err, "training failed: %v", err.Error())
	}

	bundle := &Bundle{Net: mlp, Features: fs, Target: ts}
	report := &Report{
		Iterations: mlp.Iterations(),
		TrainSize:  len(trainIdx),
		TestSize:   len(testIdx),
		Bundle:     bundle,
	}
	if report.Train, err = partitionMetrics(bundle, xTrain, yTrain); err != nil {
		return nil, zorros.Trace(err)
	}
	if report.Test, err = partitionMetrics(bundle, xTest, yTest); err != nil {
		return nil, zorros.Trace(err)
	}

	t.verbose(fmt.Sprintf("train %v", report.Train))
	t.verbose(fmt.Sprintf("test  %v", report.Test))
	t.verbose(fmt.Sprintf("training completed in %d iterations", report.Iterations))

	if t.ModelFile != nil {
		if err := Memorize(t.ModelFile, bundle); err != nil {
			return nil, zorros.Wrapf(err, "failed to store bundle: %v", err.Error())
		}
	}
	return report, nil
}

// LuckyTrain trains and throws any occurred errors as a panic
func (t Training) LuckyTrain(tbl *dataset.Table) *Report {
	r, err := t.Train(tbl)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return r
}

// split returns reproducible train/test index partitions, the same seed and
// length always produce the same partition.
func (t Training) split(n int) (train, test []int) {
	validation := t.Validation
	if validation <= 0 || validation >= 1 {
		validation = DefaultValidation
	}
	seed := t.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	cut := int(float64(n) * validation)
	if cut < 1 {
		cut = 1
	}
	if cut >= n {
		cut = n - 1
	}
	return perm[cut:], perm[:cut]
}

// predicts a scaled partition and evaluates it in original units
func partitionMetrics(b *Bundle, xs [][]float64, ys []float64) (Metrics, error) {
	ps, err := b.Net.Predict(xs)
	if err != nil {
		return Metrics{}, err
	}
	pred, err := b.Target.InverseVec(ps)
	if err != nil {
		return Metrics{}, err
	}
	truth, err := b.Target.InverseVec(ys)
	if err != nil {
		return Metrics{}, err
	}
	return EvalMetrics(truth, pred), nil
}

func pick(xs [][]float64, ys []float64, idx []int) ([][]float64, []float64) {
	px := make([][]float64, len(idx))
	py := make([]float64, len(idx))
	for i, j := range idx {
		px[i] = xs[j]
		py[i] = ys[j]
	}
	return px, py
}

func (t Training) verbose(s string) {
	if t.Verbose != nil {
		vf := reflect.ValueOf(t.Verbose)
		vf.Call([]reflect.Value{reflect.ValueOf(s)})
	}
}

func (t Training) verboseFunc() func(string) {
	if t.Verbose == nil {
		return nil
	}
	return t.verbose
}
