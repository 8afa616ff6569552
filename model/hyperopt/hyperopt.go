/*
Package hyperopt implements random-search hyper-parameter optimization for
the Wq regression trainer. Every trial samples a parameter set from the
variance space, trains a model on the same table with the same seed and
keeps the best-scoring report.
*/
package hyperopt

import (
	"fmt"
	"math"
	"math/rand"

	"go-ml.dev/pkg/zorros"

	"go-ml.dev/pkg/wqnn/dataset"
	"go-ml.dev/pkg/wqnn/model"
)

/*
Range is an open float range specified by min and max values (min,max)
*/
type Range [2]float64

/*
LogRange is an open float logarithmic range specified by min and max values (min,max)
*/
type LogRange [2]float64

/*
IntRange is a closed integer range specified by min and max values [min,max]
*/
type IntRange [2]int

/*
List is a list of possible parameter values
*/
type List []float64

/*
Value is a single value parameter
*/
type Value float64

// type limitation interface
type distribution interface {
	sample(*rand.Rand) float64
}

func (r Range) sample(rng *rand.Rand) float64 {
	return r[0] + rng.Float64()*(r[1]-r[0])
}

func (r LogRange) sample(rng *rand.Rand) float64 {
	lo, hi := math.Log(r[0]), math.Log(r[1])
	return math.Exp(lo + rng.Float64()*(hi-lo))
}

func (r IntRange) sample(rng *rand.Rand) float64 {
	return float64(r[0] + rng.Intn(r[1]-r[0]+1))
}

func (l List) sample(rng *rand.Rand) float64 {
	return l[rng.Intn(len(l))]
}

func (v Value) sample(*rand.Rand) float64 { return float64(v) }

/*
Variance is a space of hyper-parameters used in *Search functions
*/
type Variance map[string]distribution

/*
Report is a result of hyper-parameter optimization
*/
type Report struct {
	model.Params
	Score float64
	Best  *model.Report
}

/*
Space is a definition of the hyper-parameter optimization space
*/
type Space struct {
	Trials     int         // count of sampled parameter sets
	Seed       int64       // sampling and split seed
	Validation float64     // validation split fraction per trial
	Score      model.Score // function to calculate score of train/test metrics
	Verbose    func(string)

	// the model configuration function
	ModelFunc func(model.Params) model.Config

	// hyper-parameters variance
	Variance Variance
}

/*
RandomSearch samples Trials parameter sets and returns the best one by
Score together with its training report.
*/
func (s Space) RandomSearch(tbl *dataset.Table) (*Report, error) {
	if len(s.Variance) == 0 {
		return nil, zorros.Errorf("empty hyper-parameter variance")
	}
	trials := s.Trials
	if trials <= 0 {
		trials = 10
	}
	score := s.Score
	if score == nil {
		score = model.ValidationScore
	}
	modelFunc := s.ModelFunc
	if modelFunc == nil {
		modelFunc = DefaultModelFunc
	}

	rng := rand.New(rand.NewSource(s.Seed + 1))
	best := &Report{Score: math.Inf(-1)}
	for i := 0; i < trials; i++ {
		params := model.Params{}
		for name, d := range s.Variance {
			params[name] = d.sample(rng)
		}
		r, err := model.Training{
			Config:     modelFunc(params),
			Validation: s.Validation,
			Seed:       s.Seed,
		}.Train(tbl)
		if err != nil {
			return nil, zorros.Wrapf(err, "trial %d failed: %v", i, err.Error())
		}
		trialScore := score(r.Train, r.Test)
		if s.Verbose != nil {
			s.Verbose(fmt.Sprintf("[%2d] %v score: %.6f", i, params, trialScore))
		}
		if trialScore > best.Score {
			best.Params = params
			best.Score = trialScore
			best.Best = r
		}
	}
	return best, nil
}

// LuckyRandomSearch searches and throws any occurred errors as a panic
func (s Space) LuckyRandomSearch(tbl *dataset.Table) *Report {
	r, err := s.RandomSearch(tbl)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return r
}

/*
DefaultModelFunc maps the conventional parameter names onto a regressor
configuration, missing names keep their configured defaults.
*/
func DefaultModelFunc(p model.Params) model.Config {
	d := model.DefaultConfig()
	cfg := model.Config{
		LearningRate:  p.Get("learning_rate", d.LearningRate),
		Alpha:         p.Get("alpha", d.Alpha),
		MaxIterations: int(p.Get("iterations", float64(d.MaxIterations))),
		Patience:      int(p.Get("patience", float64(d.Patience))),
	}
	if width := int(p.Get("width", 0)); width > 0 {
		cfg.HiddenLayers = []int{width * 4, width * 2, width}
	}
	return cfg
}
