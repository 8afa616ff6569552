package model

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"

	deep "github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"
	"golang.org/x/xerrors"
)

/*
Config is the regressor configuration surface. Zero values fall back to the
defaults below, which follow the reference queueing model.
*/
type Config struct {
	HiddenLayers       []int   // sizes of hidden layers
	LearningRate       float64 // Adam initial learning rate
	MaxIterations      int     // hard cap on training iterations
	Alpha              float64 // L2 weight decay strength
	Patience           int     // iterations without improvement before stopping
	ValidationFraction float64 // share of the fit data watched for early stopping
	Seed               int64   // weight init and shuffle seed
}

func DefaultConfig() Config {
	return Config{
		HiddenLayers:       []int{256, 128, 64},
		LearningRate:       0.001,
		MaxIterations:      1000,
		Alpha:              0.001,
		Patience:           50,
		ValidationFraction: 0.2,
		Seed:               42,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if len(c.HiddenLayers) == 0 {
		c.HiddenLayers = d.HiddenLayers
	}
	if c.LearningRate <= 0 {
		c.LearningRate = d.LearningRate
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = d.MaxIterations
	}
	if c.Alpha < 0 {
		c.Alpha = d.Alpha
	}
	if c.Patience <= 0 {
		c.Patience = d.Patience
	}
	if c.ValidationFraction <= 0 || c.ValidationFraction >= 1 {
		c.ValidationFraction = d.ValidationFraction
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	return c
}

/*
MLP is the shipped Regressor backend, a rectified-linear feed-forward
network delegating gradient computation to the go-deep trainer. Early
stopping and L2 weight decay are orchestrated here around the collaborator,
one iteration at a time.
*/
type MLP struct {
	Config  Config
	Verbose func(string)

	n     *deep.Neural
	iters int
}

func NewMLP(cfg Config) *MLP {
	return &MLP{Config: cfg.withDefaults()}
}

// Iterations returns how many training iterations the last Fit spent.
func (m *MLP) Iterations() int { return m.iters }

func (m *MLP) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return xerrors.Errorf("fit: %d feature rows vs %d targets: %w", len(x), len(y), ErrInsufficientData)
	}
	cfg := m.Config.withDefaults()

	// go-deep draws initial weights from the global source
	rand.Seed(cfg.Seed)
	m.n = deep.NewNeural(&deep.Config{
		Inputs:     len(x[0]),
		Layout:     append(append([]int{}, cfg.HiddenLayers...), 1),
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeRegression,
		Weight:     deep.NewNormal(0.5, 0.1),
		Bias:       true,
	})

	examples := make(training.Examples, len(x))
	for i := range x {
		examples[i] = training.Example{Input: x[i], Response: []float64{y[i]}}
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	rng.Shuffle(len(examples), func(i, j int) {
		examples[i], examples[j] = examples[j], examples[i]
	})
	nval := int(float64(len(examples)) * cfg.ValidationFraction)
	watch, train := examples[:nval], examples[nval:]
	if len(train) == 0 {
		train, watch = examples, nil
	}
	if len(watch) == 0 {
		// nothing to hold out, watch the training loss instead
		watch = train
	}

	trainer := training.NewTrainer(training.NewAdam(cfg.LearningRate, 0, 0, 0), 0)

	best := math.Inf(1)
	var bestDump *deep.Dump
	wait := 0
	m.iters = 0
	for i := 0; i < cfg.MaxIterations; i++ {
		trainer.Train(m.n, train, nil, 1)
		if cfg.Alpha > 0 {
			m.decayWeights(cfg.LearningRate * cfg.Alpha)
		}
		m.iters = i + 1
		loss := m.watchLoss(watch)
		if m.Verbose != nil && (i%50 == 0 || i == cfg.MaxIterations-1) {
			m.Verbose(fmt.Sprintf("[%4d] watch loss: %.6f", i, loss))
		}
		if loss < best {
			best = loss
			bestDump = m.n.Dump()
			wait = 0
		} else {
			wait++
			if wait >= cfg.Patience {
				break
			}
		}
	}
	if bestDump != nil {
		m.n = deep.FromDump(bestDump)
	}
	return nil
}

func (m *MLP) Predict(x [][]float64) ([]float64, error) {
	if m.n == nil {
		return nil, xerrors.Errorf("predict: %w", ErrNotTrained)
	}
	r := make([]float64, len(x))
	for i, row := range x {
		r[i] = m.n.Predict(row)[0]
	}
	return r, nil
}

// plain L2 weight decay applied after each iteration
func (m *MLP) decayWeights(rate float64) {
	for _, l := range m.n.Layers {
		for _, neuron := range l.Neurons {
			for _, syn := range neuron.In {
				syn.Weight -= rate * syn.Weight
			}
		}
	}
}

func (m *MLP) watchLoss(watch training.Examples) float64 {
	var c float64
	for _, e := range watch {
		q := m.n.Predict(e.Input)[0] - e.Response[0]
		c += q * q
	}
	return c / float64(len(watch))
}

// MarshalBinary dumps the network weights and topology as JSON.
func (m *MLP) MarshalBinary() ([]byte, error) {
	if m.n == nil {
		return nil, xerrors.Errorf("marshal: %w", ErrNotTrained)
	}
	return json.Marshal(m.n.Dump())
}

// UnmarshalBinary restores a network dumped by MarshalBinary.
func (m *MLP) UnmarshalBinary(data []byte) error {
	var d deep.Dump
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	m.n = deep.FromDump(&d)
	return nil
}
