package hyperopt_test

import (
	"testing"

	"gotest.tools/assert"

	"go-ml.dev/pkg/wqnn/dataset"
	"go-ml.dev/pkg/wqnn/model"
	"go-ml.dev/pkg/wqnn/model/hyperopt"
)

func synthTable(n int) *dataset.Table {
	t := &dataset.Table{}
	for i := 0; i < n; i++ {
		lambda := 0.1 + 0.05*float64(i)
		lq := 1.0 + 0.5*float64(i%20)
		t.Lambda = append(t.Lambda, lambda)
		t.Lq = append(t.Lq, lq)
		t.Rho = append(t.Rho, lambda/2)
		t.Wq = append(t.Wq, 0.2*lq+0.1*lambda)
	}
	return t
}

func Test_RandomSearch(t *testing.T) {
	report, err := hyperopt.Space{
		Trials: 3,
		Seed:   7,
		Variance: hyperopt.Variance{
			"learning_rate": hyperopt.LogRange{1e-3, 1e-2},
			"width":         hyperopt.List{2, 4},
			"iterations":    hyperopt.Value(20),
			"patience":      hyperopt.Value(10),
		},
	}.RandomSearch(synthTable(40))
	assert.NilError(t, err)
	assert.Assert(t, report.Best != nil)
	assert.Assert(t, report.Best.Train.Finite())
	assert.Assert(t, report.Best.Test.Finite())
	assert.Assert(t, report.Params["learning_rate"] >= 1e-3)
	assert.Assert(t, report.Params["learning_rate"] <= 1e-2)
	w := report.Params["width"]
	assert.Assert(t, w == 2 || w == 4)
}

func Test_RandomSearchEmptyVariance(t *testing.T) {
	_, err := hyperopt.Space{Trials: 1}.RandomSearch(synthTable(40))
	assert.Assert(t, err != nil)
}

func Test_DefaultModelFunc(t *testing.T) {
	cfg := hyperopt.DefaultModelFunc(model.Params{"learning_rate": 0.005, "width": 16})
	assert.Equal(t, cfg.LearningRate, 0.005)
	assert.DeepEqual(t, cfg.HiddenLayers, []int{64, 32, 16})

	d := model.DefaultConfig()
	cfg = hyperopt.DefaultModelFunc(model.Params{})
	assert.Equal(t, cfg.LearningRate, d.LearningRate)
	assert.Equal(t, len(cfg.HiddenLayers), 0)
}
