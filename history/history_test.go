package history_test

import (
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/assert"

	"go-ml.dev/pkg/wqnn/history"
	"go-ml.dev/pkg/wqnn/model"
)

func Test_AppendAndLast(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "runs.db"))
	assert.NilError(t, err)
	defer store.Close()

	first := history.RunRecord{
		Started:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Samples:    100,
		Removed:    3,
		TrainSize:  80,
		TestSize:   20,
		Iterations: 120,
		Train:      model.Metrics{MSE: 0.01, MAE: 0.05, RMSE: 0.1},
		Test:       model.Metrics{MSE: 0.02, MAE: 0.07, RMSE: 0.14},
	}
	second := first
	second.Started = first.Started.Add(time.Hour)
	second.Iterations = 90

	assert.NilError(t, store.Append(first))
	assert.NilError(t, store.Append(second))

	rs, err := store.Last(10)
	assert.NilError(t, err)
	assert.Equal(t, len(rs), 2)
	// newest first
	assert.Equal(t, rs[0].Iterations, 90)
	assert.Equal(t, rs[1].Iterations, 120)
	assert.Equal(t, rs[1].Samples, 100)
	assert.Equal(t, rs[1].Train.MSE, 0.01)
	assert.Equal(t, rs[1].Test.RMSE, 0.14)

	rs, err = store.Last(1)
	assert.NilError(t, err)
	assert.Equal(t, len(rs), 1)
}

func Test_EmptyLedger(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "runs.db"))
	assert.NilError(t, err)
	defer store.Close()

	rs, err := store.Last(5)
	assert.NilError(t, err)
	assert.Equal(t, len(rs), 0)
}
