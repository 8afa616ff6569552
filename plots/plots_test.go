package plots_test

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"

	"go-ml.dev/pkg/wqnn/plots"
)

func Test_ActualVsPredicted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avp.png")
	actual := []float64{1, 2, 3, 4, 5}
	predicted := []float64{1.1, 1.9, 3.2, 3.8, 5.1}
	assert.NilError(t, plots.ActualVsPredicted(actual, predicted, path))

	fi, err := os.Stat(path)
	assert.NilError(t, err)
	assert.Assert(t, fi.Size() > 0)
}

func Test_Against(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wq_vs_lambda.png")
	x := []float64{0.1, 0.5, 1.0, 2.0}
	actual := []float64{0.2, 1.0, 2.0, 4.1}
	predicted := []float64{0.25, 0.9, 2.1, 3.9}
	assert.NilError(t, plots.Against(x, actual, predicted, "Lambda", path))

	fi, err := os.Stat(path)
	assert.NilError(t, err)
	assert.Assert(t, fi.Size() > 0)
}
