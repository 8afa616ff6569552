package fu

import (
	"testing"

	"gotest.tools/assert"
)

func Test_Mean(t *testing.T) {
	assert.Equal(t, Mean([]float64{1, 2, 3, 4}), 2.5)
}

func Test_MseMae(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{1, 4, 2}
	assert.Equal(t, Mse(a, b), (0.0+4+1)/3)
	assert.Equal(t, Mae(a, b), (0.0+2+1)/3)
	assert.Equal(t, Mse(a, a), 0.0)
	assert.Equal(t, Mae(a, a), 0.0)
}

func Test_MinMax(t *testing.T) {
	min, max := MinMax([]float64{3, -1, 7, 2})
	assert.Equal(t, min, -1.0)
	assert.Equal(t, max, 7.0)
}

func Test_Flatnr(t *testing.T) {
	assert.DeepEqual(t, Flatnr([][]float64{{1, 2}, {3}, {4, 5}}), []float64{1, 2, 3, 4, 5})
}

func Test_Column(t *testing.T) {
	assert.DeepEqual(t, Column([][]float64{{1, 2}, {3, 4}}, 1), []float64{2, 4})
}
