package fu

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

func Mean(a []float64) float64 {
	var c float64
	for _, x := range a {
		c += x
	}
	return c / float64(len(a))
}

func Mse(a, b []float64) float64 {
	var c float64
	for i, x := range a {
		q := x - b[i]
		c += q * q
	}
	return c / float64(len(a))
}

func Mae(a, b []float64) float64 {
	var c float64
	for i, x := range a {
		c += math.Abs(x - b[i])
	}
	return c / float64(len(a))
}

func MinMax(a []float64) (min, max float64) {
	if len(a) == 0 {
		return math.Inf(1), math.Inf(-1)
	}
	return floats.Min(a), floats.Max(a)
}

func Flatnr(a [][]float64) []float64 {
	n := 0
	for _, x := range a {
		n += len(x)
	}
	r := make([]float64, n)
	i := 0
	for _, x := range a {
		copy(r[i:i+len(x)], x)
		i += len(x)
	}
	return r
}

func Column(a [][]float64, j int) []float64 {
	r := make([]float64, len(a))
	for i, x := range a {
		r[i] = x[j]
	}
	return r
}
