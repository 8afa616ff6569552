package dataset

import (
	"golang.org/x/xerrors"
)

// ErrNotFitted is returned when a scaling is used before it was fitted.
var ErrNotFitted = xerrors.New("scaling is not fitted")

/*
Scaling holds per-column min-max parameters mapping observed [min,max] onto
[0,1]. It's fitted once from the training data and must be reused unchanged
for every later transform and inverse transform.
*/
type Scaling struct {
	Min []float64
	Max []float64
}

/*
FitScaling fits an independent min-max scaling for every column of rows.
All rows must have the same width.
*/
func FitScaling(rows [][]float64) Scaling {
	if len(rows) == 0 {
		return Scaling{}
	}
	n := len(rows[0])
	s := Scaling{Min: make([]float64, n), Max: make([]float64, n)}
	for j := 0; j < n; j++ {
		s.Min[j], s.Max[j] = rows[0][j], rows[0][j]
	}
	for _, row := range rows {
		for j, x := range row {
			if x < s.Min[j] {
				s.Min[j] = x
			}
			if x > s.Max[j] {
				s.Max[j] = x
			}
		}
	}
	return s
}

// FitScalingVec fits a single-column scaling for a target vector.
func FitScalingVec(v []float64) Scaling {
	rows := make([][]float64, len(v))
	for i, x := range v {
		rows[i] = []float64{x}
	}
	return FitScaling(rows)
}

func (s Scaling) Fitted() bool { return len(s.Min) > 0 && len(s.Min) == len(s.Max) }

func (s Scaling) Columns() int { return len(s.Min) }

/*
Transform maps rows into [0,1] by the fitted parameters. A constant column
maps to 0.
*/
func (s Scaling) Transform(rows [][]float64) ([][]float64, error) {
	if !s.Fitted() {
		return nil, xerrors.Errorf("transform: %w", ErrNotFitted)
	}
	r := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != s.Columns() {
			return nil, xerrors.Errorf("transform: row has %d columns, scaling has %d: %w",
				len(row), s.Columns(), ErrNotFitted)
		}
		q := make([]float64, len(row))
		for j, x := range row {
			q[j] = (x - s.Min[j]) / s.span(j)
		}
		r[i] = q
	}
	return r, nil
}

// Inverse is the exact inverse of Transform.
func (s Scaling) Inverse(rows [][]float64) ([][]float64, error) {
	if !s.Fitted() {
		return nil, xerrors.Errorf("inverse: %w", ErrNotFitted)
	}
	r := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != s.Columns() {
			return nil, xerrors.Errorf("inverse: row has %d columns, scaling has %d: %w",
				len(row), s.Columns(), ErrNotFitted)
		}
		q := make([]float64, len(row))
		for j, x := range row {
			q[j] = x*s.span(j) + s.Min[j]
		}
		r[i] = q
	}
	return r, nil
}

// TransformVec scales a target vector with a single-column scaling.
func (s Scaling) TransformVec(v []float64) ([]float64, error) {
	if !s.Fitted() || s.Columns() != 1 {
		return nil, xerrors.Errorf("transform: %w", ErrNotFitted)
	}
	r := make([]float64, len(v))
	for i, x := range v {
		r[i] = (x - s.Min[0]) / s.span(0)
	}
	return r, nil
}

// InverseVec is the exact inverse of TransformVec.
func (s Scaling) InverseVec(v []float64) ([]float64, error) {
	if !s.Fitted() || s.Columns() != 1 {
		return nil, xerrors.Errorf("inverse: %w", ErrNotFitted)
	}
	r := make([]float64, len(v))
	for i, x := range v {
		r[i] = x*s.span(0) + s.Min[0]
	}
	return r, nil
}

func (s Scaling) span(j int) float64 {
	d := s.Max[j] - s.Min[j]
	if d == 0 {
		return 1
	}
	return d
}
