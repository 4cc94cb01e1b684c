package subsolver

import (
	"testing"

	"github.com/lcqpow/lcqpow/kernel"
)

// TestOperatorSplittingLinearConstraint mirrors
// TestDenseActiveSetLinearConstraint but drives the ADMM backend, which only
// accepts the constraint as a row of A (not a box bound).
func TestOperatorSplittingLinearConstraint(t *testing.T) {
	Hcsc := kernel.NewCSC(2, 2, []int{0, 1, 2}, []int{0, 1}, []float64{1, 1})
	Acsc := kernel.NewCSC(1, 2, []int{0, 1, 2}, []int{0, 0}, []float64{1, 1})

	o, err := NewSparseOperatorSplitting(Hcsc, Acsc, 2, 1)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	g := []float64{-2, -2}
	lbA := []float64{ninf()}
	ubA := []float64{1}
	x0 := []float64{0, 0}
	y0 := make([]float64, o.NumDuals())

	res, err := o.Solve(true, g, lbA, ubA, x0, y0, nil, nil)
	if err != nil || !res.Success {
		t.Fatalf("solve failed: %+v, err=%v", res, err)
	}
	x := make([]float64, 2)
	y := make([]float64, o.NumDuals())
	o.GetSolution(x, y)
	approxEqual(t, x, []float64{0.5, 0.5}, 1e-4)
}

// TestOperatorSplittingRejectsBoxBounds checks that a non-trivial box bound
// is rejected rather than silently ignored.
func TestOperatorSplittingRejectsBoxBounds(t *testing.T) {
	Hcsc := kernel.NewCSC(2, 2, []int{0, 1, 2}, []int{0, 1}, []float64{1, 1})
	Acsc := kernel.NewCSC(1, 2, []int{0, 1, 2}, []int{0, 0}, []float64{1, 1})

	o, err := NewSparseOperatorSplitting(Hcsc, Acsc, 2, 1)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	g := []float64{-2, -2}
	lbA := []float64{ninf()}
	ubA := []float64{1}
	x0 := []float64{0, 0}
	y0 := make([]float64, o.NumDuals())
	lb := []float64{0, ninf()}
	ub := []float64{inf(), inf()}

	_, err = o.Solve(true, g, lbA, ubA, x0, y0, lb, ub)
	if err != ErrInvalidOSQPBoxConstraints {
		t.Fatalf("expected ErrInvalidOSQPBoxConstraints, got %v", err)
	}
}
