package subsolver

import (
	"testing"

	"github.com/lcqpow/lcqpow/kernel"
)

// TestSparseActiveSetMatchesDense checks that the CSC-backed backend finds
// the same solution as the dense backend for a problem with a binding
// linear constraint.
func TestSparseActiveSetMatchesDense(t *testing.T) {
	Hcsc := kernel.NewCSC(2, 2, []int{0, 1, 2}, []int{0, 1}, []float64{1, 1})
	Acsc := kernel.NewCSC(1, 2, []int{0, 1, 2}, []int{0, 0}, []float64{1, 1})

	s, err := NewSparseActiveSet(Hcsc, Acsc, 2, 1)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	g := []float64{-2, -2}
	lbA := []float64{ninf()}
	ubA := []float64{1}
	lb := []float64{ninf(), ninf()}
	ub := []float64{inf(), inf()}
	x0 := []float64{0, 0}
	y0 := make([]float64, s.NumDuals())

	res, err := s.Solve(true, g, lbA, ubA, x0, y0, lb, ub)
	if err != nil || !res.Success {
		t.Fatalf("solve failed: %+v, err=%v", res, err)
	}
	x := make([]float64, 2)
	y := make([]float64, s.NumDuals())
	s.GetSolution(x, y)
	approxEqual(t, x, []float64{0.5, 0.5}, 1e-6)
}

func TestSparseActiveSetRejectsBadIndices(t *testing.T) {
	// row index 5 is out of bounds for a 2-row matrix.
	bad := kernel.NewCSC(2, 2, []int{0, 1, 1}, []int{5}, []float64{1})
	good := kernel.NewCSC(2, 2, []int{0, 1, 2}, []int{0, 1}, []float64{1, 1})

	if _, err := NewSparseActiveSet(bad, good, 2, 2); err == nil {
		t.Fatalf("expected error constructing from malformed CSC Hessian")
	}
}
