package subsolver

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func inf() float64 { return math.Inf(1) }
func ninf() float64 { return math.Inf(-1) }

func approxEqual(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Fatalf("index %d: got %v, want %v", i, got, want)
		}
	}
}

// TestDenseActiveSetUnconstrained solves min 1/2 xᵀx + gᵀx with no
// constraints at all; the minimizer is x = -g.
func TestDenseActiveSetUnconstrained(t *testing.T) {
	H := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	A := &mat.Dense{} // no constraint rows (nC = 0)
	d := NewDenseActiveSet(H, A, 2, 0)

	g := []float64{3, -4}
	lb := []float64{ninf(), ninf()}
	ub := []float64{inf(), inf()}
	x0 := []float64{0, 0}
	y0 := []float64{}

	res, err := d.Solve(true, g, nil, nil, x0, y0, lb, ub)
	if err != nil || !res.Success {
		t.Fatalf("solve failed: %+v, err=%v", res, err)
	}
	x := make([]float64, 2)
	y := make([]float64, d.NumDuals())
	d.GetSolution(x, y)
	approxEqual(t, x, []float64{-3, 4}, 1e-6)
}

// TestDenseActiveSetBoxBounds clips the unconstrained minimizer to the box.
func TestDenseActiveSetBoxBounds(t *testing.T) {
	H := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	A := &mat.Dense{} // no constraint rows (nC = 0)
	d := NewDenseActiveSet(H, A, 2, 0)

	g := []float64{3, -4}
	lb := []float64{0, 0}
	ub := []float64{10, 10}
	x0 := []float64{0, 0}
	y0 := []float64{}

	res, err := d.Solve(true, g, nil, nil, x0, y0, lb, ub)
	if err != nil || !res.Success {
		t.Fatalf("solve failed: %+v, err=%v", res, err)
	}
	x := make([]float64, 2)
	y := make([]float64, d.NumDuals())
	d.GetSolution(x, y)
	approxEqual(t, x, []float64{0, 4}, 1e-6)
}

// TestDenseActiveSetLinearConstraint exercises a binding linear inequality
// row: unconstrained minimizer [2,2] is pulled onto x0+x1<=1.
func TestDenseActiveSetLinearConstraint(t *testing.T) {
	H := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	A := mat.NewDense(1, 2, []float64{1, 1})
	d := NewDenseActiveSet(H, A, 2, 1)

	g := []float64{-2, -2}
	lbA := []float64{ninf()}
	ubA := []float64{1}
	lb := []float64{ninf(), ninf()}
	ub := []float64{inf(), inf()}
	x0 := []float64{0, 0}
	y0 := make([]float64, d.NumDuals())

	res, err := d.Solve(true, g, lbA, ubA, x0, y0, lb, ub)
	if err != nil || !res.Success {
		t.Fatalf("solve failed: %+v, err=%v", res, err)
	}
	x := make([]float64, 2)
	y := make([]float64, d.NumDuals())
	d.GetSolution(x, y)
	approxEqual(t, x, []float64{0.5, 0.5}, 1e-6)
}

// TestDenseActiveSetHotstart checks that a hotstart from a nearby solution
// after a small change in g still converges to the new optimum.
func TestDenseActiveSetHotstart(t *testing.T) {
	H := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	A := &mat.Dense{} // no constraint rows (nC = 0)
	d := NewDenseActiveSet(H, A, 2, 0)

	lb := []float64{ninf(), ninf()}
	ub := []float64{inf(), inf()}
	x0 := []float64{0, 0}
	y0 := []float64{}

	if _, err := d.Solve(true, []float64{1, 1}, nil, nil, x0, y0, lb, ub); err != nil {
		t.Fatalf("initial solve: %v", err)
	}

	res, err := d.Solve(false, []float64{2, 2}, nil, nil, nil, nil, lb, ub)
	if err != nil || !res.Success {
		t.Fatalf("hotstart solve failed: %+v, err=%v", res, err)
	}
	x := make([]float64, 2)
	y := make([]float64, d.NumDuals())
	d.GetSolution(x, y)
	approxEqual(t, x, []float64{-2, -2}, 1e-6)
}
