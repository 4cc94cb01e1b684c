package subsolver

import "gonum.org/v1/gonum/mat"

// DenseActiveSet is the dense, box-bound-aware active-set backend
// (QPOASES_DENSE). It is constructed once from a fixed Hessian H and
// composite constraint matrix Ã; every Solve call only updates the linear
// term, bounds, and (on the first call) the initial guess — the penalty
// term never enters the subproblem's Hessian, only its linearized gradient
// contribution to g (see original_source LCQProblem::setQk vs.
// solveQPSubproblem).
type DenseActiveSet struct {
	nV, nC int // nV variables, nC composite constraint rows (Ã has nC rows)
	inner  *activeSetSolver
	level  PrintLevel
}

// NewDenseActiveSet constructs a dense active-set backend for a Hessian H
// (nV x nV) and composite constraint matrix A (nC x nV). Box bounds are
// handled by prepending an identity block to the constraint matrix, giving
// the dual layout [box (nV) | linear (nC)] spec.md §4.2 requires.
func NewDenseActiveSet(H, A *mat.Dense, nV, nC int) *DenseActiveSet {
	m := nV + nC
	C := mat.NewDense(m, nV, nil)
	for i := 0; i < nV; i++ {
		C.Set(i, i, 1)
	}
	for i := 0; i < nC; i++ {
		for j := 0; j < nV; j++ {
			C.Set(nV+i, j, A.At(i, j))
		}
	}
	return &DenseActiveSet{
		nV: nV, nC: nC,
		inner: newActiveSetSolver(H, C, nV, m),
	}
}

func (d *DenseActiveSet) SetPrintLevel(level PrintLevel) { d.level = level }

func (d *DenseActiveSet) Solve(initial bool, g, lbA, ubA, x0, y0, lb, ub []float64) (Result, error) {
	lbC := make([]float64, d.nV+d.nC)
	ubC := make([]float64, d.nV+d.nC)
	copy(lbC, lb)
	copy(ubC, ub)
	copy(lbC[d.nV:], lbA)
	copy(ubC[d.nV:], ubA)

	start := x0
	if initial {
		start = x0
	} else {
		start = d.inner.x
	}

	iters, ok := d.inner.solve(g, lbC, ubC, start, !initial)
	if !ok {
		return Result{Success: false, Iter: iters, ExitFlag: 1, Err: ErrSubproblemSolverError}, ErrSubproblemSolverError
	}
	return Result{Success: true, Iter: iters}, nil
}

func (d *DenseActiveSet) GetSolution(x, y []float64) {
	copy(x, d.inner.x)
	copy(y, d.inner.y)
}

func (d *DenseActiveSet) NumDuals() int { return d.nV + d.nC }
