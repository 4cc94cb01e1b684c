package subsolver

import (
	"math"

	"github.com/lcqpow/lcqpow/kernel"
	"gonum.org/v1/gonum/mat"
)

// admmSigma is the fixed ADMM penalty parameter. The reference OSQP
// algorithm adapts this during the run; this implementation keeps it fixed
// since the engine already drives its own penalty homotopy and only needs
// this backend's operational contract (solve/hotstart), not OSQP's own
// internal tuning.
const (
	admmSigma      = 10.0
	admmMaxIter    = 2000
	admmTol        = 1e-9
	admmRelaxAlpha = 1.0
)

// SparseOperatorSplitting is the ADMM/operator-splitting backend
// (OSQP_SPARSE). It solves
//
//	minimize   1/2 xᵀHx + gᵀx
//	subject to lbA <= Ax <= ubA
//
// by alternating an equality-constrained KKT solve for (x, ν), a projection
// of z onto [lbA, ubA], and a dual ascent step for y — the ADMM splitting
// OSQP itself is built on (Stellato et al., "OSQP: An Operator Splitting
// Solver for Quadratic Programs"). It rejects non-trivial box bounds with
// ErrInvalidOSQPBoxConstraints, matching spec.md §4.2: box bounds for this
// backend must be encoded as rows of A instead.
type SparseOperatorSplitting struct {
	nV, nC int
	H, A   *mat.Dense

	x, z, y []float64
	level   PrintLevel
}

// NewSparseOperatorSplitting constructs an operator-splitting backend for a
// CSC Hessian H (nV x nV) and CSC constraint matrix A (nC x nV).
func NewSparseOperatorSplitting(H, A *kernel.CSC, nV, nC int) (*SparseOperatorSplitting, error) {
	Hd, err := kernel.CSCToDense(H)
	if err != nil {
		return nil, err
	}
	Ad, err := kernel.CSCToDense(A)
	if err != nil {
		return nil, err
	}
	return &SparseOperatorSplitting{
		nV: nV, nC: nC, H: Hd, A: Ad,
		x: make([]float64, nV),
		z: make([]float64, nC),
		y: make([]float64, nC),
	}, nil
}

func (o *SparseOperatorSplitting) SetPrintLevel(level PrintLevel) { o.level = level }

// Solve implements Subsolver.Solve. lb/ub must both be empty (or all
// ±infinite), since this backend does not accept box constraints directly.
func (o *SparseOperatorSplitting) Solve(initial bool, g, lbA, ubA, x0, y0, lb, ub []float64) (Result, error) {
	for _, v := range lb {
		if !math.IsInf(v, -1) {
			return Result{Success: false, Err: ErrInvalidOSQPBoxConstraints}, ErrInvalidOSQPBoxConstraints
		}
	}
	for _, v := range ub {
		if !math.IsInf(v, 1) {
			return Result{Success: false, Err: ErrInvalidOSQPBoxConstraints}, ErrInvalidOSQPBoxConstraints
		}
	}

	if initial {
		copy(o.x, x0)
		for i := range o.z {
			o.z[i] = clip(dotRow(rowOf(o.A, i, o.nV), o.x), lbA[i], ubA[i])
		}
		if len(y0) >= o.nC {
			copy(o.y, y0)
		}
	}

	// KKT matrix [H+sigma*I  Aᵀ; A  -I/sigma] is fixed across ADMM
	// iterations for a given sigma; only the RHS changes.
	n, m := o.nV, o.nC
	sys := mat.NewDense(n+m, n+m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := o.H.At(i, j)
			if i == j {
				v += admmSigma
			}
			sys.Set(i, j, v)
		}
	}
	for i := 0; i < m; i++ {
		row := rowOf(o.A, i, n)
		for j := 0; j < n; j++ {
			sys.Set(n+i, j, row[j])
			sys.Set(j, n+i, row[j])
		}
		sys.Set(n+i, n+i, -1.0/admmSigma)
	}

	iters := 0
	ok := false
	for iters = 0; iters < admmMaxIter; iters++ {
		rhs := mat.NewDense(n+m, 1, nil)
		for i := 0; i < n; i++ {
			rhs.Set(i, 0, admmSigma*o.x[i]-g[i])
		}
		for i := 0; i < m; i++ {
			rhs.Set(n+i, 0, o.z[i]-o.y[i]/admmSigma)
		}

		var sol mat.Dense
		if err := sol.Solve(sys, rhs); err != nil {
			return Result{Success: false, ExitFlag: 1, Err: ErrSubproblemSolverError}, ErrSubproblemSolverError
		}

		xNew := make([]float64, n)
		nu := make([]float64, m)
		for i := 0; i < n; i++ {
			xNew[i] = sol.At(i, 0)
		}
		for i := 0; i < m; i++ {
			nu[i] = sol.At(n+i, 0)
		}

		zTilde := make([]float64, m)
		for i := 0; i < m; i++ {
			zTilde[i] = o.z[i] + (nu[i]-o.y[i])/admmSigma
		}

		zNew := make([]float64, m)
		for i := 0; i < m; i++ {
			v := admmRelaxAlpha*zTilde[i] + (1-admmRelaxAlpha)*o.z[i] + o.y[i]/admmSigma
			zNew[i] = clip(v, lbA[i], ubA[i])
		}

		yNew := make([]float64, m)
		for i := 0; i < m; i++ {
			relaxed := admmRelaxAlpha*zTilde[i] + (1-admmRelaxAlpha)*o.z[i]
			yNew[i] = o.y[i] + admmSigma*(relaxed-zNew[i])
		}

		primRes := 0.0
		dualRes := 0.0
		for i := 0; i < m; i++ {
			primRes = math.Max(primRes, math.Abs(zTilde[i]-zNew[i]))
		}
		for i := 0; i < n; i++ {
			dualRes = math.Max(dualRes, math.Abs(xNew[i]-o.x[i]))
		}

		o.x, o.z, o.y = xNew, zNew, yNew

		if primRes < admmTol && dualRes < admmTol {
			ok = true
			iters++
			break
		}
	}

	if !ok {
		return Result{Success: false, Iter: iters, ExitFlag: 2, Err: ErrSubproblemSolverError}, ErrSubproblemSolverError
	}
	return Result{Success: true, Iter: iters}, nil
}

func (o *SparseOperatorSplitting) GetSolution(x, y []float64) {
	copy(x, o.x)
	copy(y, o.y)
}

func (o *SparseOperatorSplitting) NumDuals() int { return o.nC }

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
