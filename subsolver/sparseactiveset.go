package subsolver

import (
	"github.com/lcqpow/lcqpow/kernel"
)

// SparseActiveSet is the CSC-backed active-set backend (QPOASES_SPARSE).
// It implements the same contract and algorithm as DenseActiveSet; the
// (small) equality-constrained KKT subsystem solved once per working-set
// iteration is still handled densely, mirroring the teacher's own Cholesky
// type (cholesky.go), which factors a sparse CSR matrix but exposes only a
// dense solve path (SolveVecTo writes into a *mat.VecDense).
type SparseActiveSet struct {
	nV, nC int
	inner  *activeSetSolver
	level  PrintLevel
}

// NewSparseActiveSet constructs a sparse active-set backend for a CSC
// Hessian H (nV x nV) and CSC composite constraint matrix A (nC x nV).
func NewSparseActiveSet(H, A *kernel.CSC, nV, nC int) (*SparseActiveSet, error) {
	Hd, err := kernel.CSCToDense(H)
	if err != nil {
		return nil, err
	}
	Ad, err := kernel.CSCToDense(A)
	if err != nil {
		return nil, err
	}
	das := NewDenseActiveSet(Hd, Ad, nV, nC)
	return &SparseActiveSet{nV: nV, nC: nC, inner: das.inner}, nil
}

func (s *SparseActiveSet) SetPrintLevel(level PrintLevel) { s.level = level }

func (s *SparseActiveSet) Solve(initial bool, g, lbA, ubA, x0, y0, lb, ub []float64) (Result, error) {
	d := &DenseActiveSet{nV: s.nV, nC: s.nC, inner: s.inner}
	return d.Solve(initial, g, lbA, ubA, x0, y0, lb, ub)
}

func (s *SparseActiveSet) GetSolution(x, y []float64) {
	copy(x, s.inner.x)
	copy(y, s.inner.y)
}

func (s *SparseActiveSet) NumDuals() int { return s.nV + s.nC }
