package subsolver

import "errors"

// ErrInvalidOSQPBoxConstraints is returned when a SparseOperatorSplitting
// backend is asked to solve a problem with non-trivial box bounds; that
// backend requires box bounds to be encoded as linear constraint rows (or
// omitted) instead.
var ErrInvalidOSQPBoxConstraints = errors.New("subsolver: osqp backend does not accept box constraints directly")

// ErrSubproblemSolverError is the generic failure a backend reports when
// its internal iteration does not converge (infeasible working set,
// iteration budget exhausted, ill-conditioned factorization, ...). The
// backend-specific exit flag is returned alongside it.
var ErrSubproblemSolverError = errors.New("subsolver: subproblem solver failed")

// QPSolver identifies which subsolver backend an Options value selects.
type QPSolver int

const (
	// QPOASESDense selects the dense active-set backend.
	QPOASESDense QPSolver = iota
	// QPOASESSparse selects the CSC-backed active-set backend.
	QPOASESSparse
	// OSQPSparse selects the CSC-backed operator-splitting backend.
	OSQPSparse
)

func (q QPSolver) String() string {
	switch q {
	case QPOASESDense:
		return "QPOASES_DENSE"
	case QPOASESSparse:
		return "QPOASES_SPARSE"
	case OSQPSparse:
		return "OSQP_SPARSE"
	default:
		return "UNKNOWN"
	}
}

// PrintLevel is the verbosity a backend is given through SetPrintLevel
// (PrintIterations at spec's SUBPROBLEM_SOLVER_ITERATES level only). The
// backends in this package record it but emit no per-iteration output at
// either level.
type PrintLevel int

const (
	PrintNone PrintLevel = iota
	PrintIterations
)

// Result carries the outcome of a single Subsolver.Solve call: whether it
// succeeded, how many internal iterations it took, and (on failure) a
// backend-specific exit flag for diagnostics. Modeled on the
// solution{x, z, err} shape used by jjhbw-GoMILP's subproblem solver, with
// the iteration count and exit flag spec.md's statistics model requires.
type Result struct {
	Success  bool
	Iter     int
	ExitFlag int
	Err      error
}

// Subsolver is the uniform contract the penalty-homotopy engine drives.
// A concrete value is constructed already bound to a fixed (H, Ã) problem
// shape; Solve is called once per inner iteration with the updated linear
// term, bounds, and (on the very first call) the initial guess.
type Subsolver interface {
	// Solve performs a cold factorization/setup (initial == true) or a
	// hotstart reusing prior internal state (initial == false), for the
	// subproblem
	//   minimize   1/2 xᵀQx + gᵀx
	//   subject to lbA <= Ãx <= ubA,  lb <= x <= ub  (backends that do not
	//   support box bounds reject any finite lb/ub entry with
	//   ErrInvalidOSQPBoxConstraints)
	// x0/y0 seed the initial guess on the first call and are ignored on
	// hotstart calls.
	Solve(initial bool, g, lbA, ubA, x0, y0, lb, ub []float64) (Result, error)

	// GetSolution writes the most recent primal solution into x and the
	// most recent dual solution into y. Dual layout is backend-dependent:
	// active-set backends order duals [box (nV) | linear (nC+2*nComp)];
	// the operator-splitting backend omits the leading box block.
	GetSolution(x, y []float64)

	// NumDuals returns len(y) as written by GetSolution.
	NumDuals() int

	SetPrintLevel(level PrintLevel)
}
