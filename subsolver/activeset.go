package subsolver

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// activeSetTol is the tolerance used to decide whether a constraint row is
// binding, whether a computed step is "zero", and whether a Lagrange
// multiplier sign indicates optimality.
const activeSetTol = 1e-9

// side marks which bound of a two-sided row constraint is currently
// treated as active (an equality) in the working set.
type side int8

const (
	inactive side = 0
	atLower  side = -1
	atUpper  side = 1
)

// activeSetSolver is the primal active-set QP solver shared by the dense
// and CSC-backed backends: both convert their problem data to a dense
// constraint matrix C (rows = optional box identity block followed by Ã)
// and drive this same working-set loop, generalizing the single
// Cholesky-factor-and-solve idiom of the teacher's cholesky.go to the
// classical add/drop active-set method (Nocedal & Wright, Numerical
// Optimization, 2nd ed., §16.5) since the teacher and pack ship no
// complete QP solver to adapt directly.
type activeSetSolver struct {
	n, m int // n variables, m constraint rows (C is m x n)
	Q    *mat.Dense
	C    *mat.Dense

	x   []float64
	y   []float64 // length m, one dual per row (0 when inactive)
	ws  []side    // length m, current working set
	set bool      // true once a solution has been produced at least once
}

func newActiveSetSolver(Q, C *mat.Dense, n, m int) *activeSetSolver {
	return &activeSetSolver{
		n: n, m: m, Q: Q, C: C,
		x:  make([]float64, n),
		y:  make([]float64, m),
		ws: make([]side, m),
	}
}

// solve runs the working-set loop to (local) optimality for
//
//	minimize   1/2 xᵀQx + gᵀx
//	subject to lbC <= Cx <= ubC
//
// starting from x0 (used to seed both x and, when warmstart is false, the
// initial working set by proximity to each row's bounds). When warmstart is
// true the solver's existing working set (from the previous call) is kept
// as the starting point instead, implementing the hotstart half of the
// Subsolver contract.
func (s *activeSetSolver) solve(g, lbC, ubC, x0 []float64, warmstart bool) (iters int, ok bool) {
	x := make([]float64, s.n)
	copy(x, x0)

	if !warmstart || !s.set {
		for i := 0; i < s.m; i++ {
			s.ws[i] = inactive
		}
		row := make([]float64, s.n)
		for i := 0; i < s.m; i++ {
			s.C.Row(row, i)
			v := dotRow(row, x)
			switch {
			case v-lbC[i] <= activeSetTol:
				s.ws[i] = atLower
			case ubC[i]-v <= activeSetTol:
				s.ws[i] = atUpper
			}
		}
	}

	const maxIter = 500
	row := make([]float64, s.n)
	for iters = 0; iters < maxIter; iters++ {
		active := s.activeRows()

		p, lam, solveOK := s.direction(x, g, active)
		if !solveOK {
			return iters, false
		}

		pnorm := infNorm(p)
		if pnorm <= activeSetTol {
			// Check dual feasibility of the current working set.
			worst := -1
			worstViol := activeSetTol
			for idx, i := range active {
				switch s.ws[i] {
				case atLower:
					if -lam[idx] > worstViol {
						worstViol = -lam[idx]
						worst = idx
					}
				case atUpper:
					if lam[idx] > worstViol {
						worstViol = lam[idx]
						worst = idx
					}
				}
			}
			if worst < 0 {
				// Optimal: commit duals and primal solution.
				for i := 0; i < s.m; i++ {
					s.y[i] = 0
				}
				for idx, i := range active {
					s.y[i] = lam[idx]
				}
				copy(s.x, x)
				s.set = true
				return iters + 1, true
			}
			s.ws[active[worst]] = inactive
			continue
		}

		alpha := 1.0
		block := -1
		blockSide := inactive
		for i := 0; i < s.m; i++ {
			if s.ws[i] != inactive {
				continue
			}
			s.C.Row(row, i)
			cp := dotRow(row, p)
			if math.Abs(cp) < activeSetTol {
				continue
			}
			cx := dotRow(row, x)
			var a float64
			var sd side
			if cp > 0 {
				a = (ubC[i] - cx) / cp
				sd = atUpper
			} else {
				a = (lbC[i] - cx) / cp
				sd = atLower
			}
			if a < -activeSetTol {
				continue
			}
			if a < alpha {
				alpha = a
				block = i
				blockSide = sd
			}
		}
		if alpha < 0 {
			alpha = 0
		}
		for i := range x {
			x[i] += alpha * p[i]
		}
		if block >= 0 {
			s.ws[block] = blockSide
		}
	}
	return iters, false
}

func (s *activeSetSolver) activeRows() []int {
	var out []int
	for i, sd := range s.ws {
		if sd != inactive {
			out = append(out, i)
		}
	}
	return out
}

// direction solves the KKT system for the Newton-like step toward the
// equality-constrained (by the current working set) minimizer of the QP
// model at x:
//
//	[Q  Aᵀ] [p]   [-(Qx+g)]
//	[A  0 ] [λ] = [   0   ]
//
// and returns lam = -λ, the sign convention under which Q(x+p)+g = Aᵀlam:
// a row held at its lower bound has lam >= 0 at optimality, a row held at
// its upper bound has lam <= 0.
func (s *activeSetSolver) direction(x, g []float64, active []int) (p, lam []float64, ok bool) {
	n, k := s.n, len(active)
	sys := mat.NewDense(n+k, n+k, nil)
	rhs := mat.NewDense(n+k, 1, nil)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sys.Set(i, j, s.Q.At(i, j))
		}
	}

	row := make([]float64, n)
	for a, i := range active {
		s.C.Row(row, i)
		for j := 0; j < n; j++ {
			sys.Set(j, n+a, row[j])
			sys.Set(n+a, j, row[j])
		}
	}

	Qx := make([]float64, n)
	for i := 0; i < n; i++ {
		Qx[i] = dotRow(rowOf(s.Q, i, n), x)
	}
	for i := 0; i < n; i++ {
		rhs.Set(i, 0, -(Qx[i] + g[i]))
	}

	var sol mat.Dense
	if err := sol.Solve(sys, rhs); err != nil {
		return nil, nil, false
	}

	p = make([]float64, n)
	lam = make([]float64, k)
	for i := 0; i < n; i++ {
		p[i] = sol.At(i, 0)
	}
	for a := 0; a < k; a++ {
		lam[a] = -sol.At(n+a, 0)
	}
	return p, lam, true
}

func rowOf(m *mat.Dense, i, n int) []float64 {
	row := make([]float64, n)
	m.Row(row, i)
	return row
}

func dotRow(row, x []float64) float64 {
	var s float64
	for i := range row {
		s += row[i] * x[i]
	}
	return s
}

func infNorm(v []float64) float64 {
	var m float64
	for _, x := range v {
		a := math.Abs(x)
		if a > m {
			m = a
		}
	}
	return m
}
