package lcqpow

import (
	"math"

	"github.com/lcqpow/lcqpow/kernel"
)

// StationarityType is the first-order optimality class an accepted
// solution is classified into: S ⊂ M ⊂ C ⊂ W.
type StationarityType int

const (
	NotStationary StationarityType = iota
	WStationary
	CStationary
	MStationary
	SStationary
)

func (t StationarityType) String() string {
	switch t {
	case WStationary:
		return "W_STATIONARY_SOLUTION"
	case CStationary:
		return "C_STATIONARY_SOLUTION"
	case MStationary:
		return "M_STATIONARY_SOLUTION"
	case SStationary:
		return "S_STATIONARY_SOLUTION"
	default:
		return "NOT_STATIONARY"
	}
}

// ReturnValue converts a classification into the corresponding algorithm
// status ReturnValue.
func (t StationarityType) ReturnValue() ReturnValue {
	switch t {
	case WStationary:
		return WStationarySolution
	case CStationary:
		return CStationarySolution
	case MStationary:
		return MStationarySolution
	case SStationary:
		return SStationarySolution
	default:
		return ProblemNotSolved
	}
}

// WeaklyActiveSet returns the indices i for which both (S1*xk)_i and
// (S2*xk)_i are at most complTol, i.e. the pairs where complementarity is
// (weakly) active. Grounded on LCQProblem::getWeakComplementarities.
func WeaklyActiveSet(s1x, s2x []float64, complTol float64) []int {
	scratch := kernel.GetInts(len(s1x), false)[:0]
	for i := range s1x {
		if s1x[i] <= complTol && s2x[i] <= complTol {
			scratch = append(scratch, i)
		}
	}
	w := append([]int(nil), scratch...)
	kernel.PutInts(scratch)
	return w
}

// ClassifyStationarity implements LCQProblem::determineStationarityType
// exactly: weakly-active pairs are inspected in order, S-stationarity fails
// as soon as one pair has a negative minimum dual, and within that same
// pass a pair can force an immediate W-stationary verdict (mirroring the
// C++ source's early return) or disqualify M-stationarity while still
// allowing C-stationarity. yS1/yS2 must already be the post-transform LCQP
// duals (see TransformDuals), indexed over the same range as W.
func ClassifyStationarity(yS1, yS2 []float64, w []int, complTol float64) StationarityType {
	sStationary := true
	mStationary := true

	for _, i := range w {
		dualProd := yS1[i] * yS2[i]
		dualMin := math.Min(yS1[i], yS2[i])

		if dualMin < 0 {
			sStationary = false
		}

		if math.Abs(dualProd) >= complTol && dualMin <= 0 {
			if dualProd <= complTol {
				return WStationary
			}
			mStationary = false
		}
	}

	if sStationary {
		return SStationary
	}
	if mStationary {
		return MStationary
	}
	return CStationary
}

// TransformDuals converts penalty-form duals for the complementarity rows
// into LCQP-side duals, per LCQProblem::transformDuals:
//
//	y_S1 ← y_S1 - rho*S2*xk
//	y_S2 ← y_S2 - rho*S1*xk
//
// yS1/yS2 are modified in place; s2x/s1x must be S2*xk and S1*xk
// respectively (note the cross pairing).
func TransformDuals(yS1, yS2, s2x, s1x []float64, rho float64) {
	for i := range yS1 {
		yS1[i] -= rho * s2x[i]
	}
	for i := range yS2 {
		yS2[i] -= rho * s1x[i]
	}
}
