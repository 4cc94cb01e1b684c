package lcqpow

import (
	"context"

	"github.com/lcqpow/lcqpow/kernel"
	"github.com/lcqpow/lcqpow/subsolver"
)

// qkCEntry records that the Qk-matrix data slot at QkIdx was built (wholly
// or partly) from the complementarity matrix's data slot at CIdx, so that
// updateQk can apply the penalty delta without rebuilding Qk from scratch.
type qkCEntry struct {
	QkIdx, CIdx int
}

// perturbEps is the per-coordinate step perturbation magnitude, grounded on
// original_source/include/Utilities.hpp's Utilities::EPS (half a machine
// epsilon).
const perturbEps = machineEps / 2

// Solve runs the penalty-homotopy outer loop to convergence, a budget
// limit, or ctx cancellation, mirroring LCQProblem::runSolver. It may be
// called only after InitializeSolver has succeeded.
func (p *Problem) Solve(ctx context.Context) (ReturnValue, error) {
	if !p.initialized {
		return ProblemNotSolved, NewError(LCQPObjectNotSetup, nil)
	}
	if err := ctx.Err(); err != nil {
		return p.fail(Canceled, err)
	}

	if p.options.SolveZeroPenaltyFirst() {
		p.gK = append([]float64(nil), p.g...)
	} else {
		p.updateLinearization()
	}
	if err := p.solveQPSubproblem(ctx, true); err != nil {
		return p.fail(SubproblemSolverError, err)
	}
	kernel.PutFloats(p.pk)
	p.pk = kernel.WAdd(1, p.xNew, -1, p.xk)
	p.setQk()
	p.stats.updateRho(p.rho)

	for {
		if err := ctx.Err(); err != nil {
			return p.fail(Canceled, err)
		}

		p.updateStep()
		p.updateStationarity()

		statMax := kernel.MaxAbs(p.statK)
		phi := p.GetPhi()
		p.logIteration(p.innerIter, p.outerIter, p.totalIter, statMax, phi, p.rho, kernel.MaxAbs(p.pk), p.alphaK, p.qpIterK)
		if p.options.StoreSteps() {
			p.recordStep(statMax, phi)
		}

		p.totalIter++
		p.innerIter++
		if err := p.stats.addTotalIterations(1); err != nil {
			return p.fail(SubproblemSolverError, err)
		}

		if p.leyfferCheckPositive() {
			p.updatePenalty()
			p.outerIter++
			if err := p.stats.addOuterIterations(1); err != nil {
				return p.fail(SubproblemSolverError, err)
			}
			p.innerIter = 0
		}

		p.updateLinearization()

		if p.stationarityCheck() {
			if p.complementarityCheck() {
				p.transformDuals()
				stype := p.classifyStationarity()
				p.algoStat = stype.ReturnValue()
				p.stats.updateStatus(p.algoStat)
				p.logSolution(p.algoStat)
				return p.algoStat, nil
			}
			p.updatePenalty()
			p.outerIter++
			if err := p.stats.addOuterIterations(1); err != nil {
				return p.fail(SubproblemSolverError, err)
			}
			p.innerIter = 0
		}

		if p.totalIter > p.options.MaxIterations() {
			p.logSolution(MaxIterationsReached)
			return p.fail(MaxIterationsReached, nil)
		}
		if p.rho > p.options.MaxRho() {
			p.logSolution(MaxPenaltyReached)
			return p.fail(MaxPenaltyReached, nil)
		}

		p.updateLinearization()

		if err := p.solveQPSubproblem(ctx, false); err != nil {
			return p.fail(SubproblemSolverError, err)
		}
		if p.options.PerturbStep() {
			p.perturbXNew()
		}
		kernel.PutFloats(p.pk)
		p.pk = kernel.WAdd(1, p.xNew, -1, p.xk)

		p.getOptimalStepLength()
	}
}

// fail records a terminal status and returns the corresponding error pair.
func (p *Problem) fail(code ReturnValue, cause error) (ReturnValue, error) {
	p.algoStat = code
	p.stats.updateStatus(code)
	if code == Canceled || cause != nil {
		return code, NewError(code, cause)
	}
	return code, NewError(code, nil)
}

// solveQPSubproblem drives the bound subsolver backend once: a cold setup
// when initial is true (seeded with x0/y0), or a hotstart against the
// current gK/bounds otherwise. Unlike LCQProblem::solveQPSubproblem, it
// does not compute pk itself — per spec's description of perturbation as a
// step applied to the fresh QP solution before p_k = x_new - x_k is
// formed, Solve computes pk after this call returns (and after perturbing
// xNew, on hotstart calls). See DESIGN.md for the rationale.
func (p *Problem) solveQPSubproblem(ctx context.Context, initial bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var x0, y0 []float64
	if initial {
		x0, y0 = p.x0, p.y0
	}

	result, err := p.solver.Solve(initial, p.gK, p.lbA, p.ubA, x0, y0, p.lb, p.ub)
	p.qpIterK = result.Iter
	p.qpExitFlag = result.ExitFlag
	if serr := p.stats.addSubproblemIterations(result.Iter); serr != nil {
		return serr
	}
	p.stats.updateExitFlag(result.ExitFlag)
	if err != nil {
		return err
	}
	if !result.Success {
		return subsolver.ErrSubproblemSolverError
	}

	if p.xNew == nil {
		p.xNew = make([]float64, p.nV)
	}
	if p.yk == nil {
		p.yk = make([]float64, p.nDuals)
	}
	p.solver.GetSolution(p.xNew, p.yk)
	rows := p.nC + 2*p.nComp
	copy(p.yA, p.yk[p.boxDualOffset:p.boxDualOffset+rows])
	return nil
}

// perturbXNew nudges each coordinate of the fresh QP solution by
// -perturbEps, 0, or +perturbEps with equal probability, using the
// problem's seedable PRNG. Grounded on LCQProblem::perturbStep, applied to
// xNew per spec's description rather than to xk after the fact.
func (p *Problem) perturbXNew() {
	for i := range p.xNew {
		switch p.rng.Intn(3) {
		case 0:
			p.xNew[i] -= perturbEps
		case 2:
			p.xNew[i] += perturbEps
		}
	}
}

// updateStep advances the primal iterate: xk += alphak*pk.
func (p *Problem) updateStep() {
	for i := range p.xk {
		p.xk[i] += p.alphaK * p.pk[i]
	}
}

// updateLinearization recomputes the per-iterate linear term
// gk = rho*C*xk + g_tilde, the subsolver's g argument for the next solve.
func (p *Problem) updateLinearization() {
	kernel.PutFloats(p.gK)
	var cx []float64
	if p.sparseSolver {
		cx = kernel.CSCMatVec(p.CCSC, p.xk)
	} else {
		cx = kernel.MatVec(p.C, p.xk, p.nV, p.nV)
	}
	p.gK = kernel.WAdd(p.rho, cx, 1, p.gTilde)
	kernel.PutFloats(cx)
}

// computeGTilde recomputes g_tilde = g + rho*g_phi, preserving the
// invariant that g_tilde always matches the current rho.
func (p *Problem) computeGTilde() {
	kernel.PutFloats(p.gTilde)
	p.gTilde = kernel.WAdd(1, p.g, p.rho, p.gPhi)
}

// updateStationarity recomputes the KKT residual
// statk = Qk*xk + g_tilde - Ãᵀ*yA - y_box (the last term only for backends
// that carry box duals).
func (p *Problem) updateStationarity() {
	kernel.PutFloats(p.statK)
	var qkx []float64
	if p.sparseSolver {
		qkx = kernel.CSCMatVec(p.QkCSC, p.xk)
	} else {
		qkx = kernel.MatVec(p.Qk, p.xk, p.nV, p.nV)
	}
	lin := kernel.WAdd(1, qkx, 1, p.gTilde)
	kernel.PutFloats(qkx)

	var aty []float64
	rows := p.nC + 2*p.nComp
	if p.sparseSolver {
		aty = kernel.CSCMatVecT(p.ACSC, p.yA)
	} else {
		aty = kernel.MatVecT(p.A, p.yA, rows, p.nV)
	}
	next := kernel.WAdd(1, lin, -1, aty)
	kernel.PutFloats(lin)
	kernel.PutFloats(aty)
	lin = next

	if p.boxDualOffset > 0 {
		next = kernel.WAdd(1, lin, -1, p.yk[:p.nV])
		kernel.PutFloats(lin)
		lin = next
	}
	p.statK = lin
}

// getOptimalStepLength computes alphak via the exact quadratic
// line-minimizer LCQProblem::getOptimalStepLength uses: qk = pkᵀQkpk,
// lk = pkᵀ(Qk*xk + g_tilde); alphak = min(-lk/qk, 1) when qk>0 and lk<0,
// else 1.
func (p *Problem) getOptimalStepLength() {
	var qk float64
	var lkTmp []float64
	if p.sparseSolver {
		qk = kernel.CSCQForm(p.QkCSC, p.pk)
		lkTmp = kernel.CSCAff(1, p.QkCSC, p.xk, p.gTilde)
	} else {
		qk = kernel.QForm(p.Qk, p.pk, p.nV)
		lkTmp = kernel.Aff(1, p.Qk, p.xk, p.gTilde, p.nV, p.nV)
	}
	lk := kernel.Dot(p.pk, lkTmp)
	kernel.PutFloats(lkTmp)

	alphak := 1.0
	if qk > 0 && lk < 0 {
		alphak = -lk / qk
		if alphak > 1 {
			alphak = 1
		}
	}
	p.alphaK = alphak
}

// stationarityCheck reports whether the current residual is within
// tolerance: ||statk||_inf < stationarityTolerance.
func (p *Problem) stationarityCheck() bool {
	return kernel.MaxAbs(p.statK) < p.options.StationarityTolerance()
}

// complementarityCheck reports whether phi(xk) is within tolerance.
func (p *Problem) complementarityCheck() bool {
	return p.GetPhi() < p.options.ComplementarityTolerance()
}

// leyfferCheckPositive implements LCQProblem::leyfferCheckPositive
// exactly: a sliding window of the last NDynamicPenalty phi values is
// maintained; once full (and complementarity is not yet satisfied), the
// current value is compared against the entries in order and escalation is
// signalled as soon as it fails to fall below eta times one of them (break
// on the first such failure). The window is always updated (pop-front,
// push-back) regardless of which branch returns.
func (p *Problem) leyfferCheckPositive() bool {
	n := p.options.NDynamicPenalty()
	if n <= 0 {
		return false
	}
	cur := p.GetPhi()

	if len(p.complHistory) < n {
		p.complHistory = append(p.complHistory, cur)
		return false
	}

	if p.complementarityCheck() {
		p.complHistory = append(p.complHistory[1:], cur)
		return false
	}

	retFlag := false
	eta := p.options.EtaDynamicPenalty()
	for _, h := range p.complHistory {
		if !(cur < eta*h) {
			retFlag = true
			break
		}
	}
	p.complHistory = append(p.complHistory[1:], cur)
	return retFlag
}

// updatePenalty escalates rho, rebuilds Qk incrementally, and refreshes
// g_tilde. Grounded on LCQProblem::updatePenalty.
func (p *Problem) updatePenalty() {
	if p.options.NDynamicPenalty() > 0 {
		p.complHistory = nil
	}
	p.rho *= p.options.PenaltyUpdateFactor()
	p.stats.updateRho(p.rho)
	p.updateQk()
	p.computeGTilde()
}

// setQk builds Qk = H + rho*C from scratch. In sparse mode it also builds
// the qkIndicesOfC side table updateQk uses for incremental maintenance.
// Grounded on LCQProblem::setQk.
func (p *Problem) setQk() {
	if p.sparseSolver {
		p.QkCSC, p.qkIndicesOfC = buildQkSparse(p.HCSC, p.CCSC, p.rho)
		return
	}
	p.Qk = kernel.MatWAdd(1, p.H, p.rho, p.C, p.nV, p.nV)
}

// updateQk refreshes Qk after rho has just been escalated. Dense mode
// recomputes outright (cheap at problem scale); sparse mode applies the
// per-entry delta factor = rho_new - rho_old to every Qk slot the side
// table marks as C-derived, avoiding a full merge. Grounded on
// LCQProblem::updateQk.
func (p *Problem) updateQk() {
	if !p.sparseSolver {
		p.Qk = kernel.MatWAdd(1, p.H, p.rho, p.C, p.nV, p.nV)
		return
	}
	factor := p.rho - p.rho/p.options.PenaltyUpdateFactor()
	data := p.QkCSC.Data()
	cdata := p.CCSC.Data()
	for _, e := range p.qkIndicesOfC {
		data[e.QkIdx] += factor * cdata[e.CIdx]
	}
}

// buildQkSparse merges H and C column-by-column (ascending row order, the
// standard sorted two-pointer merge) into Qk = H + rho*C, recording for
// every Qk slot that drew from C the position in C's own data array it
// came from. Grounded on LCQProblem::setQk's sparse branch.
func buildQkSparse(H, C *kernel.CSC, rho float64) (*kernel.CSC, []qkCEntry) {
	rows, cols := H.Dims()
	hIndptr, hInd, hDat := H.Indptr(), H.Ind(), H.Data()
	cIndptr, cInd, cDat := C.Indptr(), C.Ind(), C.Data()

	indptr := make([]int, cols+1)
	var ind []int
	var data []float64
	var table []qkCEntry

	for j := 0; j < cols; j++ {
		indptr[j] = len(data)
		hi, hEnd := hIndptr[j], hIndptr[j+1]
		ci, cEnd := cIndptr[j], cIndptr[j+1]
		for hi < hEnd || ci < cEnd {
			switch {
			case hi >= hEnd:
				ind = append(ind, cInd[ci])
				data = append(data, rho*cDat[ci])
				table = append(table, qkCEntry{QkIdx: len(data) - 1, CIdx: ci})
				ci++
			case ci >= cEnd:
				ind = append(ind, hInd[hi])
				data = append(data, hDat[hi])
				hi++
			case hInd[hi] < cInd[ci]:
				ind = append(ind, hInd[hi])
				data = append(data, hDat[hi])
				hi++
			case hInd[hi] > cInd[ci]:
				ind = append(ind, cInd[ci])
				data = append(data, rho*cDat[ci])
				table = append(table, qkCEntry{QkIdx: len(data) - 1, CIdx: ci})
				ci++
			default:
				ind = append(ind, hInd[hi])
				data = append(data, hDat[hi]+rho*cDat[ci])
				table = append(table, qkCEntry{QkIdx: len(data) - 1, CIdx: ci})
				hi++
				ci++
			}
		}
	}
	indptr[cols] = len(data)
	return kernel.NewCSC(rows, cols, indptr, ind, data), table
}

// complementarityDuals returns the two complementarity-row dual sub-slices
// of yk (the actual dual solution GetDualSolution exposes), at the offset
// the chosen backend places the composite constraint duals. Mutating the
// returned slices mutates p.yk in place.
func (p *Problem) complementarityDuals() (yS1, yS2 []float64) {
	base := p.boxDualOffset + p.nC
	return p.yk[base : base+p.nComp], p.yk[base+p.nComp : base+2*p.nComp]
}

// transformDuals converts the penalty-form complementarity-row duals (held
// in yk, not the throwaway yA copy) into LCQP-side duals (see
// stationarity.go's TransformDuals) and stashes S1*xk/S2*xk for the
// subsequent weakly-active-set computation. Grounded on
// LCQProblem::transformDuals, which likewise mutates yk directly.
func (p *Problem) transformDuals() {
	if p.sparseSolver {
		p.lastS1x = kernel.CSCMatVec(p.S1CSC, p.xk)
		p.lastS2x = kernel.CSCMatVec(p.S2CSC, p.xk)
	} else {
		p.lastS1x = kernel.MatVec(p.S1, p.xk, p.nComp, p.nV)
		p.lastS2x = kernel.MatVec(p.S2, p.xk, p.nComp, p.nV)
	}
	yS1, yS2 := p.complementarityDuals()
	TransformDuals(yS1, yS2, p.lastS2x, p.lastS1x, p.rho)
}

// classifyStationarity determines the first-order optimality class of the
// accepted solution, from the already-transformed complementarity-row
// duals and the weakly-active set.
func (p *Problem) classifyStationarity() StationarityType {
	w := WeaklyActiveSet(p.lastS1x, p.lastS2x, p.options.ComplementarityTolerance())
	yS1, yS2 := p.complementarityDuals()
	return ClassifyStationarity(yS1, yS2, w, p.options.ComplementarityTolerance())
}

// recordStep appends a StepRecord snapshot of the current iterate.
func (p *Problem) recordStep(statMax, phi float64) {
	p.stats.recordStep(StepRecord{
		InnerIter: p.innerIter,
		QPIter:    p.qpIterK,
		Alpha:     p.alphaK,
		PNorm:     kernel.MaxAbs(p.pk),
		StatNorm:  statMax,
		Objective: p.GetObjective(),
		Phi:       phi,
		Merit:     p.GetMerit(),
	})
}
