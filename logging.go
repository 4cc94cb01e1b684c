package lcqpow

import "go.uber.org/zap"

// iterateLog is the structured per-iteration record the engine emits at
// PrintOuterLoopIterates and above, grounded on spec §6's named columns
// (outer index, inner index, stationarity infinity-norm, phi, rho, step
// infinity-norm, alpha, subsolver iteration count). Since the teacher
// carries no logging of its own, the call shape follows
// yelhousni-gnark's go.mod zap dependency: field-rich structured calls
// rather than hand-formatted column text.
func (p *Problem) logIteration(innerIter, outerIter, totalIter int, statMax, phi, rho, pMax, alpha float64, qpIter int) {
	if p.options.PrintLevel() < PrintOuterLoopIterates {
		return
	}
	fields := []zap.Field{
		zap.Int("outerIter", outerIter),
		zap.Int("totalIter", totalIter),
		zap.Float64("statMax", statMax),
		zap.Float64("phi", phi),
		zap.Float64("rho", rho),
	}
	if p.options.PrintLevel() >= PrintInnerLoopIterates {
		fields = append(fields,
			zap.Int("innerIter", innerIter),
			zap.Float64("pMax", pMax),
			zap.Float64("alpha", alpha),
		)
	}
	if p.options.PrintLevel() >= PrintSubproblemSolverIterates {
		fields = append(fields, zap.Int("qpIter", qpIter))
	}
	p.logger.Info("iterate", fields...)
}

func (p *Problem) logSolution(status ReturnValue) {
	if p.options.PrintLevel() < PrintOuterLoopIterates {
		return
	}
	p.logger.Info("solve finished", zap.String("status", status.String()))
}
