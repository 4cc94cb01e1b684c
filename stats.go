package lcqpow

import "errors"

// ErrNegativeCounterDelta is returned by the statistics counter updates
// when asked to apply a negative delta; counters in OutputStatistics are
// strictly monotonic.
var ErrNegativeCounterDelta = errors.New("lcqpow: negative counter delta")

// StepRecord is a per-inner-iteration snapshot, appended to
// OutputStatistics.Steps when Options.StoreSteps is set. Field set and
// merit formula (gᵀx + 1/2 xᵀQkx) mirror LCQProblem::storeSteps in the C++
// source.
type StepRecord struct {
	InnerIter int
	QPIter    int
	Alpha     float64
	PNorm     float64
	StatNorm  float64
	Objective float64
	Phi       float64
	Merit     float64
}

// OutputStatistics accumulates the monotonic counters and (optionally) the
// per-step history a Solve run produces, mirroring the C++ OutputStatistics
// type.
type OutputStatistics struct {
	TotalIterations      int
	OuterIterations      int
	SubproblemIterations int
	TerminalRho          float64
	Status               ReturnValue
	ExitFlag             int
	Steps                []StepRecord
}

func (s *OutputStatistics) addTotalIterations(delta int) error {
	if delta < 0 {
		return ErrNegativeCounterDelta
	}
	s.TotalIterations += delta
	return nil
}

func (s *OutputStatistics) addOuterIterations(delta int) error {
	if delta < 0 {
		return ErrNegativeCounterDelta
	}
	s.OuterIterations += delta
	return nil
}

func (s *OutputStatistics) addSubproblemIterations(delta int) error {
	if delta < 0 {
		return ErrNegativeCounterDelta
	}
	s.SubproblemIterations += delta
	return nil
}

func (s *OutputStatistics) updateRho(rho float64)            { s.TerminalRho = rho }
func (s *OutputStatistics) updateExitFlag(flag int)           { s.ExitFlag = flag }
func (s *OutputStatistics) updateStatus(status ReturnValue)   { s.Status = status }
func (s *OutputStatistics) recordStep(r StepRecord) {
	s.Steps = append(s.Steps, r)
}
