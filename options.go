package lcqpow

import (
	"github.com/lcqpow/lcqpow/subsolver"
)

// machineEps is the IEEE-754 double machine epsilon, matching the C++
// source's std::numeric_limits<double>::epsilon().
const machineEps = 2.220446049250313e-16

// PrintLevel controls how much per-iteration data Solve logs. Distinct
// from subsolver.PrintLevel (which is only handed to the backend's
// SetPrintLevel): PrintSubproblemSolverIterates is the level at which the
// engine also sets the backend's level to PrintIterations.
type PrintLevel int

const (
	PrintNone PrintLevel = iota
	PrintOuterLoopIterates
	PrintInnerLoopIterates
	PrintSubproblemSolverIterates
)

func (p PrintLevel) String() string {
	switch p {
	case PrintNone:
		return "NONE"
	case PrintOuterLoopIterates:
		return "OUTER_LOOP_ITERATES"
	case PrintInnerLoopIterates:
		return "INNER_LOOP_ITERATES"
	case PrintSubproblemSolverIterates:
		return "SUBPROBLEM_SOLVER_ITERATES"
	default:
		return "UNKNOWN"
	}
}

// Options is a validated configuration record. Fields are unexported;
// mutation goes through setters that reject invalid values immediately,
// following original_source/include/Utilities.hpp's Options::ensureConsistency
// validation boundary and the exported-setter-with-error convention used
// throughout katalvlaran-lvlath/core (the teacher carries no options type
// of its own to ground this on).
type Options struct {
	stationarityTolerance    float64
	complementarityTolerance float64
	initialPenaltyParameter  float64
	penaltyUpdateFactor      float64
	maxRho                   float64
	maxIterations            int
	solveZeroPenaltyFirst    bool
	perturbStep              bool
	nDynamicPenalty          int
	etaDynamicPenalty        float64
	qpSolver                 subsolver.QPSolver
	printLevel               PrintLevel
	storeSteps               bool
}

// NewOptions returns an Options populated with the defaults from spec §4.5.
func NewOptions() *Options {
	return &Options{
		stationarityTolerance:    1e3 * machineEps,
		complementarityTolerance: 1e3 * machineEps,
		initialPenaltyParameter:  0.01,
		penaltyUpdateFactor:      2.0,
		maxRho:                   1e7,
		maxIterations:            1000,
		solveZeroPenaltyFirst:    true,
		perturbStep:              true,
		nDynamicPenalty:          3,
		etaDynamicPenalty:        0.9,
		qpSolver:                 subsolver.QPOASESDense,
		printLevel:               PrintNone,
		storeSteps:               false,
	}
}

func (o *Options) StationarityTolerance() float64    { return o.stationarityTolerance }
func (o *Options) ComplementarityTolerance() float64 { return o.complementarityTolerance }
func (o *Options) InitialPenaltyParameter() float64  { return o.initialPenaltyParameter }
func (o *Options) PenaltyUpdateFactor() float64      { return o.penaltyUpdateFactor }
func (o *Options) MaxRho() float64                   { return o.maxRho }
func (o *Options) MaxIterations() int                { return o.maxIterations }
func (o *Options) SolveZeroPenaltyFirst() bool       { return o.solveZeroPenaltyFirst }
func (o *Options) PerturbStep() bool                 { return o.perturbStep }
func (o *Options) NDynamicPenalty() int              { return o.nDynamicPenalty }
func (o *Options) EtaDynamicPenalty() float64        { return o.etaDynamicPenalty }
func (o *Options) QPSolver() subsolver.QPSolver      { return o.qpSolver }
func (o *Options) PrintLevel() PrintLevel            { return o.printLevel }
func (o *Options) StoreSteps() bool                  { return o.storeSteps }

func (o *Options) SetStationarityTolerance(v float64) error {
	if v < machineEps {
		return NewError(InvalidOptionValue, nil)
	}
	o.stationarityTolerance = v
	return nil
}

func (o *Options) SetComplementarityTolerance(v float64) error {
	if v < machineEps {
		return NewError(InvalidOptionValue, nil)
	}
	o.complementarityTolerance = v
	return nil
}

func (o *Options) SetInitialPenaltyParameter(v float64) error {
	if v <= 0 {
		return NewError(InvalidOptionValue, nil)
	}
	o.initialPenaltyParameter = v
	return nil
}

func (o *Options) SetPenaltyUpdateFactor(v float64) error {
	if v <= 1 {
		return NewError(InvalidOptionValue, nil)
	}
	o.penaltyUpdateFactor = v
	return nil
}

func (o *Options) SetMaxRho(v float64) error {
	if v <= o.initialPenaltyParameter {
		return NewError(InvalidOptionValue, nil)
	}
	o.maxRho = v
	return nil
}

func (o *Options) SetMaxIterations(n int) error {
	if n <= 0 {
		return NewError(InvalidOptionValue, nil)
	}
	o.maxIterations = n
	return nil
}

func (o *Options) SetSolveZeroPenaltyFirst(b bool) { o.solveZeroPenaltyFirst = b }
func (o *Options) SetPerturbStep(b bool)           { o.perturbStep = b }

func (o *Options) SetNDynamicPenalty(n int) error {
	if n < 0 {
		return NewError(InvalidOptionValue, nil)
	}
	o.nDynamicPenalty = n
	return nil
}

func (o *Options) SetEtaDynamicPenalty(v float64) error {
	if v <= 0 || v >= 1 {
		return NewError(InvalidOptionValue, nil)
	}
	o.etaDynamicPenalty = v
	return nil
}

func (o *Options) SetQPSolver(q subsolver.QPSolver) { o.qpSolver = q }
func (o *Options) SetPrintLevel(p PrintLevel)       { o.printLevel = p }
func (o *Options) SetStoreSteps(b bool)             { o.storeSteps = b }

// subsolverPrintLevel derives the backend's own PrintLevel from the
// engine-level one: only the most verbose setting also asks the backend to
// log its own inner iterations.
func (o *Options) subsolverPrintLevel() subsolver.PrintLevel {
	if o.printLevel >= PrintSubproblemSolverIterates {
		return subsolver.PrintIterations
	}
	return subsolver.PrintNone
}
