package lcqpow

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/lcqpow/lcqpow/kernel"
	"github.com/lcqpow/lcqpow/subsolver"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// Problem holds an LCQP's dimensions, matrices, bounds, iterate state, and
// the bound subsolver backend. It is constructed with NewProblem, loaded
// with one of LoadDense/LoadCSC/LoadFromFiles, optionally configured with
// SetOptions, and solved with Solve. Grounded throughout on
// original_source/src/LCQProblem.cpp and spec.md §3/§4.3.
type Problem struct {
	nV, nC, nComp         int
	nDuals, boxDualOffset int
	sparseSolver          bool

	// Dense representation. Populated when !sparseSolver.
	H, A, S1, S2, C, Qk *mat.Dense
	// Sparse (CSC) representation. Populated when sparseSolver.
	HCSC, ACSC, S1CSC, S2CSC, CCSC, QkCSC *kernel.CSC
	qkIndicesOfC                          []qkCEntry

	g, gTilde, gPhi, gK []float64
	lbS1, lbS2          []float64
	phiConst            float64

	lbA, ubA       []float64 // composite, length nC+2*nComp
	lb, ub         []float64 // box bounds bound into the subsolver
	lbTmp, ubTmp   []float64 // staged until InitializeSolver

	x0, y0 []float64

	xk, yk, yA    []float64
	xNew, pk      []float64
	statK         []float64
	alphaK        float64
	lastS1x, lastS2x []float64

	rho                            float64
	outerIter, innerIter, totalIter int
	qpIterK, qpExitFlag            int
	algoStat                       ReturnValue
	complHistory                   []float64

	options *Options
	stats   *OutputStatistics
	solver  subsolver.Subsolver

	rng    *rand.Rand
	logger *zap.Logger

	initialized bool
}

// NewProblem validates dimensions and constructs a Problem with default
// options. nV and nComp must be at least 1; nC (the count of plain linear
// constraints) may be 0.
func NewProblem(nV, nC, nComp int) (*Problem, error) {
	if nV <= 0 {
		return nil, NewError(InvalidNumberOfOptimizationVariables, nil)
	}
	if nComp <= 0 {
		return nil, NewError(InvalidNumberOfOptimizationVariables, nil)
	}
	if nC < 0 {
		return nil, NewError(InvalidNumberOfConstraintVariables, nil)
	}
	return &Problem{
		nV: nV, nC: nC, nComp: nComp,
		options:  NewOptions(),
		stats:    &OutputStatistics{},
		rng:      rand.New(rand.NewSource(1)),
		logger:   zap.NewNop(),
		algoStat: ProblemNotSolved,
	}, nil
}

// SetOptions replaces the problem's options record.
func (p *Problem) SetOptions(o *Options) { p.options = o }

// Options returns the problem's current options record.
func (p *Problem) Options() *Options { return p.options }

// SetLogger installs a structured logger used when Options.PrintLevel is
// above PrintNone. The default is a no-op logger.
func (p *Problem) SetLogger(logger *zap.Logger) { p.logger = logger }

// SetSeed reseeds the perturbation pseudo-random source, for deterministic
// reproducibility (spec §5's "seedable pseudo-random source" requirement).
func (p *Problem) SetSeed(seed uint64) { p.rng = rand.New(rand.NewSource(seed)) }

// GetNumberOfPrimals returns nV.
func (p *Problem) GetNumberOfPrimals() int { return p.nV }

// GetNumberOfDuals returns nDuals, valid only after InitializeSolver.
func (p *Problem) GetNumberOfDuals() int { return p.nDuals }

// GetPrimalSolution copies the current (best-seen) primal iterate into x.
func (p *Problem) GetPrimalSolution(x []float64) { copy(x, p.xk) }

// GetDualSolution copies the current (best-seen) dual iterate into y.
func (p *Problem) GetDualSolution(y []float64) { copy(y, p.yk) }

// WriteSolution writes the primal and dual solution to w, one value per
// line under an "x:"/"y:" header each. The values use the one-per-line
// format of LoadFromFiles, but the output is a single stream with header
// lines, which LoadFromFiles (one header-less file per field) does not read
// directly. Mirrors the xOpt/yOpt dump in
// original_source/examples/solve_lcqp_from_file.cpp and warm_up_sparse.cpp.
func (p *Problem) WriteSolution(w io.Writer) (int, error) {
	if !p.initialized {
		return 0, NewError(LCQPObjectNotSetup, nil)
	}

	x := make([]float64, p.nV)
	p.GetPrimalSolution(x)
	y := make([]float64, p.nDuals)
	p.GetDualSolution(y)

	var buf bytes.Buffer
	buf.WriteString("x:\n")
	for _, v := range x {
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		buf.WriteByte('\n')
	}
	buf.WriteString("y:\n")
	for _, v := range y {
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		buf.WriteByte('\n')
	}
	return w.Write(buf.Bytes())
}

// GetOutputStatistics returns the accumulated statistics record.
func (p *Problem) GetOutputStatistics() *OutputStatistics { return p.stats }

// GetObjective returns gᵀxk + 1/2 xkᵀHxk, the LCQP's own objective value at
// the current iterate (ignoring the penalty term). Grounded on
// LCQProblem::getObj.
func (p *Problem) GetObjective() float64 {
	lin := kernel.Dot(p.g, p.xk)
	if p.sparseSolver {
		return lin + kernel.CSCQForm(p.HCSC, p.xk)/2
	}
	return lin + kernel.QForm(p.H, p.xk, p.nV)/2
}

// GetPhi returns phi(xk) = 1/2 xkᵀCxk + g_phiᵀxk + phi_const, the
// complementarity violation measure. Grounded on LCQProblem::getPhi.
func (p *Problem) GetPhi() float64 {
	linear := 0.0
	if p.gPhi != nil {
		linear = kernel.Dot(p.gPhi, p.xk)
	}
	if p.sparseSolver {
		return p.phiConst + linear + kernel.CSCQForm(p.CCSC, p.xk)/2
	}
	return p.phiConst + linear + kernel.QForm(p.C, p.xk, p.nV)/2
}

// GetMerit returns gᵀxk + 1/2 xkᵀQkxk, the penalty-augmented merit value.
// Grounded on LCQProblem::getMerit.
func (p *Problem) GetMerit() float64 {
	lin := kernel.Dot(p.g, p.xk)
	if p.sparseSolver {
		return lin + kernel.CSCQForm(p.QkCSC, p.xk)/2
	}
	return lin + kernel.QForm(p.Qk, p.xk, p.nV)/2
}

// Clear resets all loaded problem data and iterate state, leaving nV/nC/
// nComp and options intact, so the Problem can be reloaded. Idempotent,
// grounded on LCQProblem::clear.
func (p *Problem) Clear() {
	p.sparseSolver = false
	p.H, p.A, p.S1, p.S2, p.C, p.Qk = nil, nil, nil, nil, nil, nil
	p.HCSC, p.ACSC, p.S1CSC, p.S2CSC, p.CCSC, p.QkCSC = nil, nil, nil, nil, nil, nil
	p.qkIndicesOfC = nil
	p.g, p.gTilde, p.gPhi, p.gK = nil, nil, nil, nil
	p.lbS1, p.lbS2 = nil, nil
	p.phiConst = 0
	p.lbA, p.ubA = nil, nil
	p.lb, p.ub = nil, nil
	p.lbTmp, p.ubTmp = nil, nil
	p.x0, p.y0 = nil, nil
	p.xk, p.yk, p.yA = nil, nil, nil
	p.xNew, p.pk, p.statK = nil, nil, nil
	p.lastS1x, p.lastS2x = nil, nil
	p.alphaK = 0
	p.rho = 0
	p.outerIter, p.innerIter, p.totalIter = 0, 0, 0
	p.qpIterK, p.qpExitFlag = 0, 0
	p.algoStat = ProblemNotSolved
	p.complHistory = nil
	p.solver = nil
	p.initialized = false
}

// LoadDense stores a fully dense LCQP. Nil slices are substituted with
// their spec §4.3 defaults: lbA = -inf, ubA = +inf, lbS1 = lbS2 = 0,
// ubS1 = ubS2 = +inf, x0 = 0, y0 = backend-dependent zeros (seeded in
// InitializeSolver since nDuals depends on the chosen backend).
func (p *Problem) LoadDense(H, g, S1, S2, lbS1, ubS1, lbS2, ubS2, A, lbA, ubA, lb, ub, x0, y0 []float64) error {
	if H == nil || g == nil || S1 == nil || S2 == nil {
		return NewError(LCQPObjectNotSetup, nil)
	}
	if len(H) != p.nV*p.nV || len(g) != p.nV {
		return NewError(LCQPObjectNotSetup, nil)
	}
	if len(S1) != p.nComp*p.nV || len(S2) != p.nComp*p.nV {
		return NewError(InvalidComplementarityMatrix, nil)
	}
	if p.nC > 0 && (A == nil || len(A) != p.nC*p.nV) {
		return NewError(InvalidConstraintMatrix, nil)
	}

	p.Clear()
	p.g = append([]float64(nil), g...)
	p.H = mat.NewDense(p.nV, p.nV, append([]float64(nil), H...))

	p.lbTmp = copyOrNil(lb, p.nV)
	p.ubTmp = copyOrNil(ub, p.nV)

	rows := p.nC + 2*p.nComp
	combined := mat.NewDense(rows, p.nV, nil)
	if p.nC > 0 {
		for i := 0; i < p.nC; i++ {
			for j := 0; j < p.nV; j++ {
				combined.Set(i, j, A[i*p.nV+j])
			}
		}
	}
	p.S1 = mat.NewDense(p.nComp, p.nV, append([]float64(nil), S1...))
	p.S2 = mat.NewDense(p.nComp, p.nV, append([]float64(nil), S2...))
	for i := 0; i < p.nComp; i++ {
		for j := 0; j < p.nV; j++ {
			combined.Set(p.nC+i, j, p.S1.At(i, j))
			combined.Set(p.nC+p.nComp+i, j, p.S2.At(i, j))
		}
	}
	p.A = combined

	p.lbA = make([]float64, rows)
	p.ubA = make([]float64, rows)
	fillBound(p.lbA[:p.nC], lbA, negInf)
	fillBound(p.ubA[:p.nC], ubA, posInf)

	p.lbS1 = defaultZero(lbS1, p.nComp)
	p.lbS2 = defaultZero(lbS2, p.nComp)
	fillBound(p.lbA[p.nC:p.nC+p.nComp], lbS1, 0)
	fillBound(p.ubA[p.nC:p.nC+p.nComp], ubS1, posInf)
	fillBound(p.lbA[p.nC+p.nComp:], lbS2, 0)
	fillBound(p.ubA[p.nC+p.nComp:], ubS2, posInf)

	sym := kernel.SymProduct(p.S1, p.S2, p.nComp, p.nV)
	p.C = denseFromSym(sym)

	p.x0 = copyOrNil(x0, p.nV)
	p.y0 = append([]float64(nil), y0...)

	p.sparseSolver = false
	return nil
}

// LoadCSC stores an LCQP whose matrices are supplied in CSC form.
func (p *Problem) LoadCSC(H *kernel.CSC, g []float64, S1, S2 *kernel.CSC, lbS1, ubS1, lbS2, ubS2 []float64, A *kernel.CSC, lbA, ubA, lb, ub, x0, y0 []float64) error {
	if H == nil || g == nil || S1 == nil || S2 == nil {
		return NewError(LCQPObjectNotSetup, nil)
	}
	if len(g) != p.nV {
		return NewError(LCQPObjectNotSetup, nil)
	}
	if p.nC > 0 && A == nil {
		return NewError(InvalidConstraintMatrix, nil)
	}

	p.Clear()
	p.g = append([]float64(nil), g...)
	p.HCSC = H.Clone()

	p.lbTmp = copyOrNil(lb, p.nV)
	p.ubTmp = copyOrNil(ub, p.nV)

	rows := p.nC + 2*p.nComp
	blocks := []kernel.VStackBlock{
		{Mat: S1, RowOffset: p.nC},
		{Mat: S2, RowOffset: p.nC + p.nComp},
	}
	if A != nil {
		blocks = append([]kernel.VStackBlock{{Mat: A, RowOffset: 0}}, blocks...)
	}
	p.ACSC = kernel.VStackCSC(rows, p.nV, blocks)
	p.S1CSC = S1.Clone()
	p.S2CSC = S2.Clone()

	p.lbA = make([]float64, rows)
	p.ubA = make([]float64, rows)
	fillBound(p.lbA[:p.nC], lbA, negInf)
	fillBound(p.ubA[:p.nC], ubA, posInf)

	p.lbS1 = defaultZero(lbS1, p.nComp)
	p.lbS2 = defaultZero(lbS2, p.nComp)
	fillBound(p.lbA[p.nC:p.nC+p.nComp], lbS1, 0)
	fillBound(p.ubA[p.nC:p.nC+p.nComp], ubS1, posInf)
	fillBound(p.lbA[p.nC+p.nComp:], lbS2, 0)
	fillBound(p.ubA[p.nC+p.nComp:], ubS2, posInf)

	p.CCSC = kernel.CSCSymProduct(p.S1CSC, p.S2CSC)

	p.x0 = copyOrNil(x0, p.nV)
	p.y0 = append([]float64(nil), y0...)

	p.sparseSolver = true
	return nil
}

// FilePaths names the plain-text files LoadFromFiles reads from, one
// floating-point value per line (spec §6). Optional fields may be left
// empty.
type FilePaths struct {
	H, G, S1, S2                 string
	LbS1, UbS1, LbS2, UbS2       string
	A, LbA, UbA                  string
	Lb, Ub, X0, Y0               string
}

// LoadFromFiles reads a dense LCQP from plain-text files (spec §6's file
// format) and loads it via LoadDense, mirroring LCQProblem's file-based
// loadLCQP overload.
func (p *Problem) LoadFromFiles(paths FilePaths) error {
	H, err := readMatrixFile(paths.H, p.nV, p.nV)
	if err != nil {
		return err
	}
	g, err := readVectorFile(paths.G, p.nV)
	if err != nil {
		return err
	}
	S1, err := readMatrixFile(paths.S1, p.nComp, p.nV)
	if err != nil {
		return err
	}
	S2, err := readMatrixFile(paths.S2, p.nComp, p.nV)
	if err != nil {
		return err
	}
	lbS1, err := readVectorFile(paths.LbS1, p.nComp)
	if err != nil {
		return err
	}
	ubS1, err := readVectorFile(paths.UbS1, p.nComp)
	if err != nil {
		return err
	}
	lbS2, err := readVectorFile(paths.LbS2, p.nComp)
	if err != nil {
		return err
	}
	ubS2, err := readVectorFile(paths.UbS2, p.nComp)
	if err != nil {
		return err
	}
	var A []float64
	if p.nC > 0 {
		A, err = readMatrixFile(paths.A, p.nC, p.nV)
		if err != nil {
			return err
		}
	}
	lbA, err := readVectorFile(paths.LbA, p.nC)
	if err != nil {
		return err
	}
	ubA, err := readVectorFile(paths.UbA, p.nC)
	if err != nil {
		return err
	}
	lb, err := readVectorFile(paths.Lb, p.nV)
	if err != nil {
		return err
	}
	ub, err := readVectorFile(paths.Ub, p.nV)
	if err != nil {
		return err
	}
	x0, err := readVectorFile(paths.X0, p.nV)
	if err != nil {
		return err
	}
	y0, err := readVectorFile(paths.Y0, -1)
	if err != nil {
		return err
	}
	return p.LoadDense(H, g, S1, S2, lbS1, ubS1, lbS2, ubS2, A, lbA, ubA, lb, ub, x0, y0)
}

func readFloatsFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewError(UnableToReadFile, err)
	}
	defer f.Close()

	var out []float64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, NewError(UnableToReadFile, err)
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, NewError(UnableToReadFile, err)
	}
	return out, nil
}

// readMatrixFile reads a row-major flat matrix of shape rows x cols. An
// empty path yields (nil, nil) — the field is optional.
func readMatrixFile(path string, rows, cols int) ([]float64, error) {
	if path == "" {
		return nil, nil
	}
	vals, err := readFloatsFile(path)
	if err != nil {
		return nil, err
	}
	if len(vals) != rows*cols {
		return nil, NewError(UnableToReadFile, nil)
	}
	return vals, nil
}

// readVectorFile reads a flat vector of length n. A negative n skips the
// length check (used for the dual guess, whose length depends on the
// chosen backend). An empty path yields (nil, nil).
func readVectorFile(path string, n int) ([]float64, error) {
	if path == "" {
		return nil, nil
	}
	vals, err := readFloatsFile(path)
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(vals) != n {
		return nil, NewError(UnableToReadFile, nil)
	}
	return vals, nil
}

func copyOrNil(v []float64, n int) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, n)
	copy(out, v)
	return out
}

func defaultZero(v []float64, n int) []float64 {
	if v != nil {
		out := make([]float64, n)
		copy(out, v)
		return out
	}
	return make([]float64, n)
}

func fillBound(dst, src []float64, def float64) {
	if src != nil {
		copy(dst, src)
		return
	}
	for i := range dst {
		dst[i] = def
	}
}

// InitializeSolver constructs the bound subsolver backend for the
// currently-loaded problem and finishes the penalty bookkeeping (g_tilde,
// g_phi, phi_const). It must be called once after a Load* call and before
// Solve, and again after any subsequent Load* call. Grounded on
// LCQProblem::initializeSolver.
func (p *Problem) InitializeSolver() error {
	if p.g == nil {
		return NewError(LCQPObjectNotSetup, nil)
	}

	rows := p.nC + 2*p.nComp
	hasBox := p.lbTmp != nil || p.ubTmp != nil

	switch p.options.QPSolver() {
	case subsolver.QPOASESDense:
		if p.sparseSolver {
			if err := p.switchToDenseMode(); err != nil {
				return err
			}
		}
		p.nDuals = p.nV + rows
		p.boxDualOffset = p.nV
		p.bindBoxBounds()
		p.solver = subsolver.NewDenseActiveSet(p.H, p.A, p.nV, rows)

	case subsolver.QPOASESSparse:
		if !p.sparseSolver {
			if err := p.switchToSparseMode(); err != nil {
				return err
			}
		}
		p.nDuals = p.nV + rows
		p.boxDualOffset = p.nV
		p.bindBoxBounds()
		solver, err := subsolver.NewSparseActiveSet(p.HCSC, p.ACSC, p.nV, rows)
		if err != nil {
			return NewError(SubproblemSolverError, err)
		}
		p.solver = solver

	case subsolver.OSQPSparse:
		if hasBox {
			return NewError(InvalidOSQPBoxConstraints, nil)
		}
		if !p.sparseSolver {
			if err := p.switchToSparseMode(); err != nil {
				return err
			}
		}
		p.nDuals = rows
		p.boxDualOffset = 0
		if p.y0 != nil && len(p.y0) == p.nV+rows {
			p.y0 = append([]float64(nil), p.y0[p.nV:]...)
		}
		solver, err := subsolver.NewSparseOperatorSplitting(p.HCSC, p.ACSC, p.nV, rows)
		if err != nil {
			return NewError(SubproblemSolverError, err)
		}
		p.solver = solver

	default:
		return NewError(InvalidOptionValue, nil)
	}
	p.solver.SetPrintLevel(p.options.subsolverPrintLevel())

	if p.lbS1 != nil || p.lbS2 != nil {
		p.phiConst = kernel.Dot(p.lbS1, p.lbS2)
	}
	p.gPhi = make([]float64, p.nV)
	if p.sparseSolver {
		addTransposed(p.gPhi, kernel.CSCMatVecT(p.S2CSC, p.lbS1))
		addTransposed(p.gPhi, kernel.CSCMatVecT(p.S1CSC, p.lbS2))
	} else {
		addTransposed(p.gPhi, kernel.MatVecT(p.S2, p.lbS1, p.nComp, p.nV))
		addTransposed(p.gPhi, kernel.MatVecT(p.S1, p.lbS2, p.nComp, p.nV))
	}
	for i := range p.gPhi {
		p.gPhi[i] = -p.gPhi[i]
	}

	p.alphaK = 1
	p.rho = p.options.InitialPenaltyParameter()
	p.computeGTilde()
	p.outerIter, p.innerIter, p.totalIter = 0, 0, 0
	p.algoStat = ProblemNotSolved
	p.complHistory = nil

	p.xk = copyOrNil(p.x0, p.nV)
	if p.xk == nil {
		p.xk = make([]float64, p.nV)
	}
	if p.y0 != nil {
		p.yk = append([]float64(nil), p.y0...)
	} else {
		p.yk = make([]float64, p.nDuals)
	}
	p.yA = make([]float64, rows)

	p.lbTmp, p.ubTmp = nil, nil
	p.initialized = true
	return nil
}

// switchToSparseMode converts the loaded dense representation (H, A, S1,
// S2, C) to CSC and frees the dense matrices. Grounded on
// LCQProblem::switchToSparseMode; called from InitializeSolver when the
// configured backend wants sparse but the problem was loaded dense.
func (p *Problem) switchToSparseMode() error {
	if p.H == nil || p.A == nil || p.S1 == nil || p.S2 == nil || p.C == nil {
		return NewError(DenseSparseMismatch, nil)
	}
	HCSC := kernel.DenseToCSC(p.H)
	ACSC := kernel.DenseToCSC(p.A)
	S1CSC := kernel.DenseToCSC(p.S1)
	S2CSC := kernel.DenseToCSC(p.S2)
	CCSC := kernel.DenseToCSC(p.C)
	if HCSC == nil || ACSC == nil || S1CSC == nil || S2CSC == nil || CCSC == nil {
		return NewError(DenseSparseMismatch, nil)
	}
	p.HCSC, p.ACSC, p.S1CSC, p.S2CSC, p.CCSC = HCSC, ACSC, S1CSC, S2CSC, CCSC
	p.H, p.A, p.S1, p.S2, p.C = nil, nil, nil, nil, nil
	p.sparseSolver = true
	return nil
}

// switchToDenseMode converts the loaded CSC representation (H, A, S1, S2,
// C) back to dense and frees the CSC matrices. Grounded on
// LCQProblem::switchToDenseMode; called from InitializeSolver when the
// configured backend wants dense but the problem was loaded sparse.
func (p *Problem) switchToDenseMode() error {
	if p.HCSC == nil || p.ACSC == nil || p.S1CSC == nil || p.S2CSC == nil || p.CCSC == nil {
		return NewError(DenseSparseMismatch, nil)
	}
	H, errH := kernel.CSCToDense(p.HCSC)
	A, errA := kernel.CSCToDense(p.ACSC)
	S1, errS1 := kernel.CSCToDense(p.S1CSC)
	S2, errS2 := kernel.CSCToDense(p.S2CSC)
	C, errC := kernel.CSCToDense(p.CCSC)
	if errH != nil || errA != nil || errS1 != nil || errS2 != nil || errC != nil || H == nil || A == nil || S1 == nil || S2 == nil || C == nil {
		return NewError(DenseSparseMismatch, nil)
	}
	p.H, p.A, p.S1, p.S2, p.C = H, A, S1, S2, C
	p.HCSC, p.ACSC, p.S1CSC, p.S2CSC, p.CCSC = nil, nil, nil, nil, nil
	p.sparseSolver = false
	return nil
}

// bindBoxBounds moves the staged lb_tmp/ub_tmp into the active lb/ub bound
// slices used by active-set backends, substituting ±infinity defaults.
func (p *Problem) bindBoxBounds() {
	p.lb = make([]float64, p.nV)
	p.ub = make([]float64, p.nV)
	fillBound(p.lb, p.lbTmp, negInf)
	fillBound(p.ub, p.ubTmp, posInf)
}

// addTransposed adds src into dst elementwise; src may be nil (treated as
// all zero, i.e. a no-op).
func addTransposed(dst, src []float64) {
	if src == nil {
		return
	}
	for i := range dst {
		dst[i] += src[i]
	}
}

func denseFromSym(s *mat.SymDense) *mat.Dense {
	n := s.SymmetricDim()
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, s.At(i, j))
		}
	}
	return out
}
