package lcqpow

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// writeFloatsFile writes one value per line, the plain-text layout
// readFloatsFile expects.
func writeFloatsFile(t *testing.T, dir, name string, vals []float64) string {
	t.Helper()
	path := filepath.Join(dir, name)
	var buf []byte
	for _, v := range vals {
		buf = append(buf, []byte(strconv.FormatFloat(v, 'g', -1, 64)+"\n")...)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", name, err)
	}
	return path
}

// TestLoadFromFiles covers spec.md §8 scenario 4: a dense LCQP loaded from
// plain-text files. The pack ships no example_data directory to read
// verbatim, so this test writes the scenario-1 two-variable problem out to
// a temp directory, loads it with LoadFromFiles, solves it, and checks that
// the optimum is the (1,0) or (0,1) the LoadDense scenario-1 test expects
// (see DESIGN.md for the substitution note).
func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	paths := FilePaths{
		H:   writeFloatsFile(t, dir, "H.txt", []float64{2, 0, 0, 2}),
		G:   writeFloatsFile(t, dir, "g.txt", []float64{-2, -2}),
		S1:  writeFloatsFile(t, dir, "S1.txt", []float64{1, 0}),
		S2:  writeFloatsFile(t, dir, "S2.txt", []float64{0, 1}),
		Lb:  writeFloatsFile(t, dir, "lb.txt", []float64{0, 0}),
		X0:  writeFloatsFile(t, dir, "x0.txt", []float64{1, 1}),
	}

	p, err := NewProblem(2, 0, 1)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	if err := p.LoadFromFiles(paths); err != nil {
		t.Fatalf("LoadFromFiles: %v", err)
	}
	if err := p.InitializeSolver(); err != nil {
		t.Fatalf("InitializeSolver: %v", err)
	}
	status, err := p.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !status.IsStationarySolution() {
		t.Fatalf("status = %v, want a stationary solution", status)
	}

	x := make([]float64, 2)
	p.GetPrimalSolution(x)
	onAxis := (approx(x[0], 1) && approx(x[1], 0)) || (approx(x[0], 0) && approx(x[1], 1))
	if !onAxis {
		t.Fatalf("solution = %v, want (1,0) or (0,1)", x)
	}
}

// TestLoadFromFilesRejectsShapeMismatch checks that a malformed matrix file
// (wrong element count) surfaces UnableToReadFile rather than silently
// truncating or panicking.
func TestLoadFromFilesRejectsShapeMismatch(t *testing.T) {
	dir := t.TempDir()
	paths := FilePaths{
		H:  writeFloatsFile(t, dir, "H.txt", []float64{2, 0, 0}), // missing one entry
		G:  writeFloatsFile(t, dir, "g.txt", []float64{-2, -2}),
		S1: writeFloatsFile(t, dir, "S1.txt", []float64{1, 0}),
		S2: writeFloatsFile(t, dir, "S2.txt", []float64{0, 1}),
		Lb: writeFloatsFile(t, dir, "lb.txt", []float64{0, 0}),
		X0: writeFloatsFile(t, dir, "x0.txt", []float64{1, 1}),
	}

	p, err := NewProblem(2, 0, 1)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	if err := p.LoadFromFiles(paths); err == nil {
		t.Fatalf("LoadFromFiles: want error on malformed H.txt, got nil")
	}
}
