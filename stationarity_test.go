package lcqpow

import "testing"

func TestWeaklyActiveSet(t *testing.T) {
	s1x := []float64{0, 0, 5}
	s2x := []float64{0, 3, 0}
	w := WeaklyActiveSet(s1x, s2x, 1e-9)
	if len(w) != 1 || w[0] != 0 {
		t.Fatalf("WeaklyActiveSet = %v, want [0]", w)
	}
}

func TestClassifyStationarityAllStrong(t *testing.T) {
	// Both duals strictly positive at every weakly-active pair: S-stationary.
	yS1 := []float64{1, 2}
	yS2 := []float64{3, 4}
	w := []int{0, 1}
	got := ClassifyStationarity(yS1, yS2, w, 1e-9)
	if got != SStationary {
		t.Fatalf("ClassifyStationarity = %v, want SStationary", got)
	}
}

func TestClassifyStationarityWeak(t *testing.T) {
	// Duals of opposite sign: |dualProd| >= tol, dualMin <= 0 and
	// dualProd <= tol, so the pair forces an immediate W-stationary verdict.
	yS1 := []float64{-1}
	yS2 := []float64{1}
	w := []int{0}
	got := ClassifyStationarity(yS1, yS2, w, 1e-9)
	if got != WStationary {
		t.Fatalf("ClassifyStationarity = %v, want WStationary", got)
	}
}

func TestClassifyStationarityMordC(t *testing.T) {
	// Both duals negative: dualMin<0 disqualifies S; dualProd is large and
	// positive so it exceeds tol and isn't <= tol, disqualifying the
	// immediate W-stationary verdict and M-stationarity too, leaving
	// C-stationary.
	yS1 := []float64{-5}
	yS2 := []float64{-5}
	w := []int{0}
	got := ClassifyStationarity(yS1, yS2, w, 1e-9)
	if got != CStationary {
		t.Fatalf("ClassifyStationarity = %v, want CStationary", got)
	}
}

func TestTransformDuals(t *testing.T) {
	yS1 := []float64{1, 1}
	yS2 := []float64{2, 2}
	s2x := []float64{0.5, 0.5}
	s1x := []float64{0.25, 0.25}
	TransformDuals(yS1, yS2, s2x, s1x, 2.0)
	if yS1[0] != 1-2*0.5 || yS2[0] != 2-2*0.25 {
		t.Fatalf("TransformDuals gave yS1=%v yS2=%v", yS1, yS2)
	}
}

func TestStationarityTypeReturnValue(t *testing.T) {
	cases := map[StationarityType]ReturnValue{
		WStationary: WStationarySolution,
		CStationary: CStationarySolution,
		MStationary: MStationarySolution,
		SStationary: SStationarySolution,
	}
	for st, want := range cases {
		if got := st.ReturnValue(); got != want {
			t.Fatalf("%v.ReturnValue() = %v, want %v", st, got, want)
		}
	}
}
