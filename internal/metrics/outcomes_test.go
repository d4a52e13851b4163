package metrics

import (
	"math"
	"testing"

	"popviz/internal/dataset"
)

func TestOutcomes(t *testing.T) {
	s := &dataset.SummaryTable{Records: []dataset.SummaryRecord{
		{SimNumber: 1, FinalAlive: 0, MonthsSimulated: 5, ExtinctionMonth: 5},
		{SimNumber: 2, FinalAlive: 40, MonthsSimulated: 24, ExtinctionMonth: 0},
		{SimNumber: 3, FinalAlive: 20, MonthsSimulated: 24, ExtinctionMonth: 0},
	}}
	st := Outcomes(s)

	if st.N != 3 {
		t.Fatalf("N = %d, want 3", st.N)
	}
	if st.MeanAlive != 20.0 {
		t.Errorf("mean = %v, want 20", st.MeanAlive)
	}
	// population sd of {0, 40, 20}: sqrt((0+1600+400)/3 - 400) = sqrt(800/3)
	wantSd := math.Sqrt(800.0 / 3.0)
	if math.Abs(st.StdAlive-wantSd) > 1e-9 {
		t.Errorf("sd = %v, want %v", st.StdAlive, wantSd)
	}
	if st.MinAlive != 0 || st.MaxAlive != 40 {
		t.Errorf("min/max = %d/%d, want 0/40", st.MinAlive, st.MaxAlive)
	}
	ci := 1.96 * wantSd / math.Sqrt(3)
	if math.Abs(st.CILow-(20-ci)) > 1e-9 || math.Abs(st.CIHigh-(20+ci)) > 1e-9 {
		t.Errorf("CI = [%v; %v], want [%v; %v]", st.CILow, st.CIHigh, 20-ci, 20+ci)
	}
	if st.Extinctions != 1 {
		t.Errorf("extinctions = %d, want 1", st.Extinctions)
	}
	if math.Abs(st.ExtinctPct-100.0/3.0) > 1e-9 {
		t.Errorf("extinct pct = %v, want %v", st.ExtinctPct, 100.0/3.0)
	}
}

func TestOutcomesEmpty(t *testing.T) {
	if st := Outcomes(nil); st.N != 0 {
		t.Errorf("nil summary: %+v", st)
	}
	if st := Outcomes(&dataset.SummaryTable{}); st.N != 0 {
		t.Errorf("empty summary: %+v", st)
	}
}

func TestOutcomesIdenticalValuesHaveZeroSpread(t *testing.T) {
	s := &dataset.SummaryTable{Records: []dataset.SummaryRecord{
		{SimNumber: 1, FinalAlive: 7},
		{SimNumber: 2, FinalAlive: 7},
	}}
	st := Outcomes(s)
	if st.StdAlive != 0 {
		t.Errorf("sd = %v, want 0", st.StdAlive)
	}
	if st.CILow != 7 || st.CIHigh != 7 {
		t.Errorf("CI = [%v; %v], want [7; 7]", st.CILow, st.CIHigh)
	}
}
