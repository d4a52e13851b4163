package metrics

import (
	"math"
	"testing"

	"popviz/internal/dataset"
)

func runTable(source string, alive ...int) *dataset.RunTable {
	t := &dataset.RunTable{Source: source}
	for month, a := range alive {
		t.Records = append(t.Records, dataset.RunRecord{Month: month, TotalAlive: a})
	}
	return t
}

func TestGrowthRate(t *testing.T) {
	g := GrowthRate(runTable("run1", 10, 12, 9))
	if len(g) != 2 {
		t.Fatalf("expected length n-1 = 2, got %d", len(g))
	}
	if g[0] != 20.0 {
		t.Errorf("g[0] = %v, want 20.0", g[0])
	}
	if g[1] != -25.0 {
		t.Errorf("g[1] = %v, want -25.0", g[1])
	}
}

func TestGrowthRateZeroDenominatorIsNaN(t *testing.T) {
	g := GrowthRate(runTable("r", 5, 0, 3))
	if len(g) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(g))
	}
	if g[0] != -100.0 {
		t.Errorf("g[0] = %v, want -100.0", g[0])
	}
	if !math.IsNaN(g[1]) {
		t.Errorf("g[1] = %v, want NaN for zero denominator", g[1])
	}
}

func TestGrowthRateDegenerateTables(t *testing.T) {
	if g := GrowthRate(runTable("empty")); len(g) != 0 {
		t.Errorf("empty table: got %v", g)
	}
	if g := GrowthRate(runTable("single", 10)); len(g) != 0 {
		t.Errorf("single-period table: got %v", g)
	}
}

func TestPhasePairs(t *testing.T) {
	p := PhasePairs(runTable("run1", 10, 12, 9))
	if len(p.Pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(p.Pairs))
	}
	if p.Pairs[0] != (PhasePair{Current: 10, Next: 12}) {
		t.Errorf("pair 0 = %+v", p.Pairs[0])
	}
	if p.Pairs[1] != (PhasePair{Current: 12, Next: 9}) {
		t.Errorf("pair 1 = %+v", p.Pairs[1])
	}
	if p.Min != 9 || p.Max != 12 {
		t.Errorf("extremes = %d/%d, want 9/12", p.Min, p.Max)
	}
}

func TestPhasePairsDegenerate(t *testing.T) {
	if p := PhasePairs(runTable("empty")); len(p.Pairs) != 0 {
		t.Errorf("empty table produced pairs: %+v", p)
	}
	p := PhasePairs(runTable("single", 7))
	if len(p.Pairs) != 0 {
		t.Errorf("single period produced pairs: %+v", p)
	}
	if p.Min != 7 || p.Max != 7 {
		t.Errorf("extremes = %d/%d, want 7/7", p.Min, p.Max)
	}
}

func TestNetChange(t *testing.T) {
	table := &dataset.RunTable{Source: "r", Records: []dataset.RunRecord{
		{Month: 0, Births: 3, Deaths: 1},
		{Month: 1, Births: 2, Deaths: 2},
		{Month: 2, Births: 0, Deaths: 4},
	}}
	net := NetChange(table)
	if len(net) != table.Len() {
		t.Fatalf("length %d, want %d", len(net), table.Len())
	}
	for i, want := range []int{2, 0, -4} {
		if net[i] != want {
			t.Errorf("net[%d] = %d, want %d", i, net[i], want)
		}
	}
}

func TestPartitionIsTotalAndDisjoint(t *testing.T) {
	s := &dataset.SummaryTable{Records: []dataset.SummaryRecord{
		{SimNumber: 1, FinalAlive: 0, MonthsSimulated: 5, ExtinctionMonth: 5},
		{SimNumber: 2, FinalAlive: 40, MonthsSimulated: 24, ExtinctionMonth: 0},
	}}
	c := Partition(s)
	if len(c.Extinct)+len(c.Surviving) != len(s.Records) {
		t.Fatalf("partition not total: %d + %d != %d", len(c.Extinct), len(c.Surviving), len(s.Records))
	}
	if len(c.Extinct) != 1 || c.Extinct[0].SimNumber != 1 {
		t.Errorf("extinct cohort = %+v, want sim 1", c.Extinct)
	}
	if len(c.Surviving) != 1 || c.Surviving[0].SimNumber != 2 {
		t.Errorf("surviving cohort = %+v, want sim 2", c.Surviving)
	}
}

func TestPartitionNilSummary(t *testing.T) {
	c := Partition(nil)
	if len(c.Extinct) != 0 || len(c.Surviving) != 0 {
		t.Errorf("nil summary produced cohorts: %+v", c)
	}
}

func TestConcatPreservesDiscoveryOrder(t *testing.T) {
	a := runTable("a.csv", 10, 12)
	b := runTable("b.csv", 5)
	rows := Concat([]*dataset.RunTable{a, b})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	wantSources := []string{"a.csv", "a.csv", "b.csv"}
	wantMonths := []int{0, 1, 0}
	for i := range rows {
		if rows[i].Source != wantSources[i] || rows[i].Record.Month != wantMonths[i] {
			t.Errorf("row %d = %s month %d, want %s month %d",
				i, rows[i].Source, rows[i].Record.Month, wantSources[i], wantMonths[i])
		}
	}
}

func TestNetChangeRows(t *testing.T) {
	rows := []CombinedRow{
		{Source: "a", Record: dataset.RunRecord{Births: 1, Deaths: 3}},
		{Source: "b", Record: dataset.RunRecord{Births: 3, Deaths: 3}},
	}
	net := NetChangeRows(rows)
	if net[0] != -2 || net[1] != 0 {
		t.Errorf("net = %v, want [-2 0]", net)
	}
}
