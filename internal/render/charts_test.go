package render

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"popviz/internal/dataset"
	"popviz/internal/metrics"
)

func table(source string, alive ...int) *dataset.RunTable {
	t := &dataset.RunTable{Source: source}
	for month, a := range alive {
		t.Records = append(t.Records, dataset.RunRecord{
			Month: month, TotalAlive: a, Males: a / 2, Females: a - a/2,
		})
	}
	return t
}

func TestPopulationOverTime(t *testing.T) {
	c := New(t.TempDir())
	name, err := c.PopulationOverTime([]*dataset.RunTable{
		table("a.csv", 10, 12, 9),
		table("b.csv", 10, 8, 6),
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if name != "01_population_over_time.png" {
		t.Errorf("unexpected chart name %q", name)
	}
	info, err := os.Stat(filepath.Join(c.OutDir, name))
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestPopulationOverTimeSkipsShortRuns(t *testing.T) {
	c := New(t.TempDir())
	name, err := c.PopulationOverTime([]*dataset.RunTable{table("tiny.csv", 5)})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if name != "" {
		t.Errorf("expected chart skipped for degenerate runs, got %q", name)
	}
}

func TestGrowthRateDropsNaN(t *testing.T) {
	c := New(t.TempDir())
	tb := table("z.csv", 5, 0, 3, 6)
	rates := metrics.GrowthRate(tb)
	if !math.IsNaN(rates[1]) {
		t.Fatalf("fixture expected NaN at index 1, got %v", rates[1])
	}
	name, err := c.GrowthRate([]*dataset.RunTable{tb}, [][]float64{rates})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if name != "02_growth_rate.png" {
		t.Errorf("unexpected chart name %q", name)
	}
}

func TestPhasePlotFlatPopulation(t *testing.T) {
	// Min == Max must not produce a degenerate reference line.
	c := New(t.TempDir())
	tb := table("flat.csv", 8, 8, 8)
	name, err := c.PhasePlot(tb.Source, metrics.PhasePairs(tb))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if name != "03_phase_plot_flat.png" {
		t.Errorf("unexpected chart name %q", name)
	}
}

func TestNetChangeWithNegativeValues(t *testing.T) {
	c := New(t.TempDir())
	rows := []metrics.CombinedRow{
		{Source: "a.csv", Record: dataset.RunRecord{Month: 0, Births: 3, Deaths: 1}},
		{Source: "a.csv", Record: dataset.RunRecord{Month: 1, Births: 0, Deaths: 4}},
		{Source: "a.csv", Record: dataset.RunRecord{Month: 2, Births: 2, Deaths: 2}},
	}
	name, err := c.NetChange(rows, metrics.NetChangeRows(rows))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if name != "06_net_change.png" {
		t.Errorf("unexpected chart name %q", name)
	}
}

func TestSexRatio(t *testing.T) {
	c := New(t.TempDir())
	name, err := c.SexRatio(table("a.csv", 10, 9))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if name != "04b_sex_ratio_a.png" {
		t.Errorf("unexpected chart name %q", name)
	}
}

func TestSexRatioSkipsExtinctFinalMonth(t *testing.T) {
	c := New(t.TempDir())
	name, err := c.SexRatio(table("gone.csv", 10, 0))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if name != "" {
		t.Errorf("expected skip for extinct final month, got %q", name)
	}
}

func TestSummaryChartsSkipWithoutData(t *testing.T) {
	c := New(t.TempDir())
	if name, err := c.FinalPopulation(nil); err != nil || name != "" {
		t.Errorf("FinalPopulation(nil) = %q, %v", name, err)
	}
	if name, err := c.ExtinctionOutcomes(metrics.Cohorts{}); err != nil || name != "" {
		t.Errorf("ExtinctionOutcomes(empty) = %q, %v", name, err)
	}
}
