// Package render maps loaded tables and derived series onto static PNG
// charts. It consumes engine output as-is and never re-derives metrics.
package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"popviz/internal/dataset"
	"popviz/internal/metrics"
)

const (
	chartWidth  = 1280
	chartHeight = 720
)

// Charts renders the fixed chart set into an output directory.
type Charts struct {
	OutDir string
}

// New returns a Charts writing into outDir.
func New(outDir string) *Charts {
	return &Charts{OutDir: outDir}
}

func (c *Charts) write(name string, render func(w *os.File) error) (string, error) {
	path := filepath.Join(c.OutDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()
	if err := render(f); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return name, nil
}

func lineStyle(i int) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: chart.GetDefaultColor(i),
	}
}

func dotStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

// PopulationOverTime draws TotalAlive against Month, one series per run,
// legend keyed by source. Runs with fewer than two periods are skipped; the
// chart is skipped entirely (empty name, nil error) when no run qualifies.
func (c *Charts) PopulationOverTime(tables []*dataset.RunTable) (string, error) {
	var series []chart.Series
	for i, t := range tables {
		if t.Len() < 2 {
			continue
		}
		xs := make([]float64, t.Len())
		ys := make([]float64, t.Len())
		for j, r := range t.Records {
			xs[j] = float64(r.Month)
			ys[j] = float64(r.TotalAlive)
		}
		series = append(series, chart.ContinuousSeries{
			Name: t.Source, XValues: xs, YValues: ys, Style: lineStyle(i),
		})
	}
	if len(series) == 0 {
		return "", nil
	}
	ch := chart.Chart{
		Title:  "Population Over Time",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "Month"},
		YAxis:  chart.YAxis{Name: "Total Alive"},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return c.write("01_population_over_time.png", func(w *os.File) error {
		return ch.Render(chart.PNG, w)
	})
}

// GrowthRate draws each run's growth-rate series against the month of the
// later period of each pair. rates[i] belongs to tables[i]; NaN elements
// (zero-population denominators) are dropped from that run's series.
func (c *Charts) GrowthRate(tables []*dataset.RunTable, rates [][]float64) (string, error) {
	var series []chart.Series
	for i, t := range tables {
		if i >= len(rates) || len(rates[i]) == 0 {
			continue
		}
		var xs, ys []float64
		for j, rate := range rates[i] {
			if math.IsNaN(rate) {
				continue
			}
			xs = append(xs, float64(t.Records[j+1].Month))
			ys = append(ys, rate)
		}
		if len(xs) < 2 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name: t.Source, XValues: xs, YValues: ys, Style: lineStyle(i),
		})
	}
	if len(series) == 0 {
		return "", nil
	}
	ch := chart.Chart{
		Title:  "Monthly Population Growth Rate",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "Month"},
		YAxis:  chart.YAxis{Name: "Growth Rate (%)"},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return c.write("02_growth_rate.png", func(w *os.File) error {
		return ch.Render(chart.PNG, w)
	})
}

// PhasePlot draws one run's (population at t, population at t+1) pairs as a
// scatter, with the y=x no-change reference between the table's population
// extremes. Skipped when the run formed no pairs.
func (c *Charts) PhasePlot(source string, ph metrics.Phase) (string, error) {
	if len(ph.Pairs) == 0 {
		return "", nil
	}
	xs := make([]float64, len(ph.Pairs))
	ys := make([]float64, len(ph.Pairs))
	for i, p := range ph.Pairs {
		xs[i] = float64(p.Current)
		ys[i] = float64(p.Next)
	}
	lo, hi := float64(ph.Min), float64(ph.Max)
	if lo == hi {
		// Degenerate reference span; widen so the line is drawable.
		hi = lo + 1
	}
	ch := chart.Chart{
		Title:  "Phase Plot - " + source,
		Width:  chartHeight,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "Population at Month t"},
		YAxis:  chart.YAxis{Name: "Population at Month t+1"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: source, XValues: xs, YValues: ys,
				Style: dotStyle(chart.ColorBlue),
			},
			chart.ContinuousSeries{
				Name:    "No change",
				XValues: []float64{lo, hi},
				YValues: []float64{lo, hi},
				Style: chart.Style{
					StrokeWidth:     2,
					StrokeColor:     chart.ColorRed,
					StrokeDashArray: []float64{5, 5},
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return c.write(fmt.Sprintf("03_phase_plot_%s.png", stem(source)), func(w *os.File) error {
		return ch.Render(chart.PNG, w)
	})
}

// PopulationStructure draws one run's male and female counts over time.
func (c *Charts) PopulationStructure(t *dataset.RunTable) (string, error) {
	if t.Len() < 2 {
		return "", nil
	}
	xs := make([]float64, t.Len())
	males := make([]float64, t.Len())
	females := make([]float64, t.Len())
	for i, r := range t.Records {
		xs[i] = float64(r.Month)
		males[i] = float64(r.Males)
		females[i] = float64(r.Females)
	}
	ch := chart.Chart{
		Title:  "Sex Distribution Over Time - " + t.Source,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "Month"},
		YAxis:  chart.YAxis{Name: "Count"},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Males", XValues: xs, YValues: males,
				Style: chart.Style{StrokeWidth: 2, StrokeColor: chart.ColorBlue}},
			chart.ContinuousSeries{Name: "Females", XValues: xs, YValues: females,
				Style: chart.Style{StrokeWidth: 2, StrokeColor: chart.ColorRed}},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return c.write(fmt.Sprintf("04_population_structure_%s.png", stem(t.Source)), func(w *os.File) error {
		return ch.Render(chart.PNG, w)
	})
}

// SexRatio draws the final month's male/female split of one run as a pie.
// Skipped when the run is empty or nothing was alive at the final month.
func (c *Charts) SexRatio(t *dataset.RunTable) (string, error) {
	if t.Len() == 0 {
		return "", nil
	}
	last := t.Records[t.Len()-1]
	if last.Males+last.Females == 0 {
		return "", nil
	}
	var values []chart.Value
	if last.Males > 0 {
		values = append(values, chart.Value{
			Value: float64(last.Males), Label: fmt.Sprintf("Males (%d)", last.Males),
			Style: chart.Style{FillColor: chart.ColorBlue},
		})
	}
	if last.Females > 0 {
		values = append(values, chart.Value{
			Value: float64(last.Females), Label: fmt.Sprintf("Females (%d)", last.Females),
			Style: chart.Style{FillColor: chart.ColorRed},
		})
	}
	ch := chart.PieChart{
		Title:  fmt.Sprintf("Final Sex Ratio (Month %d) - %s", last.Month, t.Source),
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}
	return c.write(fmt.Sprintf("04b_sex_ratio_%s.png", stem(t.Source)), func(w *os.File) error {
		return ch.Render(chart.PNG, w)
	})
}

// BirthsDeaths draws the combined multi-run births and deaths counts per
// month as two scatter series over the unordered union of all runs.
func (c *Charts) BirthsDeaths(rows []metrics.CombinedRow) (string, error) {
	if len(rows) < 2 {
		return "", nil
	}
	xs := make([]float64, len(rows))
	births := make([]float64, len(rows))
	deaths := make([]float64, len(rows))
	for i, row := range rows {
		xs[i] = float64(row.Record.Month)
		births[i] = float64(row.Record.Births)
		deaths[i] = float64(row.Record.Deaths)
	}
	ch := chart.Chart{
		Title:  "Monthly Births vs Deaths",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "Month"},
		YAxis:  chart.YAxis{Name: "Count"},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Births", XValues: xs, YValues: births,
				Style: dotStyle(chart.ColorGreen)},
			chart.ContinuousSeries{Name: "Deaths", XValues: xs, YValues: deaths,
				Style: dotStyle(chart.ColorRed)},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return c.write("05_births_vs_deaths.png", func(w *os.File) error {
		return ch.Render(chart.PNG, w)
	})
}

// NetChange draws the combined net-change series as bars colored by sign:
// green for non-negative (zero included), red for negative. net[i] belongs
// to rows[i].
func (c *Charts) NetChange(rows []metrics.CombinedRow, net []int) (string, error) {
	if len(rows) == 0 || len(net) != len(rows) {
		return "", nil
	}
	bars := make([]chart.Value, len(rows))
	for i, row := range rows {
		col := chart.ColorGreen
		if net[i] < 0 {
			col = chart.ColorRed
		}
		bars[i] = chart.Value{
			Value: float64(net[i]),
			Label: fmt.Sprintf("%d", row.Record.Month),
			Style: chart.Style{FillColor: col, StrokeColor: col},
		}
	}
	ch := chart.BarChart{
		Title:    "Net Population Change Per Month",
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: barWidth(len(bars)),
		Bars:     bars,
	}
	return c.write("06_net_change.png", func(w *os.File) error {
		return ch.Render(chart.PNG, w)
	})
}

// FinalPopulation draws the final population of each simulation from the
// summary table.
func (c *Charts) FinalPopulation(s *dataset.SummaryTable) (string, error) {
	if s == nil || len(s.Records) == 0 {
		return "", nil
	}
	bars := make([]chart.Value, len(s.Records))
	for i, r := range s.Records {
		bars[i] = chart.Value{
			Value: float64(r.FinalAlive),
			Label: fmt.Sprintf("%d", r.SimNumber),
			Style: chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue},
		}
	}
	ch := chart.BarChart{
		Title:    "Final Population by Simulation",
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: barWidth(len(bars)),
		Bars:     bars,
	}
	return c.write("07_final_population.png", func(w *os.File) error {
		return ch.Render(chart.PNG, w)
	})
}

// ExtinctionOutcomes draws one bar per simulation: extinct runs at their
// extinction month in red, surviving runs at their simulated span in green.
func (c *Charts) ExtinctionOutcomes(cohorts metrics.Cohorts) (string, error) {
	total := len(cohorts.Extinct) + len(cohorts.Surviving)
	if total == 0 {
		return "", nil
	}
	bars := make([]chart.Value, 0, total)
	for _, r := range cohorts.Extinct {
		bars = append(bars, chart.Value{
			Value: float64(r.ExtinctionMonth),
			Label: fmt.Sprintf("%d", r.SimNumber),
			Style: chart.Style{FillColor: chart.ColorRed, StrokeColor: chart.ColorRed},
		})
	}
	for _, r := range cohorts.Surviving {
		bars = append(bars, chart.Value{
			Value: float64(r.MonthsSimulated),
			Label: fmt.Sprintf("%d", r.SimNumber),
			Style: chart.Style{FillColor: chart.ColorGreen, StrokeColor: chart.ColorGreen},
		})
	}
	ch := chart.BarChart{
		Title:    "Survival vs Extinction",
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: barWidth(len(bars)),
		Bars:     bars,
	}
	return c.write("08_extinction_outcomes.png", func(w *os.File) error {
		return ch.Render(chart.PNG, w)
	})
}

func barWidth(n int) int {
	if n == 0 {
		return 20
	}
	w := (chartWidth - 100) / n
	if w < 4 {
		w = 4
	}
	if w > 60 {
		w = 60
	}
	return w
}

func stem(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)]
}
