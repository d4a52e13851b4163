// Package pipeline drives the batch analysis: discover datasets, load them
// with per-file isolation, derive metrics, and hand the results to the
// renderer. Each stage is a function returning an immutable value consumed by
// the next; no stage keeps state between calls.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"popviz/internal/config"
	"popviz/internal/dataset"
	"popviz/internal/metrics"
	"popviz/internal/render"
)

// ErrNoData reports that discovery found no usable per-run datasets. It is
// the pipeline's only terminating condition and still exits cleanly: callers
// print the report and stop instead of failing.
var ErrNoData = errors.New("no per-run datasets found")

// SkippedFile records one per-run file excluded by a parse failure.
type SkippedFile struct {
	File   string
	Reason string
}

// Report is the user-facing account of one pipeline execution.
type Report struct {
	Loaded        []string
	Skipped       []SkippedFile
	SummarySource string
	SummaryRows   int
	Charts        []string
	Outcomes      *metrics.OutcomeStats
}

// Data is the immutable load-stage output: every successfully loaded run
// table in discovery order, the optional summary table, and the per-file
// accounting.
type Data struct {
	Tables  []*dataset.RunTable
	Summary *dataset.SummaryTable
	Report  Report
}

// Load runs discovery and both loaders against root, printing a status line
// per file to status as it happens. A missing or unparsable summary degrades
// to Summary == nil. Load never fails on individual files; the only error
// conditions are invalid discovery patterns.
func Load(root string, cfg *config.Config, log *slog.Logger, status io.Writer) (Data, error) {
	disc, err := dataset.Discover(root, cfg.Discovery.RunPattern, cfg.Discovery.SummaryPattern, cfg.Discovery.SummaryInfix)
	if err != nil {
		return Data{}, err
	}

	var data Data
	for _, res := range dataset.LoadRuns(disc.RunPaths, log) {
		if res.Err != nil {
			fmt.Fprintf(status, "Error loading %s: %v\n", filepath.Base(res.Path), res.Err)
			data.Report.Skipped = append(data.Report.Skipped, SkippedFile{
				File:   filepath.Base(res.Path),
				Reason: res.Err.Error(),
			})
			continue
		}
		fmt.Fprintf(status, "Loaded: %s\n", res.Table.Source)
		data.Report.Loaded = append(data.Report.Loaded, res.Table.Source)
		data.Tables = append(data.Tables, res.Table)
	}

	if disc.SummaryPath != "" {
		summary, err := dataset.LoadSummary(disc.SummaryPath)
		if err != nil {
			fmt.Fprintf(status, "Error loading summary %s: %v\n", filepath.Base(disc.SummaryPath), err)
			log.Warn("summary unusable, skipping cohort analysis", "file", filepath.Base(disc.SummaryPath), "err", err)
		} else {
			fmt.Fprintf(status, "Loaded summary: %s\n", summary.Source)
			data.Summary = summary
			data.Report.SummarySource = summary.Source
			data.Report.SummaryRows = len(summary.Records)
		}
	}

	return data, nil
}

// Render derives every chart's input from data and writes the chart set into
// outDir, returning the report extended with produced artifacts and outcome
// statistics. With no loaded tables it returns ErrNoData alongside the
// report, producing nothing.
func Render(data Data, outDir string, log *slog.Logger, status io.Writer) (Report, error) {
	report := data.Report

	if len(data.Tables) == 0 {
		return report, ErrNoData
	}

	charts := render.New(outDir)
	emit := func(name string, err error) {
		if err != nil {
			log.Warn("chart failed", "err", err)
			return
		}
		if name == "" {
			return
		}
		fmt.Fprintf(status, "Saved: %s\n", name)
		report.Charts = append(report.Charts, name)
	}

	emit(charts.PopulationOverTime(data.Tables))

	rates := make([][]float64, len(data.Tables))
	for i, t := range data.Tables {
		rates[i] = metrics.GrowthRate(t)
	}
	emit(charts.GrowthRate(data.Tables, rates))

	for _, t := range data.Tables {
		emit(charts.PhasePlot(t.Source, metrics.PhasePairs(t)))
		emit(charts.PopulationStructure(t))
		emit(charts.SexRatio(t))
	}

	rows := metrics.Concat(data.Tables)
	emit(charts.BirthsDeaths(rows))
	emit(charts.NetChange(rows, metrics.NetChangeRows(rows)))

	if data.Summary != nil {
		emit(charts.FinalPopulation(data.Summary))
		emit(charts.ExtinctionOutcomes(metrics.Partition(data.Summary)))
		stats := metrics.Outcomes(data.Summary)
		report.Outcomes = &stats
	}

	return report, nil
}

// Print writes the final human-readable report: what loaded, what was
// skipped and why, what was produced, and the aggregate outcome statistics
// when a summary was available.
func (r Report) Print(w io.Writer) {
	fmt.Fprintf(w, "\nRuns loaded: %d", len(r.Loaded))
	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, " (skipped %d)", len(r.Skipped))
	}
	fmt.Fprintln(w)
	for _, s := range r.Skipped {
		fmt.Fprintf(w, "  skipped %s: %s\n", s.File, s.Reason)
	}

	if r.SummarySource != "" {
		fmt.Fprintf(w, "Summary: %s (%d simulations)\n", r.SummarySource, r.SummaryRows)
	} else {
		fmt.Fprintln(w, "Summary: none (cohort analysis skipped)")
	}

	if len(r.Charts) == 0 {
		fmt.Fprintln(w, "No charts produced: no usable per-run data.")
	} else {
		fmt.Fprintf(w, "Charts produced: %d\n", len(r.Charts))
		for _, c := range r.Charts {
			fmt.Fprintf(w, "  %s\n", c)
		}
	}

	if r.Outcomes != nil && r.Outcomes.N > 0 {
		st := r.Outcomes
		fmt.Fprintf(w, "Final alive: mean %.2f, sd %.2f, min/max %d/%d, 95%% CI [%.2f; %.2f]\n",
			st.MeanAlive, st.StdAlive, st.MinAlive, st.MaxAlive, st.CILow, st.CIHigh)
		fmt.Fprintf(w, "Extinctions: %d of %d (%.2f%%)\n", st.Extinctions, st.N, st.ExtinctPct)
	}
}
