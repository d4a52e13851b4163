// Package metrics derives secondary series from loaded simulation tables.
// Every function is pure: inputs are never mutated and no state is kept
// between calls.
package metrics

import (
	"math"

	"popviz/internal/dataset"
)

// GrowthRate returns the percentage change of TotalAlive between consecutive
// months: element i is (x[i+1]-x[i])/x[i]*100. Where x[i] is zero the element
// is NaN; consumers must skip or mark it. Tables shorter than two periods
// yield an empty series.
func GrowthRate(t *dataset.RunTable) []float64 {
	if t.Len() < 2 {
		return nil
	}
	out := make([]float64, 0, t.Len()-1)
	for i := 0; i+1 < t.Len(); i++ {
		prev := t.Records[i].TotalAlive
		next := t.Records[i+1].TotalAlive
		if prev == 0 {
			out = append(out, math.NaN())
			continue
		}
		out = append(out, float64(next-prev)/float64(prev)*100)
	}
	return out
}

// PhasePair is one step of a run's self-map: population now against
// population one month later.
type PhasePair struct {
	Current int
	Next    int
}

// Phase is the phase-pair series of one run plus the population extremes,
// which the renderer uses to draw the y=x no-change reference.
type Phase struct {
	Pairs []PhasePair
	Min   int
	Max   int
}

// PhasePairs returns the n-1 (current, next) population pairs of a table
// along with the min and max of TotalAlive across all periods. Tables shorter
// than two periods yield no pairs.
func PhasePairs(t *dataset.RunTable) Phase {
	var p Phase
	if t.Len() == 0 {
		return p
	}
	p.Min = t.Records[0].TotalAlive
	p.Max = p.Min
	for _, r := range t.Records[1:] {
		if r.TotalAlive < p.Min {
			p.Min = r.TotalAlive
		}
		if r.TotalAlive > p.Max {
			p.Max = r.TotalAlive
		}
	}
	for i := 0; i+1 < t.Len(); i++ {
		p.Pairs = append(p.Pairs, PhasePair{
			Current: t.Records[i].TotalAlive,
			Next:    t.Records[i+1].TotalAlive,
		})
	}
	return p
}

// NetChange returns births minus deaths for every period, same length as the
// table. Sign is preserved; zero counts as non-negative for coloring.
func NetChange(t *dataset.RunTable) []int {
	out := make([]int, t.Len())
	for i, r := range t.Records {
		out[i] = r.Births - r.Deaths
	}
	return out
}

// NetChangeRows is NetChange over a multi-run union: births minus deaths for
// each combined row, in row order.
func NetChangeRows(rows []CombinedRow) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Record.Births - r.Record.Deaths
	}
	return out
}

// Cohorts is the total, disjoint partition of summary rows by outcome.
type Cohorts struct {
	Extinct   []dataset.SummaryRecord
	Surviving []dataset.SummaryRecord
}

// Partition splits summary rows into extinct (ExtinctionMonth > 0) and
// surviving (ExtinctionMonth == 0) cohorts. Every row lands in exactly one.
func Partition(s *dataset.SummaryTable) Cohorts {
	var c Cohorts
	if s == nil {
		return c
	}
	for _, r := range s.Records {
		if r.ExtinctionMonth > 0 {
			c.Extinct = append(c.Extinct, r)
		} else {
			c.Surviving = append(c.Surviving, r)
		}
	}
	return c
}

// CombinedRow is one row of the multi-run union, keeping its original month
// and source identity.
type CombinedRow struct {
	Source string
	Record dataset.RunRecord
}

// Concat flattens all run tables into a single unordered union. Rows keep
// table-discovery order; they are not re-sorted by month across sources.
func Concat(tables []*dataset.RunTable) []CombinedRow {
	var out []CombinedRow
	for _, t := range tables {
		for _, r := range t.Records {
			out = append(out, CombinedRow{Source: t.Source, Record: r})
		}
	}
	return out
}
