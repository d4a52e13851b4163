package metrics

import (
	"math"

	"popviz/internal/dataset"
)

// OutcomeStats aggregates final-population outcomes across all simulations in
// the summary table.
type OutcomeStats struct {
	N           int
	MeanAlive   float64
	StdAlive    float64
	MinAlive    int
	MaxAlive    int
	CILow       float64
	CIHigh      float64
	Extinctions int
	ExtinctPct  float64
}

// Outcomes computes mean, population standard deviation, extremes and a 95%
// confidence interval of FinalAlive, plus the extinction rate. An empty or
// nil table yields a zero-value result.
func Outcomes(s *dataset.SummaryTable) OutcomeStats {
	var st OutcomeStats
	if s == nil || len(s.Records) == 0 {
		return st
	}

	st.N = len(s.Records)
	st.MinAlive = s.Records[0].FinalAlive
	st.MaxAlive = st.MinAlive

	var sum, sumsq float64
	for _, r := range s.Records {
		v := float64(r.FinalAlive)
		sum += v
		sumsq += v * v
		if r.FinalAlive < st.MinAlive {
			st.MinAlive = r.FinalAlive
		}
		if r.FinalAlive > st.MaxAlive {
			st.MaxAlive = r.FinalAlive
		}
		if r.ExtinctionMonth > 0 {
			st.Extinctions++
		}
	}

	n := float64(st.N)
	st.MeanAlive = sum / n
	variance := sumsq/n - st.MeanAlive*st.MeanAlive
	if variance < 0 {
		variance = 0
	}
	st.StdAlive = math.Sqrt(variance)
	ci := 1.96 * st.StdAlive / math.Sqrt(n)
	st.CILow = st.MeanAlive - ci
	st.CIHigh = st.MeanAlive + ci
	st.ExtinctPct = 100 * float64(st.Extinctions) / n

	return st
}
