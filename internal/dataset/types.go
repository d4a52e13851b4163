// Package dataset discovers and loads the CSV artifacts produced by repeated
// population-simulation runs: one per-run time series per file, plus an
// optional aggregate summary file.
package dataset

// RunRecord is one period of a per-run time series.
// Males+Females is expected to equal TotalAlive but the loader does not
// enforce it; mismatched rows load as-is.
type RunRecord struct {
	Month      int
	TotalAlive int
	Males      int
	Females    int
	Births     int
	Deaths     int
}

// RunTable is the ordered time series of one simulation run.
// Source is the base name of the originating file and is used as the
// legend/label key downstream, so it must be unique per run.
// Tables are never mutated after load.
type RunTable struct {
	Source  string
	Records []RunRecord
}

// Len returns the number of periods in the table.
func (t *RunTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// SummaryRecord is one row of the aggregate summary: the final outcome of a
// single simulation. ExtinctionMonth == 0 means the run survived to the end;
// any positive value is the month the population reached zero.
type SummaryRecord struct {
	SimNumber       int
	FinalAlive      int
	MonthsSimulated int
	ExtinctionMonth int
}

// SummaryTable holds all summary rows plus the source file base name.
type SummaryTable struct {
	Source  string
	Records []SummaryRecord
}

// RunResult is the per-file outcome of a batch load: either a table or an
// error, never both. A failed file never aborts the batch.
type RunResult struct {
	Path  string
	Table *RunTable
	Err   error
}
