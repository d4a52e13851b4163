package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Canonical per-run column names, matched case-insensitively against the
// header row. Column order in the file does not matter.
const (
	colMonth      = "month"
	colTotalAlive = "total_alive"
	colMales      = "males"
	colFemales    = "females"
	colBirths     = "births"
	colDeaths     = "deaths"
)

var runColumns = []string{colMonth, colTotalAlive, colMales, colFemales, colBirths, colDeaths}

// SchemaError reports required columns missing from a dataset header.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing columns: %s", filepath.Base(e.Path), strings.Join(e.Missing, ", "))
}

// headerIndex maps normalized column names to field positions and checks the
// required set once, up front, so malformed schemas fail with one structured
// error instead of a lookup failure mid-file.
func headerIndex(path string, header []string, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &SchemaError{Path: path, Missing: missing}
	}
	return idx, nil
}

func field(rec []string, idx map[string]int, name string) (int, error) {
	i := idx[name]
	if i >= len(rec) {
		return 0, fmt.Errorf("row too short for column %s", name)
	}
	v, err := strconv.Atoi(strings.TrimSpace(rec[i]))
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", name, err)
	}
	return v, nil
}

// LoadRun parses a single per-run CSV file into a RunTable. The table's
// Source is the file's base name. Any schema or cell failure is returned as
// an error for this file alone; callers isolate it from the rest of the batch.
func LoadRun(path string) (*RunTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(path, header, runColumns)
	if err != nil {
		return nil, err
	}

	table := &RunTable{Source: filepath.Base(path)}
	for row := 1; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		var rr RunRecord
		for _, bind := range []struct {
			name string
			dst  *int
		}{
			{colMonth, &rr.Month},
			{colTotalAlive, &rr.TotalAlive},
			{colMales, &rr.Males},
			{colFemales, &rr.Females},
			{colBirths, &rr.Births},
			{colDeaths, &rr.Deaths},
		} {
			v, err := field(rec, idx, bind.name)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
			*bind.dst = v
		}
		table.Records = append(table.Records, rr)
	}

	return table, nil
}

// LoadRuns loads every path, collecting a RunResult per file. A parse failure
// is logged and recorded in that file's result; it never stops the batch.
func LoadRuns(paths []string, log *slog.Logger) []RunResult {
	results := make([]RunResult, 0, len(paths))
	for _, p := range paths {
		table, err := LoadRun(p)
		if err != nil {
			log.Warn("skipping run file", "file", filepath.Base(p), "err", err)
			results = append(results, RunResult{Path: p, Err: err})
			continue
		}
		log.Debug("loaded run file", "file", table.Source, "rows", table.Len())
		results = append(results, RunResult{Path: p, Table: table})
	}
	return results
}

// Tables extracts the successfully loaded tables from a batch of results,
// preserving discovery order.
func Tables(results []RunResult) []*RunTable {
	var out []*RunTable
	for _, res := range results {
		if res.Table != nil {
			out = append(out, res.Table)
		}
	}
	return out
}
