package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// summaryPreambleLines is the fixed number of metadata/comment lines the
// simulator writes before the summary header row.
const summaryPreambleLines = 6

const (
	colSimNumber       = "sim_number"
	colFinalAlive      = "final_alive"
	colMonthsSimulated = "months_simulated"
	colExtinctionMonth = "extinction_month"
)

var summaryColumns = []string{colSimNumber, colFinalAlive, colMonthsSimulated, colExtinctionMonth}

// LoadSummary parses the aggregate summary file, skipping the fixed preamble
// before reading the header and rows. A failure here is reported to the
// caller, which treats it the same as an absent summary: cohort analysis is
// skipped, nothing else is affected.
func LoadSummary(path string) (*SummaryTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	for i := 0; i < summaryPreambleLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			return nil, fmt.Errorf("preamble line %d: %w", i+1, err)
		}
	}

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(path, header, summaryColumns)
	if err != nil {
		return nil, err
	}

	table := &SummaryTable{Source: filepath.Base(path)}
	for row := 1; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		var sr SummaryRecord
		for _, bind := range []struct {
			name string
			dst  *int
		}{
			{colSimNumber, &sr.SimNumber},
			{colFinalAlive, &sr.FinalAlive},
			{colMonthsSimulated, &sr.MonthsSimulated},
			{colExtinctionMonth, &sr.ExtinctionMonth},
		} {
			v, err := field(rec, idx, bind.name)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
			*bind.dst = v
		}
		table.Records = append(table.Records, sr)
	}

	return table, nil
}
