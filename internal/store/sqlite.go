// Package store writes the analysis results to a SQLite artifact: raw run
// records, derived series, summary rows with their cohort, and aggregate
// outcome statistics. The database is an output alongside the chart images;
// the pipeline never reads it back.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite" // SQLite driver

	"popviz/internal/dataset"
	"popviz/internal/metrics"
)

// Export writes tables and the optional summary to a fresh SQLite database
// at path. Derived series (growth rate, net change) are computed by the
// metrics engine here, once, and stored per run record; an undefined growth
// rate is stored as NULL.
func Export(ctx context.Context, path string, tables []*dataset.RunTable, summary *dataset.SummaryTable) error {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1) // SQLite works best with single writer

	if err := InitSchema(ctx, db); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, t := range tables {
		if err := exportRun(ctx, tx, t); err != nil {
			return fmt.Errorf("export %s: %w", t.Source, err)
		}
	}

	if summary != nil {
		if err := exportSummary(ctx, tx, summary); err != nil {
			return fmt.Errorf("export summary: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func exportRun(ctx context.Context, tx *sql.Tx, t *dataset.RunTable) error {
	res, err := tx.ExecContext(ctx, `INSERT INTO runs (source, rows) VALUES (?, ?)`, t.Source, t.Len())
	if err != nil {
		return err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, r := range t.Records {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO records (run_id, month, total_alive, males, females, births, deaths)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, r.Month, r.TotalAlive, r.Males, r.Females, r.Births, r.Deaths)
		if err != nil {
			return err
		}
	}

	growth := metrics.GrowthRate(t)
	net := metrics.NetChange(t)
	for i, r := range t.Records {
		// Growth rate is defined from the second period on, and only
		// when the previous population was nonzero.
		var rate any
		if i > 0 && !math.IsNaN(growth[i-1]) {
			rate = growth[i-1]
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO derived (run_id, month, growth_rate, net_change) VALUES (?, ?, ?, ?)`,
			runID, r.Month, rate, net[i])
		if err != nil {
			return err
		}
	}

	return nil
}

func exportSummary(ctx context.Context, tx *sql.Tx, summary *dataset.SummaryTable) error {
	cohorts := metrics.Partition(summary)
	for _, set := range []struct {
		name string
		rows []dataset.SummaryRecord
	}{
		{"extinct", cohorts.Extinct},
		{"surviving", cohorts.Surviving},
	} {
		for _, r := range set.rows {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO summary (sim_number, final_alive, months_simulated, extinction_month, cohort)
				 VALUES (?, ?, ?, ?, ?)`,
				r.SimNumber, r.FinalAlive, r.MonthsSimulated, r.ExtinctionMonth, set.name)
			if err != nil {
				return err
			}
		}
	}

	st := metrics.Outcomes(summary)
	_, err := tx.ExecContext(ctx,
		`INSERT INTO outcome_stats (n, mean_alive, std_alive, min_alive, max_alive, ci_low, ci_high, extinctions, extinct_pct)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.N, st.MeanAlive, st.StdAlive, st.MinAlive, st.MaxAlive, st.CILow, st.CIHigh, st.Extinctions, st.ExtinctPct)
	return err
}
