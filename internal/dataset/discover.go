package dataset

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Discovery is the result of scanning a root directory for simulation output.
// RunPaths is lexicographically ordered by file name. SummaryPath is empty
// when no summary file exists; that is not an error.
type Discovery struct {
	RunPaths    []string
	SummaryPath string
}

// Discover scans root for per-run and summary datasets.
//
// Per-run files match runPattern (a filepath glob applied to base names) and
// are excluded if their base name contains summaryInfix; the summary file is
// the first lexicographic match of summaryPattern. Finding nothing yields an
// empty Discovery; failure reporting is the caller's decision.
func Discover(root, runPattern, summaryPattern, summaryInfix string) (Discovery, error) {
	runs, err := filepath.Glob(filepath.Join(root, runPattern))
	if err != nil {
		return Discovery{}, fmt.Errorf("bad run pattern %q: %w", runPattern, err)
	}

	var d Discovery
	for _, p := range runs {
		if summaryInfix != "" && strings.Contains(filepath.Base(p), summaryInfix) {
			continue
		}
		d.RunPaths = append(d.RunPaths, p)
	}
	sort.Slice(d.RunPaths, func(i, j int) bool {
		return filepath.Base(d.RunPaths[i]) < filepath.Base(d.RunPaths[j])
	})

	summaries, err := filepath.Glob(filepath.Join(root, summaryPattern))
	if err != nil {
		return Discovery{}, fmt.Errorf("bad summary pattern %q: %w", summaryPattern, err)
	}
	if len(summaries) > 0 {
		sort.Slice(summaries, func(i, j int) bool {
			return filepath.Base(summaries[i]) < filepath.Base(summaries[j])
		})
		d.SummaryPath = summaries[0]
	}

	return d, nil
}
