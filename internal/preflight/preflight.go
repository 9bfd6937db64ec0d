package preflight

import (
	"context"
	"path/filepath"

	"discshelf/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

// RunAll executes all applicable preflight checks for the given config and
// workbook path. The journal check only runs when the journal is enabled.
func RunAll(ctx context.Context, cfg *config.Config, workbookPath string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if workbookPath != "" {
		results = append(results, CheckDirectoryAccess("Workbook directory", filepath.Dir(workbookPath)))
		results = append(results, CheckWorkbook(ctx, workbookPath))
	}

	if cfg.Journal.Enabled && cfg.Journal.Path != "" {
		results = append(results, CheckDirectoryAccess("Journal directory", filepath.Dir(cfg.Journal.Path)))
	}

	return results
}
