// Package driver orchestrates the core's phases — type/trait checking,
// drop checking, function-group profiling, and simplification — over a
// whole hir.Program, collecting every phase's reports and stopping at the
// first fatal one (spec.md §7 "All core errors are fatal"). Grounded on
// the teacher's internal/pipeline/pipeline.go: a Config of mode flags, a
// Run entry point, and a Result carrying artifacts plus per-phase timing.
package driver

import (
	"fmt"
	"os"
	"time"

	"github.com/sunholo/ownhir/internal/dropcheck"
	"github.com/sunholo/ownhir/internal/funcgroup"
	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/report"
	"github.com/sunholo/ownhir/internal/simplify"
	"github.com/sunholo/ownhir/internal/typecheck"
	"gopkg.in/yaml.v3"
)

// Config controls how Run walks a Program, mirroring the teacher's own
// Config struct of independent mode flags rather than one combined enum.
type Config struct {
	// DumpDir, when non-empty, receives one text file per function whose
	// body the simplification phase changed, written once that function
	// has converged (spec.md §6's optional debug dump, format not
	// contractual). Functions simplification leaves unchanged get no file.
	DumpDir string
	// DumpEachPass is loaded from ownhir.yml by LoadConfig but is not read
	// by Run: no per-round dumps are written.
	DumpEachPass bool
	// FailFast stops Run at the first phase that produces any report,
	// rather than collecting every phase's reports before returning.
	FailFast bool
	// LedgerHook, if set, is called once per phase with a short
	// human-readable description of what that phase decided — a debug
	// aid, not part of the contract.
	LedgerHook func(decision string)
}

// fileConfig mirrors Config's YAML-serializable fields.
type fileConfig struct {
	DumpDir      string `yaml:"dump_dir"`
	DumpEachPass bool   `yaml:"dump_each_pass"`
	FailFast     bool   `yaml:"fail_fast"`
}

// LoadConfig reads an optional YAML config file. A missing file is not an
// error: Run's zero Config is already usable.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("driver: parsing %s: %w", path, err)
	}
	return Config{
		DumpDir:      fc.DumpDir,
		DumpEachPass: fc.DumpEachPass,
		FailFast:     fc.FailFast,
	}, nil
}

// Result is everything a Run produced: every report raised across every
// phase, the function-group profile store, and per-phase wall time.
type Result struct {
	Reports      []*report.Report
	Profiles     *funcgroup.Store
	PhaseTimings map[string]int64 // milliseconds
}

// Run type-checks, drop-checks, profiles, and simplifies every function
// in prog, in that order (spec.md §2 data flow: resolve → trait/type →
// drop → function-group → simplify). A phase that raises any report and a
// Config with FailFast set stops the remaining phases from running.
func Run(cfg Config, prog *hir.Program) (Result, error) {
	result := Result{PhaseTimings: make(map[string]int64)}
	funcs := prog.Functions()

	checker := typecheck.New(prog)
	start := time.Now()
	for _, fn := range funcs {
		tr := checker.CheckFunction(fn)
		result.Reports = append(result.Reports, tr.Reports...)
	}
	result.PhaseTimings["typecheck"] = time.Since(start).Milliseconds()
	if cfg.LedgerHook != nil {
		cfg.LedgerHook(fmt.Sprintf("typecheck: %d report(s) across %d function(s)", len(result.Reports), len(funcs)))
	}
	if cfg.FailFast && len(result.Reports) > 0 {
		return result, firstFatal(result.Reports)
	}

	start = time.Now()
	dropReports := 0
	for _, fn := range funcs {
		dr := dropcheck.CheckFunction(fn)
		result.Reports = append(result.Reports, dr.Reports...)
		dropReports += len(dr.Reports)
	}
	result.PhaseTimings["dropcheck"] = time.Since(start).Milliseconds()
	if cfg.LedgerHook != nil {
		cfg.LedgerHook(fmt.Sprintf("dropcheck: %d report(s)", dropReports))
	}
	if cfg.FailFast && dropReports > 0 {
		return result, firstFatal(result.Reports)
	}

	start = time.Now()
	result.Profiles = funcgroup.Run(funcs)
	result.PhaseTimings["funcgroup"] = time.Since(start).Milliseconds()
	if cfg.LedgerHook != nil {
		cfg.LedgerHook(fmt.Sprintf("funcgroup: %d profile(s)", len(result.Profiles.Profiles())))
	}

	start = time.Now()
	pipeline := simplify.NewPipeline(prog)
	simplified := 0
	for _, fn := range funcs {
		if pipeline.RunToFixpoint(fn) {
			simplified++
			if cfg.DumpDir != "" {
				if err := dumpFunction(cfg.DumpDir, fn); err != nil {
					return result, err
				}
			}
		}
	}
	result.PhaseTimings["simplify"] = time.Since(start).Milliseconds()
	if cfg.LedgerHook != nil {
		cfg.LedgerHook(fmt.Sprintf("simplify: %d function(s) changed", simplified))
	}

	if fatal := firstFatal(result.Reports); fatal != nil {
		return result, fatal
	}
	return result, nil
}

// firstFatal returns the first report as an error, or nil if there are
// none — every core report is fatal (spec.md §7), so "first" is also
// "only one that matters" for a caller that wants to stop at the first
// failure.
func firstFatal(reports []*report.Report) error {
	if len(reports) == 0 {
		return nil
	}
	return report.Wrap(reports[0])
}
