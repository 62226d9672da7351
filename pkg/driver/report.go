package driver

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"zygr/frontend-go/pkg/diagnostics"
)

// Report summarises a check run for machine consumers.
type Report struct {
	RunID     string       `json:"run_id" yaml:"run_id"`
	Generated time.Time    `json:"generated" yaml:"generated"`
	Files     []FileReport `json:"files" yaml:"files"`
	Totals    Totals       `json:"totals" yaml:"totals"`
	Truncated bool         `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// FileReport lists the errors of one unit.
type FileReport struct {
	Path   string                      `json:"path" yaml:"path"`
	Errors []diagnostics.CompilerError `json:"errors" yaml:"errors"`
}

// Totals counts errors across the run.
type Totals struct {
	Files           int                      `json:"files" yaml:"files"`
	FilesWithErrors int                      `json:"files_with_errors" yaml:"files_with_errors"`
	Errors          int                      `json:"errors" yaml:"errors"`
	ByKind          map[diagnostics.Kind]int `json:"by_kind,omitempty" yaml:"by_kind,omitempty"`
}

// ReportOptions limits what NewReport keeps.
type ReportOptions struct {
	MaxErrors int
	Phases    []diagnostics.Phase
}

// ReportOptionsFromConfig derives report options from a loaded config.
func ReportOptionsFromConfig(cfg *Config) ReportOptions {
	return ReportOptions{MaxErrors: cfg.MaxErrors, Phases: cfg.Phases}
}

// NewReport builds a report from checked units. Errors are filtered by
// phase, then capped at MaxErrors across the whole run when it is positive.
func NewReport(units []*Unit, opts ReportOptions) *Report {
	report := &Report{
		RunID:     uuid.New().String(),
		Generated: time.Now().UTC(),
		Files:     make([]FileReport, 0, len(units)),
	}
	for _, unit := range units {
		if unit == nil {
			continue
		}
		errs := diagnostics.Filter(unit.Errors(), opts.Phases...)
		if opts.MaxErrors > 0 {
			remaining := opts.MaxErrors - report.Totals.Errors
			if remaining < 0 {
				remaining = 0
			}
			if len(errs) > remaining {
				errs = errs[:remaining]
				report.Truncated = true
			}
		}
		if errs == nil {
			errs = []diagnostics.CompilerError{}
		}
		report.Files = append(report.Files, FileReport{Path: unit.Path, Errors: errs})
		report.Totals.Files++
		if len(errs) == 0 {
			continue
		}
		report.Totals.FilesWithErrors++
		report.Totals.Errors += len(errs)
		if report.Totals.ByKind == nil {
			report.Totals.ByKind = make(map[diagnostics.Kind]int)
		}
		for _, err := range errs {
			report.Totals.ByKind[err.Kind]++
		}
	}
	return report
}

// HasErrors reports whether any error survived filtering.
func (r *Report) HasErrors() bool {
	return r.Totals.Errors > 0
}

// Encode writes the report as json or yaml.
func (r *Report) Encode(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("driver: encode report json: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("driver: encode report yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("driver: encode report yaml: %w", err)
		}
	default:
		return fmt.Errorf("driver: unsupported report format %q", format)
	}
	return nil
}

// DecodeReport reads a report previously written by Encode.
func DecodeReport(r io.Reader, format string) (*Report, error) {
	var report Report
	switch format {
	case "json":
		if err := json.NewDecoder(r).Decode(&report); err != nil {
			return nil, fmt.Errorf("driver: decode report json: %w", err)
		}
	case "yaml":
		if err := yaml.NewDecoder(r).Decode(&report); err != nil {
			return nil, fmt.Errorf("driver: decode report yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("driver: unsupported report format %q", format)
	}
	return &report, nil
}
