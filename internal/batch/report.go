package batch

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/C0d3N1nJ4/payment-builder/internal/fileutils"
	"github.com/C0d3N1nJ4/payment-builder/internal/models"
	"github.com/C0d3N1nJ4/payment-builder/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// Status is the outcome of processing one input file.
type Status string

const (
	// StatusGenerated means a message was written.
	StatusGenerated Status = "generated"
	// StatusEmpty means the file parsed to zero instructions; nothing was written.
	StatusEmpty Status = "empty"
	// StatusFailed means the file could not be processed.
	StatusFailed Status = "failed"
)

// FileResult describes one processed input file.
type FileResult struct {
	InputFile      string            `yaml:"input_file"`
	OutputFile     string            `yaml:"output_file,omitempty"`
	Status         Status            `yaml:"status"`
	Transactions   int               `yaml:"transactions"`
	SkippedLines   []int             `yaml:"skipped_lines,omitempty"`
	ExecutionDates DateRange         `yaml:"execution_dates,omitempty"`
	Totals         map[string]string `yaml:"totals,omitempty"`
	Error          string            `yaml:"error,omitempty"`
	ErrorCode      parsererror.Code  `yaml:"error_code,omitempty"`

	Duration time.Duration `yaml:"-"`
	Err      error         `yaml:"-"`
}

// Succeeded reports whether the file counts as processed.
func (r FileResult) Succeeded() bool {
	return r.Status != StatusFailed
}

// Report summarizes a directory run. Files are listed in input order.
type Report struct {
	InputDirectory  string       `yaml:"input_directory"`
	OutputDirectory string       `yaml:"output_directory"`
	StartedAt       time.Time    `yaml:"started_at"`
	Duration        string       `yaml:"duration"`
	Workers         int          `yaml:"workers"`
	FilesFound      int          `yaml:"files_found"`
	Processed       int          `yaml:"processed"`
	Failed          int          `yaml:"failed"`
	Files           []FileResult `yaml:"files"`
}

// tally recomputes the counters from Files.
func (r *Report) tally() {
	r.FilesFound = len(r.Files)
	r.Processed, r.Failed = 0, 0
	for _, f := range r.Files {
		if f.Succeeded() {
			r.Processed++
		} else {
			r.Failed++
		}
	}
}

// Err joins the per-file errors, or returns nil when every file succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errors.Join(errs...)
}

// WriteYAML encodes the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// Save writes the YAML report to path, creating parent directories.
func (r *Report) Save(path string) (err error) {
	f, err := fileutils.CreateFile(path, models.PermissionOutputFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close report: %w", cerr))
		}
	}()
	return r.WriteYAML(f)
}
