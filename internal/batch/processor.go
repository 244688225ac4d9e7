// Package batch runs the parse and generate pipeline over input files: one
// message per file, with per-file failure isolation for directory runs.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/C0d3N1nJ4/payment-builder/internal/fileutils"
	"github.com/C0d3N1nJ4/payment-builder/internal/logging"
	"github.com/C0d3N1nJ4/payment-builder/internal/models"
	"github.com/C0d3N1nJ4/payment-builder/internal/normalizer"
	"github.com/C0d3N1nJ4/payment-builder/internal/pain013"
	"github.com/C0d3N1nJ4/payment-builder/internal/parsererror"
	"github.com/C0d3N1nJ4/payment-builder/internal/source"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Defaults for directory runs.
const (
	DefaultOutputSuffix = "_pain013.xml"
	DefaultExtension    = ".csv"
)

// ErrOutputConflict marks an input file whose output name is already taken by an
// earlier file in the same directory run.
var ErrOutputConflict = errors.New("output file already claimed by another input")

// Option configures a Processor.
type Option func(*Processor)

// WithExtensions sets the input file extensions picked up by ProcessDirectory.
func WithExtensions(exts ...string) Option {
	return func(p *Processor) {
		if len(exts) > 0 {
			p.extensions = exts
		}
	}
}

// WithOutputSuffix sets the suffix that replaces the input extension.
func WithOutputSuffix(suffix string) Option {
	return func(p *Processor) {
		if suffix != "" {
			p.suffix = suffix
		}
	}
}

// WithWorkers bounds the number of files processed at once. Values below one
// select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(p *Processor) {
		p.workers = n
	}
}

// Processor converts input files into pain.013 messages.
type Processor struct {
	logger     logging.Logger
	normalizer *normalizer.Normalizer
	generator  *pain013.Generator
	extensions []string
	suffix     string
	workers    int
}

// NewProcessor creates a Processor.
func NewProcessor(logger logging.Logger, n *normalizer.Normalizer, g *pain013.Generator, opts ...Option) *Processor {
	p := &Processor{
		logger:     logger,
		normalizer: n,
		generator:  g,
		extensions: []string{DefaultExtension},
		suffix:     DefaultOutputSuffix,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers < 1 {
		p.workers = runtime.NumCPU()
	}
	return p
}

// Workers returns the effective parallelism of ProcessDirectory.
func (p *Processor) Workers() int {
	return p.workers
}

// OutputPathFor returns where ProcessDirectory writes the message for inputPath.
func (p *Processor) OutputPathFor(inputPath, outputDir string) string {
	return fileutils.OutputPath(inputPath, outputDir, p.suffix)
}

// ProcessFile parses inputPath and writes one message to outputPath. A file
// with zero instructions is a success that writes nothing. Failures are
// returned as *parsererror.FileError and also recorded in the result.
func (p *Processor) ProcessFile(ctx context.Context, inputPath, outputPath string) (FileResult, error) {
	start := time.Now()
	result := FileResult{InputFile: inputPath}
	log := p.logger.WithField(logging.FieldFile, inputPath)

	fail := func(err error) (FileResult, error) {
		ferr := &parsererror.FileError{FilePath: inputPath, Err: err}
		result.Status = StatusFailed
		result.Err = ferr
		result.Error = err.Error()
		result.ErrorCode = parsererror.CodeOf(err)
		result.Duration = time.Since(start)
		log.WithError(err).Error("Error processing file",
			logging.F(logging.FieldStatus, result.Status),
			logging.F(logging.FieldErrorCode, result.ErrorCode))
		return result, ferr
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	log.Info("Parsing input file")
	res, err := source.Normalize(p.normalizer, inputPath)
	if err != nil {
		return fail(err)
	}

	log.Debug("Resolved header columns", logging.F(logging.FieldColumns, res.Columns))

	for _, skipped := range res.Skipped {
		result.SkippedLines = append(result.SkippedLines, skipped.Line)
		log.Warn("Skipped malformed line",
			logging.F(logging.FieldLine, skipped.Line),
			logging.F(logging.FieldValue, skipped.RawValue()),
			logging.F(logging.FieldErrorCode, parsererror.CodeOf(skipped)),
			logging.F(logging.FieldError, skipped.Err.Error()))
	}

	result.Transactions = len(res.Instructions)
	log.Info("Parsed payment records", logging.F(logging.FieldCount, result.Transactions))

	if len(res.Instructions) == 0 {
		result.Status = StatusEmpty
		log.Warn("No records found in file", logging.F(logging.FieldStatus, result.Status))
		result.Duration = time.Since(start)
		return result, nil
	}

	result.ExecutionDates = executionDates(res.Instructions)
	result.Totals = totalsByCurrency(res.Instructions)

	if err := p.writeMessage(outputPath, res.Instructions); err != nil {
		return fail(err)
	}

	result.OutputFile = outputPath
	result.Status = StatusGenerated
	result.Duration = time.Since(start)
	log.Info("Generated payment message",
		logging.F(logging.FieldOutputFile, outputPath),
		logging.F(logging.FieldTransactions, result.Transactions),
		logging.F(logging.FieldDuration, result.Duration.Milliseconds()))
	return result, nil
}

func (p *Processor) writeMessage(outputPath string, instructions []models.Instruction) (err error) {
	f, err := fileutils.CreateFile(outputPath, models.PermissionOutputFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close output file: %w", cerr))
		}
	}()

	if _, err := p.generator.WriteTo(f, instructions); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// ProcessDirectory converts every matching file directly inside inputDir into
// outputDir, creating both directories when missing. A failing file never
// stops the others; its error is kept in the report. The returned error is
// non-nil only when the run itself could not start or ctx was cancelled.
func (p *Processor) ProcessDirectory(ctx context.Context, inputDir, outputDir string) (*Report, error) {
	report := &Report{
		InputDirectory:  inputDir,
		OutputDirectory: outputDir,
		StartedAt:       time.Now(),
		Workers:         p.workers,
	}

	for _, dir := range []string{inputDir, outputDir} {
		if err := fileutils.EnsureDirectoryExists(dir); err != nil {
			return report, err
		}
	}

	log := p.logger.WithFields(
		logging.F(logging.FieldInputDir, inputDir),
		logging.F(logging.FieldOutputDir, outputDir),
	)

	files, err := fileutils.ListFilesWithExtensions(inputDir, p.extensions...)
	if err != nil {
		return report, err
	}
	log.Info("Found input files to process",
		logging.F(logging.FieldCount, len(files)),
		logging.F(logging.FieldWorkers, p.workers))

	results := make([]FileResult, len(files))
	var g errgroup.Group
	g.SetLimit(p.workers)
	claimed := make(map[string]string, len(files))
	for i, file := range files {
		out := p.OutputPathFor(file, outputDir)
		if first, ok := claimed[out]; ok {
			results[i] = conflictResult(file, out, first)
			log.WithError(results[i].Err).Error("Error processing file",
				logging.F(logging.FieldFile, file),
				logging.F(logging.FieldStatus, results[i].Status))
			continue
		}
		claimed[out] = file

		g.Go(func() error {
			results[i], _ = p.ProcessFile(ctx, file, out)
			return nil
		})
	}
	_ = g.Wait()

	report.Files = results
	report.tally()
	report.Duration = time.Since(report.StartedAt).Round(time.Millisecond).String()

	log.Info("Processing complete",
		logging.F(logging.FieldCount, report.Processed),
		logging.F(logging.FieldFailed, report.Failed))

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// conflictResult fails input without reading it because first already writes out.
func conflictResult(input, out, first string) FileResult {
	err := fmt.Errorf("%w: %s is written from %s", ErrOutputConflict, filepath.Base(out), filepath.Base(first))
	return FileResult{
		InputFile: input,
		Status:    StatusFailed,
		Error:     err.Error(),
		Err:       &parsererror.FileError{FilePath: input, Err: err},
	}
}

func executionDates(instructions []models.Instruction) DateRange {
	var dr DateRange
	for _, ins := range instructions {
		if ins.ExecutionDate.Valid {
			dr = dr.Add(ins.ExecutionDate.Time)
		}
	}
	return dr
}

// totalsByCurrency sums present amounts per rendered currency.
func totalsByCurrency(instructions []models.Instruction) map[string]string {
	byCcy := make(map[string][]decimal.Decimal)
	for _, ins := range instructions {
		if !ins.Amount.Valid {
			continue
		}
		ccy := ins.Currency
		if ccy == "" {
			ccy = models.DefaultCurrency
		}
		byCcy[ccy] = append(byCcy[ccy], ins.Amount.Decimal)
	}

	totals := make(map[string]string, len(byCcy))
	for ccy, amounts := range byCcy {
		totals[ccy] = models.FormatAmount(models.SumAmounts(amounts...))
	}
	return totals
}
