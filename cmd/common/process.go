// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/C0d3N1nJ4/payment-builder/internal/batch"
	"github.com/C0d3N1nJ4/payment-builder/internal/common"
	"github.com/C0d3N1nJ4/payment-builder/internal/logging"
	"github.com/C0d3N1nJ4/payment-builder/internal/normalizer"
	"github.com/C0d3N1nJ4/payment-builder/internal/pain013"
	"github.com/C0d3N1nJ4/payment-builder/internal/parsererror"
	"github.com/C0d3N1nJ4/payment-builder/internal/source"
	"github.com/C0d3N1nJ4/payment-builder/internal/validation"
)

// ErrNoInput is returned when a command that needs -i is run without it.
var ErrNoInput = errors.New("input file must be specified")

// ConvertFile writes the pain.013 message for inputFile. An empty outputFile places
// the message next to the input, named with the processor's output suffix.
func ConvertFile(ctx context.Context, proc *batch.Processor, inputFile, outputFile string, log logging.Logger) (batch.FileResult, error) {
	if inputFile == "" {
		return batch.FileResult{}, ErrNoInput
	}
	if err := validation.IsValidPaymentFile(inputFile); err != nil {
		return batch.FileResult{}, err
	}
	if outputFile == "" {
		outputFile = proc.OutputPathFor(inputFile, filepath.Dir(inputFile))
	}

	log.Info("Converting payment file",
		logging.F(logging.FieldInputFile, inputFile),
		logging.F(logging.FieldOutputFile, outputFile))

	return proc.ProcessFile(ctx, inputFile, outputFile)
}

// NormalizeFile parses inputFile and writes the canonical CSV of its instructions to
// outputFile, or to stdout when outputFile is empty.
func NormalizeFile(n *normalizer.Normalizer, inputFile, outputFile string, delimiter rune, stdout io.Writer, log logging.Logger) (*normalizer.Result, error) {
	if inputFile == "" {
		return nil, ErrNoInput
	}
	if err := validation.IsValidPaymentFile(inputFile); err != nil {
		return nil, err
	}

	res, err := source.Normalize(n, inputFile)
	if err != nil {
		return nil, &parsererror.FileError{FilePath: inputFile, Err: err}
	}
	log.Debug("Resolved header columns", logging.F(logging.FieldColumns, res.Columns))
	for _, skipped := range res.Skipped {
		log.Warn("Skipped malformed line",
			logging.F(logging.FieldLine, skipped.Line),
			logging.F(logging.FieldValue, skipped.RawValue()),
			logging.F(logging.FieldErrorCode, parsererror.CodeOf(skipped)),
			logging.F(logging.FieldError, skipped.Err.Error()))
	}

	if outputFile == "" {
		return res, common.WriteInstructionsCSV(stdout, res.Instructions, delimiter)
	}
	return res, common.WriteInstructionsToCSV(log, res.Instructions, outputFile, delimiter)
}

// InspectFile reads a pain.013 message, prints its summary to w and checks its
// structure. A structural mismatch is returned as *parsererror.ValidationError after
// the summary has been printed.
func InspectFile(inputFile string, w io.Writer) (*pain013.Summary, error) {
	if inputFile == "" {
		return nil, ErrNoInput
	}
	if err := validation.IsValidInputFile(inputFile); err != nil {
		return nil, err
	}

	f, err := os.Open(inputFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("failed to open message: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	summary, err := pain013.Inspect(f)
	if err != nil {
		return nil, &parsererror.FileError{FilePath: inputFile, Err: err}
	}
	if err := WriteSummary(w, summary); err != nil {
		return summary, err
	}

	if err := summary.Check(); err != nil {
		var verr *parsererror.ValidationError
		if errors.As(err, &verr) {
			verr.FilePath = inputFile
		}
		return summary, err
	}
	return summary, nil
}

// WriteSummary prints a human-readable summary of a message.
func WriteSummary(w io.Writer, s *pain013.Summary) error {
	declared := fmt.Sprint(s.DeclaredTxs)
	if s.DeclaredTxs < 0 {
		declared = "invalid"
	}

	lines := []string{
		fmt.Sprintf("Namespace:      %s", s.Namespace),
		fmt.Sprintf("Message ID:     %s", s.MessageID),
		fmt.Sprintf("Created:        %s", s.CreatedAt),
		fmt.Sprintf("Initiated by:   %s", s.InitiatingParty),
		fmt.Sprintf("Payment info:   %s", s.PaymentInfID),
		fmt.Sprintf("Transactions:   %d (declared %s)", s.CountedTxs, declared),
	}
	for _, ccy := range s.Currencies() {
		lines = append(lines, fmt.Sprintf("Total %-9s %s", ccy+":", s.Totals[ccy].String()))
	}
	for i, id := range s.EndToEndIDs {
		line := fmt.Sprintf("  %d. %s", i+1, id)
		if name := s.Creditor(i); name != "" {
			line += "  " + name
		}
		lines = append(lines, line)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}

// WriteReport prints a directory run summary, one line per file.
func WriteReport(w io.Writer, r *batch.Report) error {
	if _, err := fmt.Fprintf(w, "Processed %d of %d files (%d failed) in %s\n",
		r.Processed, r.FilesFound, r.Failed, r.Duration); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	for _, f := range r.Files {
		line := fmt.Sprintf("  %-9s %s", f.Status, filepath.Base(f.InputFile))
		switch {
		case f.Error != "":
			line += ": " + f.Error
		case f.OutputFile != "":
			line += fmt.Sprintf(" -> %s (%d transactions)", filepath.Base(f.OutputFile), f.Transactions)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}
