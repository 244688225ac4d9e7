// Package batch implements the batch command: one pain.013 message per payment
// file found in a directory.
package batch

import (
	"fmt"

	"github.com/C0d3N1nJ4/payment-builder/cmd/common"
	"github.com/C0d3N1nJ4/payment-builder/cmd/root"
	"github.com/C0d3N1nJ4/payment-builder/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd is the batch command.
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process files from a directory",
	Long: `Batch process payment files from an input directory and write one pain.013
message per file to another directory.

Every file directly inside the input directory whose extension is listed in
input.extensions is processed independently: a failing file is reported and
the remaining files are still converted. Files without records produce no
message. Without -i/-o the input.directory and output.directory settings apply.

Example:
  payment-builder batch -i input_dir/ -o output_dir/ --workers 4 --report run.yaml`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().Int("workers", 0, "Number of files processed in parallel (0 = one per CPU)")
	Cmd.Flags().String("report", "", "Write a YAML run report to this file")

	// -i/-o name directories here, so the inherited flags get their own heading.
	Cmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags (for batch, -i/-o refer to directories):
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`)
}

func batchFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}
	cfg := appContainer.GetConfig()
	log := root.GetLogger()

	inputDir := root.SharedFlags.Input
	if inputDir == "" {
		inputDir = cfg.Input.Directory
	}
	outputDir := root.SharedFlags.Output
	if outputDir == "" {
		outputDir = cfg.Output.Directory
	}

	log.Info("Batch command called",
		logging.F(logging.FieldInputDir, inputDir),
		logging.F(logging.FieldOutputDir, outputDir))

	report, err := appContainer.GetProcessor().ProcessDirectory(cmd.Context(), inputDir, outputDir)
	if err != nil {
		return fmt.Errorf("error during batch conversion: %w", err)
	}

	if err := report.Err(); err != nil {
		log.WithError(err).Warn("Some files failed",
			logging.F(logging.FieldFailed, report.Failed),
			logging.F(logging.FieldCount, report.FilesFound))
	}

	if cfg.Batch.Report != "" {
		if err := report.Save(cfg.Batch.Report); err != nil {
			return err
		}
		log.Info("Wrote run report", logging.F(logging.FieldOutputFile, cfg.Batch.Report))
	}

	return common.WriteReport(cmd.OutOrStdout(), report)
}
