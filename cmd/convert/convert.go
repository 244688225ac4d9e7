// Package convert handles single-file pain.013 generation
package convert

import (
	"fmt"

	"github.com/C0d3N1nJ4/payment-builder/cmd/common"
	"github.com/C0d3N1nJ4/payment-builder/cmd/root"
	"github.com/C0d3N1nJ4/payment-builder/internal/batch"
	"github.com/C0d3N1nJ4/payment-builder/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a payment file to a pain.013 message",
	Long: `Convert one CSV or XLSX payment file to a pain.013.001.11 Creditor Payment
Activation Request. Without -o the message is written next to the input file.

Example:
  payment-builder convert -i payments.csv -o payments_pain013.xml`,
	RunE: convertFunc,
}

func convertFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}
	log := root.GetLogger()

	result, err := common.ConvertFile(cmd.Context(), appContainer.GetProcessor(),
		root.SharedFlags.Input, root.SharedFlags.Output, log)
	if err != nil {
		return err
	}

	if result.Status == batch.StatusEmpty {
		log.Info("No message written", logging.F(logging.FieldInputFile, result.InputFile))
		return nil
	}
	log.Info("Conversion completed successfully!",
		logging.F(logging.FieldOutputFile, result.OutputFile),
		logging.F(logging.FieldTransactions, result.Transactions))
	return nil
}
