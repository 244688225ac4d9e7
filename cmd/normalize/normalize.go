// Package normalize previews how payment files are read
package normalize

import (
	"fmt"

	"github.com/C0d3N1nJ4/payment-builder/cmd/common"
	"github.com/C0d3N1nJ4/payment-builder/cmd/root"
	"github.com/C0d3N1nJ4/payment-builder/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the normalize command
var Cmd = &cobra.Command{
	Use:   "normalize",
	Short: "Write the canonical CSV of a payment file",
	Long: `Parse a CSV or XLSX payment file and write its records back as CSV using the
canonical column names. Use it to check which input columns were recognized
before generating a message. Without -o the CSV is printed to stdout.

Example:
  payment-builder normalize -i payments.csv -o normalized.csv`,
	RunE: normalizeFunc,
}

func normalizeFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}
	log := root.GetLogger()

	res, err := common.NormalizeFile(
		appContainer.GetNormalizer(),
		root.SharedFlags.Input,
		root.SharedFlags.Output,
		appContainer.GetConfig().DelimiterRune(),
		cmd.OutOrStdout(),
		log,
	)
	if err != nil {
		return err
	}

	log.Info("Normalization completed",
		logging.F(logging.FieldCount, len(res.Instructions)),
		logging.F(logging.FieldSkipped, len(res.Skipped)))
	return nil
}
