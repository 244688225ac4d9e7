// Package inspect implements the inspect command, which summarizes and checks a
// generated pain.013 message.
package inspect

import (
	"github.com/C0d3N1nJ4/payment-builder/cmd/common"
	"github.com/C0d3N1nJ4/payment-builder/cmd/root"
	"github.com/C0d3N1nJ4/payment-builder/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the inspect command
var Cmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize and check a pain.013 message",
	Long: `Read a pain.013 message, print its identifiers, transaction count and
per-currency totals, and fail when the document is structurally inconsistent
(wrong namespace, NbOfTxs not matching the transactions, missing identifiers).

Example:
  payment-builder inspect -i payments_pain013.xml`,
	RunE: inspectFunc,
}

func inspectFunc(cmd *cobra.Command, args []string) error {
	summary, err := common.InspectFile(root.SharedFlags.Input, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	root.GetLogger().Debug("Message structure is valid",
		logging.F(logging.FieldMessageID, summary.MessageID),
		logging.F(logging.FieldTransactions, summary.CountedTxs))
	return nil
}
