package minichain

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var addTransactionCmd = &cobra.Command{
	Use:   "add-transaction",
	Short: "Add a transaction to the pending pool",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sender, _ := cmd.Flags().GetString("sender")
		receiver, _ := cmd.Flags().GetString("receiver")
		amount, _ := cmd.Flags().GetString("amount")

		tx, err := parseTransaction(sender, receiver, amount)
		if err != nil {
			return err
		}

		s := openSession()
		if err := s.AddTransaction(tx); err != nil {
			return fmt.Errorf("failed to save transaction: %w", err)
		}
		slog.Debug("Transaction added", "sender", tx.Sender, "receiver", tx.Receiver, "amount", tx.Amount, "pending", s.PendingCount())

		fmt.Fprintln(cmd.OutOrStdout(), "Transaction added!")
		return nil
	},
}

func init() {
	addTransactionCmd.Flags().StringP("sender", "s", "", "Sender of the transaction")
	addTransactionCmd.Flags().StringP("receiver", "r", "", "Receiver of the transaction")
	addTransactionCmd.Flags().StringP("amount", "a", "", "Amount transferred")
	for _, name := range []string{"sender", "receiver", "amount"} {
		if err := addTransactionCmd.MarkFlagRequired(name); err != nil {
			slog.Error("Failed to mark flag required", "flag", name, "error", err)
		}
	}
}
