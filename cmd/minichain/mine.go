package minichain

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Seal the pending transactions into a new block",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		defer handleInterrupt(cancel)()

		s := openSession()
		b, err := sealWithProgress(ctx, s, cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to mine block: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Block #%d mined! (%d transactions, nonce %d, hash %s)\n", b.Index, len(b.Transactions), b.Nonce, b.Hash)
		return nil
	},
}
