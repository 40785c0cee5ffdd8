package minichain

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the integrity of the chain",
	Long:  `Recompute every block hash and check the links between blocks. Exits non-zero when the chain has been tampered with.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSession()
		if err := s.Verify(); err != nil {
			return fmt.Errorf("chain is invalid: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chain is valid (%d blocks)\n", s.Height())
		return nil
	},
}
