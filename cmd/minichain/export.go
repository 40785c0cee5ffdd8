package minichain

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/liftedinit/minichain/internal/block"
)

var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the chain to various output formats",
	Long:  `Export every block of a valid chain in the specified format.`,
}

func init() {
	ExportCmd.PersistentFlags().UintP("max-concurrency", "c", 4, "Maximum number of blocks written concurrently (advanced)")
	if err := viper.BindPFlags(ExportCmd.PersistentFlags()); err != nil {
		slog.Error("Failed to bind ExportCmd flags", "error", err)
	}

	ExportCmd.AddCommand(jsonCmd)
	ExportCmd.AddCommand(tsvCmd)
	ExportCmd.AddCommand(PostgresCmd)
}

// exportableBlocks returns the chain if it passes validation.
func exportableBlocks() ([]block.Block, error) {
	s := openSession()
	if err := s.Verify(); err != nil {
		return nil, fmt.Errorf("refusing to export an invalid chain: %w", err)
	}
	return s.Blocks(), nil
}
