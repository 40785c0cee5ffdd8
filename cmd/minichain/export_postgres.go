package minichain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/liftedinit/minichain/internal/block"
	"github.com/liftedinit/minichain/internal/config"
	"github.com/liftedinit/minichain/internal/exporter"
	"github.com/liftedinit/minichain/internal/output"
	"github.com/liftedinit/minichain/internal/output/postgresql"
)

var PostgresCmd = &cobra.Command{
	Use:   "postgres [psql-connection-string]",
	Short: "Export the chain to a PostgreSQL database",
	Long:  `Export the chain to a PostgreSQL database, resuming after the latest block already stored there.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postgresConfig := config.LoadPostgresConfigFromCLI()
		if len(args) == 1 {
			postgresConfig.ConnString = args[0]
		}
		if err := postgresConfig.Validate(); err != nil {
			return fmt.Errorf("invalid PostgreSQL configuration: %w", err)
		}

		blocks, err := exportableBlocks()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		defer handleInterrupt(cancel)()

		outputHandler, err := postgresql.NewPostgresOutputHandler(ctx, postgresConfig.ConnString, postgresConfig.MaxConcurrency)
		if err != nil {
			return fmt.Errorf("failed to create PostgreSQL output handler: %w", err)
		}
		defer outputHandler.Close()

		return exportToPostgres(ctx, blocks, outputHandler, postgresConfig.MaxConcurrency)
	},
}

// resumableHandler is an output that knows the latest block it holds.
type resumableHandler interface {
	output.OutputHandler
	GetLatestBlock(ctx context.Context) (*block.Block, error)
}

// exportToPostgres writes the blocks the database does not hold yet.
func exportToPostgres(ctx context.Context, blocks []block.Block, outputHandler resumableHandler, maxConcurrency uint) error {
	latestBlock, err := outputHandler.GetLatestBlock(ctx)
	if err != nil {
		return fmt.Errorf("failed to get the latest block: %w", err)
	}
	if latestBlock != nil {
		slog.Info("Resuming after block", "index", latestBlock.Index)
	}

	remaining, err := exporter.Remaining(blocks, latestBlock)
	if err != nil {
		return err
	}
	return exporter.Export(ctx, remaining, outputHandler, maxConcurrency)
}
