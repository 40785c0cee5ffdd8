package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/liftedinit/minichain/internal/block"
	"github.com/liftedinit/minichain/internal/output"
)

// Export writes blocks to outputHandler with at most maxConcurrency writes in
// flight. The first failure cancels the remaining writes.
func Export(ctx context.Context, blocks []block.Block, outputHandler output.OutputHandler, maxConcurrency uint) error {
	if len(blocks) == 0 {
		slog.Info("Nothing to export")
		return nil
	}
	if maxConcurrency == 0 {
		maxConcurrency = 1
	}

	first, last := blocks[0].Index, blocks[len(blocks)-1].Index
	displayProgress := len(blocks) > 1
	if displayProgress {
		slog.Info("Exporting blocks", "range", fmt.Sprintf("[%d, %d]", first, last))
	} else {
		slog.Info("Exporting block", "index", first)
	}

	var bar *progressbar.ProgressBar
	if displayProgress {
		bar = progressbar.NewOptions64(
			int64(len(blocks)),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetDescription("Exporting blocks..."),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		if err := bar.RenderBlank(); err != nil {
			return fmt.Errorf("failed to render progress bar: %w", err)
		}
	}

	if err := writeBlocks(ctx, blocks, outputHandler, maxConcurrency, bar); err != nil {
		return fmt.Errorf("failed to export blocks: %w", err)
	}

	if bar != nil {
		if err := bar.Finish(); err != nil {
			return fmt.Errorf("failed to finish progress bar: %w", err)
		}
	}

	slog.Info("Export complete", "blocks", len(blocks))
	return nil
}

func writeBlocks(ctx context.Context, blocks []block.Block, outputHandler output.OutputHandler, maxConcurrency uint, bar *progressbar.ProgressBar) error {
	eg, egCtx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxConcurrency)

	for i := range blocks {
		if egCtx.Err() != nil {
			slog.Info("Export cancelled")
			break
		}

		b := &blocks[i]
		sem <- struct{}{}

		eg.Go(func() error {
			defer func() { <-sem }()

			if err := outputHandler.WriteBlock(egCtx, b); err != nil {
				if !errors.Is(err, context.Canceled) {
					slog.Error("Block export error", "index", b.Index, "error", err)
				}
				return fmt.Errorf("failed to export block %d: %w", b.Index, err)
			}

			if bar != nil {
				if err := bar.Add(1); err != nil {
					slog.Warn("Failed to update progress bar", "error", err)
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
