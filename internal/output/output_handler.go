package output

import (
	"context"

	"github.com/liftedinit/minichain/internal/block"
)

// OutputHandler receives sealed blocks for export. WriteBlock may be called
// from several goroutines at once.
type OutputHandler interface {
	WriteBlock(ctx context.Context, b *block.Block) error
	Close() error
}
