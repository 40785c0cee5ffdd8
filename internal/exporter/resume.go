package exporter

import (
	"errors"
	"fmt"

	"github.com/liftedinit/minichain/internal/block"
)

// ErrDiverged is returned when an export target holds blocks that are not
// part of the local chain.
var ErrDiverged = errors.New("exported chain diverges from local chain")

// Remaining returns the suffix of blocks that comes after latest, the tip
// already held by the export target. A nil latest means nothing was exported.
func Remaining(blocks []block.Block, latest *block.Block) ([]block.Block, error) {
	if latest == nil {
		return blocks, nil
	}

	if latest.Index >= uint64(len(blocks)) {
		return nil, fmt.Errorf("%w: target is at block %d, local tip is %d", ErrDiverged, latest.Index, len(blocks)-1)
	}

	if local := blocks[latest.Index]; local.Hash != latest.Hash {
		return nil, fmt.Errorf("%w: block %d is %s locally, %s in target", ErrDiverged, latest.Index, local.Hash, latest.Hash)
	}

	return blocks[latest.Index+1:], nil
}
