package ledger

import (
	"errors"
	"fmt"
)

// ErrIntegrity marks a chain whose stored hashes or links no longer match.
var ErrIntegrity = errors.New("chain integrity violation")

// Verify walks the chain and returns the first integrity violation, wrapped
// around ErrIntegrity, or nil. It never modifies the chain.
func (l *Ledger) Verify() error {
	if len(l.chain) == 0 {
		return ErrEmptyChain
	}

	for i := range l.chain {
		current := &l.chain[i]

		if l.cfg.trackIndex && current.Index != uint64(i) {
			return fmt.Errorf("block %d: %w: index is %d", i, ErrIntegrity, current.Index)
		}

		if expected := current.CalculateHash(); current.Hash != expected {
			return fmt.Errorf("block %d: %w: stored hash %s, computed %s", i, ErrIntegrity, current.Hash, expected)
		}

		if i == 0 {
			continue
		}

		if previous := &l.chain[i-1]; current.PreviousHash != previous.Hash {
			return fmt.Errorf("block %d: %w: previous hash %s, block %d hash %s", i, ErrIntegrity, current.PreviousHash, i-1, previous.Hash)
		}
	}

	return nil
}

// IsValid reports whether Verify finds no violation.
func (l *Ledger) IsValid() bool {
	return l.Verify() == nil
}
