package ledger

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/liftedinit/minichain/internal/block"
)

// ErrEmptyChain is returned when a state has no genesis block.
var ErrEmptyChain = errors.New("chain has no blocks")

// State is the persisted layout of a Ledger.
type State struct {
	Chain               []block.Block       `json:"chain"`
	PendingTransactions []block.Transaction `json:"pending_transactions"`
}

// Snapshot returns a deep copy of the ledger's state.
func (l *Ledger) Snapshot() State {
	return State{
		Chain:               l.Inspect(),
		PendingTransactions: l.Pending(),
	}
}

// Restore rebuilds a ledger from s. Stored hashes are kept verbatim; call
// Verify to check them.
func Restore(s State, opts ...Option) (*Ledger, error) {
	if len(s.Chain) == 0 {
		return nil, ErrEmptyChain
	}

	l := &Ledger{cfg: defaultSettings()}
	for _, opt := range opts {
		opt(&l.cfg)
	}

	l.chain = make([]block.Block, len(s.Chain))
	for i, b := range s.Chain {
		l.chain[i] = b.Clone()
	}
	if len(s.PendingTransactions) > 0 {
		l.pending = make([]block.Transaction, len(s.PendingTransactions))
		copy(l.pending, s.PendingTransactions)
	}

	return l, nil
}

// Encode serialises l as indented JSON.
func Encode(l *Ledger) ([]byte, error) {
	data, err := json.MarshalIndent(l.Snapshot(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode ledger: %w", err)
	}
	return data, nil
}

// Decode parses data produced by Encode.
func Decode(data []byte, opts ...Option) (*Ledger, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode ledger: %w", err)
	}
	return Restore(s, opts...)
}
