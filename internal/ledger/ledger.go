package ledger

import (
	"fmt"
	"log/slog"

	"github.com/liftedinit/minichain/internal/block"
)

type Ledger struct {
	chain   []block.Block
	pending []block.Transaction
	cfg     settings
}

// New creates a ledger holding only a freshly mined genesis block.
func New(opts ...Option) *Ledger {
	l := &Ledger{cfg: defaultSettings()}
	for _, opt := range opts {
		opt(&l.cfg)
	}

	genesis := l.mine(0, nil, block.GenesisPreviousHash, l.cfg.difficulty)
	l.chain = []block.Block{*genesis}
	slog.Debug("Genesis block created", "hash", genesis.Hash, "nonce", genesis.Nonce, "difficulty", l.cfg.difficulty)

	return l
}

// AddTransaction appends tx to the pending pool. No business rules apply;
// identifiers are only brought to valid UTF-8 so the pool survives a save.
func (l *Ledger) AddTransaction(tx block.Transaction) {
	l.pending = append(l.pending, block.NewTransaction(tx.Sender, tx.Receiver, tx.Amount))
}

// Submit is AddTransaction for loose fields.
func (l *Ledger) Submit(sender, receiver string, amount float64) {
	l.AddTransaction(block.NewTransaction(sender, receiver, amount))
}

// Seal bundles the pending pool into a block linked to the tip, mines it,
// appends it and empties the pool. It blocks until mining succeeds and
// returns a copy of the sealed block.
func (l *Ledger) Seal(difficulty uint) block.Block {
	tip := l.chain[len(l.chain)-1]
	b := l.mine(uint64(len(l.chain)), l.pending, tip.Hash, difficulty)

	// The pool is dropped only once the block is part of the chain.
	l.chain = append(l.chain, *b)
	l.pending = nil

	slog.Debug("Block sealed", "index", b.Index, "hash", b.Hash, "nonce", b.Nonce, "transactions", len(b.Transactions))
	return b.Clone()
}

func (l *Ledger) mine(index uint64, txs []block.Transaction, previousHash string, difficulty uint) *block.Block {
	b := block.NewAt(index, l.cfg.now().Unix(), txs, previousHash)
	b.MineNotify(difficulty, l.cfg.observeEvery, l.cfg.observeMining)
	return b
}

// Len returns the number of blocks, genesis included.
func (l *Ledger) Len() int {
	return len(l.chain)
}

// PendingLen returns the size of the pending pool.
func (l *Ledger) PendingLen() int {
	return len(l.pending)
}

// Tip returns a copy of the last block.
func (l *Ledger) Tip() block.Block {
	return l.chain[len(l.chain)-1].Clone()
}

// Inspect returns deep copies of every block from genesis to tip.
func (l *Ledger) Inspect() []block.Block {
	out := make([]block.Block, len(l.chain))
	for i, b := range l.chain {
		out[i] = b.Clone()
	}
	return out
}

// Pending returns a copy of the pending pool in admission order.
func (l *Ledger) Pending() []block.Transaction {
	out := make([]block.Transaction, len(l.pending))
	copy(out, l.pending)
	return out
}

// Tamper applies mutate to the stored block at position i without
// recomputing its hash. It exists to exercise integrity checks.
func (l *Ledger) Tamper(i int, mutate func(b *block.Block)) error {
	if i < 0 || i >= len(l.chain) {
		return fmt.Errorf("index out of range: %d", i)
	}
	mutate(&l.chain[i])
	return nil
}
