package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/liftedinit/minichain/internal/block"
	"github.com/liftedinit/minichain/internal/ledger"
	"github.com/liftedinit/minichain/internal/store"
)

// miningReportInterval is how many hashes are batched per progress update.
const miningReportInterval = 1 << 12

// SealListener is called with every block sealed through a Session, after the
// session lock has been released.
type SealListener func(b block.Block)

// Session owns the process' only Ledger and serialises access to it. Every
// mutation is persisted through the store before the call returns.
type Session struct {
	mu         sync.Mutex
	ledger     *ledger.Ledger
	store      *store.FileStore
	difficulty uint
	listeners  []SealListener

	// Mirrors of ledger state readable without the lock, so metrics scrapes
	// do not wait on a running seal.
	height  atomic.Int64
	pending atomic.Int64
	valid   atomic.Bool
	hashes  atomic.Uint64
}

// Open loads the ledger stored at path, or creates one, and seals at
// difficulty. Genesis is mined at the same difficulty.
func Open(path string, difficulty uint, opts ...ledger.Option) *Session {
	s := &Session{difficulty: difficulty}

	opts = append([]ledger.Option{ledger.WithDifficulty(difficulty)}, opts...)
	opts = append(opts, ledger.WithMiningObserver(miningReportInterval, func(n uint64) { s.hashes.Add(n) }))

	s.store = store.NewFileStore(path, opts...)
	s.ledger = s.store.Load()
	s.refresh()
	return s
}

// OnSeal registers l to be told about sealed blocks.
func (s *Session) OnSeal(l SealListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// AddTransaction admits tx to the pending pool and saves the ledger.
func (s *Session) AddTransaction(tx block.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.AddTransaction(tx)
	s.refresh()
	return s.store.Save(s.ledger)
}

type sealResult struct {
	block block.Block
	err   error
}

// Seal mines the pending pool into a new block on a worker goroutine and
// saves the ledger. If ctx ends first Seal returns ctx.Err(); the worker still
// completes and keeps the session locked until the block is appended.
func (s *Session) Seal(ctx context.Context) (block.Block, error) {
	s.mu.Lock()
	listeners := append([]SealListener(nil), s.listeners...)

	done := make(chan sealResult, 1)
	go func() {
		b := s.ledger.Seal(s.difficulty)
		err := s.store.Save(s.ledger)
		s.refresh()
		s.mu.Unlock()

		slog.Info("Block sealed", "index", b.Index, "hash", b.Hash, "nonce", b.Nonce)
		for _, l := range listeners {
			l(b)
		}
		done <- sealResult{block: b, err: err}
	}()

	select {
	case res := <-done:
		return res.block, res.err
	case <-ctx.Done():
		return block.Block{}, ctx.Err()
	}
}

// Blocks returns a snapshot of the chain.
func (s *Session) Blocks() []block.Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Inspect()
}

// Pending returns a snapshot of the pending pool.
func (s *Session) Pending() []block.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Pending()
}

// Verify runs a full integrity check.
func (s *Session) Verify() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Verify()
}

func (s *Session) Difficulty() uint {
	return s.difficulty
}

func (s *Session) StatePath() string {
	return s.store.Path()
}

// Height returns the number of blocks, genesis included.
func (s *Session) Height() int {
	return int(s.height.Load())
}

func (s *Session) PendingCount() int {
	return int(s.pending.Load())
}

// Valid reports the result of the last integrity check, taken after every
// mutation.
func (s *Session) Valid() bool {
	return s.valid.Load()
}

// HashesComputed returns the number of hashes evaluated while mining in this
// process.
func (s *Session) HashesComputed() uint64 {
	return s.hashes.Load()
}

// refresh must be called with mu held.
func (s *Session) refresh() {
	s.height.Store(int64(s.ledger.Len()))
	s.pending.Store(int64(s.ledger.PendingLen()))
	s.valid.Store(s.ledger.IsValid())
}
