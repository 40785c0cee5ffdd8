package minichain

import (
	"context"
	"log/slog"
	"sync"

	"github.com/liftedinit/minichain/internal/block"
	"github.com/liftedinit/minichain/internal/session"
)

// mirror keeps an export target in step with a session. Every sealed block
// triggers a resume from the target's tip, so a failed write is retried on
// the next seal instead of leaving a gap.
type mirror struct {
	session        *session.Session
	handler        resumableHandler
	maxConcurrency uint

	mu      sync.Mutex
	lastErr error
}

func newMirror(s *session.Session, handler resumableHandler, maxConcurrency uint) *mirror {
	return &mirror{session: s, handler: handler, maxConcurrency: maxConcurrency}
}

// sync writes every local block the target is missing.
func (m *mirror) sync(ctx context.Context) error {
	return exportToPostgres(ctx, m.session.Blocks(), m.handler, m.maxConcurrency)
}

// listen registers the mirror for blocks sealed from now on.
func (m *mirror) listen(ctx context.Context) {
	m.session.OnSeal(func(b block.Block) {
		err := m.sync(ctx)
		if err != nil {
			slog.Error("Failed to mirror block", "index", b.Index, "error", err)
		}
		m.mu.Lock()
		m.lastErr = err
		m.mu.Unlock()
	})
}

// takeErr returns and clears the outcome of the latest mirrored seal.
func (m *mirror) takeErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.lastErr
	m.lastErr = nil
	return err
}
