package ledger

import "time"

type settings struct {
	difficulty    uint
	trackIndex    bool
	now           func() time.Time
	observeEvery  uint64
	observeMining func(hashes uint64)
}

func defaultSettings() settings {
	return settings{
		trackIndex: true,
		now:        time.Now,
	}
}

// Option configures a Ledger.
type Option func(*settings)

// WithDifficulty sets the difficulty the genesis block is mined at.
func WithDifficulty(difficulty uint) Option {
	return func(s *settings) { s.difficulty = difficulty }
}

// WithIndexTracking controls whether Verify requires block.Index to equal
// the block's position. Snapshots written without indices need it off.
func WithIndexTracking(track bool) Option {
	return func(s *settings) { s.trackIndex = track }
}

// WithClock replaces the time source used to stamp new blocks.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMiningObserver registers fn to be told about hashes evaluated while
// mining, in batches of at most every.
func WithMiningObserver(every uint64, fn func(hashes uint64)) Option {
	return func(s *settings) {
		s.observeEvery = every
		s.observeMining = fn
	}
}
