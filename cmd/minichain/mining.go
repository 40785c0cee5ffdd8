package minichain

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/liftedinit/minichain/internal/block"
	"github.com/liftedinit/minichain/internal/session"
)

const spinnerRefresh = 100 * time.Millisecond

// sealWithProgress seals the pending pool while a spinner on w reports the
// hashes evaluated so far.
func sealWithProgress(ctx context.Context, s *session.Session, w io.Writer) (block.Block, error) {
	bar := progressbar.NewOptions64(
		-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(fmt.Sprintf("Mining block at difficulty %d...", s.Difficulty())),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("hashes"),
		progressbar.OptionClearOnFinish(),
	)

	start := s.HashesComputed()
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(spinnerRefresh)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = bar.Set64(int64(s.HashesComputed() - start))
			}
		}
	}()

	b, err := s.Seal(ctx)
	close(stop)
	wg.Wait()
	_ = bar.Finish()

	return b, err
}
