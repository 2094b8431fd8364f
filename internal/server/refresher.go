package server

import (
	"context"
	"time"
)

const defaultRefreshInterval = time.Minute

// RefreshLoop re-fetches the order lists until ctx is done. A failed refresh
// keeps the previous snapshot.
func (srv *Server) RefreshLoop(ctx context.Context) {
	interval := srv.config.RefreshInterval
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := srv.board.Refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				failures++
				if failures%10 == 1 {
					srv.deps.Logger.Errorf("refresh orders (%d failures in a row): %v", failures, err)
				}
				continue
			}
			if failures > 0 {
				srv.deps.Logger.Infof("refresh orders recovered after %d failures", failures)
			}
			failures = 0
		}
	}
}
