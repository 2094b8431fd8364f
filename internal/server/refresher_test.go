package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRefreshLoop_PicksUpNewOrders(t *testing.T) {
	up := newUpstream()
	srv, _ := setup(t, up, func(cfg *testConfig) { cfg.refresh = 10 * time.Millisecond })

	up.addOrder(map[string]any{"_id": "o9", "status": "Processing", "createdAt": "2026-10-16T08:00:00Z"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.RefreshLoop(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, ok := srv.board.Order("o9")
		return ok
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresh loop did not stop")
	}
}

func TestRefreshLoop_KeepsSnapshotOnFailure(t *testing.T) {
	up := newUpstream()
	srv, _ := setup(t, up, func(cfg *testConfig) { cfg.refresh = 10 * time.Millisecond })
	before := len(srv.board.Orders())
	require.NotZero(t, before)

	var hits atomic.Int32
	up.setFailure(func(r *http.Request) bool {
		hits.Add(1)
		return r.Method == http.MethodGet
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.RefreshLoop(ctx)

	require.Eventually(t, func() bool { return hits.Load() >= 4 }, time.Second, 5*time.Millisecond)
	require.Len(t, srv.board.Orders(), before)
}
