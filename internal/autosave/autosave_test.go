package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/and161185/bookdesk/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type recorder struct {
	mu    sync.Mutex
	saved []model.RawRecord
	err   error
}

func (r *recorder) SavePartialOrder(ctx context.Context, payload model.RawRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, payload)
	return r.err
}

func (r *recorder) list() []model.RawRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.RawRecord(nil), r.saved...)
}

func TestOnlyLatestDraftIsSent(t *testing.T) {
	rec := &recorder{}
	d := New(rec, 30*time.Millisecond, zaptest.NewLogger(t).Sugar())

	require.True(t, d.Save("01711000000", model.RawRecord{"name": "S"}))
	require.True(t, d.Save("01711000000", model.RawRecord{"name": "Sa"}))
	require.True(t, d.Save("01711000000", model.RawRecord{"name": "Sadia"}))

	require.Eventually(t, func() bool { return len(rec.list()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)

	saved := rec.list()
	require.Len(t, saved, 1)
	require.Equal(t, "Sadia", saved[0]["name"])
	require.Zero(t, d.Pending())
}

func TestKeysAreIndependent(t *testing.T) {
	rec := &recorder{}
	d := New(rec, 20*time.Millisecond, zaptest.NewLogger(t).Sugar())

	d.Save("a", model.RawRecord{"k": "a"})
	d.Save("b", model.RawRecord{"k": "b"})

	require.Eventually(t, func() bool { return len(rec.list()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestCancel(t *testing.T) {
	rec := &recorder{}
	d := New(rec, 20*time.Millisecond, zaptest.NewLogger(t).Sugar())

	d.Save("a", model.RawRecord{"k": "a"})
	d.Cancel("a")
	d.Cancel("missing")

	time.Sleep(60 * time.Millisecond)
	require.Empty(t, rec.list())
}

func TestCloseFlushesPending(t *testing.T) {
	rec := &recorder{err: errors.New("upstream down")}
	d := New(rec, time.Hour, zaptest.NewLogger(t).Sugar())

	d.Save("a", model.RawRecord{"k": "a"})
	d.Save("b", model.RawRecord{"k": "b"})
	d.Close(context.Background())

	require.Len(t, rec.list(), 2)
	require.Zero(t, d.Pending())
	require.False(t, d.Save("c", model.RawRecord{"k": "c"}))
}
