package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/and161185/bookdesk/internal/model"
	"go.uber.org/zap"
)

type Saver interface {
	SavePartialOrder(ctx context.Context, payload model.RawRecord) error
}

type pending struct {
	timer   *time.Timer
	payload model.RawRecord
	gen     uint64
}

// Debouncer forwards checkout drafts once a visitor stopped typing for the
// configured delay. Only the latest draft per key is sent.
type Debouncer struct {
	saver  Saver
	delay  time.Duration
	logger *zap.SugaredLogger

	mu      sync.Mutex
	pending map[string]*pending
	gen     uint64
	closed  bool
	wg      sync.WaitGroup
}

func New(saver Saver, delay time.Duration, logger *zap.SugaredLogger) *Debouncer {
	return &Debouncer{
		saver:   saver,
		delay:   delay,
		logger:  logger,
		pending: make(map[string]*pending),
	}
}

// Save schedules payload for key, replacing any draft still waiting.
// It reports false after Close.
func (d *Debouncer) Save(key string, payload model.RawRecord) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false
	}

	d.gen++
	gen := d.gen
	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
	}
	p := &pending{payload: payload, gen: gen}
	p.timer = time.AfterFunc(d.delay, func() { d.fire(key, gen) })
	d.pending[key] = p
	return true
}

// Cancel drops a waiting draft, e.g. after the order was placed.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
		delete(d.pending, key)
	}
}

// Pending reports how many drafts are waiting.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

func (d *Debouncer) fire(key string, gen uint64) {
	d.mu.Lock()
	p, ok := d.pending[key]
	if !ok || p.gen != gen {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.wg.Add(1)
	d.mu.Unlock()

	defer d.wg.Done()
	d.send(context.Background(), key, p.payload)
}

func (d *Debouncer) send(ctx context.Context, key string, payload model.RawRecord) {
	if err := d.saver.SavePartialOrder(ctx, payload); err != nil {
		d.logger.Warnf("autosave draft %s: %v", key, err)
		return
	}
	d.logger.Debugf("autosave draft %s saved", key)
}

// Close stops accepting drafts, sends the waiting ones immediately and waits
// for in-progress sends.
func (d *Debouncer) Close(ctx context.Context) {
	d.mu.Lock()
	d.closed = true
	flush := make(map[string]model.RawRecord, len(d.pending))
	for key, p := range d.pending {
		p.timer.Stop()
		flush[key] = p.payload
		delete(d.pending, key)
	}
	d.mu.Unlock()

	for key, payload := range flush {
		d.send(ctx, key, payload)
	}
	d.wg.Wait()
}
