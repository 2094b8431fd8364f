package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/and161185/bookdesk/internal/model"
	"github.com/and161185/bookdesk/internal/orders"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Remote interface {
	ListOrders(ctx context.Context) ([]model.RawRecord, error)
	ListPartialOrders(ctx context.Context) ([]model.RawRecord, error)

	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
	UpdateCallStatus(ctx context.Context, id string, status model.CallStatus) error
	UpdateShippingMethod(ctx context.Context, id, method string, cost, total float64) error
	UpdatePrice(ctx context.Context, id string, total float64) error
	UpdateNote(ctx context.Context, id, note string) error
}

// Dashboard is the only holder of the admin view state. Lists, pages and
// detail views are all derived from it by id.
type Dashboard struct {
	remote Remote
	logger *zap.SugaredLogger
	now    func() time.Time

	mu          sync.RWMutex
	orders      []model.Order
	abandoned   []model.AbandonedOrder
	fields      map[fieldKey]fieldState
	refreshedAt time.Time
}

func New(remote Remote, logger *zap.SugaredLogger, loc *time.Location) *Dashboard {
	if loc == nil {
		loc = time.Local
	}
	return &Dashboard{
		remote: remote,
		logger: logger,
		now:    func() time.Time { return time.Now().In(loc) },
		fields: make(map[fieldKey]fieldState),
	}
}

func (d *Dashboard) Now() time.Time {
	return d.now()
}

// Refresh fetches active and partial orders together and swaps both lists in
// one step. On any failure the previous snapshot stays.
func (d *Dashboard) Refresh(ctx context.Context) error {
	var rawOrders, rawPartial []model.RawRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := d.remote.ListOrders(gctx)
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		rawOrders = list
		return nil
	})
	g.Go(func() error {
		list, err := d.remote.ListPartialOrders(gctx)
		if err != nil {
			return fmt.Errorf("list partial orders: %w", err)
		}
		rawPartial = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	now := d.now()
	active := orders.Normalize(rawOrders, now)
	abandoned := orders.NormalizeAbandoned(rawPartial, now)

	d.mu.Lock()
	d.orders = active
	d.abandoned = abandoned
	d.refreshedAt = now
	d.pruneFieldsLocked()
	d.mu.Unlock()

	return nil
}

func (d *Dashboard) RefreshedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.refreshedAt
}

// Orders returns a copy of the active order list, newest first.
func (d *Dashboard) Orders() []model.Order {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]model.Order, len(d.orders))
	copy(out, d.orders)
	return out
}

func (d *Dashboard) Order(id string) (model.Order, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i := d.indexLocked(id)
	if i < 0 {
		return model.Order{}, false
	}
	return d.orders[i], true
}

func (d *Dashboard) Abandoned() []model.AbandonedOrder {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]model.AbandonedOrder, len(d.abandoned))
	copy(out, d.abandoned)
	return out
}

func (d *Dashboard) AbandonedOrder(id string) (model.AbandonedOrder, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, a := range d.abandoned {
		if a.ID == id {
			return a, true
		}
	}
	return model.AbandonedOrder{}, false
}

func (d *Dashboard) RemoveOrder(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexLocked(id)
	if i < 0 {
		return false
	}
	d.orders = append(d.orders[:i], d.orders[i+1:]...)
	return true
}

func (d *Dashboard) RemoveAbandoned(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, a := range d.abandoned {
		if a.ID == id {
			d.abandoned = append(d.abandoned[:i], d.abandoned[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Dashboard) indexLocked(id string) int {
	for i := range d.orders {
		if d.orders[i].ID == id {
			return i
		}
	}
	return -1
}
