package recovery

import (
	"context"
	"sync"
	"time"

	"github.com/and161185/bookdesk/internal/errs"
	"github.com/and161185/bookdesk/internal/metrics"
	"github.com/and161185/bookdesk/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type State string

const (
	Idle            State = "Idle"
	ConfirmPending  State = "ConfirmPending"
	Migrating       State = "Migrating"
	Success         State = "Success"
	DuplicateExists State = "DuplicateExists"
	Failed          State = "Failed"
)

const (
	ReasonActiveOrderExists = "active_order_exists"
	RecoverySource          = "Abandoned Recovery"

	defaultTTL = 10 * time.Minute
)

type Remote interface {
	CreateOrder(ctx context.Context, payload model.RawRecord) (model.APIResult, error)
	DeletePartialOrder(ctx context.Context, id string) error
}

// View is the admin state the workflow reads sources from and refreshes after success.
type View interface {
	AbandonedOrder(id string) (model.AbandonedOrder, bool)
	RemoveAbandoned(id string) bool
	Refresh(ctx context.Context) error
}

type Migration struct {
	Token       string          `json:"token"`
	SourceID    string          `json:"sourceId"`
	State       State           `json:"state"`
	Payload     model.RawRecord `json:"payload"`
	OrderID     string          `json:"orderId,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	Error       string          `json:"error,omitempty"`
	DeleteError string          `json:"deleteError,omitempty"`
	RequestedAt time.Time       `json:"requestedAt"`
}

func (m Migration) Terminal() bool {
	return m.State == Success || m.State == DuplicateExists || m.State == Failed
}

// Workflow promotes abandoned orders to active ones. The source record is
// deleted only after the active order was created.
type Workflow struct {
	remote  Remote
	view    View
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
	ttl     time.Duration
	now     func() time.Time

	mu         sync.Mutex
	migrations map[string]*Migration
	inFlight   map[string]string
}

func NewWorkflow(remote Remote, view View, logger *zap.SugaredLogger, m *metrics.Metrics) *Workflow {
	return &Workflow{
		remote:     remote,
		view:       view,
		logger:     logger,
		metrics:    m,
		ttl:        defaultTTL,
		now:        time.Now,
		migrations: make(map[string]*Migration),
		inFlight:   make(map[string]string),
	}
}

// Request captures the source record and waits for confirmation.
func (w *Workflow) Request(sourceID string) (Migration, error) {
	src, ok := w.view.AbandonedOrder(sourceID)
	if !ok {
		return Migration{}, errs.ErrOrderNotFound
	}

	m := &Migration{
		Token:       uuid.NewString(),
		SourceID:    sourceID,
		State:       ConfirmPending,
		Payload:     BuildPayload(src),
		RequestedAt: w.now(),
	}

	w.mu.Lock()
	w.pruneLocked()
	w.migrations[m.Token] = m
	w.mu.Unlock()

	return *m, nil
}

// Cancel drops a migration that was not confirmed yet.
func (w *Workflow) Cancel(token string) (Migration, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	m, ok := w.lookupLocked(token)
	if !ok {
		return Migration{}, errs.ErrMigrationNotFound
	}
	if m.State != ConfirmPending {
		return *m, errs.ErrMigrationState
	}
	delete(w.migrations, token)
	m.State = Idle
	return *m, nil
}

func (w *Workflow) Get(token string) (Migration, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	m, ok := w.lookupLocked(token)
	if !ok {
		return Migration{}, false
	}
	return *m, true
}

// Confirm runs the migration. Each token runs at most once and one source
// record is never migrated twice concurrently.
func (w *Workflow) Confirm(ctx context.Context, token string) (Migration, error) {
	w.mu.Lock()
	m, ok := w.lookupLocked(token)
	if !ok {
		w.mu.Unlock()
		return Migration{}, errs.ErrMigrationNotFound
	}
	if m.State != ConfirmPending {
		w.mu.Unlock()
		return *m, errs.ErrMigrationState
	}
	if _, busy := w.inFlight[m.SourceID]; busy {
		w.mu.Unlock()
		return *m, errs.ErrMigrationInFlight
	}
	m.State = Migrating
	w.inFlight[m.SourceID] = token
	run := *m
	w.mu.Unlock()

	w.run(ctx, &run)

	w.mu.Lock()
	*m = run
	delete(w.inFlight, m.SourceID)
	w.mu.Unlock()

	w.metrics.MigrationFinished(string(run.State))
	return run, nil
}

func (w *Workflow) run(ctx context.Context, m *Migration) {
	res, err := w.remote.CreateOrder(ctx, m.Payload)
	switch {
	case err != nil:
		w.logger.Errorf("migrate abandoned order %s: create: %v", m.SourceID, err)
		m.State = Failed
		m.Error = err.Error()
		return
	case !res.OK() && res.Reason == ReasonActiveOrderExists:
		w.logger.Infof("migrate abandoned order %s: active order already exists", m.SourceID)
		m.State = DuplicateExists
		m.Reason = res.Reason
		return
	case !res.OK():
		w.logger.Warnf("migrate abandoned order %s: rejected: %s %s", m.SourceID, res.Reason, res.Message)
		m.State = Failed
		m.Reason = res.Reason
		m.Error = res.Message
		if m.Error == "" {
			m.Error = "order api rejected the order"
		}
		return
	}

	m.State = Success
	m.OrderID = res.OrderID

	if err := w.remote.DeletePartialOrder(ctx, m.SourceID); err != nil {
		w.logger.Errorf("migrate abandoned order %s: delete source: %v", m.SourceID, err)
		m.DeleteError = err.Error()
	}
	if err := w.view.Refresh(ctx); err != nil {
		w.logger.Errorf("migrate abandoned order %s: refresh: %v", m.SourceID, err)
	}
	w.view.RemoveAbandoned(m.SourceID)
}

// lookupLocked returns a live migration. Requests left unconfirmed past the
// ttl are dropped and never run.
func (w *Workflow) lookupLocked(token string) (*Migration, bool) {
	m, ok := w.migrations[token]
	if !ok {
		return nil, false
	}
	if w.expired(m) {
		delete(w.migrations, token)
		return nil, false
	}
	return m, true
}

func (w *Workflow) pruneLocked() {
	for token, m := range w.migrations {
		if w.expired(m) {
			delete(w.migrations, token)
		}
	}
}

func (w *Workflow) expired(m *Migration) bool {
	if m.State != ConfirmPending && !m.Terminal() {
		return false
	}
	return m.RequestedAt.Before(w.now().Add(-w.ttl))
}

// BuildPayload shallow-copies the abandoned record, applies the active-order
// overrides and drops the database id so a fresh one is assigned.
func BuildPayload(src model.AbandonedOrder) model.RawRecord {
	p := make(model.RawRecord, len(src.Raw)+10)
	for k, v := range src.Raw {
		p[k] = v
	}
	delete(p, "_id")
	delete(p, "id")

	p["number"] = known(src.Customer.Phone)
	p["name"] = known(src.Customer.Name)
	p["address"] = known(src.Address)
	if len(src.Items) > 0 {
		p["items"] = src.Items
	}
	p["shippingMethod"] = known(src.ShippingMethod)
	p["shippingCost"] = src.ShippingCost
	p["totalValue"] = src.TotalValue
	p["status"] = model.Processing
	p["phoneCallStatus"] = model.CallConfirmed
	p["source"] = RecoverySource
	p["isRecoveredOrder"] = true
	return p
}

func known(s string) string {
	if s == "N/A" {
		return ""
	}
	return s
}
