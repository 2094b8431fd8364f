package dashboard

import (
	"context"
	"fmt"

	"github.com/and161185/bookdesk/internal/errs"
	"github.com/and161185/bookdesk/internal/model"
	"github.com/shopspring/decimal"
)

type Field string

const (
	FieldStatus         Field = "status"
	FieldCallStatus     Field = "callStatus"
	FieldShippingMethod Field = "shippingMethod"
	FieldPrice          Field = "price"
	FieldNote           Field = "note"
)

type State string

const (
	StatePending   State = "pending"
	StateConfirmed State = "confirmed"
	StateFailed    State = "failed"
)

type Mutation struct {
	OrderID string      `json:"orderId"`
	Field   Field       `json:"field"`
	State   State       `json:"state"`
	Error   string      `json:"error,omitempty"`
	Order   model.Order `json:"order"`
}

type fieldKey struct {
	orderID string
	field   Field
}

type fieldState struct {
	seq   uint64
	state State
}

// ShippingTotal moves the shipping charge inside a total: total - oldCost + newCost.
func ShippingTotal(total, oldCost, newCost float64) float64 {
	return decimal.NewFromFloat(total).
		Sub(decimal.NewFromFloat(oldCost)).
		Add(decimal.NewFromFloat(newCost)).
		InexactFloat64()
}

func (d *Dashboard) ChangeStatus(ctx context.Context, id string, status model.OrderStatus) (Mutation, error) {
	if !status.Valid() {
		return Mutation{}, errs.ErrUnknownStatus
	}
	return d.mutate(ctx, id, FieldStatus,
		func(o *model.Order) func(*model.Order) {
			prev := o.Status
			o.Status = status
			return func(o *model.Order) { o.Status = prev }
		},
		func(ctx context.Context, o model.Order) error {
			return d.remote.UpdateStatus(ctx, o.ID, status)
		})
}

func (d *Dashboard) ChangeCallStatus(ctx context.Context, id string, status model.CallStatus) (Mutation, error) {
	if !status.Valid() {
		return Mutation{}, errs.ErrUnknownCallStatus
	}
	return d.mutate(ctx, id, FieldCallStatus,
		func(o *model.Order) func(*model.Order) {
			prev := o.CallStatus
			o.CallStatus = status
			return func(o *model.Order) { o.CallStatus = prev }
		},
		func(ctx context.Context, o model.Order) error {
			return d.remote.UpdateCallStatus(ctx, o.ID, status)
		})
}

func (d *Dashboard) ChangeShippingMethod(ctx context.Context, id, method string) (Mutation, error) {
	cost, ok := model.ShippingCost(method)
	if !ok {
		return Mutation{}, errs.ErrUnknownShippingMethod
	}
	return d.mutate(ctx, id, FieldShippingMethod,
		func(o *model.Order) func(*model.Order) {
			prevMethod, prevCost := o.ShippingMethod, o.ShippingCost
			o.TotalValue = ShippingTotal(o.TotalValue, prevCost, cost)
			o.ShippingMethod, o.ShippingCost = method, cost
			return func(o *model.Order) {
				o.TotalValue = ShippingTotal(o.TotalValue, o.ShippingCost, prevCost)
				o.ShippingMethod, o.ShippingCost = prevMethod, prevCost
			}
		},
		func(ctx context.Context, o model.Order) error {
			return d.remote.UpdateShippingMethod(ctx, o.ID, method, cost, o.TotalValue)
		})
}

func (d *Dashboard) ChangePrice(ctx context.Context, id string, total float64) (Mutation, error) {
	return d.mutate(ctx, id, FieldPrice,
		func(o *model.Order) func(*model.Order) {
			prev := o.TotalValue
			o.TotalValue = total
			return func(o *model.Order) { o.TotalValue = prev }
		},
		func(ctx context.Context, o model.Order) error {
			return d.remote.UpdatePrice(ctx, o.ID, total)
		})
}

func (d *Dashboard) ChangeNote(ctx context.Context, id, note string) (Mutation, error) {
	return d.mutate(ctx, id, FieldNote,
		func(o *model.Order) func(*model.Order) {
			prev := o.Note
			o.Note = note
			return func(o *model.Order) { o.Note = prev }
		},
		func(ctx context.Context, o model.Order) error {
			return d.remote.UpdateNote(ctx, o.ID, note)
		})
}

// FieldStates reports the last known state of every mutated field of an order.
func (d *Dashboard) FieldStates(id string) map[Field]State {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[Field]State)
	for k, st := range d.fields {
		if k.orderID == id {
			out[k.field] = st.state
		}
	}
	return out
}

// mutate applies a change locally, sends it upstream, then confirms it or
// reverts it. A revert only happens when no newer change of the same field
// started in the meantime.
func (d *Dashboard) mutate(
	ctx context.Context,
	id string,
	field Field,
	apply func(o *model.Order) (revert func(o *model.Order)),
	send func(ctx context.Context, o model.Order) error,
) (Mutation, error) {
	key := fieldKey{orderID: id, field: field}

	d.mu.Lock()
	i := d.indexLocked(id)
	if i < 0 {
		d.mu.Unlock()
		return Mutation{}, errs.ErrOrderNotFound
	}
	revert := apply(&d.orders[i])
	st := d.fields[key]
	st.seq++
	st.state = StatePending
	d.fields[key] = st
	seq := st.seq
	optimistic := d.orders[i]
	d.mu.Unlock()

	sendErr := send(ctx, optimistic)

	d.mu.Lock()
	latest := d.fields[key].seq == seq
	state := StateConfirmed
	if sendErr != nil {
		state = StateFailed
	}
	if latest {
		d.fields[key] = fieldState{seq: seq, state: state}
	}
	current := optimistic
	if i := d.indexLocked(id); i >= 0 {
		if sendErr != nil && latest {
			revert(&d.orders[i])
		}
		current = d.orders[i]
	}
	d.mu.Unlock()

	m := Mutation{OrderID: id, Field: field, State: state, Order: current}
	if sendErr != nil {
		d.logger.Errorf("update %s of order %s: %v", field, id, sendErr)
		m.Error = sendErr.Error()
		return m, fmt.Errorf("update %s: %w", field, sendErr)
	}
	return m, nil
}

// pruneFieldsLocked forgets settled field states of orders that left the list.
func (d *Dashboard) pruneFieldsLocked() {
	for k, st := range d.fields {
		if st.state != StatePending && d.indexLocked(k.orderID) < 0 {
			delete(d.fields, k)
		}
	}
}
