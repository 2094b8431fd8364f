package orders

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/and161185/bookdesk/internal/model"
)

const missing = "N/A"

// Normalize maps remote order records onto fully populated views, newest first.
// Nothing is validated beyond presence: odd values such as negative prices pass through.
func Normalize(records []model.RawRecord, now time.Time) []model.Order {
	out := make([]model.Order, 0, len(records))
	for _, rec := range records {
		out = append(out, NormalizeOne(rec, now))
	}
	SortByDate(out)
	return out
}

func NormalizeOne(rec model.RawRecord, now time.Time) model.Order {
	customer := nested(rec, "customer")

	o := model.Order{
		ID:             stringField(rec, missing, "_id", "id"),
		OrderID:        stringField(rec, missing, "orderId"),
		Address:        stringField(rec, missing, "address"),
		ShippingMethod: stringField(rec, missing, "shippingMethod"),
		Note:           stringField(rec, "", "note"),
		Customer: model.Customer{
			Name:  firstString(missing, stringField(rec, "", "name"), stringField(customer, "", "name")),
			Phone: firstString(missing, stringField(rec, "", "number", "phone"), stringField(customer, "", "phone", "number")),
		},
		Status:     CoerceStatus(stringField(rec, "", "status")),
		CallStatus: CoerceCallStatus(stringField(rec, "", "phoneCallStatus", "callStatus")),
		Date:       timeField(rec, now, "createdAt", "orderDate", "date"),
		Items:      items(rec),
	}

	info := nested(rec, "clientInfo")
	o.ClientInfo = model.ClientInfo{
		IP:        stringField(info, missing, "ip"),
		UserAgent: stringField(info, missing, "userAgent"),
	}

	o.ShippingCost, _ = numberField(rec, "shippingCost")
	o.TotalValue, _ = numberField(rec, "totalValue", "totalAmount")
	return o
}

// NormalizeAbandoned builds views of partial orders. Cart-level shipping and
// totals stand in when the record itself does not carry them.
func NormalizeAbandoned(records []model.RawRecord, now time.Time) []model.AbandonedOrder {
	out := make([]model.AbandonedOrder, 0, len(records))
	for _, rec := range records {
		o := NormalizeOne(rec, now)
		o.Status = model.Abandoned

		if len(o.Items) > 0 {
			first := o.Items[0]
			if _, ok := numberField(rec, "shippingCost"); !ok {
				o.ShippingCost = first.ShippingCost
			}
			if _, ok := numberField(rec, "totalValue", "totalAmount"); !ok {
				o.TotalValue = first.TotalAmount
			}
			if o.ShippingMethod == missing && first.ShippingMethod != "" {
				o.ShippingMethod = first.ShippingMethod
			}
		}
		out = append(out, model.AbandonedOrder{Order: o, Raw: rec})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func SortByDate(list []model.Order) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
}

func CoerceStatus(s string) model.OrderStatus {
	st := model.OrderStatus(strings.TrimSpace(s))
	if st.Valid() {
		return st
	}
	return model.Processing
}

func CoerceCallStatus(s string) model.CallStatus {
	st := model.CallStatus(strings.TrimSpace(s))
	if st.Valid() {
		return st
	}
	return model.CallPending
}

func items(rec model.RawRecord) []model.CartItem {
	raw, ok := rec["items"].([]any)
	if !ok {
		return nil
	}

	list := make([]model.CartItem, 0, len(raw))
	for _, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		item := model.RawRecord(m)
		ci := model.CartItem{
			PostID:         stringField(item, "", "postId"),
			ShippingMethod: stringField(item, "", "shippingMethod"),
			Quantity:       1,
		}
		ci.ProductPrice, _ = numberField(item, "productPrice")
		ci.ShippingCost, _ = numberField(item, "shippingCost")
		ci.TotalAmount, _ = numberField(item, "totalAmount")
		if q, ok := numberField(item, "quantity"); ok && q > 0 {
			ci.Quantity = int(q)
		}
		list = append(list, ci)
	}
	return list
}

func nested(rec model.RawRecord, key string) model.RawRecord {
	if m, ok := rec[key].(map[string]any); ok {
		return m
	}
	return nil
}

func stringField(rec model.RawRecord, fallback string, keys ...string) string {
	for _, k := range keys {
		switch v := rec[k].(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case map[string]any:
			// mongo extended json: {"$oid": "..."}
			if oid, ok := v["$oid"].(string); ok && oid != "" {
				return oid
			}
		case nil:
		default:
			return fmt.Sprint(v)
		}
	}
	return fallback
}

func firstString(fallback string, values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return fallback
}

func numberField(rec model.RawRecord, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch v := rec[k].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func timeField(rec model.RawRecord, fallback time.Time, keys ...string) time.Time {
	for _, k := range keys {
		if t, ok := parseTime(rec[k]); ok {
			return t
		}
	}
	return fallback
}

func parseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(t)), true
	case map[string]any:
		return parseTime(t["$date"])
	}
	return time.Time{}, false
}
