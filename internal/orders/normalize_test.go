package orders

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/and161185/bookdesk/internal/model"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) []model.RawRecord {
	t.Helper()
	var list []model.RawRecord
	require.NoError(t, json.Unmarshal([]byte(s), &list))
	return list
}

func TestNormalize_Defaults(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	list := Normalize(decode(t, `[{}]`), now)
	require.Len(t, list, 1)

	o := list[0]
	require.Equal(t, model.Processing, o.Status)
	require.Equal(t, model.CallPending, o.CallStatus)
	require.Equal(t, "N/A", o.ID)
	require.Equal(t, "N/A", o.OrderID)
	require.Equal(t, "N/A", o.Customer.Name)
	require.Equal(t, "N/A", o.Customer.Phone)
	require.Equal(t, "N/A", o.Address)
	require.Equal(t, "N/A", o.ClientInfo.IP)
	require.Equal(t, 0.0, o.TotalValue)
	require.Equal(t, now, o.Date)
}

func TestNormalize_MissingStatusIsProcessing(t *testing.T) {
	list := Normalize(decode(t, `[{"_id":"a1","name":"Karim"}]`), time.Now())
	require.Equal(t, model.Processing, list[0].Status)
}

func TestNormalize_CoercesUnknownEnums(t *testing.T) {
	list := Normalize(decode(t, `[{"status":"lost","phoneCallStatus":"maybe"}]`), time.Now())
	require.Equal(t, model.Processing, list[0].Status)
	require.Equal(t, model.CallPending, list[0].CallStatus)
}

func TestNormalize_FieldsAndAliases(t *testing.T) {
	raw := `[{
		"_id": {"$oid": "65a1"},
		"orderId": "BK-1001",
		"customer": {"name": "Nadia", "phone": "01711000000"},
		"address": "Mirpur 10, Dhaka",
		"shippingMethod": "inside_dhaka",
		"shippingCost": "60",
		"totalAmount": -10,
		"status": "Shipped",
		"callStatus": "No Answer",
		"createdAt": {"$date": "2026-10-01T08:30:00.000Z"},
		"note": "call after 5pm",
		"clientInfo": {"ip": "103.4.145.2", "userAgent": "Mozilla/5.0"}
	}]`

	o := Normalize(decode(t, raw), time.Now())[0]
	require.Equal(t, "65a1", o.ID)
	require.Equal(t, "BK-1001", o.OrderID)
	require.Equal(t, "Nadia", o.Customer.Name)
	require.Equal(t, "01711000000", o.Customer.Phone)
	require.Equal(t, 60.0, o.ShippingCost)
	require.Equal(t, -10.0, o.TotalValue)
	require.Equal(t, model.Shipped, o.Status)
	require.Equal(t, model.CallNoAnswer, o.CallStatus)
	require.Equal(t, time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC), o.Date.UTC())
	require.Equal(t, "103.4.145.2", o.ClientInfo.IP)
}

func TestNormalize_SortedNewestFirst(t *testing.T) {
	raw := `[
		{"_id":"old","createdAt":"2026-09-01T00:00:00Z"},
		{"_id":"new","createdAt":"2026-10-01T00:00:00Z"},
		{"_id":"mid","createdAt":"2026-09-15T00:00:00Z"}
	]`

	list := Normalize(decode(t, raw), time.Now())
	require.Equal(t, []string{"new", "mid", "old"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestNormalizeAbandoned_UsesCartTotals(t *testing.T) {
	raw := `[{
		"_id": "p1",
		"name": "Rafi",
		"number": "01811000000",
		"items": [{"postId": 42, "productPrice": 490, "shippingMethod": "outside_dhaka", "shippingCost": 99, "totalAmount": 589}]
	}]`

	list := NormalizeAbandoned(decode(t, raw), time.Now())
	require.Len(t, list, 1)

	a := list[0]
	require.Equal(t, model.Abandoned, a.Status)
	require.Equal(t, 99.0, a.ShippingCost)
	require.Equal(t, 589.0, a.TotalValue)
	require.Equal(t, "outside_dhaka", a.ShippingMethod)
	require.Equal(t, "42", a.Items[0].PostID)
	require.Equal(t, 1, a.Items[0].Quantity)
	require.Equal(t, "p1", a.Raw["_id"])
}

func TestNormalizeBlockedUsers(t *testing.T) {
	raw := `[
		{"identifier":"103.4.145.2","note":"spam","blockedAt":"2026-10-01T00:00:00Z"},
		{"identifier":"01711000000","blockedAt":"2026-10-02T00:00:00Z"},
		{"note":"no identifier"}
	]`

	list := NormalizeBlockedUsers(decode(t, raw))
	require.Len(t, list, 2)
	require.Equal(t, model.IdentifierPhone, list[0].IdentifierKind)
	require.Equal(t, model.IdentifierIP, list[1].IdentifierKind)
	require.Equal(t, "spam", list[1].Note)
}
