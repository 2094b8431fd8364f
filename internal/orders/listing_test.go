package orders

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/and161185/bookdesk/internal/model"
	"github.com/stretchr/testify/require"
)

func sampleOrders(n int) []model.Order {
	list := make([]model.Order, 0, n)
	for i := 0; i < n; i++ {
		status := model.Processing
		if i%2 == 1 {
			status = model.Delivered
		}
		list = append(list, model.Order{
			ID:       fmt.Sprintf("id%d", i),
			OrderID:  fmt.Sprintf("BK-%04d", i),
			Customer: model.Customer{Name: fmt.Sprintf("Customer %d", i), Phone: fmt.Sprintf("0171100%04d", i)},
			Address:  "Dhaka",
			Status:   status,
		})
	}
	return list
}

func TestParseQuery(t *testing.T) {
	q := ParseQuery(url.Values{"page": {"0"}, "limit": {"1000"}, "search": {"  rahim "}, "status": {"Shipped"}})
	require.Equal(t, Query{Search: "rahim", Status: "Shipped", Page: 1, Limit: MaxLimit}, q)

	q = ParseQuery(url.Values{"page": {"x"}})
	require.Equal(t, 1, q.Page)
	require.Equal(t, DefaultLimit, q.Limit)
}

func TestApply_Paginates(t *testing.T) {
	list := sampleOrders(45)

	page := Apply(list, Query{Page: 3, Limit: 20})
	require.Equal(t, 45, page.Total)
	require.Equal(t, 3, page.Pages)
	require.Len(t, page.Orders, 5)
	require.Equal(t, "id40", page.Orders[0].ID)

	page = Apply(list, Query{Page: 9, Limit: 20})
	require.Empty(t, page.Orders)
}

func TestApply_HugePageIsEmpty(t *testing.T) {
	list := sampleOrders(45)

	page := Apply(list, ParseQuery(url.Values{"page": {"922337203685477581"}, "limit": {"20"}}))
	require.Empty(t, page.Orders)
	require.Equal(t, 45, page.Total)
	require.Equal(t, 3, page.Pages)
}

func TestApply_StatusFilter(t *testing.T) {
	list := sampleOrders(10)

	page := Apply(list, Query{Status: "delivered"})
	require.Equal(t, 5, page.Total)
	for _, o := range page.Orders {
		require.Equal(t, model.Delivered, o.Status)
	}

	require.Equal(t, 10, Apply(list, Query{Status: AllStatuses}).Total)
}

func TestApply_Search(t *testing.T) {
	list := sampleOrders(10)

	require.Equal(t, 1, Apply(list, Query{Search: "bk-0007"}).Total)
	require.Equal(t, 1, Apply(list, Query{Search: "customer 3"}).Total)
	require.Equal(t, 10, Apply(list, Query{Search: "dhaka"}).Total)
	require.Equal(t, 0, Apply(list, Query{Search: "chittagong"}).Total)
}
