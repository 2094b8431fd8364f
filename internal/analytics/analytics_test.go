package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/and161185/bookdesk/internal/model"
	"github.com/stretchr/testify/require"
)

var dhaka = time.FixedZone("BDT", 6*60*60)

func at(now time.Time, daysAgo int, status model.OrderStatus, cost, total float64) model.Order {
	return model.Order{
		Date:         now.AddDate(0, 0, -daysAgo),
		Status:       status,
		ShippingCost: cost,
		TotalValue:   total,
	}
}

func TestZoneFor(t *testing.T) {
	require.Equal(t, ZoneInside, ZoneFor(60))
	require.Equal(t, ZoneOutside, ZoneFor(99))
	for _, cost := range []float64{0, 59.99, 60.01, 98, 100, -60, 120} {
		require.Equal(t, ZoneOther, ZoneFor(cost), "cost %v", cost)
	}
}

func TestGrowth(t *testing.T) {
	require.Equal(t, 100.0, Growth(5, 0))
	require.Equal(t, 100.0, Growth(0, 0))
	require.Equal(t, 25.0, Growth(5, 4))
	require.Equal(t, -50.0, Growth(2, 4))
	require.Equal(t, 33.3, Growth(4, 3))
}

func TestPercent(t *testing.T) {
	require.Equal(t, 0.0, Percent(0, 0))
	require.Equal(t, 33.3, Percent(1, 3))
	require.Equal(t, 66.7, Percent(2, 3))
}

func TestAggregate_Empty(t *testing.T) {
	require.Nil(t, Aggregate(nil, 7, time.Now()))
}

func TestAggregate_OldOrdersOnlyCountInLifetimeTotals(t *testing.T) {
	now := time.Date(2026, 10, 16, 15, 0, 0, 0, dhaka)
	list := []model.Order{
		at(now, 10, model.Delivered, 60, 550),
		at(now, 10, model.Cancelled, 99, 589),
		at(now, 10, model.Processing, 60, 550),
	}

	s := Aggregate(list, 7, now)
	require.NotNil(t, s)
	require.Len(t, s.Daily, 7)
	for _, b := range s.Daily {
		require.Zero(t, b.Orders)
		require.Zero(t, b.Delivered)
		require.Zero(t, b.Cancelled)
		require.Zero(t, b.Shipped)
		require.Zero(t, b.Revenue)
	}
	require.Equal(t, 3, s.TotalOrders)
	require.Equal(t, 1689.0, s.TotalRevenue)
	require.Zero(t, s.WindowOrders)
	for _, z := range s.Zones {
		require.Zero(t, z.Percent)
	}
}

func TestAggregate_Buckets(t *testing.T) {
	now := time.Date(2026, 10, 16, 15, 0, 0, 0, dhaka)
	list := []model.Order{
		at(now, 0, model.Delivered, 60, 550),
		at(now, 0, model.Shipped, 99, 589),
		at(now, 0, model.Cancelled, 60, 550),
		at(now, 0, model.Processing, 120, 700),
		at(now, 0, model.Returned, 60, math.NaN()),
		at(now, 1, model.Delivered, 60, 550),
		at(now, 1, model.Processing, 99, 589),
		at(now, 1, model.Processing, 99, 589),
		at(now, 1, model.Processing, 99, 589),
		at(now, 6, model.Processing, 60, 100),
		at(now, 7, model.Processing, 60, 100),
	}

	s := Aggregate(list, 7, now)
	require.Equal(t, "2026-10-10", s.Daily[0].Date)
	require.Equal(t, "2026-10-16", s.Daily[6].Date)

	today := s.Daily[6]
	require.Equal(t, 5, today.Orders)
	require.Equal(t, 1, today.Delivered)
	require.Equal(t, 1, today.Cancelled)
	require.Equal(t, 2, today.Shipped)
	require.Equal(t, 2389.0, today.Revenue)

	require.Equal(t, 4, s.Daily[5].Orders)
	require.Equal(t, 1, s.Daily[0].Orders)

	require.Equal(t, 5, s.TodayOrders)
	require.Equal(t, 4, s.YesterdayOrders)
	require.Equal(t, 25.0, s.GrowthPercent)

	require.Equal(t, 11, s.TotalOrders)
	require.Equal(t, 10, s.WindowOrders)

	statuses := map[model.OrderStatus]int{}
	for _, sc := range s.Statuses {
		statuses[sc.Status] = sc.Count
	}
	require.Equal(t, map[model.OrderStatus]int{
		model.Processing: 5,
		model.Shipped:    1,
		model.Delivered:  2,
		model.Cancelled:  1,
		model.Returned:   1,
	}, statuses)

	require.Equal(t, []ZoneShare{
		{Zone: ZoneInside, Count: 5, Percent: 50},
		{Zone: ZoneOutside, Count: 4, Percent: 40},
		{Zone: ZoneOther, Count: 1, Percent: 10},
	}, s.Zones)
}

func TestAggregate_DayBoundaryUsesCalendarDays(t *testing.T) {
	now := time.Date(2026, 10, 16, 0, 30, 0, 0, dhaka)
	lateYesterday := time.Date(2026, 10, 15, 23, 59, 0, 0, dhaka)
	// 18:10 UTC on the 15th is 00:10 on the 16th in Dhaka
	earlyToday := time.Date(2026, 10, 15, 18, 10, 0, 0, time.UTC)

	s := Aggregate([]model.Order{{Date: lateYesterday}, {Date: earlyToday}}, 7, now)
	require.Equal(t, 1, s.TodayOrders)
	require.Equal(t, 1, s.YesterdayOrders)
	require.Equal(t, 0.0, s.GrowthPercent)
}

func TestAggregate_FutureOrdersIgnoredInWindow(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, dhaka)
	s := Aggregate([]model.Order{at(now, -2, model.Processing, 60, 100)}, 15, now)
	require.Len(t, s.Daily, 15)
	require.Zero(t, s.WindowOrders)
	require.Equal(t, 1, s.TotalOrders)
}
