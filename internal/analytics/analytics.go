package analytics

import (
	"math"
	"time"

	"github.com/and161185/bookdesk/internal/model"
	"github.com/shopspring/decimal"
)

// Windows are the day ranges the dashboard offers.
var Windows = []int{7, 15, 30}

func ValidWindow(days int) bool {
	for _, w := range Windows {
		if w == days {
			return true
		}
	}
	return false
}

type Zone string

const (
	ZoneInside  Zone = "Inside"
	ZoneOutside Zone = "Outside"
	ZoneOther   Zone = "Other"
)

// ZoneFor infers the delivery zone from the exact shipping charge.
func ZoneFor(shippingCost float64) Zone {
	switch shippingCost {
	case model.InsideZoneCost:
		return ZoneInside
	case model.OutsideZoneCost:
		return ZoneOutside
	default:
		return ZoneOther
	}
}

type DayBucket struct {
	Date      string  `json:"date"`
	Orders    int     `json:"orders"`
	Delivered int     `json:"delivered"`
	Cancelled int     `json:"cancelled"`
	Shipped   int     `json:"shipped"`
	Revenue   float64 `json:"revenue"`
}

type StatusCount struct {
	Status model.OrderStatus `json:"status"`
	Count  int               `json:"count"`
}

type ZoneShare struct {
	Zone    Zone    `json:"zone"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type Summary struct {
	Window          int           `json:"window"`
	TotalOrders     int           `json:"totalOrders"`
	TotalRevenue    float64       `json:"totalRevenue"`
	WindowOrders    int           `json:"windowOrders"`
	WindowRevenue   float64       `json:"windowRevenue"`
	TodayOrders     int           `json:"todayOrders"`
	YesterdayOrders int           `json:"yesterdayOrders"`
	GrowthPercent   float64       `json:"growthPercent"`
	Daily           []DayBucket   `json:"daily"`
	Statuses        []StatusCount `json:"statuses"`
	Zones           []ZoneShare   `json:"zones"`
}

var distributionStatuses = []model.OrderStatus{
	model.Processing, model.Shipped, model.Delivered, model.Cancelled, model.Returned,
}

var zones = []Zone{ZoneInside, ZoneOutside, ZoneOther}

// Aggregate walks the orders once and buckets those of the last window days
// (today included, calendar days in now's location). Lifetime totals ignore the
// window. It returns nil for an empty list.
func Aggregate(list []model.Order, window int, now time.Time) *Summary {
	if len(list) == 0 {
		return nil
	}
	if window <= 0 {
		window = Windows[0]
	}

	loc := now.Location()
	today := startOfDay(now, loc)
	start := today.AddDate(0, 0, -(window - 1))

	s := &Summary{Window: window, Daily: make([]DayBucket, window)}
	for i := range s.Daily {
		day := start.AddDate(0, 0, i)
		s.Daily[i] = DayBucket{Date: day.Format(time.DateOnly)}
	}

	statusCounts := make(map[model.OrderStatus]int, len(distributionStatuses))
	zoneCounts := make(map[Zone]int, len(zones))
	dailyRevenue := make([]decimal.Decimal, window)
	var totalRevenue, windowRevenue decimal.Decimal

	for _, o := range list {
		revenue := decimal.NewFromFloat(safeNumber(o.TotalValue))
		s.TotalOrders++
		totalRevenue = totalRevenue.Add(revenue)

		day := startOfDay(o.Date, loc)
		if day.Before(start) || day.After(today) {
			continue
		}

		idx := dayIndex(start, day)
		b := &s.Daily[idx]
		b.Orders++
		dailyRevenue[idx] = dailyRevenue[idx].Add(revenue)
		switch o.Status {
		case model.Delivered:
			b.Delivered++
			b.Shipped++
		case model.Shipped:
			b.Shipped++
		case model.Cancelled:
			b.Cancelled++
		}

		s.WindowOrders++
		windowRevenue = windowRevenue.Add(revenue)
		statusCounts[o.Status]++
		zoneCounts[ZoneFor(o.ShippingCost)]++
	}

	s.TotalRevenue = totalRevenue.InexactFloat64()
	s.WindowRevenue = windowRevenue.InexactFloat64()
	for i := range s.Daily {
		s.Daily[i].Revenue = dailyRevenue[i].InexactFloat64()
	}

	for _, st := range distributionStatuses {
		s.Statuses = append(s.Statuses, StatusCount{Status: st, Count: statusCounts[st]})
	}
	for _, z := range zones {
		s.Zones = append(s.Zones, ZoneShare{Zone: z, Count: zoneCounts[z], Percent: Percent(zoneCounts[z], s.WindowOrders)})
	}

	s.TodayOrders = s.Daily[window-1].Orders
	if window > 1 {
		s.YesterdayOrders = s.Daily[window-2].Orders
	}
	s.GrowthPercent = Growth(s.TodayOrders, s.YesterdayOrders)

	return s
}

// Growth is the day-over-day change in percent, defined as 100 when yesterday had no orders.
func Growth(today, yesterday int) float64 {
	if yesterday == 0 {
		return 100
	}
	return round1(float64(today-yesterday) / float64(yesterday) * 100)
}

// Percent rounds part/total to one decimal; a zero total yields 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func safeNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func dayIndex(start, day time.Time) int {
	// calendar arithmetic, DST-safe
	y1, m1, d1 := start.Date()
	y2, m2, d2 := day.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
