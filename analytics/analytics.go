// Package analytics computes dashboard figures from an order snapshot.
// Every function is pure. Cancelled orders never count toward revenue; order
// and item counts include them.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/koko-king/models"
)

type ItemCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DailyPoint struct {
	Date       string          `json:"date"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int             `json:"orderCount"`
}

type BranchStat struct {
	BranchID   string          `json:"branchId"`
	Name       string          `json:"name"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int             `json:"orderCount"`
}

type Summary struct {
	TotalOrders int             `json:"totalOrders"`
	Pending     int             `json:"pending"`
	Completed   int             `json:"completed"`
	Revenue     decimal.Decimal `json:"revenue"`
}

func counts(o models.Order) bool {
	return o.Status != models.StatusCancelled
}

// BranchRevenue sums stored totals for branchID ("" or "all" for every branch).
func BranchRevenue(orders []models.Order, branchID string) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		if !counts(o) {
			continue
		}
		if branchID != "" && branchID != models.BranchScopeAll && o.BranchID != branchID {
			continue
		}
		sum = sum.Add(o.Total)
	}
	return sum
}

// TopItems ranks item names by total quantity over every order, ties kept in
// first-seen order.
func TopItems(orders []models.Order, n int) []ItemCount {
	if n <= 0 {
		return []ItemCount{}
	}
	index := map[string]int{}
	ranked := []ItemCount{}
	for _, o := range orders {
		for _, item := range o.Items {
			i, ok := index[item.Name]
			if !ok {
				i = len(ranked)
				index[item.Name] = i
				ranked = append(ranked, ItemCount{Name: item.Name})
			}
			ranked[i].Count += item.Quantity
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Count > ranked[b].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// DailySeries groups by local calendar day of createdAt and keeps at most the
// windowDays most recent days that have orders, oldest first. Days without
// orders are not filled in. OrderCount includes cancelled orders; Revenue
// does not.
func DailySeries(orders []models.Order, windowDays int) []DailyPoint {
	if windowDays <= 0 {
		return []DailyPoint{}
	}
	byDay := map[string]*DailyPoint{}
	for _, o := range orders {
		day := o.CreatedAt.In(time.Local).Format(models.DateLayout)
		p, ok := byDay[day]
		if !ok {
			p = &DailyPoint{Date: day, Revenue: decimal.Zero}
			byDay[day] = p
		}
		p.OrderCount++
		if counts(o) {
			p.Revenue = p.Revenue.Add(o.Total)
		}
	}

	series := make([]DailyPoint, 0, len(byDay))
	for _, p := range byDay {
		series = append(series, *p)
	}
	// YYYY-MM-DD sorts lexically
	sort.Slice(series, func(a, b int) bool {
		return series[a].Date < series[b].Date
	})
	if len(series) > windowDays {
		series = series[len(series)-windowDays:]
	}
	return series
}

// StatusCounts counts every order, cancelled included, by status.
func StatusCounts(orders []models.Order) map[models.OrderStatus]int {
	out := make(map[models.OrderStatus]int, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		out[s] = 0
	}
	for _, o := range orders {
		out[o.Status]++
	}
	return out
}

// BranchBreakdown reports revenue per branch in registry order. Orders that
// reference a removed branch are listed after, named by their id.
func BranchBreakdown(orders []models.Order, branches []models.Branch) []BranchStat {
	index := map[string]int{}
	stats := make([]BranchStat, 0, len(branches))
	for _, b := range branches {
		index[b.ID] = len(stats)
		stats = append(stats, BranchStat{BranchID: b.ID, Name: b.Name, Revenue: decimal.Zero})
	}
	for _, o := range orders {
		i, ok := index[o.BranchID]
		if !ok {
			i = len(stats)
			index[o.BranchID] = i
			stats = append(stats, BranchStat{BranchID: o.BranchID, Name: o.BranchID, Revenue: decimal.Zero})
		}
		stats[i].OrderCount++
		if counts(o) {
			stats[i].Revenue = stats[i].Revenue.Add(o.Total)
		}
	}
	return stats
}

// PaymentBreakdown sums revenue by payment method.
func PaymentBreakdown(orders []models.Order) map[models.PaymentMethod]decimal.Decimal {
	out := map[models.PaymentMethod]decimal.Decimal{
		models.PaymentCash:        decimal.Zero,
		models.PaymentMobileMoney: decimal.Zero,
		models.PaymentCard:        decimal.Zero,
	}
	for _, o := range orders {
		if !counts(o) {
			continue
		}
		method := o.PaymentMethod
		if method == "" {
			method = models.PaymentCash
		}
		out[method] = out[method].Add(o.Total)
	}
	return out
}

// DaySummary reports the orders created on the local calendar day of day.
func DaySummary(orders []models.Order, day time.Time) Summary {
	want := day.In(time.Local).Format(models.DateLayout)
	s := Summary{Revenue: decimal.Zero}
	for _, o := range orders {
		if o.CreatedAt.In(time.Local).Format(models.DateLayout) != want {
			continue
		}
		s.TotalOrders++
		switch o.Status {
		case models.StatusPending:
			s.Pending++
		case models.StatusCompleted:
			s.Completed++
		}
		if counts(o) {
			s.Revenue = s.Revenue.Add(o.Total)
		}
	}
	return s
}
