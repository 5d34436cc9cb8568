package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/littlelemon/reservations/services"
)

const topN = 10

// ItemStat is one entry of a top-N ranking.
type ItemStat struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Profit   float64 `json:"profit"`
}

// SalesMetrics is the sales pipeline output. Maps are always non-nil; an
// empty input yields zero values, never NaN. Warnings carry per-grouping
// degradation notes (a bad row skips one grouping, not the report).
type SalesMetrics struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalOrders       int     `json:"total_orders"`
	TotalItemsSold    int     `json:"total_items_sold"`
	AverageOrderValue float64 `json:"average_order_value"`
	TotalProfit       float64 `json:"total_profit"`
	ProfitMargin      float64 `json:"profit_margin"`

	RevenueByCategory  map[string]float64 `json:"revenue_by_category"`
	QuantityByCategory map[string]int     `json:"quantity_by_category"`
	ProfitByCategory   map[string]float64 `json:"profit_by_category"`
	RevenueByDayOfWeek map[string]float64 `json:"revenue_by_day_of_week"`
	RevenueByHour      map[int]float64    `json:"revenue_by_hour"`
	RevenueByLocation  map[string]float64 `json:"revenue_by_location"`
	RevenueByCapacity  map[int]float64    `json:"revenue_by_capacity"`

	TopByQuantity []ItemStat `json:"top_by_quantity"`
	TopByRevenue  []ItemStat `json:"top_by_revenue"`
	TopByProfit   []ItemStat `json:"top_by_profit"`

	Warnings []string `json:"warnings,omitempty"`
}

// AnalyzeSales computes the sales metrics from joined order rows. It is a
// pure function of its input and never touches the store.
func AnalyzeSales(rows []SalesRow) SalesMetrics {
	m := SalesMetrics{
		RevenueByCategory:  make(map[string]float64),
		QuantityByCategory: make(map[string]int),
		ProfitByCategory:   make(map[string]float64),
		RevenueByDayOfWeek: make(map[string]float64),
		RevenueByHour:      make(map[int]float64),
		RevenueByLocation:  make(map[string]float64),
		RevenueByCapacity:  make(map[int]float64),
		TopByQuantity:      []ItemStat{},
		TopByRevenue:       []ItemStat{},
		TopByProfit:        []ItemStat{},
	}
	if len(rows) == 0 {
		return m
	}

	orderTotals := make(map[uint]float64)
	badDates, badTimes := 0, 0
	items := make(map[string]*itemAgg)

	for i, row := range rows {
		profit := row.Profit()

		m.TotalRevenue += row.Subtotal
		m.TotalItemsSold += row.Quantity
		m.TotalProfit += profit
		orderTotals[row.OrderID] = row.TotalAmount

		m.RevenueByCategory[row.CategoryName] += row.Subtotal
		m.QuantityByCategory[row.CategoryName] += row.Quantity
		m.ProfitByCategory[row.CategoryName] += profit

		if day, err := time.Parse(services.DateLayout, row.OrderDate); err != nil {
			badDates++
		} else {
			m.RevenueByDayOfWeek[day.Weekday().String()] += row.Subtotal
		}
		if t, err := time.Parse(services.TimeLayout, row.OrderTime); err != nil {
			badTimes++
		} else {
			m.RevenueByHour[t.Hour()] += row.Subtotal
		}

		if row.TableLocation != "" {
			m.RevenueByLocation[row.TableLocation] += row.Subtotal
		}
		if row.SeatingCapacity > 0 {
			m.RevenueByCapacity[row.SeatingCapacity] += row.Subtotal
		}

		agg, ok := items[row.ItemName]
		if !ok {
			agg = &itemAgg{stat: ItemStat{Name: row.ItemName}, first: i}
			items[row.ItemName] = agg
		}
		agg.stat.Quantity += row.Quantity
		agg.stat.Revenue += row.Subtotal
		agg.stat.Profit += profit
	}

	m.TotalOrders = len(orderTotals)
	if m.TotalOrders > 0 {
		var sum float64
		for _, total := range orderTotals {
			sum += total
		}
		m.AverageOrderValue = sum / float64(m.TotalOrders)
	}
	if m.TotalRevenue > 0 {
		m.ProfitMargin = 100 * m.TotalProfit / m.TotalRevenue
	}

	m.TopByQuantity = topItems(items, func(s ItemStat) float64 { return float64(s.Quantity) })
	m.TopByRevenue = topItems(items, func(s ItemStat) float64 { return s.Revenue })
	m.TopByProfit = topItems(items, func(s ItemStat) float64 { return s.Profit })

	if badDates > 0 {
		m.Warnings = append(m.Warnings,
			fmt.Sprintf("revenue_by_day_of_week: skipped %d rows with unparseable dates", badDates))
	}
	if badTimes > 0 {
		m.Warnings = append(m.Warnings,
			fmt.Sprintf("revenue_by_hour: skipped %d rows with unparseable times", badTimes))
	}
	return m
}

type itemAgg struct {
	stat  ItemStat
	first int
}

// topItems ranks by the given measure, descending, ties broken by row
// encounter order, capped at topN.
func topItems(items map[string]*itemAgg, measure func(ItemStat) float64) []ItemStat {
	aggs := make([]*itemAgg, 0, len(items))
	for _, agg := range items {
		aggs = append(aggs, agg)
	}
	sort.Slice(aggs, func(i, j int) bool {
		mi, mj := measure(aggs[i].stat), measure(aggs[j].stat)
		if mi != mj {
			return mi > mj
		}
		return aggs[i].first < aggs[j].first
	})

	n := len(aggs)
	if n > topN {
		n = topN
	}
	out := make([]ItemStat, 0, n)
	for _, agg := range aggs[:n] {
		out = append(out, agg.stat)
	}
	return out
}
