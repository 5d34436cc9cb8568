package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/littlelemon/reservations/services"
)

// TableStat is one entry of the most-requested-tables ranking.
type TableStat struct {
	TableNumber string `json:"table_number"`
	Bookings    int    `json:"bookings"`
}

// BookingMetrics is the booking pipeline output. Same conventions as
// SalesMetrics: non-nil maps, zero values on empty input, per-grouping
// warnings instead of pipeline failure.
type BookingMetrics struct {
	TotalBookings              int            `json:"total_bookings"`
	ByStatus                   map[string]int `json:"by_status"`
	CancellationRate           float64        `json:"cancellation_rate"`
	AveragePartySize           float64        `json:"average_party_size"`
	TotalGuests                int            `json:"total_guests"`
	AverageCapacityUtilization float64        `json:"average_capacity_utilization"`
	SpecialRequestRate         float64        `json:"special_request_rate"`

	ByDayOfWeek map[string]int `json:"by_day_of_week"`
	ByHour      map[int]int    `json:"by_hour"`
	ByLocation  map[string]int `json:"by_location"`
	ByCapacity  map[int]int    `json:"by_capacity"`

	MostRequestedTables []TableStat `json:"most_requested_tables"`

	Warnings []string `json:"warnings,omitempty"`
}

// AnalyzeBookings computes the booking metrics from joined booking rows.
func AnalyzeBookings(rows []BookingRow) BookingMetrics {
	m := BookingMetrics{
		ByStatus:            make(map[string]int),
		ByDayOfWeek:         make(map[string]int),
		ByHour:              make(map[int]int),
		ByLocation:          make(map[string]int),
		ByCapacity:          make(map[int]int),
		MostRequestedTables: []TableStat{},
	}
	if len(rows) == 0 {
		return m
	}

	m.TotalBookings = len(rows)
	badDates, badTimes, badCapacity := 0, 0, 0
	utilizationSum, utilizationCount := 0.0, 0
	withRequests := 0

	type tableAgg struct {
		count int
		first int
	}
	tables := make(map[string]*tableAgg)

	for i, row := range rows {
		m.ByStatus[row.Status]++
		m.TotalGuests += row.Guests

		if row.SeatingCapacity > 0 {
			utilizationSum += float64(row.Guests) / float64(row.SeatingCapacity)
			utilizationCount++
			m.ByCapacity[row.SeatingCapacity]++
		} else {
			badCapacity++
		}

		if day, err := time.Parse(services.DateLayout, row.BookingDate); err != nil {
			badDates++
		} else {
			m.ByDayOfWeek[day.Weekday().String()]++
		}
		if t, err := time.Parse(services.TimeLayout, row.BookingTime); err != nil {
			badTimes++
		} else {
			m.ByHour[t.Hour()]++
		}

		if row.TableLocation != "" {
			m.ByLocation[row.TableLocation]++
		}
		if row.SpecialRequests != "" {
			withRequests++
		}

		agg, ok := tables[row.TableNumber]
		if !ok {
			agg = &tableAgg{first: i}
			tables[row.TableNumber] = agg
		}
		agg.count++
	}

	total := float64(m.TotalBookings)
	m.CancellationRate = 100 * float64(m.ByStatus["cancelled"]) / total
	m.AveragePartySize = float64(m.TotalGuests) / total
	m.SpecialRequestRate = 100 * float64(withRequests) / total
	if utilizationCount > 0 {
		m.AverageCapacityUtilization = utilizationSum / float64(utilizationCount)
	}

	type ranked struct {
		stat  TableStat
		first int
	}
	rankedTables := make([]ranked, 0, len(tables))
	for number, agg := range tables {
		rankedTables = append(rankedTables, ranked{
			stat:  TableStat{TableNumber: number, Bookings: agg.count},
			first: agg.first,
		})
	}
	sort.Slice(rankedTables, func(i, j int) bool {
		if rankedTables[i].stat.Bookings != rankedTables[j].stat.Bookings {
			return rankedTables[i].stat.Bookings > rankedTables[j].stat.Bookings
		}
		return rankedTables[i].first < rankedTables[j].first
	})
	n := len(rankedTables)
	if n > topN {
		n = topN
	}
	for _, r := range rankedTables[:n] {
		m.MostRequestedTables = append(m.MostRequestedTables, r.stat)
	}

	if badDates > 0 {
		m.Warnings = append(m.Warnings,
			fmt.Sprintf("by_day_of_week: skipped %d rows with unparseable dates", badDates))
	}
	if badTimes > 0 {
		m.Warnings = append(m.Warnings,
			fmt.Sprintf("by_hour: skipped %d rows with unparseable times", badTimes))
	}
	if badCapacity > 0 {
		m.Warnings = append(m.Warnings,
			fmt.Sprintf("capacity_utilization: skipped %d rows with non-positive capacity", badCapacity))
	}
	return m
}
