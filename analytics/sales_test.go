package analytics_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/littlelemon/reservations/analytics"
)

func TestAnalyzeSalesEmptyInput(t *testing.T) {
	m := analytics.AnalyzeSales(nil)

	assert.Zero(t, m.TotalRevenue)
	assert.Zero(t, m.TotalOrders)
	assert.Zero(t, m.TotalItemsSold)
	assert.Zero(t, m.AverageOrderValue)
	assert.Zero(t, m.TotalProfit)
	assert.Zero(t, m.ProfitMargin)
	assert.False(t, math.IsNaN(m.AverageOrderValue))
	assert.False(t, math.IsNaN(m.ProfitMargin))

	assert.NotNil(t, m.RevenueByCategory)
	assert.NotNil(t, m.RevenueByHour)
	assert.Empty(t, m.TopByRevenue)
	assert.Empty(t, m.Warnings)
}

func TestAnalyzeSales(t *testing.T) {
	rows := []analytics.SalesRow{
		{
			OrderID: 1, OrderDate: "2025-07-04", OrderTime: "12:30", TotalAmount: 40,
			ItemName: "Bruschetta", CategoryName: "Starters",
			Quantity: 2, UnitPrice: 5, Subtotal: 10, ItemCost: 2,
			TableLocation: "main", SeatingCapacity: 4,
		},
		{
			OrderID: 1, OrderDate: "2025-07-04", OrderTime: "12:30", TotalAmount: 40,
			ItemName: "Lasagna", CategoryName: "Mains",
			Quantity: 2, UnitPrice: 15, Subtotal: 30, ItemCost: 6,
			TableLocation: "main", SeatingCapacity: 4,
		},
		{
			OrderID: 2, OrderDate: "2025-07-05", OrderTime: "19:15", TotalAmount: 20,
			ItemName: "Lasagna", CategoryName: "Mains",
			Quantity: 1, UnitPrice: 15, Subtotal: 15, ItemCost: 6,
			TableLocation: "terrace", SeatingCapacity: 2,
		},
		{
			OrderID: 2, OrderDate: "2025-07-05", OrderTime: "19:15", TotalAmount: 20,
			ItemName: "Tiramisu", CategoryName: "Desserts",
			Quantity: 1, UnitPrice: 5, Subtotal: 5, ItemCost: 1,
		},
	}

	m := analytics.AnalyzeSales(rows)

	assert.InDelta(t, 60.0, m.TotalRevenue, 0.001)
	assert.Equal(t, 2, m.TotalOrders)
	assert.Equal(t, 6, m.TotalItemsSold)
	// order totals, not line subtotals: (40 + 20) / 2
	assert.InDelta(t, 30.0, m.AverageOrderValue, 0.001)

	// profit: (10-4) + (30-12) + (15-6) + (5-1) = 37
	assert.InDelta(t, 37.0, m.TotalProfit, 0.001)
	assert.InDelta(t, 100*37.0/60.0, m.ProfitMargin, 0.001)

	assert.InDelta(t, 45.0, m.RevenueByCategory["Mains"], 0.001)
	assert.Equal(t, 3, m.QuantityByCategory["Mains"])
	assert.InDelta(t, 40.0, m.RevenueByDayOfWeek["Friday"], 0.001)
	assert.InDelta(t, 20.0, m.RevenueByDayOfWeek["Saturday"], 0.001)
	assert.InDelta(t, 40.0, m.RevenueByHour[12], 0.001)
	assert.InDelta(t, 20.0, m.RevenueByHour[19], 0.001)
	assert.InDelta(t, 40.0, m.RevenueByLocation["main"], 0.001)
	assert.InDelta(t, 15.0, m.RevenueByLocation["terrace"], 0.001)
	assert.InDelta(t, 15.0, m.RevenueByCapacity[2], 0.001)

	assert.Equal(t, "Lasagna", m.TopByRevenue[0].Name)
	assert.Equal(t, "Bruschetta", m.TopByRevenue[1].Name)
	assert.Equal(t, "Lasagna", m.TopByQuantity[0].Name)

	assert.Empty(t, m.Warnings)
}

func TestAnalyzeSalesTieBreaksByEncounterOrder(t *testing.T) {
	rows := []analytics.SalesRow{
		{OrderID: 1, OrderDate: "2025-07-04", OrderTime: "12:00", ItemName: "Soup", CategoryName: "Starters", Quantity: 2, Subtotal: 10},
		{OrderID: 1, OrderDate: "2025-07-04", OrderTime: "12:00", ItemName: "Salad", CategoryName: "Starters", Quantity: 2, Subtotal: 10},
	}

	m := analytics.AnalyzeSales(rows)
	assert.Equal(t, "Soup", m.TopByQuantity[0].Name)
	assert.Equal(t, "Salad", m.TopByQuantity[1].Name)
}

func TestAnalyzeSalesTopListCap(t *testing.T) {
	var rows []analytics.SalesRow
	for i := 0; i < 12; i++ {
		rows = append(rows, analytics.SalesRow{
			OrderID:   1,
			OrderDate: "2025-07-04", OrderTime: "12:00",
			ItemName: fmt.Sprintf("Item %d", i), CategoryName: "Mains",
			Quantity: i + 1, Subtotal: float64(i + 1),
		})
	}

	m := analytics.AnalyzeSales(rows)
	assert.Len(t, m.TopByQuantity, 10)
	assert.Equal(t, "Item 11", m.TopByQuantity[0].Name)
	assert.Equal(t, "Item 2", m.TopByQuantity[9].Name)
}

func TestAnalyzeSalesBadRowsDegradeToWarnings(t *testing.T) {
	rows := []analytics.SalesRow{
		{OrderID: 1, OrderDate: "garbage", OrderTime: "12:00", ItemName: "Soup", CategoryName: "Starters", Quantity: 1, Subtotal: 5},
		{OrderID: 1, OrderDate: "2025-07-04", OrderTime: "noon", ItemName: "Soup", CategoryName: "Starters", Quantity: 1, Subtotal: 5},
	}

	m := analytics.AnalyzeSales(rows)

	// totals still include the bad rows, only the groupings skip them
	assert.InDelta(t, 10.0, m.TotalRevenue, 0.001)
	assert.InDelta(t, 5.0, m.RevenueByDayOfWeek["Friday"], 0.001)
	assert.InDelta(t, 5.0, m.RevenueByHour[12], 0.001)
	assert.Len(t, m.Warnings, 2)
}
