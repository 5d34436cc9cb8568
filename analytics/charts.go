package analytics

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Chart emitters render aggregator output to PNG files. They sit outside
// the core contract: a render failure never invalidates the metrics.

func renderToFile(path string, render func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return render(f)
}

func barChart(title string, values []chart.Value) chart.BarChart {
	return chart.BarChart{
		Title:    title,
		Height:   512,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: values,
	}
}

// RenderSalesCharts writes the sales charts into dir, which is created if
// missing. Returns the written file paths.
func RenderSalesCharts(m SalesMetrics, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var written []string

	if len(m.RevenueByCategory) > 0 {
		values := make([]chart.Value, 0, len(m.RevenueByCategory))
		for _, name := range sortedKeys(m.RevenueByCategory) {
			values = append(values, chart.Value{Label: name, Value: m.RevenueByCategory[name]})
		}
		path := filepath.Join(dir, "revenue_by_category.png")
		graph := barChart("Revenue by Category", values)
		if err := renderToFile(path, func(f *os.File) error { return graph.Render(chart.PNG, f) }); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if len(m.RevenueByHour) > 0 {
		hours := make([]int, 0, len(m.RevenueByHour))
		for hour := range m.RevenueByHour {
			hours = append(hours, hour)
		}
		sort.Ints(hours)
		values := make([]chart.Value, 0, len(hours))
		for _, hour := range hours {
			values = append(values, chart.Value{
				Label: fmt.Sprintf("%02d:00", hour),
				Value: m.RevenueByHour[hour],
			})
		}
		path := filepath.Join(dir, "revenue_by_hour.png")
		graph := barChart("Revenue by Hour", values)
		if err := renderToFile(path, func(f *os.File) error { return graph.Render(chart.PNG, f) }); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if len(m.TopByQuantity) > 0 {
		values := make([]chart.Value, 0, len(m.TopByQuantity))
		for _, item := range m.TopByQuantity {
			values = append(values, chart.Value{Label: item.Name, Value: float64(item.Quantity)})
		}
		path := filepath.Join(dir, "top_selling_items.png")
		graph := barChart("Top Selling Items", values)
		if err := renderToFile(path, func(f *os.File) error { return graph.Render(chart.PNG, f) }); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

// RenderBookingCharts writes the booking charts into dir.
func RenderBookingCharts(m BookingMetrics, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var written []string

	if len(m.ByStatus) > 0 {
		values := make([]chart.Value, 0, len(m.ByStatus))
		for _, status := range sortedKeys(intToFloatMap(m.ByStatus)) {
			values = append(values, chart.Value{Label: status, Value: float64(m.ByStatus[status])})
		}
		path := filepath.Join(dir, "booking_status.png")
		graph := chart.PieChart{
			Title:  "Booking Status Distribution",
			Width:  512,
			Height: 512,
			Values: values,
		}
		if err := renderToFile(path, func(f *os.File) error { return graph.Render(chart.PNG, f) }); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if len(m.ByHour) > 0 {
		hours := make([]int, 0, len(m.ByHour))
		for hour := range m.ByHour {
			hours = append(hours, hour)
		}
		sort.Ints(hours)
		values := make([]chart.Value, 0, len(hours))
		for _, hour := range hours {
			values = append(values, chart.Value{
				Label: fmt.Sprintf("%02d:00", hour),
				Value: float64(m.ByHour[hour]),
			})
		}
		path := filepath.Join(dir, "bookings_by_hour.png")
		graph := barChart("Bookings by Hour", values)
		if err := renderToFile(path, func(f *os.File) error { return graph.Render(chart.PNG, f) }); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func intToFloatMap(m map[string]int) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = float64(v)
	}
	return out
}
