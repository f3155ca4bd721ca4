// Package charts renders dashboard PNGs for the HTTP API.
package charts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/format"
)

// Generator renders PNG charts from aggregated dashboard data.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// BreakdownPie renders a pie chart of the per-category breakdown. Slices
// below 1% are dropped so the legend stays readable. Returns nil when there
// is nothing to draw.
func (g *Generator) BreakdownPie(entries []core.BreakdownEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	var total int64
	for _, e := range entries {
		total += e.TotalAmount.Units
	}
	if total == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(entries))
	for _, e := range entries {
		pct := format.Percentage(e.TotalAmount.Units, total)
		if pct <= 1.0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s (%.1f%%)", e.CategoryName, format.Amount(e.TotalAmount), pct),
			Value: float64(e.TotalAmount.Units),
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buf := bytes.NewBuffer(nil)
	if err := pie.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("render breakdown pie: %w", err)
	}
	return buf.Bytes(), nil
}

// TrendBars renders the monthly trend as paired income/expense bars,
// one pair per month present in the data.
func (g *Generator) TrendBars(entries []core.TrendEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(entries))
	for _, e := range entries {
		style := chart.Style{
			StrokeColor: chart.ColorGreen,
			FillColor:   chart.ColorGreen.WithAlpha(180),
		}
		if e.Kind == core.Expense {
			style = chart.Style{
				StrokeColor: chart.ColorRed,
				FillColor:   chart.ColorRed.WithAlpha(180),
			}
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s %s", time.Month(e.Month).String()[:3], e.Kind),
			Value: float64(e.TotalAmount.Units),
			Style: style,
		})
	}

	graph := chart.BarChart{
		Title:    "Monthly trend",
		Width:    1200,
		Height:   600,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
		},
		Bars: bars,
	}

	buf := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("render trend bars: %w", err)
	}
	return buf.Bytes(), nil
}
