package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/theirongolddev/scold/internal/model"
)

// PieChart renders spending per category as a PNG. It returns nil when there
// is nothing positive to draw.
func PieChart(totals []model.CategoryTotal, currency string) ([]byte, error) {
	values := make([]chart.Value, 0, len(totals))
	for _, ct := range totals {
		if !ct.Total.IsPositive() {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s%s (%.1f%%)", ct.Category, currency, ct.Total.String(), ct.SharePercent),
			Value: ct.Total.Float64(),
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Title:  fmt.Sprintf("Spending by Category (%s)", currency),
		Width:  900,
		Height: 700,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    60,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("rendering pie chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// TrendChart renders monthly spending as a line chart. It needs at least two
// months of data and returns nil otherwise.
func TrendChart(months []model.MonthTotal, currency string) ([]byte, error) {
	if len(months) < 2 {
		return nil, nil
	}

	// oldest first for the x axis
	xs := make([]time.Time, len(months))
	ys := make([]float64, len(months))
	for i, mt := range months {
		j := len(months) - 1 - i
		xs[j] = mt.Month
		ys[j] = mt.Total.Float64()
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Monthly Spending (%s)", currency),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%s%.0f", currency, f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Spent",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("rendering trend chart: %w", err)
	}
	return buffer.Bytes(), nil
}
