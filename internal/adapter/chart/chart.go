// Package chart renders a dashboard view as a PNG line chart
package chart

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/simaogato/wealthflow-costbasis/internal/domain"
	"github.com/simaogato/wealthflow-costbasis/internal/usecase/dashboard"
)

// Options holds the chart size in pixels
type Options struct {
	Width  int
	Height int
}

var (
	investedColor = drawing.ColorFromHex("2563eb") // blue-600
	gainColor     = drawing.ColorFromHex("16a34a") // green-600
	lossColor     = drawing.ColorFromHex("dc2626") // red-600
)

// Render draws two series: the invested step line and the liquidation value,
// red when the view is underwater and green otherwise. Returns raw PNG bytes.
func Render(view *dashboard.View, opts Options) ([]byte, error) {
	if len(view.Invested) < 2 || len(view.Basis) < 2 {
		return nil, fmt.Errorf("need at least 2 data points per series, got %d invested and %d basis",
			len(view.Invested), len(view.Basis))
	}

	basisColor := gainColor
	if view.Underwater {
		basisColor = lossColor
	}

	investedSeries := timeSeries("Invested", view.Invested, chart.Style{
		StrokeColor: investedColor,
		StrokeWidth: 1.5,
	})
	basisSeries := timeSeries("Current Value", view.Basis, chart.Style{
		StrokeColor: basisColor,
		StrokeWidth: 1.5,
	})

	graph := chart.Chart{
		Title:  fmt.Sprintf("Cost Basis %s %s", view.Account, view.Selection),
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name: "Date",
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format(time.DateOnly)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Dollars",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			investedSeries,
			basisSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

func timeSeries(name string, s domain.Series, style chart.Style) chart.TimeSeries {
	xs := make([]time.Time, len(s))
	ys := make([]float64, len(s))
	for i, p := range s {
		xs[i] = p.Time
		ys[i] = p.Value.InexactFloat64()
	}
	return chart.TimeSeries{
		Name:    name,
		Style:   style,
		XValues: xs,
		YValues: ys,
	}
}
