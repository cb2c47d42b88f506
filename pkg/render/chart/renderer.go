package chart

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/fin-tools/expense-atlas/pkg/services/report"
)

// Renderer draws the report visualizations as PNG images.
type Renderer struct {
	Width  int
	Height int
}

func NewRenderer() *Renderer {
	return &Renderer{Width: 1000, Height: 600}
}

// Trend renders the daily expense total time series.
func (r *Renderer) Trend(points []report.TrendPoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("trend needs at least 2 days, got %d", len(points))
	}
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.Day, p.Total
	}

	c := chart.Chart{
		Title:  "Daily Expense Trend",
		Width:  r.Width,
		Height: r.Height,
		XAxis:  chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		YAxis:  chart.YAxis{Name: "Total Expenses ($)"},
		Series: []chart.Series{
			chart.TimeSeries{Name: "Daily Total", XValues: xs, YValues: ys},
		},
	}
	return renderPNG(c.Render)
}

// Breakdown renders the per-category totals as bars.
func (r *Renderer) Breakdown(totals []report.CategoryTotal) ([]byte, error) {
	if len(totals) == 0 {
		return nil, fmt.Errorf("no category totals to render")
	}
	bars := make([]chart.Value, len(totals))
	for i, t := range totals {
		bars[i] = chart.Value{Label: t.Category, Value: t.Total}
	}

	c := chart.BarChart{
		Title:    "Expenses by Category",
		Width:    r.Width,
		Height:   r.Height,
		BarWidth: 60,
		Bars:     bars,
	}
	return renderPNG(c.Render)
}

// Anomalies renders the anomaly highlight view: every transaction as a
// dot, anomalous ones in red.
func (r *Renderer) Anomalies(normal, anomalous []report.ScatterPoint) ([]byte, error) {
	if len(normal)+len(anomalous) < 2 {
		return nil, fmt.Errorf("anomaly view needs at least 2 transactions")
	}

	var series []chart.Series
	if len(normal) > 0 {
		series = append(series, scatterSeries("Normal", normal, drawing.ColorBlue))
	}
	if len(anomalous) > 0 {
		series = append(series, scatterSeries("Anomaly", anomalous, drawing.ColorRed))
	}

	c := chart.Chart{
		Title:  "Expense Anomalies",
		Width:  r.Width,
		Height: r.Height,
		XAxis:  chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		Series: series,
	}
	return renderPNG(c.Render)
}

func scatterSeries(name string, points []report.ScatterPoint, color drawing.Color) chart.Series {
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.Date, p.Amount
	}
	return chart.TimeSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    4,
			DotColor:    color,
		},
	}
}

func renderPNG(render func(chart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
