// Package report renders usage reports as static chart images. The core only
// depends on the Renderer contract; the gonum/plot implementation is the one
// concrete backend.
package report

import (
	"utilityBillingPortal/internal/analytics"
	"utilityBillingPortal/models"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Renderer turns (label, value) pairs into a bar-chart image file.
type Renderer interface {
	RenderBarChart(title, yLabel, path string, labels []string, values []float64) error
}

// topConsumers is how many customers the usage report charts.
const topConsumers = 10

// TopUsageChart renders the top-10 consumers bar chart to path. An empty
// snapshot returns ErrNoData and writes nothing.
func TopUsageChart(customers []models.Customer, r Renderer, path string) error {
	if len(customers) == 0 {
		return models.ErrNoData
	}
	top := analytics.TopByUsage(customers, topConsumers)
	labels := make([]string, len(top))
	values := make([]float64, len(top))
	for i, c := range top {
		labels[i] = c.FullName
		values[i] = c.MonthlyUsageKWh
	}
	return r.RenderBarChart("Top 10 Consumers by Monthly Usage", "Usage (kWh)", path, labels, values)
}

// PlotRenderer renders charts with gonum/plot.
type PlotRenderer struct{}

func (PlotRenderer) RenderBarChart(title, yLabel, path string, labels []string, values []float64) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(20))
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = -0.6
	p.X.Tick.Label.XAlign = -0.5

	return p.Save(10*vg.Inch, 7*vg.Inch, path)
}
