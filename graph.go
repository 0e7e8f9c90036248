// Copyright 2026 Marcus Erlandsson.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package terrain

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/stat"
)

const maxticks = 40

// Coverage is the water coverage of one generated map, as a
// fraction in [0,1].
type Coverage struct {
	Name string
	Frac float64
}

// CoverageStats summarises the coverage fractions of a batch,
// returning the mean, standard deviation and median.
func CoverageStats(covs []Coverage) (mean, stddev, median float64) {
	var fracs []float64
	for _, c := range covs {
		fracs = append(fracs, c.Frac)
	}
	sort.Float64s(fracs)
	mean = stat.Mean(fracs, nil)
	stddev = stat.StdDev(fracs, nil)
	median = stat.Quantile(0.5, stat.Empirical, fracs, nil)
	return mean, stddev, median
}

// createLine creates a horizontal line with a particular y value for
// a graph
func createLine(xvalues []float64, y float64, c drawing.Color) chart.ContinuousSeries {
	var yvalues []float64
	for range xvalues {
		yvalues = append(yvalues, y)
	}
	return chart.ContinuousSeries{
		XValues: xvalues,
		YValues: yvalues,
		Style: chart.Style{
			StrokeColor: c,
		},
	}
}

// Graph creates a graph of the water coverage of each map in a
// batch, with guide lines at the mean and one standard deviation
// either side of it.
func Graph(covs []Coverage, title string, w io.Writer) error {
	if len(covs) < 2 {
		return errors.New("Not enough coverages to graph")
	}

	sorted := make([]Coverage, len(covs))
	copy(sorted, covs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var xvalues, yvalues []float64
	var ticks []chart.Tick
	tickevery := len(sorted) / maxticks
	if tickevery < 1 {
		tickevery = 1
	}
	for i, c := range sorted {
		x := float64(i + 1)
		xvalues = append(xvalues, x)
		yvalues = append(yvalues, c.Frac*100)
		if i%tickevery == 0 {
			ticks = append(ticks, chart.Tick{Value: x, Label: fmt.Sprintf("%.0f", x)})
		}
	}
	ticks[len(ticks)-1] = chart.Tick{Value: float64(len(sorted)), Label: fmt.Sprintf("%d", len(sorted))}

	mean, stddev, _ := CoverageStats(sorted)

	mainSeries := chart.ContinuousSeries{
		Style: chart.Style{
			StrokeColor: chart.ColorBlue,
			FillColor:   chart.ColorAlternateBlue,
		},
		XValues: xvalues,
		YValues: yvalues,
	}
	meanSeries := createLine(xvalues, mean*100, chart.ColorAlternateGreen)
	lowSeries := createLine(xvalues, (mean-stddev)*100, chart.ColorAlternateGray)
	lowSeries.Style.StrokeDashArray = []float64{5.0, 5.0}
	highSeries := createLine(xvalues, (mean+stddev)*100, chart.ColorAlternateGray)
	highSeries.Style.StrokeDashArray = []float64{5.0, 5.0}

	// Annotate the wettest and driest maps
	driest, wettest := 0, 0
	for i, c := range sorted {
		if c.Frac < sorted[driest].Frac {
			driest = i
		}
		if c.Frac > sorted[wettest].Frac {
			wettest = i
		}
	}
	annotations := []chart.Value2{
		{Label: sorted[driest].Name, XValue: float64(driest + 1), YValue: sorted[driest].Frac * 100},
		{Label: sorted[wettest].Name, XValue: float64(wettest + 1), YValue: sorted[wettest].Frac * 100},
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1920,
		Height: 1080,
		XAxis: chart.XAxis{
			Name: "Map number",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: float64(len(sorted)) + 1,
			},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: "Water coverage (%)",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: 100.0,
			},
		},
		Series: []chart.Series{
			mainSeries,
			meanSeries,
			lowSeries,
			highSeries,
			chart.AnnotationSeries{
				Annotations: annotations,
			},
		},
	}

	return graph.Render(chart.PNG, w)
}
