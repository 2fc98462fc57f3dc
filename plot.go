package treecast

import (
	"fmt"
	"math"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/treecast/treecast/timedataset"
)

// LineTSeries generates an echart multi-line chart for some arbitrary
// time/value combination. Each series in y must have the same length as the
// input time slice.
func LineTSeries(title string, seriesName []string, t []time.Time, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	lineData := make([][]opts.LineData, len(y))

	filteredT := make([]time.Time, 0, len(t))
	for i := 0; i < len(y); i++ {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]); j++ {
			if math.IsNaN(y[i][j]) {
				continue
			}
			if i == 0 {
				filteredT = append(filteredT, t[j])
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(filteredT)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData[i])
	}

	return line
}

// LineForecast generates an echart line chart for a forecast plotting the
// trailing history of the input series along with the point forecast and
// each quantile band.
func LineForecast(history *timedataset.Series, res *Results) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Forecast",
			},
		),
	)

	t := make([]time.Time, 0, history.Len()+len(res.T))
	for i := 0; i < history.Len(); i++ {
		t = append(t, history.TimeAt(i))
	}
	t = append(t, res.T...)

	lineDataActual := make([]opts.LineData, 0, history.Len())
	for _, val := range history.Target {
		lineDataActual = append(lineDataActual, opts.LineData{Value: val})
	}

	// forecast series are padded so they line up after the history
	pad := make([]opts.LineData, history.Len())
	lineDataPoint := append(append([]opts.LineData{}, pad...), make([]opts.LineData, 0, len(res.Point))...)
	for _, val := range res.Point {
		lineDataPoint = append(lineDataPoint, opts.LineData{Value: val})
	}

	line = line.SetXAxis(t).
		AddSeries("Actual", lineDataActual).
		AddSeries("Point", lineDataPoint)
	for _, qf := range res.Quantiles {
		lineDataQuantile := append([]opts.LineData{}, pad...)
		for _, val := range qf.Values {
			lineDataQuantile = append(lineDataQuantile, opts.LineData{Value: val})
		}
		line = line.AddSeries(fmt.Sprintf("q%0.2f", qf.Quantile), lineDataQuantile)
	}
	return line
}
