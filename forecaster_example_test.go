package treecast

import (
	"io"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/treecast/treecast/preprocess"
	"github.com/treecast/treecast/timedataset"
)

func Example_forecaster() {
	// daily sine wave sampled at minutely over two days
	n := 2 * 24 * 60
	target := timedataset.GenerateConstY(n, 98.3).
		Add(timedataset.GenerateWaveY(n, 10.5, 1440.0, 1.0, 120.0)).
		Add(timedataset.GenerateNoise(n, 2.1))

	s, err := timedataset.NewSeries(timedataset.GenerateStart(), time.Minute, target)
	if err != nil {
		panic(err)
	}

	opt := &Options{
		Preprocess: &preprocess.Options{
			ContextWindowSize: 60,
			ForecastHorizon:   30,
			NumSamples:        preprocess.EnumerateAll,
		},
		Quantiles: []float64{0.1, 0.5, 0.9},
	}
	f, err := New(opt)
	if err != nil {
		panic(err)
	}
	if err := f.Fit(s); err != nil {
		panic(err)
	}

	res, err := f.Predict(s)
	if err != nil {
		panic(err)
	}

	page := components.NewPage()
	page.AddCharts(
		LineForecast(s, res),
	)
	if err := os.MkdirAll("examples", 0o755); err != nil {
		panic(err)
	}
	file, err := os.Create("examples/forecaster.html")
	if err != nil {
		panic(err)
	}
	page.Render(io.MultiWriter(file))

	// Output:
}
