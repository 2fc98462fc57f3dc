package treecast

import (
	"os"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/profile"
	"github.com/treecast/treecast/preprocess"
	"github.com/treecast/treecast/timedataset"
)

var benchPredictRes *Results

func benchSetup() (*timedataset.Series, *Options) {
	n := 2 * 24 * 60
	target := timedataset.GenerateConstY(n, 98.3).
		Add(timedataset.GenerateWaveY(n, 10.5, 1440.0, 1.0, 0.0)).
		Add(timedataset.GenerateWaveY(n, 4.3, 1440.0, 3.0, 120.0)).
		Add(timedataset.GenerateNoise(n, 3.2))

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
		Outliers:  NewDefaultOutlierOptions(),
	}
	return s, opt
}

func BenchmarkTrainToModel(b *testing.B) {
	s, opt := benchSetup()

	var f *Forecaster
	var err error

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f, err = New(opt)
		if err != nil {
			panic(err)
		}

		if err := f.Fit(s); err != nil {
			panic(err)
		}
	}

	m, err := f.Model()
	if err != nil {
		panic(err)
	}

	bytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		panic(err)
	}

	if err := os.WriteFile("benchmark_model.json", bytes, 0o644); err != nil {
		panic(err)
	}
}

func BenchmarkPredictFromModel(b *testing.B) {
	bytes, err := os.ReadFile("benchmark_model.json")
	if err != nil {
		panic(err)
	}

	var model Model
	if err := json.Unmarshal(bytes, &model); err != nil {
		panic(err)
	}
	f, err := NewFromModel(model)
	if err != nil {
		panic(err)
	}

	s, _ := benchSetup()
	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	for i := 0; i < b.N; i++ {
		benchPredictRes, err = f.Predict(s)
		if err != nil {
			panic(err)
		}
	}
}
