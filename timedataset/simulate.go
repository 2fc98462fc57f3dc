package timedataset

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"
)

type Values []float64

func (v Values) Add(src Values) Values {
	floats.Add(v, src)
	return v
}

// GenerateConstY returns n observations pinned to val.
func GenerateConstY(n int, val float64) Values {
	y := make([]float64, n)
	floats.AddConst(val, y)
	return Values(y)
}

// GenerateWaveY returns a sine wave sampled at n points where period is
// expressed in number of points.
func GenerateWaveY(n int, amp, period, order, offset float64) Values {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		val := amp * math.Sin(2.0*math.Pi*order/period*(float64(i)+offset))
		y = append(y, val)
	}
	return Values(y)
}

// GenerateNoise returns n normally distributed observations scaled by noiseScale.
func GenerateNoise(n int, noiseScale float64) Values {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, rand.NormFloat64()*noiseScale)
	}
	return Values(y)
}

// GenerateStart returns a fixed epoch start time so generated series are
// reproducible across test runs.
func GenerateStart() time.Time {
	return time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
}
