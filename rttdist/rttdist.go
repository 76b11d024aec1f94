// Streaming summary of the RTT samples observed during a single run.

package rttdist

import (
	"math"

	"github.com/influxdata/tdigest"
	"github.com/pkg/errors"
)

// Distribution accumulates RTT samples (milliseconds) one at a time and
// answers approximate quantile queries from a t-digest sketch, so a quick
// per-run summary can be logged without keeping the samples around. Exact
// summary statistics for the report come from the aggregator instead.
type Distribution struct {
	sketch       *tdigest.TDigest
	count        int64
	sum          float64
	sumOfSquares float64
	minimum      float64
	maximum      float64
}

func New() *Distribution {
	return &Distribution{
		sketch: tdigest.NewWithCompression(50),
	}
}

// AddSample records one RTT measurement. Zero, negative, and NaN samples
// cannot be valid round-trip times and are rejected.
func (d *Distribution) AddSample(rtt float64) error {
	if math.IsNaN(rtt) || rtt <= 0.0 {
		return errors.Errorf("rtt sample is not a positive number: %v", rtt)
	}
	if d.count == 0 || rtt < d.minimum {
		d.minimum = rtt
	}
	if rtt > d.maximum {
		d.maximum = rtt
	}
	d.count++
	d.sum += rtt
	d.sumOfSquares += rtt * rtt
	d.sketch.Add(rtt, 1)
	return nil
}

func (d *Distribution) Samples() int64 {
	return d.count
}

func (d *Distribution) Mean() float64 {
	if d.count == 0 {
		return 0
	}
	return d.sum / float64(d.count)
}

func (d *Distribution) Variance() float64 {
	if d.count < 2 {
		return 0
	}
	n := float64(d.count)
	return (d.sumOfSquares - (d.sum * d.sum / n)) / (n - 1)
}

func (d *Distribution) StandardDeviation() float64 {
	return math.Sqrt(d.Variance())
}

// Percentile answers an approximate percentile query from the sketch.
func (d *Distribution) Percentile(p float64) float64 {
	if d.count == 0 {
		return 0
	}
	return d.sketch.Quantile(p / 100.0)
}

func (d *Distribution) Median() float64 {
	return d.Percentile(50.0)
}

func (d *Distribution) Minimum() float64 {
	return d.minimum
}

func (d *Distribution) Maximum() float64 {
	return d.maximum
}
