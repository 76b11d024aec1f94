package rttdist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicDistribution(t *testing.T) {
	d := New()
	assert.NoError(t, d.AddSample(10.0))
	assert.NoError(t, d.AddSample(20.0))
	assert.NoError(t, d.AddSample(30.0))

	assert.Equal(t, int64(3), d.Samples())
	assert.InEpsilon(t, 10.0, d.Minimum(), 0.000001)
	assert.InEpsilon(t, 30.0, d.Maximum(), 0.000001)
	assert.InEpsilon(t, 20.0, d.Mean(), 0.000001)
	assert.InEpsilon(t, 100.0, d.Variance(), 0.000001)
	assert.InEpsilon(t, 10.0, d.StandardDeviation(), 0.000001)
	assert.InEpsilon(t, 20.0, d.Median(), 0.000001)
}

func TestManySamples(t *testing.T) {
	d := New()
	for i := 1; i <= 10000; i++ {
		assert.NoError(t, d.AddSample(float64(i)/100.0)) // Linear ramp from 0.01 to 100.
	}

	assert.Equal(t, int64(10000), d.Samples())
	assert.InEpsilon(t, 0.01, d.Minimum(), 0.000001)
	assert.InEpsilon(t, 100.0, d.Maximum(), 0.000001)
	assert.InEpsilon(t, 50.005, d.Mean(), 0.000001)
	// The sketch is approximate; a percent of slack is plenty for a ramp.
	assert.InEpsilon(t, 50.0, d.Median(), 0.01)
	assert.InEpsilon(t, 95.0, d.Percentile(95), 0.01)
}

func TestRejectsInvalidSamples(t *testing.T) {
	d := New()
	assert.Error(t, d.AddSample(0.0))
	assert.Error(t, d.AddSample(-1.0))
	assert.Error(t, d.AddSample(math.NaN()))
	assert.Equal(t, int64(0), d.Samples())
}

func TestEmptyDistributionIsInert(t *testing.T) {
	d := New()
	assert.Equal(t, 0.0, d.Mean())
	assert.Equal(t, 0.0, d.Variance())
	assert.Equal(t, 0.0, d.Percentile(95))
}
