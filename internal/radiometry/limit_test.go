package radiometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimit_Values(t *testing.T) {
	p := DefaultProfile()

	res, err := p.Limit("g", 36000, 1)
	require.NoError(t, err)
	assert.InDelta(t, 27.56776027244113, res.Mu, 1e-9)
	assert.InEpsilon(t, 0.005717785237591977, res.RateSci, 1e-9)
	assert.Equal(t, 60, res.Plan.NumberSubs)

	binned, err := p.Limit("r", 36000, 3, WithBinning(4))
	require.NoError(t, err)
	assert.InDelta(t, 27.201472815487907, binned.Mu, 1e-9)
}

func TestLimit_SubExposureRounding(t *testing.T) {
	var notified bool
	res, err := DefaultProfile().Limit("g", 100, 3, WithSubExposure(30), WithNotifier(func(Plan) { notified = true }))
	require.NoError(t, err)
	assert.True(t, notified)
	assert.Equal(t, 120.0, res.Plan.TotalTime)
	assert.Equal(t, 4, res.Plan.NumberSubs)
	assert.InDelta(t, 22.499073851177876, res.Mu, 1e-9)
}

func TestLimit_RoundTripsSNR(t *testing.T) {
	p := DefaultProfile()

	cases := []struct {
		mu      float64
		band    string
		total   float64
		sub     float64
		binning int
		n       int
	}{
		{28, "g", 36000, 600, 1, 1},
		{25, "r", 1000, 600, 1, 1},
		{30, "g", 360000, 600, 1, 1},
		{27, "r", 7000, 300, 1, 1},
		{29, "g", 100000, 600, 3, 1},
		{28.5, "r", 50000, 600, 2, 6},
	}
	for _, c := range cases {
		opts := []Option{WithSubExposure(c.sub), WithBinning(c.binning), WithApertures(c.n), WithRoundUp(false)}
		s, err := p.SNR(c.mu, c.band, c.total, opts...)
		require.NoError(t, err)

		lim, err := p.Limit(c.band, c.total, s.SNR, opts...)
		require.NoError(t, err)
		assert.InDelta(t, c.mu, lim.Mu, 1e-9, "mu=%v band=%s", c.mu, c.band)
		assert.Equal(t, s.Plan, lim.Plan)
	}
}

func TestLimit_DeeperWithMoreTime(t *testing.T) {
	p := DefaultProfile()
	prev := 0.0
	for _, total := range []float64{600, 6000, 60000, 600000} {
		res, err := p.Limit("g", total, 5)
		require.NoError(t, err)
		assert.Greater(t, res.Mu, prev)
		prev = res.Mu
	}
}

func TestLimit_NoRealSolution(t *testing.T) {
	p := DefaultProfile()

	for _, target := range []float64{1e100, 1e160, 1e300} {
		_, err := p.Limit("g", 1e-3, target, WithSubExposure(1e-3))
		require.Error(t, err)
		assert.True(t, IsNoRealSolution(err), "target %g: got %v", target, err)

		var re *Error
		require.ErrorAs(t, err, &re)
		assert.Equal(t, "g", re.Band)
		assert.Contains(t, re.Details, "discriminant")
	}
}

func TestLimit_Errors(t *testing.T) {
	p := DefaultProfile()

	_, err := p.Limit("i", 3600, 5)
	assert.True(t, IsUnknownBand(err))

	_, err = p.Limit("g", 0, 5)
	assert.True(t, IsInvalidInput(err))

	_, err = p.Limit("g", 3600, 0)
	assert.True(t, IsInvalidInput(err))

	_, err = p.Limit("g", 3600, math.NaN())
	assert.True(t, IsInvalidInput(err))

	_, err = p.Limit("g", 3600, 5, WithApertures(-2))
	assert.True(t, IsInvalidInput(err))

	_, err = p.Limit("g", 1e30, 5, WithSubExposure(1))
	assert.True(t, IsInvalidInput(err))
}
