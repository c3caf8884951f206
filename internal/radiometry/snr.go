package radiometry

import "math"

// NoiseBudget breaks down the per-pixel variance of an exposure, in e/pixel.
type NoiseBudget struct {
	Signal    float64 `json:"signal"`
	Sky       float64 `json:"sky"`
	Dark      float64 `json:"dark"`
	ReadNoise float64 `json:"read_noise"` // sqrt(number_subs) * read_noise
	Total     float64 `json:"total"`      // sqrt of the summed variance
}

// SNRResult is the outcome of SNR.
type SNRResult struct {
	Band   string      `json:"band"`
	Mu     float64     `json:"mu"`
	SNR    float64     `json:"snr"`
	Plan   Plan        `json:"plan"`
	Budget NoiseBudget `json:"budget"`
}

// SNR computes the signal-to-noise ratio per binned pixel for a source of
// surface brightness mu observed in band for a total exposure time in seconds.
//
// Binning multiplies the unbinned SNR by the binning factor. A source with
// mu = +Inf contributes no signal and yields SNR 0.
func (p *Profile) SNR(mu float64, band string, total float64, opts ...Option) (SNRResult, error) {
	o := NewOptions(opts...)
	b, err := p.Band(band)
	if err != nil {
		return SNRResult{}, err
	}
	if err := validateMu(mu); err != nil {
		return SNRResult{}, err
	}
	if err := o.validate(); err != nil {
		return SNRResult{}, err
	}
	plan, err := o.plan(total)
	if err != nil {
		return SNRResult{}, err
	}

	budget := p.budget(b, mu, plan.TotalTime, plan.NumberSubs, o.Apertures)
	snr := 0.0
	if budget.Total > 0 {
		snr = float64(o.Binning) * budget.Signal / budget.Total
	}
	return SNRResult{
		Band:   b.Name,
		Mu:     mu,
		SNR:    snr,
		Plan:   plan,
		Budget: budget,
	}, nil
}

// budget evaluates the noise model for an effective exposure.
func (p *Profile) budget(b Band, mu, t float64, subs, n int) NoiseBudget {
	nb := NoiseBudget{
		Signal:    b.rate(mu, n) * t,
		Sky:       b.rate(b.SkyMu, n) * t,
		Dark:      p.instrument.DarkCurrent * t,
		ReadNoise: math.Sqrt(float64(subs)) * p.instrument.ReadNoise,
	}
	nb.Total = math.Sqrt(nb.Signal + nb.Sky + nb.Dark + nb.ReadNoise*nb.ReadNoise)
	return nb
}
