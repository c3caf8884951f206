package radiometry

import "math"

// maxSubs bounds the sub-exposure count so the float to int conversion of
// the closed-form estimate cannot overflow.
const maxSubs = 1 << 40

// ExposureResult is the outcome of ExposureTime.
type ExposureResult struct {
	Band string  `json:"band"`
	Mu   float64 `json:"mu"`

	// TargetSNR is the requested SNR per binned pixel.
	TargetSNR float64 `json:"target_snr"`

	// TotalTime is NumberSubs * SubExposure, in seconds.
	TotalTime   float64 `json:"total_time"`
	SubExposure float64 `json:"sub_exposure"`
	NumberSubs  int     `json:"number_subs"`

	// Estimate is the closed-form total time before rounding to whole subs.
	Estimate float64 `json:"estimate"`

	// AddedSubs counts the sub-exposures the correction loop added on top of
	// ceil(Estimate / SubExposure) to overcome read noise.
	AddedSubs int `json:"added_subs"`

	// AchievedSNR is the SNR at TotalTime.
	AchievedSNR float64 `json:"achieved_snr"`
}

// ExposureTime estimates the total exposure time needed to reach targetSNR
// per binned pixel for a source of surface brightness mu.
//
// The closed form assumes every noise term grows as sqrt(t), which treats the
// number of sub-exposures as continuous. The estimate is then rounded up to a
// whole number of subs and corrected one sub at a time: the result is the
// smallest sub count whose SNR, evaluated without round-up, is at least
// targetSNR. WithRoundUp has no effect here.
func (p *Profile) ExposureTime(mu float64, band string, targetSNR float64, opts ...Option) (ExposureResult, error) {
	o := NewOptions(opts...)
	b, err := p.Band(band)
	if err != nil {
		return ExposureResult{}, err
	}
	if err := validateMu(mu); err != nil {
		return ExposureResult{}, err
	}
	if err := validateTarget(targetSNR); err != nil {
		return ExposureResult{}, err
	}
	if err := o.validate(); err != nil {
		return ExposureResult{}, err
	}

	// SNR per unbinned pixel.
	unbinned := targetSNR / float64(o.Binning)
	rateSci := b.rate(mu, o.Apertures)
	rateSky := b.rate(b.SkyMu, o.Apertures)
	inst := p.instrument
	if rateSci <= 0 {
		return ExposureResult{}, &Error{
			Code:    ErrCodeNonPhysical,
			Message: "source count rate is zero, no exposure time reaches the target",
			Band:    b.Name,
		}
	}

	estimate := unbinned * unbinned *
		(rateSci + rateSky + inst.DarkCurrent + inst.ReadNoise*inst.ReadNoise/o.SubExposure) /
		(rateSci * rateSci)
	subs := math.Ceil(estimate / o.SubExposure)
	if !isFinite(estimate) || subs > maxSubs {
		return ExposureResult{}, &Error{
			Code:    ErrCodeNonPhysical,
			Message: "required exposure time is not finite",
			Band:    b.Name,
			Details: map[string]string{"estimate": formatFloat(estimate)},
		}
	}
	first := max(int(subs), 1)

	achieved := func(n int) float64 {
		t := float64(n) * o.SubExposure
		nb := p.budget(b, mu, t, n, o.Apertures)
		return float64(o.Binning) * nb.Signal / nb.Total
	}

	// Step back while the previous count already meets the target, so the
	// result is the first count that does, then step forward until it does.
	n := first
	for n > 1 && achieved(n-1) >= targetSNR {
		n--
	}
	snr := achieved(n)
	for snr < targetSNR {
		n++
		snr = achieved(n)
	}

	return ExposureResult{
		Band:        b.Name,
		Mu:          mu,
		TargetSNR:   targetSNR,
		TotalTime:   float64(n) * o.SubExposure,
		SubExposure: o.SubExposure,
		NumberSubs:  n,
		Estimate:    estimate,
		AddedSubs:   max(n-first, 0),
		AchievedSNR: snr,
	}, nil
}
