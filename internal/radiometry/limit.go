package radiometry

import (
	"math"
	"strconv"
)

// LimitResult is the outcome of Limit.
type LimitResult struct {
	Band      string  `json:"band"`
	TargetSNR float64 `json:"target_snr"`

	// Mu is the limiting surface brightness in AB mag/arcsec².
	Mu float64 `json:"mu"`

	// RateSci is the source count rate at the limit, in e/pixel/s.
	RateSci float64 `json:"rate_sci"`

	Plan Plan `json:"plan"`
}

// Limit computes the surface brightness that reaches targetSNR per binned
// pixel in a total exposure time of total seconds.
//
// It solves a·r² + b·r + c = 0 for the science count rate r with
//
//	a = t²
//	b = -snr²·t
//	c = -snr²·(sky + dark + read_noise_total²)
//
// and takes the positive root. A discriminant that is negative or overflows
// yields NO_REAL_SOLUTION; a root that is not positive yields
// NON_PHYSICAL_RESULT.
func (p *Profile) Limit(band string, total, targetSNR float64, opts ...Option) (LimitResult, error) {
	o := NewOptions(opts...)
	bd, err := p.Band(band)
	if err != nil {
		return LimitResult{}, err
	}
	if err := validateTarget(targetSNR); err != nil {
		return LimitResult{}, err
	}
	if err := o.validate(); err != nil {
		return LimitResult{}, err
	}
	plan, err := o.plan(total)
	if err != nil {
		return LimitResult{}, err
	}

	unbinned := targetSNR / float64(o.Binning)
	snr2 := unbinned * unbinned
	t := plan.TotalTime
	nb := p.budget(bd, math.Inf(1), t, plan.NumberSubs, o.Apertures)

	a := t * t
	b := -snr2 * t
	c := -snr2 * (nb.Sky + nb.Dark + nb.ReadNoise*nb.ReadNoise)
	disc := b*b - 4*a*c
	if math.IsNaN(disc) || math.IsInf(disc, 0) || disc < 0 {
		return LimitResult{}, &Error{
			Code:    ErrCodeNoRealSolution,
			Message: "target SNR is unreachable for this exposure",
			Band:    bd.Name,
			Details: map[string]string{
				"discriminant": formatFloat(disc),
				"target_snr":   formatFloat(targetSNR),
				"total_time":   formatFloat(t),
			},
		}
	}

	rateSci := (-b + math.Sqrt(disc)) / (2 * a)
	if !isFinite(rateSci) || rateSci <= 0 {
		return LimitResult{}, &Error{
			Code:    ErrCodeNonPhysical,
			Message: "science count rate at the limit is not positive",
			Band:    bd.Name,
			Details: map[string]string{"rate_sci": formatFloat(rateSci)},
		}
	}

	return LimitResult{
		Band:      bd.Name,
		TargetSNR: targetSNR,
		Mu:        bd.magnitude(rateSci, o.Apertures),
		RateSci:   rateSci,
		Plan:      plan,
	}, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
