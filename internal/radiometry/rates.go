package radiometry

import "math"

// CountRate converts a surface brightness mu (AB mag/arcsec²) in the given
// band to a count rate in e/pixel/s, for n co-added apertures.
func (p *Profile) CountRate(band string, mu float64, n int) (float64, error) {
	b, err := p.Band(band)
	if err != nil {
		return 0, err
	}
	if err := validateMu(mu); err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, invalidInput("N", n, ">= 1")
	}
	return b.rate(mu, n), nil
}

// SkyRate is the count rate of the band's sky background, in e/pixel/s.
func (p *Profile) SkyRate(band string, n int) (float64, error) {
	b, err := p.Band(band)
	if err != nil {
		return 0, err
	}
	return p.CountRate(band, b.SkyMu, n)
}

// rate is gamma0 * N * efficiency * 10^(-0.4 mu).
func (b Band) rate(mu float64, n int) float64 {
	return b.zeroPoint(n) * math.Pow(10, -0.4*mu)
}

// zeroPoint is the count rate at 0 AB mag/arcsec².
func (b Band) zeroPoint(n int) float64 {
	return b.Gamma0 * float64(n) * b.Efficiency
}

// magnitude is the inverse of rate.
func (b Band) magnitude(rate float64, n int) float64 {
	return -2.5 * math.Log10(rate/b.zeroPoint(n))
}
