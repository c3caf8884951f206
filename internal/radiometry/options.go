package radiometry

import "math"

// Defaults applied when an option is not given.
const (
	DefaultSubExposure = 600.0 // seconds
	DefaultBinning     = 1
	DefaultApertures   = 1
	DefaultRoundUp     = true
)

// Notifier receives informational messages, such as a total exposure time
// being rounded up to a whole number of sub-exposures.
type Notifier func(plan Plan)

// Options collects the optional parameters shared by the operations.
type Options struct {
	SubExposure float64  // sub-exposure time in seconds
	Binning     int      // binning factor, >= 1
	Apertures   int      // N, co-added apertures or frames, >= 1
	RoundUp     bool     // round the total up to a whole number of subs
	Notify      Notifier // optional, called when the total is adjusted
}

// Option configures an operation.
type Option func(*Options)

// WithSubExposure sets the sub-exposure time in seconds.
func WithSubExposure(seconds float64) Option {
	return func(o *Options) { o.SubExposure = seconds }
}

// WithBinning sets the binning factor.
func WithBinning(factor int) Option {
	return func(o *Options) { o.Binning = factor }
}

// WithApertures sets N, the number of co-added apertures or frames.
func WithApertures(n int) Option {
	return func(o *Options) { o.Apertures = n }
}

// WithRoundUp enables or disables rounding the total exposure time up to a
// whole number of sub-exposures. ExposureTime ignores it.
func WithRoundUp(enabled bool) Option {
	return func(o *Options) { o.RoundUp = enabled }
}

// WithNotifier installs a callback for exposure adjustments.
func WithNotifier(n Notifier) Option {
	return func(o *Options) { o.Notify = n }
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) Options {
	o := Options{
		SubExposure: DefaultSubExposure,
		Binning:     DefaultBinning,
		Apertures:   DefaultApertures,
		RoundUp:     DefaultRoundUp,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o Options) validate() error {
	if !isFinite(o.SubExposure) || o.SubExposure <= 0 {
		return invalidInput("sub_exp_time", o.SubExposure, "finite and > 0")
	}
	if o.Binning < 1 {
		return invalidInput("binning", o.Binning, ">= 1")
	}
	if o.Apertures < 1 {
		return invalidInput("N", o.Apertures, ">= 1")
	}
	return nil
}

// validateMu accepts +Inf (an infinitely faint source, zero signal) but
// rejects NaN and -Inf.
func validateMu(mu float64) error {
	if math.IsNaN(mu) || math.IsInf(mu, -1) {
		return invalidInput("surface brightness", mu, "a number or +Inf")
	}
	return nil
}

func validateTarget(snr float64) error {
	if !isFinite(snr) || snr <= 0 {
		return invalidInput("target SNR", snr, "finite and > 0")
	}
	return nil
}
