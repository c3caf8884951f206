// Package radiometry estimates signal-to-noise ratio, exposure time and
// surface-brightness limits for imaging of extended sources.
//
// All three operations share one noise model. For a surface brightness mu in
// AB mag/arcsec², the count rate in electrons per pixel per second is
//
//	rate = gamma0 * N * efficiency * 10^(-0.4 * mu)
//
// where gamma0 and efficiency are per-band constants and N is the number of
// co-added apertures. The sky uses the same conversion with the band's fixed
// sky brightness. For an effective total exposure time t split into
// number_subs sub-exposures:
//
//	signal = rate_sci * t
//	noise  = sqrt(signal + rate_sky*t + dark_current*t + number_subs*read_noise²)
//	SNR    = binning * signal / noise
//
// # Operations
//
//   - SNR: forward computation for a given brightness and exposure.
//   - ExposureTime: closed-form estimate of the total time for a target SNR,
//     followed by a correction loop that adds whole sub-exposures until the
//     target is met.
//   - Limit: the faintest surface brightness reaching a target SNR, from the
//     positive root of the noise-model quadratic.
//
// # Sub-exposure accounting
//
// number_subs is ceil(total / sub). With round-up enabled (the default) a
// total that is not a whole multiple of the sub-exposure time is replaced by
// number_subs * sub. The adjustment is reported on the returned Plan and to
// an optional Notifier; the package itself never writes output.
//
// # Concurrency
//
// Every function is pure. A Profile is immutable after construction and may
// be shared freely between goroutines.
package radiometry
