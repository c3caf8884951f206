// Package profile loads instrument profiles written in CUE.
//
// A profile names the detector constants and the band table used by the
// radiometry package:
//
//	instrument: {
//	    name:         "SBIG STD-8300M"
//	    dark_current: 0.04 // e/pixel/s
//	    read_noise:   10.0 // e/pixel/read
//	}
//	bands: {
//	    g: {sky_mu: 22.0, gamma0: 1.79e9, efficiency: 0.34}
//	    r: {sky_mu: 21.0, gamma0: 1.16e9, efficiency: 0.35}
//	}
//
// Files are unified with the embedded #Profile schema, so unknown fields,
// out-of-range constants and non-concrete values are rejected with the CUE
// position of the offending field.
package profile
