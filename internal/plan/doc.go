// Package plan runs batches of radiometry calculations described in YAML.
//
// # Plan Format
//
//	name: deep-field
//	description: "Depth budget for a 10 hour field"
//	profile: dragonfly.cue        # optional, relative to the plan file
//	defaults:
//	  sub_exp_time: 600
//	  binning: 1
//	  n: 1
//	  round_up: true
//	steps:
//	  - snr:     { mu: 28.0, band: g, exp_time: 36000 }
//	  - exptime: { mu: 29.0, band: r, snr: 3 }
//	  - limit:   { band: g, exp_time: 36000, snr: 1, binning: 4 }
//	    expect:  { min: 29.0 }
//	  - limit:   { band: g, exp_time: 0.001, snr: 1e100, sub_exp_time: 0.001 }
//	    expect:  { error: NO_REAL_SOLUTION }
//
// Each step holds exactly one calculation. Settings on a step override the
// plan defaults, which override the package defaults of radiometry.
//
// # Expectations
//
// A step without expect passes when the calculation succeeds. With expect,
// error names the radiometry error code the step must fail with, and min/max
// bound the primary value (SNR, total exposure time, or limiting surface
// brightness).
//
// # Golden Files
//
// Render produces a stable text rendering of a Result with values rounded to
// six significant digits. AssertGolden compares it against
// testdata/golden/{name}.golden; regenerate with
//
//	go test ./internal/plan -update
package plan
