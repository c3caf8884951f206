package plan

import "github.com/roach88/skylimit/internal/store"

// Calculation kinds.
const (
	KindSNR     = "snr"
	KindExpTime = "exptime"
	KindLimit   = "limit"
)

// Plan is a named batch of calculations.
type Plan struct {
	// Name uniquely identifies this plan; also the golden file name.
	Name string `yaml:"name"`

	// Description explains what the plan evaluates.
	Description string `yaml:"description,omitempty"`

	// Profile is an optional path to a CUE instrument profile.
	// Relative paths are resolved against the plan file's directory.
	Profile string `yaml:"profile,omitempty"`

	// Defaults apply to every step unless the step overrides them.
	Defaults Settings `yaml:"defaults,omitempty"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`
}

// Settings are the optional exposure parameters. Nil means "inherit".
type Settings struct {
	SubExpTime *float64 `yaml:"sub_exp_time,omitempty"`
	Binning    *int     `yaml:"binning,omitempty"`
	N          *int     `yaml:"n,omitempty"`
	RoundUp    *bool    `yaml:"round_up,omitempty"`
}

// Step holds exactly one of SNR, ExpTime or Limit.
type Step struct {
	SNR     *SNRStep     `yaml:"snr,omitempty"`
	ExpTime *ExpTimeStep `yaml:"exptime,omitempty"`
	Limit   *LimitStep   `yaml:"limit,omitempty"`

	// Expect is optional; see package documentation.
	Expect *Expect `yaml:"expect,omitempty"`
}

// SNRStep computes the SNR of a source.
type SNRStep struct {
	Mu       float64 `yaml:"mu"`
	Band     string  `yaml:"band"`
	ExpTime  float64 `yaml:"exp_time"`
	Settings `yaml:",inline"`
}

// ExpTimeStep estimates the exposure time for a target SNR.
type ExpTimeStep struct {
	Mu       float64 `yaml:"mu"`
	Band     string  `yaml:"band"`
	SNR      float64 `yaml:"snr"`
	Settings `yaml:",inline"`
}

// LimitStep computes the limiting surface brightness.
type LimitStep struct {
	Band     string  `yaml:"band"`
	ExpTime  float64 `yaml:"exp_time"`
	SNR      float64 `yaml:"snr"`
	Settings `yaml:",inline"`
}

// Expect constrains the outcome of a step.
type Expect struct {
	// Error is the radiometry error code the step must fail with.
	Error string `yaml:"error,omitempty"`

	// Min and Max bound the primary value, inclusive.
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`
}

// Kind returns the calculation kind of the step, or "" if none is set.
func (s Step) Kind() string {
	switch {
	case s.SNR != nil:
		return KindSNR
	case s.ExpTime != nil:
		return KindExpTime
	case s.Limit != nil:
		return KindLimit
	}
	return ""
}

func (s Step) count() int {
	n := 0
	if s.SNR != nil {
		n++
	}
	if s.ExpTime != nil {
		n++
	}
	if s.Limit != nil {
		n++
	}
	return n
}

// Outcome is the result of one step.
type Outcome struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Band  string `json:"band"`

	// Inputs are the step's numeric inputs after defaults were applied.
	Inputs store.Numbers `json:"inputs"`

	// Value is the primary output: SNR, total exposure time in seconds, or
	// limiting surface brightness in AB mag/arcsec².
	Value float64 `json:"value"`

	TotalTime  float64 `json:"total_time,omitempty"`
	NumberSubs int     `json:"number_subs,omitempty"`
	Adjusted   bool    `json:"adjusted,omitempty"`
	AddedSubs  int     `json:"added_subs,omitempty"`

	ErrorCode string `json:"error_code,omitempty"`
	Error     string `json:"error,omitempty"`

	Pass    bool   `json:"pass"`
	Failure string `json:"failure,omitempty"`
}

// Result is the outcome of a plan run.
type Result struct {
	Name     string    `json:"name"`
	Pass     bool      `json:"pass"`
	Outcomes []Outcome `json:"outcomes"`
}

// Failed returns the outcomes that did not pass.
func (r *Result) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Pass {
			out = append(out, o)
		}
	}
	return out
}
