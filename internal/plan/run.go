package plan

import (
	"context"
	"fmt"

	"github.com/roach88/skylimit/internal/radiometry"
)

// Run executes every step of the plan against prof. Step failures are
// recorded in the outcome and do not stop the run; only context
// cancellation aborts it.
func Run(ctx context.Context, p *Plan, prof *radiometry.Profile) (*Result, error) {
	result := &Result{
		Name:     p.Name,
		Pass:     true,
		Outcomes: make([]Outcome, 0, len(p.Steps)),
	}

	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		out := runStep(prof, p.Defaults, step)
		out.Index = i + 1
		check(&out, step.Expect)
		if !out.Pass {
			result.Pass = false
		}
		result.Outcomes = append(result.Outcomes, out)
	}
	return result, nil
}

func runStep(prof *radiometry.Profile, defaults Settings, step Step) Outcome {
	switch {
	case step.SNR != nil:
		s := step.SNR
		settings := merge(defaults, s.Settings)
		out := newOutcome(KindSNR, s.Band, settings, map[string]float64{
			"mu":       s.Mu,
			"exp_time": s.ExpTime,
		})
		res, err := prof.SNR(s.Mu, s.Band, s.ExpTime, settings.options()...)
		if err != nil {
			return withError(out, err)
		}
		out.Value = res.SNR
		out.TotalTime = res.Plan.TotalTime
		out.NumberSubs = res.Plan.NumberSubs
		out.Adjusted = res.Plan.Adjusted
		return out

	case step.ExpTime != nil:
		s := step.ExpTime
		settings := merge(defaults, s.Settings)
		out := newOutcome(KindExpTime, s.Band, settings, map[string]float64{
			"mu":  s.Mu,
			"snr": s.SNR,
		})
		delete(out.Inputs, "round_up")
		res, err := prof.ExposureTime(s.Mu, s.Band, s.SNR, settings.options()...)
		if err != nil {
			return withError(out, err)
		}
		out.Value = res.TotalTime
		out.TotalTime = res.TotalTime
		out.NumberSubs = res.NumberSubs
		out.AddedSubs = res.AddedSubs
		return out

	case step.Limit != nil:
		s := step.Limit
		settings := merge(defaults, s.Settings)
		out := newOutcome(KindLimit, s.Band, settings, map[string]float64{
			"exp_time": s.ExpTime,
			"snr":      s.SNR,
		})
		res, err := prof.Limit(s.Band, s.ExpTime, s.SNR, settings.options()...)
		if err != nil {
			return withError(out, err)
		}
		out.Value = res.Mu
		out.TotalTime = res.Plan.TotalTime
		out.NumberSubs = res.Plan.NumberSubs
		out.Adjusted = res.Plan.Adjusted
		return out
	}

	return Outcome{Failure: "step has no calculation"}
}

func newOutcome(kind, band string, s Settings, inputs map[string]float64) Outcome {
	o := radiometry.NewOptions(s.options()...)
	inputs["sub_exp_time"] = o.SubExposure
	inputs["binning"] = float64(o.Binning)
	inputs["n"] = float64(o.Apertures)
	inputs["round_up"] = 0
	if o.RoundUp {
		inputs["round_up"] = 1
	}
	return Outcome{Kind: kind, Band: band, Inputs: inputs}
}

func withError(o Outcome, err error) Outcome {
	o.ErrorCode = string(radiometry.CodeOf(err))
	o.Error = err.Error()
	return o
}

// check sets Pass and Failure from the expectation.
func check(o *Outcome, e *Expect) {
	o.Pass = false
	switch {
	case e != nil && e.Error != "":
		if o.ErrorCode != e.Error {
			o.Failure = fmt.Sprintf("expected error %s, got %s", e.Error, describe(o))
			return
		}
	case o.ErrorCode != "" || o.Error != "":
		o.Failure = fmt.Sprintf("unexpected error: %s", o.Error)
		return
	case e != nil && e.Min != nil && o.Value < *e.Min:
		o.Failure = fmt.Sprintf("value %g below min %g", o.Value, *e.Min)
		return
	case e != nil && e.Max != nil && o.Value > *e.Max:
		o.Failure = fmt.Sprintf("value %g above max %g", o.Value, *e.Max)
		return
	case o.Failure != "":
		return
	}
	o.Pass = true
}

func describe(o *Outcome) string {
	if o.ErrorCode != "" {
		return o.ErrorCode
	}
	return fmt.Sprintf("success (value %g)", o.Value)
}

// merge overlays step settings on plan defaults.
func merge(defaults, step Settings) Settings {
	out := defaults
	if step.SubExpTime != nil {
		out.SubExpTime = step.SubExpTime
	}
	if step.Binning != nil {
		out.Binning = step.Binning
	}
	if step.N != nil {
		out.N = step.N
	}
	if step.RoundUp != nil {
		out.RoundUp = step.RoundUp
	}
	return out
}

func (s Settings) options() []radiometry.Option {
	var opts []radiometry.Option
	if s.SubExpTime != nil {
		opts = append(opts, radiometry.WithSubExposure(*s.SubExpTime))
	}
	if s.Binning != nil {
		opts = append(opts, radiometry.WithBinning(*s.Binning))
	}
	if s.N != nil {
		opts = append(opts, radiometry.WithApertures(*s.N))
	}
	if s.RoundUp != nil {
		opts = append(opts, radiometry.WithRoundUp(*s.RoundUp))
	}
	return opts
}
