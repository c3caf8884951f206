package radiometry

import (
	"fmt"
	"math"
)

// subCountTolerance is the relative distance from a whole number below which
// total/sub is treated as exact. It absorbs float noise such as
// 0.3/0.1 = 2.9999999999999996.
const subCountTolerance = 1e-9

// Plan describes how a total exposure is split into sub-exposures.
type Plan struct {
	// RequestedTime is the total exposure time the caller asked for, in seconds.
	RequestedTime float64 `json:"requested_time"`

	// TotalTime is the effective total exposure time used, in seconds.
	TotalTime float64 `json:"total_time"`

	// SubExposure is the length of one sub-exposure, in seconds.
	SubExposure float64 `json:"sub_exposure"`

	// NumberSubs is ceil(RequestedTime / SubExposure).
	NumberSubs int `json:"number_subs"`

	// Adjusted is true when TotalTime was rounded up from RequestedTime.
	Adjusted bool `json:"adjusted"`
}

// PlanExposure applies sub-exposure accounting to a requested total time.
// With roundUp set, a total that is not a whole multiple of sub is replaced
// by NumberSubs*sub and the plan is marked Adjusted.
func PlanExposure(total, sub float64, roundUp bool) (Plan, error) {
	if !isFinite(total) || total <= 0 {
		return Plan{}, invalidInput("total_exp_time", total, "finite and > 0")
	}
	if !isFinite(sub) || sub <= 0 {
		return Plan{}, invalidInput("sub_exp_time", sub, "finite and > 0")
	}
	if ratio := total / sub; !isFinite(ratio) || ratio > maxSubs {
		return Plan{}, invalidInput("sub_exp_time", sub,
			fmt.Sprintf("large enough for at most %d sub-exposures in %g s", int64(maxSubs), total))
	}

	n, exact := subCount(total, sub)
	plan := Plan{
		RequestedTime: total,
		TotalTime:     total,
		SubExposure:   sub,
		NumberSubs:    n,
	}
	if roundUp && !exact {
		plan.TotalTime = float64(n) * sub
		plan.Adjusted = true
	}
	return plan, nil
}

// subCount returns ceil(total/sub) and whether total is a whole multiple of
// sub within subCountTolerance. A ratio that underflows to zero still takes
// one sub-exposure.
func subCount(total, sub float64) (int, bool) {
	ratio := total / sub
	nearest := math.Round(ratio)
	if nearest >= 1 && math.Abs(ratio-nearest) <= subCountTolerance*nearest {
		return int(nearest), true
	}
	return max(int(math.Ceil(ratio)), 1), false
}

func (o Options) plan(total float64) (Plan, error) {
	plan, err := PlanExposure(total, o.SubExposure, o.RoundUp)
	if err != nil {
		return Plan{}, err
	}
	if plan.Adjusted && o.Notify != nil {
		o.Notify(plan)
	}
	return plan, nil
}
