package plan

import (
	"fmt"
	"sort"
	"strings"
)

// Render formats a Result as stable, line-oriented text. Values are rounded
// to six significant digits so the output does not depend on the last bits
// of floating-point evaluation.
func Render(r *Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "plan: %s\n", r.Name)
	for _, o := range r.Outcomes {
		fmt.Fprintf(&sb, "#%d %s %s %s -> %s", o.Index, o.Kind, o.Band, renderInputs(o.Inputs), renderOutput(o))
		if !o.Pass {
			fmt.Fprintf(&sb, " FAIL: %s", o.Failure)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "pass: %t\n", r.Pass)
	return sb.String()
}

func renderInputs(in map[string]float64) string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%.6g", k, in[k])
	}
	return strings.Join(parts, " ")
}

func renderOutput(o Outcome) string {
	if o.ErrorCode != "" {
		return "error " + o.ErrorCode
	}
	if o.Error != "" {
		return "error " + o.Error
	}

	switch o.Kind {
	case KindSNR:
		s := fmt.Sprintf("snr=%.6g subs=%d total=%.6g", o.Value, o.NumberSubs, o.TotalTime)
		if o.Adjusted {
			s += " adjusted"
		}
		return s
	case KindExpTime:
		return fmt.Sprintf("total=%.6g subs=%d added=%d", o.Value, o.NumberSubs, o.AddedSubs)
	case KindLimit:
		s := fmt.Sprintf("mu=%.6g subs=%d total=%.6g", o.Value, o.NumberSubs, o.TotalTime)
		if o.Adjusted {
			s += " adjusted"
		}
		return s
	}
	return fmt.Sprintf("value=%.6g", o.Value)
}
