package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/skylimit/internal/radiometry"
	"github.com/roach88/skylimit/internal/store"
)

// SNROptions holds flags for the snr command.
type SNROptions struct {
	*RootOptions
	exposureFlags

	Mu      float64
	Band    string
	ExpTime float64
}

// NewSNRCommand creates the snr command.
func NewSNRCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SNROptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "snr",
		Short: "Signal-to-noise ratio of a surface brightness in a given exposure",
		Long: `Compute the signal-to-noise ratio per binned pixel reached by a source of
the given surface brightness (AB mag/arcsec²) in a total exposure time.

The total time is split into sub-exposures of --sub seconds; each one adds
a read of the detector. Unless --round-up=false, a total that is not a
whole number of subs is rounded up and the adjustment is logged.

Example:
  skylimit snr --mu 28 --band g --exp-time 36000
  skylimit snr --mu 25 --band g --exp-time 100 --sub 30 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSNR(opts, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Mu, "mu", 0, "surface brightness in AB mag/arcsec² (required)")
	cmd.Flags().StringVar(&opts.Band, "band", "", "band name (required)")
	cmd.Flags().Float64Var(&opts.ExpTime, "exp-time", 0, "total exposure time in seconds (required)")
	opts.register(cmd)

	return cmd
}

func runSNR(opts *SNROptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	if err := requireFlags(cmd, "mu", "band", "exp-time"); err != nil {
		return reportCode(f, ErrCodeUsage, ExitCommandError, "invalid arguments", err)
	}

	prof, err := opts.loadProfile()
	if err != nil {
		return report(f, "failed to load profile", err)
	}

	res, calcErr := prof.SNR(opts.Mu, opts.Band, opts.ExpTime, opts.options(opts.Logger())...)

	calc := store.Calculation{
		Kind: "snr",
		Band: opts.Band,
		Inputs: opts.inputs(map[string]float64{
			"mu":       opts.Mu,
			"exp_time": opts.ExpTime,
		}),
		ErrorCode: string(radiometry.CodeOf(calcErr)),
	}
	if calcErr == nil {
		calc.Outputs = map[string]float64{
			"snr":         res.SNR,
			"total_time":  res.Plan.TotalTime,
			"number_subs": float64(res.Plan.NumberSubs),
		}
	}
	id, err := opts.record(cmd, calc)
	if err != nil {
		return reportCode(f, ErrCodeDatabase, ExitCommandError, "failed to record calculation", err)
	}

	if calcErr != nil {
		return report(f, "snr failed", calcErr)
	}
	return f.SuccessWithID(snrView(res), id)
}

// snrView is the text rendering of an SNR result. JSON output uses the
// field tags of radiometry.SNRResult, with mu = +Inf written as "+Inf".
type snrView radiometry.SNRResult

func (v snrView) MarshalJSON() ([]byte, error) {
	type plain radiometry.SNRResult
	return json.Marshal(struct {
		plain
		Mu any `json:"mu"`
	}{plain(v), store.JSONNumber(v.Mu)})
}

func (v snrView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "S/N = %.6g per binned pixel (band %s, mu %g mag/arcsec²)\n", v.SNR, v.Band, v.Mu)
	fmt.Fprintf(&b, "exposure: %s\n", planText(v.Plan))
	fmt.Fprintf(&b, "noise [e/pixel]: signal %.6g, sky %.6g, dark %.6g, read %.6g, total %.6g",
		v.Budget.Signal, v.Budget.Sky, v.Budget.Dark, v.Budget.ReadNoise, v.Budget.Total)
	return b.String()
}

func planText(p radiometry.Plan) string {
	s := fmt.Sprintf("%g s in %d x %g s subs", p.TotalTime, p.NumberSubs, p.SubExposure)
	if p.Adjusted {
		s += fmt.Sprintf(" (rounded up from %g s)", p.RequestedTime)
	}
	return s
}
