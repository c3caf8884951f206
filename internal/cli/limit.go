package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/skylimit/internal/radiometry"
	"github.com/roach88/skylimit/internal/store"
)

// LimitOptions holds flags for the limit command.
type LimitOptions struct {
	*RootOptions
	exposureFlags

	Band    string
	ExpTime float64
	SNR     float64
}

// NewLimitCommand creates the limit command.
func NewLimitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LimitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "limit",
		Short: "Surface-brightness limit reached in a given exposure",
		Long: `Compute the faintest surface brightness (AB mag/arcsec²) that reaches the
target signal-to-noise ratio per binned pixel in the given total exposure.

Exits with status 1 when the target cannot be reached (no real solution or
a non-physical count rate).

Example:
  skylimit limit --band g --exp-time 36000 --snr 1
  skylimit limit --band r --exp-time 36000 --snr 3 --binning 4`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLimit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Band, "band", "", "band name (required)")
	cmd.Flags().Float64Var(&opts.ExpTime, "exp-time", 0, "total exposure time in seconds (required)")
	cmd.Flags().Float64Var(&opts.SNR, "snr", 0, "target S/N per binned pixel (required)")
	opts.register(cmd)

	return cmd
}

func runLimit(opts *LimitOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	if err := requireFlags(cmd, "band", "exp-time", "snr"); err != nil {
		return reportCode(f, ErrCodeUsage, ExitCommandError, "invalid arguments", err)
	}

	prof, err := opts.loadProfile()
	if err != nil {
		return report(f, "failed to load profile", err)
	}

	res, calcErr := prof.Limit(opts.Band, opts.ExpTime, opts.SNR, opts.options(opts.Logger())...)

	calc := store.Calculation{
		Kind: "limit",
		Band: opts.Band,
		Inputs: opts.inputs(map[string]float64{
			"exp_time": opts.ExpTime,
			"snr":      opts.SNR,
		}),
		ErrorCode: string(radiometry.CodeOf(calcErr)),
	}
	if calcErr == nil {
		calc.Outputs = map[string]float64{
			"mu":          res.Mu,
			"rate_sci":    res.RateSci,
			"total_time":  res.Plan.TotalTime,
			"number_subs": float64(res.Plan.NumberSubs),
		}
	}
	id, err := opts.record(cmd, calc)
	if err != nil {
		return reportCode(f, ErrCodeDatabase, ExitCommandError, "failed to record calculation", err)
	}

	if calcErr != nil {
		return report(f, "limit failed", calcErr)
	}
	return f.SuccessWithID(limitView(res), id)
}

// limitView is the text rendering of a surface-brightness limit.
type limitView radiometry.LimitResult

func (v limitView) String() string {
	return fmt.Sprintf("limit = %.6g mag/arcsec² at S/N %g (band %s)\nexposure: %s\nscience rate %.6g e/pixel/s",
		v.Mu, v.TargetSNR, v.Band, planText(v.Plan), v.RateSci)
}
