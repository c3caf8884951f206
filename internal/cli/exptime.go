package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/skylimit/internal/radiometry"
	"github.com/roach88/skylimit/internal/store"
)

// ExpTimeOptions holds flags for the exptime command.
type ExpTimeOptions struct {
	*RootOptions
	exposureFlags

	Mu   float64
	Band string
	SNR  float64
}

// NewExpTimeCommand creates the exptime command.
func NewExpTimeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExpTimeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exptime",
		Short: "Exposure time needed to reach a target signal-to-noise ratio",
		Long: `Estimate the total exposure time needed to reach a target signal-to-noise
ratio per binned pixel for a source of the given surface brightness.

The closed-form estimate ignores the discreteness of detector reads, so it
is rounded up to whole sub-exposures and then extended one sub at a time
until the target is met. --round-up has no effect on this command.

Example:
  skylimit exptime --mu 28 --band g --snr 5
  skylimit exptime --mu 27 --band g --snr 10 --sub 300 --binning 2`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpTime(opts, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Mu, "mu", 0, "surface brightness in AB mag/arcsec² (required)")
	cmd.Flags().StringVar(&opts.Band, "band", "", "band name (required)")
	cmd.Flags().Float64Var(&opts.SNR, "snr", 0, "target S/N per binned pixel (required)")
	opts.register(cmd)

	return cmd
}

func runExpTime(opts *ExpTimeOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	if err := requireFlags(cmd, "mu", "band", "snr"); err != nil {
		return reportCode(f, ErrCodeUsage, ExitCommandError, "invalid arguments", err)
	}

	prof, err := opts.loadProfile()
	if err != nil {
		return report(f, "failed to load profile", err)
	}

	res, calcErr := prof.ExposureTime(opts.Mu, opts.Band, opts.SNR, opts.options(opts.Logger())...)

	inputs := opts.inputs(map[string]float64{
		"mu":  opts.Mu,
		"snr": opts.SNR,
	})
	delete(inputs, "round_up")
	calc := store.Calculation{
		Kind:      "exptime",
		Band:      opts.Band,
		Inputs:    inputs,
		ErrorCode: string(radiometry.CodeOf(calcErr)),
	}
	if calcErr == nil {
		calc.Outputs = map[string]float64{
			"total_time":   res.TotalTime,
			"number_subs":  float64(res.NumberSubs),
			"estimate":     res.Estimate,
			"added_subs":   float64(res.AddedSubs),
			"achieved_snr": res.AchievedSNR,
		}
		if res.AddedSubs > 0 {
			opts.Logger().Info("added sub-exposures to overcome read noise", "added", res.AddedSubs)
		}
	}
	id, err := opts.record(cmd, calc)
	if err != nil {
		return reportCode(f, ErrCodeDatabase, ExitCommandError, "failed to record calculation", err)
	}

	if calcErr != nil {
		return report(f, "exptime failed", calcErr)
	}
	return f.SuccessWithID(expTimeView(res), id)
}

// expTimeView is the text rendering of an exposure-time result.
type expTimeView radiometry.ExposureResult

func (v expTimeView) String() string {
	return fmt.Sprintf("exposure time = %g s (%d x %g s subs) for S/N %g (band %s, mu %g mag/arcsec²)\n"+
		"estimate %.6g s, %d subs added, achieved S/N %.6g",
		v.TotalTime, v.NumberSubs, v.SubExposure, v.TargetSNR, v.Band, v.Mu,
		v.Estimate, v.AddedSubs, v.AchievedSNR)
}
