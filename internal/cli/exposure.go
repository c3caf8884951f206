package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/skylimit/internal/radiometry"
)

// exposureFlags are the exposure options shared by snr, exptime and limit.
type exposureFlags struct {
	Sub     float64
	Binning int
	N       int
	RoundUp bool
}

func (e *exposureFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&e.Sub, "sub", radiometry.DefaultSubExposure, "sub-exposure time in seconds")
	cmd.Flags().IntVar(&e.Binning, "binning", radiometry.DefaultBinning, "pixel binning factor")
	cmd.Flags().IntVar(&e.N, "n", radiometry.DefaultApertures, "number of apertures or cameras")
	cmd.Flags().BoolVar(&e.RoundUp, "round-up", radiometry.DefaultRoundUp, "round total time up to whole sub-exposures")
}

// options converts the flags to radiometry options. Round-up adjustments are
// logged at info level.
func (e *exposureFlags) options(logger *slog.Logger) []radiometry.Option {
	return []radiometry.Option{
		radiometry.WithSubExposure(e.Sub),
		radiometry.WithBinning(e.Binning),
		radiometry.WithApertures(e.N),
		radiometry.WithRoundUp(e.RoundUp),
		radiometry.WithNotifier(func(p radiometry.Plan) {
			logger.Info("rounding up total exposure time to next integer multiple of sub-exposure time",
				"requested", p.RequestedTime,
				"total", p.TotalTime,
				"subs", p.NumberSubs,
			)
		}),
	}
}

// inputs records the flags alongside a command's own inputs.
func (e *exposureFlags) inputs(in map[string]float64) map[string]float64 {
	in["sub_exp_time"] = e.Sub
	in["binning"] = float64(e.Binning)
	in["n"] = float64(e.N)
	in["round_up"] = boolFloat(e.RoundUp)
	return in
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
