package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/skylimit/internal/radiometry"
)

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Print the reference g and r signal-to-noise ratios",
		Long: `Print the signal-to-noise ratio of a 3 mag/arcsec² source in g and a
30 mag/arcsec² source in r, both for 150000 s in 600 s subs.

These are the regression values the radiometry is checked against.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(rootOpts, cmd)
		},
	}
	return cmd
}

func runDemo(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	prof, err := opts.loadProfile()
	if err != nil {
		return report(f, "failed to load profile", err)
	}

	g, err := prof.SNR(3.0, "g", 150000)
	if err != nil {
		return report(f, "demo failed", err)
	}
	r, err := prof.SNR(30.0, "r", 150000)
	if err != nil {
		return report(f, "demo failed", err)
	}

	return f.Success(demoView{G: g, R: r})
}

type demoView struct {
	G radiometry.SNRResult `json:"g"`
	R radiometry.SNRResult `json:"r"`
}

func (v demoView) String() string {
	return fmt.Sprintf("g'-band S/N = %.4f\nr'-band S/N = %.4f", v.G.SNR, v.R.SNR)
}
