package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/skylimit/internal/profile"
	"github.com/roach88/skylimit/internal/radiometry"
)

// BandsOptions holds flags for the bands command.
type BandsOptions struct {
	*RootOptions
	Export bool
}

// NewBandsCommand creates the bands command.
func NewBandsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BandsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bands",
		Short: "List the bands of the active instrument profile",
		Long: `List the instrument and bands of the active profile: the built-in g/r
profile, or the CUE file given with --profile.

With --export the profile is printed as CUE, ready to be edited and passed
back with --profile.

Example:
  skylimit bands
  skylimit bands --export > my-camera.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBands(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Export, "export", false, "print the profile as CUE")

	return cmd
}

func runBands(opts *BandsOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	prof, err := opts.loadProfile()
	if err != nil {
		return report(f, "failed to load profile", err)
	}

	if opts.Export {
		src, err := profile.Format(prof)
		if err != nil {
			return reportCode(f, ErrCodeUsage, ExitFailure, "failed to export profile", err)
		}
		_, err = cmd.OutOrStdout().Write(src)
		return err
	}

	return f.Success(bandsView{
		Instrument: prof.Instrument(),
		Bands:      prof.Bands(),
	})
}

// bandsView lists a profile for output.
type bandsView struct {
	Instrument radiometry.Instrument `json:"instrument"`
	Bands      []radiometry.Band     `json:"bands"`
}

func (v bandsView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "instrument: %s (dark %g e/pixel/s, read noise %g e/pixel)\n",
		v.Instrument.Name, v.Instrument.DarkCurrent, v.Instrument.ReadNoise)

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BAND\tSKY MU\tGAMMA0\tEFFICIENCY")
	for _, band := range v.Bands {
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\n", band.Name, band.SkyMu, band.Gamma0, band.Efficiency)
	}
	_ = w.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}
