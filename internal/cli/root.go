package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roach88/skylimit/internal/profile"
	"github.com/roach88/skylimit/internal/radiometry"
	"github.com/roach88/skylimit/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string
	Profile    string // CUE instrument profile; empty means the built-in profile
	Database   string // SQLite calculation log; empty disables recording

	// IDGen allows overriding calculation ids (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGen store.IDGenerator

	// Now allows overriding calculation timestamps (for testing).
	// If nil, defaults to time.Now.
	Now func() time.Time

	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// envPrefix is prepended to flag names when reading the environment,
// e.g. SKYLIMIT_SUB=300 or SKYLIMIT_PROFILE=qhy.cue.
const envPrefix = "SKYLIMIT"

// NewRootCommand creates the root command for the skylimit CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skylimit",
		Short: "Surface-brightness radiometry for low surface brightness imaging",
		Long: `skylimit computes signal-to-noise ratios, required exposure times and
surface-brightness limits for extended sources observed against the sky
background with a CCD or CMOS camera.

Instrument and band parameters come from a CUE profile (--profile) or the
built-in g/r profile. Flag defaults can be set in $HOME/.skylimit.yaml or
through SKYLIMIT_* environment variables; explicit flags always win.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd, opts.ConfigFile); err != nil {
				return WrapExitError(ExitCommandError, "failed to read config", err)
			}
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			opts.logger = newLogger(cmd, opts.Verbose)
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default $HOME/.skylimit.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Profile, "profile", "", "instrument profile (.cue)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "SQLite calculation log")

	// Add subcommands
	cmd.AddCommand(NewSNRCommand(opts))
	cmd.AddCommand(NewExpTimeCommand(opts))
	cmd.AddCommand(NewLimitCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewBandsCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewDemoCommand(opts))

	return cmd
}

// applyConfig fills every flag the user did not set from, in order, the
// environment and the config file. A missing default config file is not an
// error; a missing --config file is.
func applyConfig(cmd *cobra.Command, configFile string) error {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".skylimit")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return err
		}
	}

	var firstErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if firstErr != nil || f.Changed || f.Name == "config" || f.Name == "help" {
			return
		}
		if !v.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, v.GetString(f.Name)); err != nil {
			firstErr = fmt.Errorf("invalid value for %s: %w", f.Name, err)
		}
	})
	return firstErr
}

// newLogger builds the diagnostic logger. It writes to stderr so JSON on
// stdout stays parseable.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Logger returns the command logger, or a discarding logger before
// PersistentPreRunE has run.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.logger
}

// formatter builds the OutputFormatter for a command.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// loadProfile returns the profile named by --profile, or the built-in one.
func (o *RootOptions) loadProfile() (*radiometry.Profile, error) {
	if o.Profile == "" {
		return radiometry.DefaultProfile(), nil
	}
	p, err := profile.Load(o.Profile)
	if err != nil {
		return nil, err
	}
	o.Logger().Debug("profile loaded", "path", o.Profile, "bands", p.BandNames())
	return p, nil
}

func (o *RootOptions) idGenerator() store.IDGenerator {
	if o.IDGen == nil {
		return store.UUIDv7Generator{}
	}
	return o.IDGen
}

func (o *RootOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}
