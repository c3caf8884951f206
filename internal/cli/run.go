package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/skylimit/internal/plan"
	"github.com/roach88/skylimit/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	GoldenDir string
	Update    bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <plan.yaml>",
		Short: "Run an observation plan",
		Long: `Run every step of a YAML observation plan and report the outcomes.

A failing step (an error that was not expected, or a value outside the
step's expected range) does not stop the plan, but the command exits with
status 1.

With --golden, the rendered outcomes are compared with <dir>/<plan>.golden;
--update rewrites that file instead.

Example:
  skylimit run plans/deep_field.yaml
  skylimit run plans/deep_field.yaml --golden plans/golden --update`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.GoldenDir, "golden", "", "directory of golden files to compare against")
	cmd.Flags().BoolVar(&opts.Update, "update", false, "update golden files instead of comparing")

	return cmd
}

func runPlan(opts *RunOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.Logger()

	if opts.Update && opts.GoldenDir == "" {
		return reportCode(f, ErrCodeUsage, ExitCommandError, "invalid arguments",
			fmt.Errorf("--update requires --golden"))
	}

	p, err := plan.Load(path)
	if err != nil {
		return reportCode(f, ErrCodePlan, ExitCommandError, "failed to load plan", err)
	}

	fallback, err := opts.loadProfile()
	if err != nil {
		return report(f, "failed to load profile", err)
	}
	prof, err := p.LoadProfile(fallback)
	if err != nil {
		return report(f, "failed to load plan profile", err)
	}

	logger.Debug("running plan", "name", p.Name, "steps", len(p.Steps))
	result, err := plan.Run(cmd.Context(), p, prof)
	if err != nil {
		return reportCode(f, ErrCodePlan, ExitFailure, "plan interrupted", err)
	}

	for _, o := range result.Outcomes {
		if o.Adjusted {
			logger.Info("rounding up total exposure time to next integer multiple of sub-exposure time",
				"step", o.Index, "total", o.TotalTime, "subs", o.NumberSubs)
		}
		if err := opts.recordOutcome(cmd, p, o); err != nil {
			return reportCode(f, ErrCodeDatabase, ExitCommandError, "failed to record calculation", err)
		}
	}

	rendered := plan.Render(result)
	if opts.GoldenDir != "" {
		goldenPath := filepath.Join(opts.GoldenDir, p.Name+".golden")
		if opts.Update {
			if err := updateGoldenFile(goldenPath, rendered); err != nil {
				return reportCode(f, ErrCodeGolden, ExitCommandError, "failed to update golden file", err)
			}
			f.VerboseLog("updated golden file %s", goldenPath)
		} else if err := compareWithGolden(goldenPath, rendered); err != nil {
			return reportCode(f, ErrCodeGolden, ExitFailure, "golden file mismatch", err)
		}
	}

	if !result.Pass {
		if err := f.Success(runView(*result)); err != nil {
			return err
		}
		failed := result.Failed()
		return &ExitError{
			Code:     ExitFailure,
			Message:  fmt.Sprintf("plan %s: %d of %d steps failed", p.Name, len(failed), len(result.Outcomes)),
			Reported: f.Format == "json",
		}
	}
	return f.Success(runView(*result))
}

// recordOutcome logs one plan step to --db.
func (opts *RunOptions) recordOutcome(cmd *cobra.Command, p *plan.Plan, o plan.Outcome) error {
	calc := store.Calculation{
		Kind:      o.Kind,
		Band:      o.Band,
		Inputs:    o.Inputs,
		ErrorCode: o.ErrorCode,
	}
	if o.ErrorCode == "" {
		calc.Outputs = map[string]float64{
			"value":       o.Value,
			"total_time":  o.TotalTime,
			"number_subs": float64(o.NumberSubs),
		}
	}
	_, err := opts.record(cmd, calc)
	if err != nil {
		return fmt.Errorf("plan %s step %d: %w", p.Name, o.Index, err)
	}
	return nil
}

// runView is the text rendering of a plan result.
type runView plan.Result

func (v runView) String() string {
	r := plan.Result(v)
	return strings.TrimSuffix(plan.Render(&r), "\n")
}

// updateGoldenFile writes the rendered output to a golden file.
func updateGoldenFile(path, rendered string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// compareWithGolden compares the rendered output against a golden file.
func compareWithGolden(path, rendered string) error {
	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("golden file not found: %s (use --update to create)", path)
		}
		return fmt.Errorf("failed to read golden file: %w", err)
	}
	if !bytes.Equal(expected, []byte(rendered)) {
		return fmt.Errorf("output differs from %s", path)
	}
	return nil
}
