package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/skylimit/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Kind  string
	Band  string
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show logged calculations",
		Long: `Show calculations recorded in the --db log, oldest first.

Example:
  skylimit history --db ./skylimit.db
  skylimit history --db ./skylimit.db --kind limit --band g --limit 5`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "", "only show this kind (snr|exptime|limit)")
	cmd.Flags().StringVar(&opts.Band, "band", "", "only show this band")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "show at most this many recent calculations (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	if opts.Database == "" {
		return reportCode(f, ErrCodeUsage, ExitCommandError, "invalid arguments",
			fmt.Errorf("--db is required"))
	}
	switch opts.Kind {
	case "", "snr", "exptime", "limit":
	default:
		return reportCode(f, ErrCodeUsage, ExitCommandError, "invalid arguments",
			fmt.Errorf("unknown kind %q: must be snr, exptime or limit", opts.Kind))
	}
	if opts.Limit < 0 {
		return reportCode(f, ErrCodeUsage, ExitCommandError, "invalid arguments",
			fmt.Errorf("--limit must be >= 0, got %d", opts.Limit))
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return reportCode(f, ErrCodeDatabase, ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			opts.Logger().Error("error closing database", "error", closeErr)
		}
	}()

	calcs, err := st.ReadCalculations(cmd.Context(), store.Filter{
		Kind:  opts.Kind,
		Band:  opts.Band,
		Limit: opts.Limit,
	})
	if err != nil {
		return reportCode(f, ErrCodeDatabase, ExitCommandError, "failed to read calculations", err)
	}
	opts.Logger().Debug("calculations read", "count", len(calcs))

	return f.Success(historyView(calcs))
}

// historyView is the text rendering of logged calculations.
type historyView []store.Calculation

func (v historyView) String() string {
	if len(v) == 0 {
		return "no calculations recorded"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tTIME\tKIND\tBAND\tINPUTS\tRESULT")
	for _, c := range v {
		result := numbers(c.Outputs)
		if c.ErrorCode != "" {
			result = "error " + c.ErrorCode
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.Seq, c.CreatedAt.Format(time.DateTime), c.Kind, c.Band, numbers(c.Inputs), result)
	}
	_ = w.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

// numbers formats a map as sorted k=v pairs.
func numbers(m map[string]float64) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%.6g", k, m[k])
	}
	return strings.Join(parts, " ")
}
