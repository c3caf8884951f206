package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/skylimit/internal/store"
)

// record appends a calculation to the --db log and returns its id.
// Without --db it does nothing and returns an empty id.
func (o *RootOptions) record(cmd *cobra.Command, c store.Calculation) (string, error) {
	if o.Database == "" {
		return "", nil
	}

	st, err := store.Open(o.Database)
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			o.Logger().Error("error closing database", "error", closeErr)
		}
	}()

	c.ID = o.idGenerator().Generate()
	c.Profile = o.Profile
	c.CreatedAt = o.now()
	seq, err := st.WriteCalculation(cmd.Context(), c)
	if err != nil {
		return "", err
	}
	o.Logger().Debug("calculation recorded", "id", c.ID, "seq", seq, "kind", c.Kind)
	return c.ID, nil
}

// requireFlags fails unless every named flag was set on the command line,
// in the environment or in the config file.
func requireFlags(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			return fmt.Errorf("required flag --%s not set", name)
		}
	}
	return nil
}
