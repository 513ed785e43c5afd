package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <catalog.yaml>",
		Short: "Load a tuning catalog and report every violation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := tuning.Load(args[0])
			if err != nil {
				for _, ce := range configErrors(err) {
					fmt.Fprintln(cmd.ErrOrStderr(), Bad.Render("✗ ")+ce.Error())
				}
				return fmt.Errorf("%s is invalid", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, Good.Render("✓ ")+args[0])
			fmt.Fprintln(out, LabelValue("Workers", len(c.Workers())))
			fmt.Fprintln(out, LabelValue("Achievements", len(c.Achievements())))
			fmt.Fprintln(out, LabelValue("Target beers", c.Beer().TargetBeers))
			return nil
		},
	}
}

// configErrors flattens a wrapped or joined validation error into its
// ConfigurationErrors. Other errors are returned as is.
func configErrors(err error) []error {
	if ce, ok := err.(*tuning.ConfigurationError); ok {
		return []error{ce}
	}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		var out []error
		for _, inner := range u.Unwrap() {
			out = append(out, configErrors(inner)...)
		}
		return out
	case interface{ Unwrap() error }:
		if inner := u.Unwrap(); inner != nil {
			return configErrors(inner)
		}
	}
	return []error{err}
}
