package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

const Version = "0.1.0"

var catalogPath string

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "valoutool",
		Short:         "Valouniversaire tuning toolbox",
		Long:          "valoutool prints price tables, simulates full runs and validates tuning catalogs.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "tuning catalog YAML (default: embedded catalog)")

	cmd.AddCommand(
		newPricesCmd(),
		newSimulateCmd(),
		newValidateCmd(),
	)
	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, Bad.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func loadCatalog() (*tuning.Catalog, error) {
	if catalogPath == "" {
		return tuning.Default()
	}
	return tuning.Load(catalogPath)
}
