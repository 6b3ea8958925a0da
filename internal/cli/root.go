// Package cli implements the supplyqctl operator command line. Commands
// read the same SUPPLYQ_* environment as the API service and talk to the
// store directly rather than through the HTTP surface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/supplyq/supplyq/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "supplyqctl",
		Short: "SupplyQ - natural language queries over supply chain orders",
		Long: `supplyqctl manages the SupplyQ dataset and runs ad-hoc questions
against it from the terminal.

The query pipeline translates a supply chain question into a single
read-only SQL statement, executes it against the configured store and
renders one page of results.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.AddCommand(newAskCommand())
	rootCmd.AddCommand(newIngestCommand())
	rootCmd.AddCommand(newSchemaCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func loadConfig() (config.Config, error) {
	cfg, err := config.LoadFromEnv("supplyqctl")
	if err != nil {
		return config.Config{}, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}
