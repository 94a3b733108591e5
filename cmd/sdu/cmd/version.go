package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(app Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("sdu %s\n", app.Version())
			fmt.Printf("  commit: %s\n", app.Commit())
			fmt.Printf("  built:  %s\n", app.Date())
		},
	}
}
