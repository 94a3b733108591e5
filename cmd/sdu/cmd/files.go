package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/corporativo/sdu/internal/store"
)

// NewFilesCommand creates the files command group.
func NewFilesCommand(app Application) *cobra.Command {
	c := &cobra.Command{
		Use:   "files",
		Short: "Inspect and manage the source file cache",
	}
	c.AddCommand(newFilesListCommand(app))
	c.AddCommand(newFilesClearCommand(app))
	return c
}

func newFilesListCommand(app Application) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached source files",
		RunE: func(_ *cobra.Command, _ []string) error {
			st, err := app.Store()
			if err != nil {
				return err
			}
			manifest, err := st.List()
			if err != nil {
				return err
			}
			if len(manifest) == 0 {
				fmt.Println("No cached files")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ROLE\tFILENAME\tSIZE\tUPLOADED")
			for _, role := range store.Roles() {
				entry, ok := manifest[role]
				if !ok {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					role, entry.Filename, entry.Size, entry.UploadedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func newFilesClearCommand(app Application) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [role]",
		Short: "Clear the cache for one role, or everything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			st, err := app.Store()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				if err := st.ClearAll(); err != nil {
					return err
				}
				fmt.Println("Cleared all cached files")
				return nil
			}
			role, err := store.ParseRole(args[0])
			if err != nil {
				return err
			}
			if err := st.Clear(role); err != nil {
				return err
			}
			fmt.Printf("Cleared cache for %s\n", role)
			return nil
		},
	}
}
