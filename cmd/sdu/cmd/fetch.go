package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corporativo/sdu/internal/store"
)

// NewFetchCommand creates the fetch command.
func NewFetchCommand(app Application) *cobra.Command {
	c := &cobra.Command{
		Use:   "fetch <role> <share-link>",
		Short: "Download a source export into the file cache",
		Long: `Fetch resolves a cloud share link, downloads the workbook, and caches
it under the given role so later process runs and the server can use it
without re-downloading.

Valid roles: ubicacion, correo, telefono, relacion.`,
		Example: `  sdu fetch ubicacion https://empresa.sharepoint.com/:x:/s/abc
  sdu fetch correo https://onedrive.live.com/xyz`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runFetch(c, args, app)
		},
	}
	return c
}

func runFetch(c *cobra.Command, args []string, app Application) error {
	role, err := store.ParseRole(args[0])
	if err != nil {
		return err
	}

	data, err := app.Fetcher().FetchWorkbook(c.Context(), args[1])
	if err != nil {
		return err
	}

	st, err := app.Store()
	if err != nil {
		return err
	}
	if err := st.Save(role, string(role)+".xlsx", data); err != nil {
		return err
	}

	fmt.Printf("Cached %d bytes for %s in %s\n", len(data), role, st.Dir())
	return nil
}
