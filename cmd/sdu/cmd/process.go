package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corporativo/sdu/internal/store"
	"github.com/corporativo/sdu/internal/tabular"
	"github.com/corporativo/sdu/pkg/errors"
	"github.com/corporativo/sdu/pkg/reconcile"
	"github.com/corporativo/sdu/pkg/tables"
)

// NewProcessCommand creates the process command.
func NewProcessCommand(app Application) *cobra.Command {
	c := &cobra.Command{
		Use:   "process",
		Short: "Run a reconciliation and export the result as CSV",
		Long: `Process merges the given source exports and writes the result as CSV.

Each source flag accepts a local file path or an https share link.
Sources omitted from the command line fall back to the file cache
populated by earlier runs or by the server.

Mode contactos enriches the roster with email and phone columns; mode
relacion flags which relation rows appear in the roster.`,
		Example: `  # Contact enrichment from local files
  sdu process --ubicacion roster.xlsx --correo mails.xlsx --telefono phones.xlsx -o result.csv

  # Roster presence check from a share link
  sdu process --mode relacion --ubicacion https://empresa.sharepoint.com/:x:/s/abc --relacion relacion.csv

  # Filter the output
  sdu process --ubicacion roster.xlsx --correo mails.xlsx --search "LOPEZ"`,
		RunE: func(c *cobra.Command, args []string) error {
			return runProcess(c, args, app)
		},
	}

	c.Flags().String("ubicacion", "", "Roster export (file path or share link)")
	c.Flags().String("correo", "", "Email export (file path or share link)")
	c.Flags().String("telefono", "", "Phone export (file path or share link)")
	c.Flags().String("relacion", "", "Relation export (file path or share link)")
	c.Flags().String("mode", string(reconcile.ModeContactos), "Reconciliation mode: contactos or relacion")
	c.Flags().String("search", "", "Filter output rows by a case-insensitive term")
	c.Flags().StringP("out", "o", "", "Output CSV path (default stdout)")

	return c
}

func runProcess(c *cobra.Command, _ []string, app Application) error {
	logger := app.Logger()
	ctx := c.Context()

	mode := reconcile.Mode(mustGetString(c, "mode"))
	if !mode.Valid() {
		return errors.NewValidationError("mode", "unknown mode: "+string(mode))
	}

	roster, err := loadSource(ctx, c, app, store.RoleUbicacion, true)
	if err != nil {
		return err
	}

	reconciler := reconcile.New(reconcile.WithLogger(logger))

	var result *reconcile.Result
	switch mode {
	case reconcile.ModeContactos:
		email, err := loadSource(ctx, c, app, store.RoleCorreo, false)
		if err != nil {
			return err
		}
		phone, err := loadSource(ctx, c, app, store.RoleTelefono, false)
		if err != nil {
			return err
		}
		if email == nil && phone == nil {
			return errors.NewValidationError("sources",
				"mode contactos requires at least one of --correo or --telefono")
		}
		result, err = reconciler.Enrich(roster, email, phone)
		if err != nil {
			return err
		}
	case reconcile.ModeRelacion:
		relation, err := loadSource(ctx, c, app, store.RoleRelacion, true)
		if err != nil {
			return err
		}
		result, err = reconciler.Presence(roster, relation)
		if err != nil {
			return err
		}
	}

	logger.Info().
		Str("mode", string(result.Mode)).
		Int("total", result.Stats.Total).
		Int("matched", result.Stats.Matched).
		Int("unmatched", result.Stats.Unmatched).
		Msg("Reconciliation completed")

	out := result.Table
	if term := mustGetString(c, "search"); term != "" {
		out = out.Search(term)
	}

	data, err := out.ToCSV()
	if err != nil {
		return err
	}

	if path := mustGetString(c, "out"); path != "" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.WrapIO("write output", path, err)
		}
		fmt.Printf("Wrote %d rows to %s\n", out.Len(), path)
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}

// loadSource resolves one source flag into a table: share link, local file,
// or cached copy, in that order. Optional sources may resolve to nil.
func loadSource(ctx context.Context, c *cobra.Command, app Application, role store.Role, required bool) (*tables.Table, error) {
	location := mustGetString(c, string(role))

	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		data, err = app.Fetcher().FetchWorkbook(ctx, location)
		if err != nil {
			return nil, err
		}
	case location != "":
		data, err = os.ReadFile(location)
		if err != nil {
			return nil, errors.WrapIO("read source", location, err)
		}
	default:
		st, err := app.Store()
		if err != nil {
			return nil, err
		}
		data, _, err = st.Load(role)
		if errors.IsNotFound(err) {
			if required {
				return nil, errors.NewSourceError(string(role), "no file, link, or cached copy available", nil)
			}
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}

	return tabular.Load(data, headerRowFor(role))
}

// headerRowFor returns the physical header row for a source role. The
// roster export carries a title banner above its headers; the rest do not.
func headerRowFor(role store.Role) int {
	if role == store.RoleUbicacion {
		return 1
	}
	return 0
}
