package cli

import (
	"fmt"
	"io"

	"dips-cli/internal/model"
	"dips-cli/internal/store"

	"github.com/spf13/cobra"
)

type getResult struct {
	// Scope is the resolved scope; nil for Global or with --all.
	Scope *model.Scope   `json:"scope"`
	All   bool           `json:"all"`
	Items []model.DipRow `json:"items"`
}

func (r getResult) WriteText(w io.Writer) error {
	if !r.All {
		if _, err := fmt.Fprintf(w, "Scope: %s\n", model.ScopeOf(r.Scope).Label()); err != nil {
			return err
		}
	}
	if len(r.Items) == 0 {
		_, err := fmt.Fprintln(w, "No items found.")
		return err
	}
	for _, it := range r.Items {
		if _, err := fmt.Fprintln(w, it.Value); err != nil {
			return err
		}
	}
	return nil
}

func newGetCmd(app *App) *cobra.Command {
	var all bool
	var search string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "List dips of the closest scope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			res := getResult{All: all}
			filter := store.DipsFilter{All: all, Search: search}
			if !all {
				loc, err := sess.locate(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				scope, err := sess.store.ResolveScope(cmd.Context(), loc)
				if err != nil {
					return writeErr(cmd, err)
				}
				res.Scope = scope
				filter.ScopeID = model.ScopeOf(scope).ID()
			}

			items, err := sess.store.ListDips(cmd.Context(), filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			if items == nil {
				items = []model.DipRow{}
			}
			res.Items = items
			return writeOut(cmd, app, res)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List dips of every scope")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive filter on value and note")
	return cmd
}
