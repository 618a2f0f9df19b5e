package cli

import (
	"fmt"
	"io"

	"dips-cli/internal/model"
	"dips-cli/internal/store"

	"github.com/spf13/cobra"
)

type scopeList []model.Scope

func (l scopeList) WriteText(w io.Writer) error {
	if len(l) == 0 {
		_, err := fmt.Fprintln(w, "No scopes found.")
		return err
	}
	for _, s := range l {
		line := s.DirPath
		if s.GitRemote != nil {
			line += "  " + *s.GitRemote
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newScopesCmd(app *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "scopes",
		Short: "List stored scopes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			scopes, err := sess.store.ListScopes(cmd.Context(), store.ScopesFilter{Search: search})
			if err != nil {
				return writeErr(cmd, err)
			}
			if scopes == nil {
				scopes = []model.Scope{}
			}
			return writeOut(cmd, app, scopeList(scopes))
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive filter on path and remote")
	return cmd
}
