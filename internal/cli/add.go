package cli

import (
	"errors"
	"fmt"
	"io"

	"dips-cli/internal/model"
	"dips-cli/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type addResult struct {
	Dip   model.Dip    `json:"dip"`
	Scope *model.Scope `json:"scope"`
	Group string       `json:"group,omitempty"`
}

func (r addResult) WriteText(w io.Writer) error {
	where := model.ScopeOf(r.Scope).Label()
	if r.Group != "" {
		where += " (" + r.Group + ")"
	}
	_, err := fmt.Fprintf(w, "Added %q to %s\n%s\n", r.Dip.Value, where, r.Dip.ID)
	return err
}

func newAddCmd(app *App) *cobra.Command {
	var group string
	var note string
	var global bool

	cmd := &cobra.Command{
		Use:   "add <value>",
		Short: "Add a dip to the current directory (or globally)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			in := store.NewDip{Value: args[0], Note: model.StrPtr(note), Group: group}
			where := model.Global.Label()
			if !global {
				loc, err := sess.locate(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				in.Location = &loc
				where = loc.Path
			}

			created, err := sess.store.CreateDip(cmd.Context(), in)
			switch {
			case errors.Is(err, store.ErrDuplicateDip):
				return writeErr(cmd, errDuplicate(args[0], where))
			case err != nil:
				return writeErr(cmd, err)
			}
			sess.log.Debug("dip added", zap.String("id", created.ID), zap.Bool("global", global))

			return writeOut(cmd, app, addResult{Dip: created.Dip, Scope: created.Scope, Group: group})
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "Group name (created if missing)")
	cmd.Flags().StringVar(&note, "note", "", "Optional note")
	cmd.Flags().BoolVar(&global, "global", false, "Store the dip globally instead of for this directory")
	return cmd
}
