package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"dips-cli/internal/store"

	"github.com/spf13/cobra"
)

type tagResult struct {
	DipID string `json:"dipId"`
	Tag   string `json:"tag"`
}

func (r tagResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Tagged %s with #%s\n", r.DipID, r.Tag)
	return err
}

func newTagCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <dip-id> <name>",
		Short: "Attach a tag to a dip",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			id := strings.TrimSpace(args[0])
			name := strings.TrimSpace(args[1])
			if err := sess.store.TagDip(cmd.Context(), id, name); err != nil {
				if errors.Is(err, store.ErrDipNotFound) {
					return writeErr(cmd, errNotFound("dip", id))
				}
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, tagResult{DipID: id, Tag: name})
		},
	}
}
