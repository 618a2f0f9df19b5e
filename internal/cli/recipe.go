package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

const recipesDirName = "recipes"

type recipeList []string

func (l recipeList) WriteText(w io.Writer) error {
	for _, name := range l {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// listRecipes returns the directory names under <dir>/recipes. With a search term only
// fuzzy matches are kept, best match first. A missing recipes directory lists nothing.
func listRecipes(dir, search string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(dir, recipesDirName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	search = strings.TrimSpace(search)
	if search == "" {
		return names, nil
	}
	matches := fuzzy.Find(search, names)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out, nil
}

func newRecipeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recipe [search]",
		Short: "List recipe directories (fuzzy filtered)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := app.workDir()
			if err != nil {
				return writeErr(cmd, err)
			}
			search := ""
			if len(args) == 1 {
				search = args[0]
			}
			names, err := listRecipes(dir, search)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, recipeList(names))
		},
	}
}
