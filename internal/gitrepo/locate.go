package gitrepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"dips-cli/internal/model"
)

// Locate describes path for scope resolution: the cleaned absolute path plus, when it
// sits inside a git worktree, the repository's directory name and origin URL.
// A missing origin (or a missing git binary) leaves GitRemote nil.
func Locate(ctx context.Context, path string) (model.Location, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return model.Location{}, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return model.Location{}, fmt.Errorf("locate %s: %w", abs, err)
	}
	if !st.IsDir() {
		return model.Location{}, fmt.Errorf("locate %s: not a directory", abs)
	}

	loc := model.Location{Path: abs}
	root, ok, err := FindRoot(abs)
	if err != nil || !ok {
		return loc, err
	}
	loc.GitRoot = root
	loc.GitDirName = model.StrPtr(filepath.Base(root))
	if url, err := OriginURL(ctx, root); err == nil {
		loc.GitRemote = model.StrPtr(url)
	}
	return loc, nil
}
