package gitrepo

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// FindRoot walks up from start and returns the worktree root: the directory holding
// the .git entry. It does not invoke the git binary.
func FindRoot(start string) (root string, ok bool, err error) {
	dir := filepath.Clean(strings.TrimSpace(start))
	if dir == "" || dir == "." {
		return "", false, errors.New("empty start dir")
	}

	for {
		candidate := filepath.Join(dir, ".git")
		st, statErr := os.Stat(candidate)
		switch {
		case statErr == nil && st.IsDir():
			return dir, true, nil
		case statErr == nil:
			// Worktrees and submodules use a .git file pointing at the real gitdir.
			target, err := readGitdirFile(candidate)
			if err != nil {
				return "", false, err
			}
			if target != "" {
				return dir, true, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

func readGitdirFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		ln := strings.TrimSpace(sc.Text())
		if ln == "" {
			continue
		}
		// Expected: "gitdir: /path/to/dir"
		if !strings.HasPrefix(strings.ToLower(ln), "gitdir:") {
			break
		}
		p := strings.TrimSpace(ln[len("gitdir:"):])
		if p == "" {
			return "", nil
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(path), p)
		}
		return filepath.Clean(p), nil
	}
	return "", sc.Err()
}
