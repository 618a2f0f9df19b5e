package gitrepo

import (
	"context"
	"strings"
)

// OriginURL returns the fetch URL of the repository's origin remote.
func OriginURL(ctx context.Context, dir string) (string, error) {
	out, err := git(ctx, dir, "remote", "get-url", "origin")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
