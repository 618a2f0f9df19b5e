package store

import (
	"strings"

	"dips-cli/internal/model"
)

// SelectScope picks the scope visible from loc among candidates.
//
// A candidate matches when its git remote equals loc's remote, or when its dir path is a
// string prefix of loc's path ("/a/b" covers both "/a/b/c" and "/a/bc"). The match with the longest dir path wins, even over a remote match with a
// shorter path. Ties keep the earlier candidate. nil means Global.
func SelectScope(loc model.Location, candidates []model.Scope) *model.Scope {
	var best *model.Scope
	for i := range candidates {
		c := &candidates[i]
		if !scopeMatches(loc, c) {
			continue
		}
		if best == nil || len(c.DirPath) > len(best.DirPath) {
			best = c
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

func scopeMatches(loc model.Location, sc *model.Scope) bool {
	if loc.GitRemote != nil && sc.GitRemote != nil && *loc.GitRemote == *sc.GitRemote {
		return true
	}
	return sc.DirPath != "" && strings.HasPrefix(loc.Path, sc.DirPath)
}
