package store

import (
	"testing"

	"dips-cli/internal/model"
)

func TestSelectScope(t *testing.T) {
	t.Parallel()

	remote := "git@example.com:me/r.git"
	other := "git@example.com:me/other.git"
	cands := []model.Scope{
		{ID: "root", DirPath: "/"},
		{ID: "a", DirPath: "/a"},
		{ID: "ab", DirPath: "/a/b"},
		{ID: "remote", DirPath: "/c", GitRemote: &remote},
	}

	cases := []struct {
		name   string
		loc    model.Location
		cands  []model.Scope
		wantID string
	}{
		{name: "no candidates", loc: model.Location{Path: "/a"}, wantID: ""},
		{name: "exact path", loc: model.Location{Path: "/a/b"}, cands: cands, wantID: "ab"},
		{name: "nested path", loc: model.Location{Path: "/a/b/c/d"}, cands: cands, wantID: "ab"},
		{name: "string prefix covers sibling", loc: model.Location{Path: "/a/bc"}, cands: cands, wantID: "ab"},
		{name: "root covers all", loc: model.Location{Path: "/zzz"}, cands: cands, wantID: "root"},
		{name: "remote beats shorter prefix", loc: model.Location{Path: "/q/r", GitRemote: &remote}, cands: cands, wantID: "remote"},
		{name: "longer prefix beats remote", loc: model.Location{Path: "/a/b/c", GitRemote: &remote}, cands: cands, wantID: "ab"},
		{name: "different remote ignored", loc: model.Location{Path: "/q", GitRemote: &other}, cands: cands[1:], wantID: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectScope(tc.loc, tc.cands)
			if tc.wantID == "" {
				if got != nil {
					t.Fatalf("expected Global, got %q", got.ID)
				}
				return
			}
			if got == nil || got.ID != tc.wantID {
				t.Fatalf("expected %q, got %+v", tc.wantID, got)
			}
		})
	}
}
