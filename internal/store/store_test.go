package store

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"dips-cli/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "dips.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	// Monotonic clock so newest-first ordering is deterministic.
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var tick int64
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Millisecond)
	}
	return s
}

func loc(path string) model.Location { return model.Location{Path: path} }

func TestOpen_CreatesFileAndIsReopenable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dips.db")

	require.False(t, Exists(path))
	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.True(t, Exists(path))
	require.Equal(t, path, s.Path())
	require.NoError(t, s.Close())

	s2, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestCreateDip_FreshDirectoryCreatesOneScopeAndDip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	l := loc("/tmp/x")
	created, err := s.CreateDip(ctx, NewDip{Value: "hello", Location: &l})
	require.NoError(t, err)
	require.NotNil(t, created.Scope)
	require.Equal(t, "/tmp/x", created.Scope.DirPath)

	scopes, err := s.ListScopes(ctx, ScopesFilter{})
	require.NoError(t, err)
	require.Len(t, scopes, 1)

	dips, err := s.ListDips(ctx, DipsFilter{ScopeID: &created.Scope.ID})
	require.NoError(t, err)
	require.Len(t, dips, 1)
	require.Equal(t, "hello", dips[0].Value)
	require.Equal(t, "/tmp/x", dips[0].ScopePath)
	require.Empty(t, dips[0].Tags)

	// Same location again reuses the scope.
	_, err = s.CreateDip(ctx, NewDip{Value: "second", Location: &l})
	require.NoError(t, err)
	scopes, err = s.ListScopes(ctx, ScopesFilter{})
	require.NoError(t, err)
	require.Len(t, scopes, 1)
}

func TestCreateDip_GlobalAndDuplicates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.CreateDip(ctx, NewDip{Value: "  "})
	require.ErrorIs(t, err, ErrEmptyValue)

	g, err := s.CreateDip(ctx, NewDip{Value: "global one"})
	require.NoError(t, err)
	require.Nil(t, g.Scope)
	require.Nil(t, g.ScopeID)

	_, err = s.CreateDip(ctx, NewDip{Value: "global one"})
	require.ErrorIs(t, err, ErrDuplicateDip)

	// Same value in another group or scope is fine.
	_, err = s.CreateDip(ctx, NewDip{Value: "global one", Group: "links"})
	require.NoError(t, err)
	l := loc("/repo")
	_, err = s.CreateDip(ctx, NewDip{Value: "global one", Location: &l})
	require.NoError(t, err)

	global, err := s.ListDips(ctx, DipsFilter{})
	require.NoError(t, err)
	require.Len(t, global, 2)
	require.Equal(t, "links", global[0].GroupName)

	all, err := s.ListDips(ctx, DipsFilter{All: true})
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestCreateDip_ExistingScopeID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	sc, err := s.FindOrCreateScope(ctx, loc("/work"))
	require.NoError(t, err)

	d, err := s.CreateDip(ctx, NewDip{Value: "v", ScopeID: &sc.ID, Note: model.StrPtr("a note")})
	require.NoError(t, err)
	require.Equal(t, sc.ID, model.Deref(d.ScopeID))
	require.Equal(t, "a note", model.Deref(d.Note))

	missing := "nope"
	_, err = s.CreateDip(ctx, NewDip{Value: "v2", ScopeID: &missing})
	require.Error(t, err)
}

func TestListDips_NewestFirstAndSearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	for _, v := range []string{"Alpha", "beta", "GAMMA"} {
		_, err := s.CreateDip(ctx, NewDip{Value: v})
		require.NoError(t, err)
	}
	_, err := s.CreateDip(ctx, NewDip{Value: "delta", Note: model.StrPtr("mentions alpHA")})
	require.NoError(t, err)

	all, err := s.ListDips(ctx, DipsFilter{})
	require.NoError(t, err)
	var values []string
	for _, d := range all {
		values = append(values, d.Value)
	}
	if diff := cmp.Diff([]string{"delta", "GAMMA", "beta", "Alpha"}, values); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	hits, err := s.ListDips(ctx, DipsFilter{Search: "ALPHA"})
	require.NoError(t, err)
	require.Len(t, hits, 2)

	none, err := s.ListDips(ctx, DipsFilter{Search: "zzz"})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestDeleteDip_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	d, err := s.CreateDip(ctx, NewDip{Value: "gone soon"})
	require.NoError(t, err)
	require.NoError(t, s.TagDip(ctx, d.ID, "tmp"))

	n, err := s.DeleteDip(ctx, d.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = s.DeleteDip(ctx, d.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	dips, err := s.ListDips(ctx, DipsFilter{All: true})
	require.NoError(t, err)
	require.Empty(t, dips)
}

func TestTagDip_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	d, err := s.CreateDip(ctx, NewDip{Value: "tag me"})
	require.NoError(t, err)

	require.NoError(t, s.TagDip(ctx, d.ID, "work"))
	require.NoError(t, s.TagDip(ctx, d.ID, " work "))

	dips, err := s.ListDips(ctx, DipsFilter{})
	require.NoError(t, err)
	require.Len(t, dips, 1)
	require.Equal(t, []string{"work"}, dips[0].Tags)

	require.NoError(t, s.TagDip(ctx, d.ID, "alpha"))
	dips, err = s.ListDips(ctx, DipsFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "work"}, dips[0].Tags)

	require.ErrorIs(t, s.TagDip(ctx, "missing", "work"), ErrDipNotFound)
	require.Error(t, s.TagDip(ctx, d.ID, "  "))
}

func TestListDips_TagsAttachedPerListedDip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	here := loc("/proj")
	scoped, err := s.CreateDip(ctx, NewDip{Value: "scoped", Location: &here})
	require.NoError(t, err)
	global, err := s.CreateDip(ctx, NewDip{Value: "global"})
	require.NoError(t, err)
	require.NoError(t, s.TagDip(ctx, scoped.ID, "x"))
	require.NoError(t, s.TagDip(ctx, global.ID, "g"))

	dips, err := s.ListDips(ctx, DipsFilter{ScopeID: &scoped.Scope.ID})
	require.NoError(t, err)
	require.Len(t, dips, 1)
	require.Equal(t, []string{"x"}, dips[0].Tags)

	dips, err = s.ListDips(ctx, DipsFilter{})
	require.NoError(t, err)
	require.Len(t, dips, 1)
	require.Equal(t, []string{"g"}, dips[0].Tags)
}

func TestListDips_TagsAcrossBatches(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	n := tagBatchSize + 3
	for i := 0; i < n; i++ {
		d, err := s.CreateDip(ctx, NewDip{Value: "dip " + strconv.Itoa(i)})
		require.NoError(t, err)
		require.NoError(t, s.TagDip(ctx, d.ID, "t"+strconv.Itoa(i%2)))
	}

	dips, err := s.ListDips(ctx, DipsFilter{})
	require.NoError(t, err)
	require.Len(t, dips, n)
	for _, d := range dips {
		require.Len(t, d.Tags, 1, "dip %q", d.Value)
	}
}

func TestFindOrCreateScope_ExactTriple(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	remote := "git@example.com:me/repo.git"
	withGit := model.Location{Path: "/src/repo", GitRemote: &remote, GitDirName: model.StrPtr("repo")}

	a, err := s.FindOrCreateScope(ctx, withGit)
	require.NoError(t, err)
	b, err := s.FindOrCreateScope(ctx, withGit)
	require.NoError(t, err)
	require.Equal(t, a.ID, b.ID)

	plain, err := s.FindOrCreateScope(ctx, loc("/src/repo/"))
	require.NoError(t, err)
	require.NotEqual(t, a.ID, plain.ID)
	require.Equal(t, "/src/repo", plain.DirPath)

	_, err = s.FindOrCreateScope(ctx, loc(" "))
	require.Error(t, err)
}

func TestResolveScope_LongestPrefixWins(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.FindOrCreateScope(ctx, loc("/a"))
	require.NoError(t, err)
	ab, err := s.FindOrCreateScope(ctx, loc("/a/b"))
	require.NoError(t, err)

	got, err := s.ResolveScope(ctx, loc("/a/b/c"))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, ab.ID, got.ID)

	got, err = s.ResolveScope(ctx, loc("/a/bc"))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, ab.ID, got.ID)

	got, err = s.ResolveScope(ctx, loc("/ab"))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "/a", got.DirPath)

	got, err = s.ResolveScope(ctx, loc("/elsewhere"))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestResolveScope_RemoteMatchWithoutPrefix(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	remote := "https://example.com/me/proj.git"
	sc, err := s.FindOrCreateScope(ctx, model.Location{Path: "/home/me/proj", GitRemote: &remote})
	require.NoError(t, err)

	other := "/mnt/clone/proj"
	got, err := s.ResolveScope(ctx, model.Location{Path: other, GitRemote: &remote})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, sc.ID, got.ID)
}

func TestListScopes_Search(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)

	remote := "git@GitHub.com:me/Tools.git"
	_, err := s.FindOrCreateScope(ctx, model.Location{Path: "/x/one", GitRemote: &remote})
	require.NoError(t, err)
	_, err = s.FindOrCreateScope(ctx, loc("/x/Two"))
	require.NoError(t, err)

	got, err := s.ListScopes(ctx, ScopesFilter{Search: "tools"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "/x/one", got[0].DirPath)

	got, err = s.ListScopes(ctx, ScopesFilter{Search: "TWO"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = s.ListScopes(ctx, ScopesFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
}
