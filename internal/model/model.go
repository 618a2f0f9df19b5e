package model

import (
	"strings"
	"time"
)

type Dip struct {
	ID        string    `json:"id"`
	Value     string    `json:"value"`
	Note      *string   `json:"note,omitempty"`
	ScopeID   *string   `json:"scopeId,omitempty"`
	GroupID   *string   `json:"groupId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Tags      []string  `json:"tags"`
}

// DipRow is a Dip as it is listed: joined with its scope path and group name.
type DipRow struct {
	Dip

	ScopePath string `json:"scopePath,omitempty"`
	GroupName string `json:"group,omitempty"`
}

// Scope is a stored directory/git identity (dir_contexts row).
type Scope struct {
	ID         string    `json:"id"`
	DirPath    string    `json:"dirPath"`
	GitRemote  *string   `json:"gitRemote,omitempty"`
	GitDirName *string   `json:"gitDirName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Group is an optional secondary label on a Dip (context_groups row).
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ScopeID   *string   `json:"scopeId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Location describes where the user currently is on disk.
type Location struct {
	Path       string  `json:"path"`
	GitRemote  *string `json:"gitRemote,omitempty"`
	GitDirName *string `json:"gitDirName,omitempty"`
	// GitRoot is the repository worktree root, empty outside a repository.
	GitRoot string `json:"gitRoot,omitempty"`
}

// ScopeRef is either a stored Scope or Global (nil Scope).
type ScopeRef struct {
	Scope *Scope
}

var Global = ScopeRef{}

func ScopeOf(s *Scope) ScopeRef { return ScopeRef{Scope: s} }

func (r ScopeRef) IsGlobal() bool { return r.Scope == nil }

// ID returns the scope id used for filtering and dip ownership; nil means Global.
func (r ScopeRef) ID() *string {
	if r.Scope == nil {
		return nil
	}
	id := r.Scope.ID
	return &id
}

func (r ScopeRef) Label() string {
	if r.Scope == nil {
		return "Global"
	}
	return r.Scope.DirPath
}

// Same reports whether both refs point at the same scope (or are both Global).
func (r ScopeRef) Same(o ScopeRef) bool {
	if r.Scope == nil || o.Scope == nil {
		return r.Scope == nil && o.Scope == nil
	}
	return r.Scope.ID == o.Scope.ID
}

func StrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
