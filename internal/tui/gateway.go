package tui

import (
	"context"

	"dips-cli/internal/model"
	"dips-cli/internal/store"
)

// Gateway is the storage surface the dispatcher needs. *store.Store implements it.
type Gateway interface {
	ListDips(ctx context.Context, f store.DipsFilter) ([]model.DipRow, error)
	ListScopes(ctx context.Context, f store.ScopesFilter) ([]model.Scope, error)
	CreateDip(ctx context.Context, in store.NewDip) (store.CreatedDip, error)
	DeleteDip(ctx context.Context, id string) (int64, error)
	TagDip(ctx context.Context, dipID, name string) error
	ResolveScope(ctx context.Context, loc model.Location) (*model.Scope, error)
}

var _ Gateway = (*store.Store)(nil)
