package apps

import "context"

// Store is the persistence contract for app records. FindByName and FindByID
// return sentinel.ErrNotFound when no record matches.
type Store interface {
	List(ctx context.Context) ([]App, error)
	FindByName(ctx context.Context, name string) (*App, error)
	FindByID(ctx context.Context, id int64) (*App, error)
	Create(ctx context.Context, app App) (*App, error)
	Delete(ctx context.Context, id int64) error
}
