package catalog

import "context"

type Loader interface {
	Load(ctx context.Context, path string) (*Catalog, error)
	Builtin(ctx context.Context) (*Catalog, error)
}
