package app

import (
	"context"

	"algoverse/internal/catalog"
)

type Clipboard interface {
	WriteAll(text string) error
}

type CatalogLoader interface {
	Load(ctx context.Context, path string) (*catalog.Catalog, error)
	Builtin(ctx context.Context) (*catalog.Catalog, error)
}
