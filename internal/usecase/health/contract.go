package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogProber checks catalog readability and reports its size.
type CatalogProber interface {
	Count(ctx context.Context) (int, error)
}
