package domain

import "context"

type CatalogRepository interface {
	// Write paths
	UpsertSeller(ctx context.Context, s Seller) error
	UpsertProduct(ctx context.Context, p Product) error
	UpsertReviews(ctx context.Context, rs []Review) error
	LogMiss(ctx context.Context, kind string, id int64, status int, reason string) error

	// Read paths
	GetSeller(ctx context.Context, id int64) (Seller, error)
	GetProduct(ctx context.Context, id int64) (Product, error)
	ListReviews(ctx context.Context, productID int64) ([]Review, error)
}

// FeedClient pulls untyped catalogue payloads from an upstream marketplace feed.
type FeedClient interface {
	GetSeller(ctx context.Context, id int64) (map[string]any, error)
	GetProduct(ctx context.Context, id int64) (map[string]any, error)
	GetReviews(ctx context.Context, productID int64, count int) ([]map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Catalog is a complete set of catalogue records, used to seed one store from
// another.
type Catalog struct {
	Sellers  []Seller
	Products []Product
	Reviews  []Review
}
