package application

import (
	"context"

	"github.com/dmehra2102/smart-inventory/internal/catalog/domain"
)

// ItemRepository is the durable store for catalog items. Implementations
// must make Decrement and Increment atomic read-modify-write operations per
// item, and List must return a stable ordering within one call.
type ItemRepository interface {
	Get(ctx context.Context, key string) (domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, item domain.Item) error
	Delete(ctx context.Context, key string) error

	// Decrement removes min(qty, stock) and returns the quantity applied.
	Decrement(ctx context.Context, key string, qty int64) (int64, error)
	// Increment adds qty and returns the resulting stock.
	Increment(ctx context.Context, key string, qty int64) (int64, error)
	SetStock(ctx context.Context, key string, stock int64) error
	SetPrice(ctx context.Context, key string, price int64) error
}
