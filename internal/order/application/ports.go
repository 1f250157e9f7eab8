package application

import (
	"context"

	catalogdomain "github.com/dmehra2102/smart-inventory/internal/catalog/domain"
	"github.com/dmehra2102/smart-inventory/internal/order/domain"
)

// OrderRepository is the append-only order ledger.
type OrderRepository interface {
	// Append stores the order, assigns the next monotonic ID, and returns
	// the stored record.
	Append(ctx context.Context, o domain.Order) (domain.Order, error)
	// List returns all orders in append order (ascending ID).
	List(ctx context.Context) ([]domain.Order, error)
	Clear(ctx context.Context) error
}

// StockLedger is the slice of the catalog service checkout depends on.
type StockLedger interface {
	Get(ctx context.Context, key string) (catalogdomain.Item, error)
	Decrement(ctx context.Context, key string, qty int64) (int64, error)
}

// EventPublisher sends best-effort domain event notifications.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
}
