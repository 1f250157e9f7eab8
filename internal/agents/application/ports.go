package application

import (
	"context"

	"github.com/dmehra2102/smart-inventory/internal/agents/domain"
	catalogdomain "github.com/dmehra2102/smart-inventory/internal/catalog/domain"
)

// EventLogRepository is the durable append-only agent audit log.
type EventLogRepository interface {
	Append(ctx context.Context, e domain.LogEntry) error
	ListRecentFirst(ctx context.Context, kind domain.Kind) ([]domain.LogEntry, error)
	Clear(ctx context.Context) error
}

// StockScanner is the slice of the catalog service the agents depend on.
type StockScanner interface {
	List(ctx context.Context) ([]catalogdomain.Item, error)
	Increment(ctx context.Context, key string, qty int64) (int64, error)
}

// EventPublisher sends best-effort notifications about agent activity.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
}
