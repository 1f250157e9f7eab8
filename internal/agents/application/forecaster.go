package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmehra2102/smart-inventory/internal/agents/domain"
)

const (
	DefaultRestockQuantity  int64 = 10
	DefaultForecastInterval       = 5 * time.Second
)

// StockRestocked is published when the forecaster replenishes an item.
type StockRestocked struct {
	Key   string
	Item  string
	Stock int64
}

// Forecaster replenishes any item observed at exactly zero stock by a fixed
// quantity and records a forecasting log entry per replenishment.
type Forecaster struct {
	log        *slog.Logger
	stocks     StockScanner
	events     EventLogRepository
	state      *EdgeState
	publisher  EventPublisher
	restockQty int64
}

func NewForecaster(log *slog.Logger, stocks StockScanner, events EventLogRepository, state *EdgeState, publisher EventPublisher, restockQty int64) *Forecaster {
	return &Forecaster{
		log:        log,
		stocks:     stocks,
		events:     events,
		state:      state,
		publisher:  publisher,
		restockQty: restockQty,
	}
}

// Cycle restocks every exhausted item in the snapshot. A failure on one item
// does not abort the rest; that item is retried on the next cycle.
func (f *Forecaster) Cycle(ctx context.Context) error {
	items, err := f.stocks.List(ctx)
	if err != nil {
		return err
	}

	for _, item := range items {
		if item.Stock != 0 {
			continue
		}

		stock, err := f.stocks.Increment(ctx, item.Key, f.restockQty)
		if err != nil {
			f.log.ErrorContext(ctx, "restock failed", "item", item.Key, "err", err)
			continue
		}
		// The monitoring edge state must see the post-restock value, or the
		// next monitoring cycle would compare against stale zero data.
		f.state.Set(item.Key, stock)

		entry := domain.LogEntry{
			Kind:  domain.KindForecasting,
			Item:  item.Name,
			Stock: stock,
			At:    time.Now().UTC(),
		}
		if err := f.events.Append(ctx, entry); err != nil {
			f.log.ErrorContext(ctx, "forecasting log append failed", "item", item.Key, "err", err)
			continue
		}

		if f.publisher != nil {
			ev := StockRestocked{Key: item.Key, Item: item.Name, Stock: stock}
			if err := f.publisher.Publish(ctx, "StockRestocked", item.Key, ev); err != nil {
				f.log.ErrorContext(ctx, "restock event publish failed", "item", item.Key, "err", err)
			}
		}
		f.log.InfoContext(ctx, "item restocked", "item", item.Key, "stock", stock)
	}
	return nil
}
