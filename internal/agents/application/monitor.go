package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmehra2102/smart-inventory/internal/agents/domain"
)

// Defaults come from the original deployment and are kept configurable.
const (
	DefaultLowStockThreshold int64 = 3
	DefaultMonitorInterval         = 3 * time.Second
)

// StockLow is published when an item enters the low-stock band.
type StockLow struct {
	Key   string
	Item  string
	Stock int64
}

// Monitor scans the stock ledger and logs an entry when an item enters the
// low-stock band (0 < stock <= threshold). The trigger is edge-based: a
// sustained low level logs once, not every cycle.
type Monitor struct {
	log       *slog.Logger
	stocks    StockScanner
	events    EventLogRepository
	state     *EdgeState
	publisher EventPublisher
	threshold int64
}

func NewMonitor(log *slog.Logger, stocks StockScanner, events EventLogRepository, state *EdgeState, publisher EventPublisher, threshold int64) *Monitor {
	return &Monitor{
		log:       log,
		stocks:    stocks,
		events:    events,
		state:     state,
		publisher: publisher,
		threshold: threshold,
	}
}

// Cycle is one full scan. Per-item storage failures are logged and skipped;
// the next cycle retries.
func (m *Monitor) Cycle(ctx context.Context) error {
	items, err := m.stocks.List(ctx)
	if err != nil {
		return err
	}

	for _, item := range items {
		inBand := item.Stock > 0 && item.Stock <= m.threshold
		last, seen := m.state.Last(item.Key)
		fire := inBand && (!seen || last > m.threshold)

		if fire {
			entry := domain.LogEntry{
				Kind:  domain.KindMonitoring,
				Item:  item.Name,
				Stock: item.Stock,
				At:    time.Now().UTC(),
			}
			if err := m.events.Append(ctx, entry); err != nil {
				// Leave the edge state stale so the entry is retried
				// next cycle instead of being lost.
				m.log.ErrorContext(ctx, "monitoring log append failed", "item", item.Key, "err", err)
				continue
			}
			if m.publisher != nil {
				ev := StockLow{Key: item.Key, Item: item.Name, Stock: item.Stock}
				if err := m.publisher.Publish(ctx, "StockLow", item.Key, ev); err != nil {
					m.log.ErrorContext(ctx, "low stock event publish failed", "item", item.Key, "err", err)
				}
			}
			m.log.InfoContext(ctx, "low stock detected", "item", item.Key, "stock", item.Stock)
		}
		m.state.Set(item.Key, item.Stock)
	}
	return nil
}
