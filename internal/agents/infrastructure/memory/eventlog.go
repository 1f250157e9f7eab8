package memory

import (
	"context"
	"sync"

	"github.com/dmehra2102/smart-inventory/internal/agents/domain"
)

type EventLog struct {
	mu      sync.Mutex
	entries []domain.LogEntry
	nextID  int64
}

func NewEventLog() *EventLog {
	return &EventLog{nextID: 1}
}

func (l *EventLog) Append(ctx context.Context, e domain.LogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.ID = l.nextID
	l.nextID++
	l.entries = append(l.entries, e)
	return nil
}

func (l *EventLog) ListRecentFirst(ctx context.Context, kind domain.Kind) ([]domain.LogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []domain.LogEntry
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].Kind == kind {
			out = append(out, l.entries[i])
		}
	}
	return out, nil
}

func (l *EventLog) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	return nil
}
