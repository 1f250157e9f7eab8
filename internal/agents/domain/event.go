package domain

import "time"

type Kind string

const (
	KindMonitoring  Kind = "monitoring"
	KindForecasting Kind = "forecasting"
)

// LogEntry is one audit record emitted by a background agent. Entries are
// append-only; Stock is the value observed for monitoring entries and the
// post-restock value for forecasting entries.
type LogEntry struct {
	ID    int64
	Kind  Kind
	Item  string
	Stock int64
	At    time.Time
}
