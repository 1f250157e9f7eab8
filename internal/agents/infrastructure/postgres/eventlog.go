package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmehra2102/smart-inventory/internal/agents/domain"
)

type EventLog struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewEventLog(log *slog.Logger, pool *pgxpool.Pool) *EventLog {
	return &EventLog{log: log, pool: pool}
}

func (l *EventLog) Migrate(ctx context.Context) error {
	_, err := l.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS event_log (
		id BIGSERIAL PRIMARY KEY,
		kind TEXT NOT NULL,
		item TEXT NOT NULL,
		stock BIGINT NOT NULL,
		at TIMESTAMPTZ NOT NULL
	)`)
	return err
}

func (l *EventLog) Append(ctx context.Context, e domain.LogEntry) error {
	_, err := l.pool.Exec(ctx, `INSERT INTO event_log (kind, item, stock, at) VALUES ($1,$2,$3,$4)`,
		e.Kind, e.Item, e.Stock, e.At)
	return err
}

func (l *EventLog) ListRecentFirst(ctx context.Context, kind domain.Kind) ([]domain.LogEntry, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, kind, item, stock, at FROM event_log WHERE kind=$1 ORDER BY id DESC`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LogEntry
	for rows.Next() {
		var e domain.LogEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Item, &e.Stock, &e.At); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (l *EventLog) Clear(ctx context.Context) error {
	_, err := l.pool.Exec(ctx, `DELETE FROM event_log`)
	return err
}
