package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmehra2102/smart-inventory/internal/catalog/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS items (
		key TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		stock BIGINT NOT NULL CHECK (stock >= 0),
		price BIGINT NOT NULL CHECK (price >= 0),
		position BIGSERIAL
	)`)
	return err
}

func (r *Repository) Get(ctx context.Context, key string) (domain.Item, error) {
	var item domain.Item
	err := r.pool.QueryRow(ctx, `SELECT key, name, stock, price FROM items WHERE key=$1`, key).
		Scan(&item.Key, &item.Name, &item.Stock, &item.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Item{}, domain.ErrItemNotFound
	}
	if err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, name, stock, price FROM items ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.Key, &item.Name, &item.Stock, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM items`).Scan(&n)
	return n, err
}

func (r *Repository) Create(ctx context.Context, item domain.Item) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO items (key, name, stock, price) VALUES ($1,$2,$3,$4)`,
		item.Key, item.Name, item.Stock, item.Price)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrItemExists
	}
	return err
}

func (r *Repository) Delete(ctx context.Context, key string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM items WHERE key=$1`, key)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Decrement clamps at the current stock inside one transaction; the row lock
// makes the read-clamp-write a single critical section per item.
func (r *Repository) Decrement(ctx context.Context, key string, qty int64) (int64, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var stock int64
	err = tx.QueryRow(ctx, `SELECT stock FROM items WHERE key=$1 FOR UPDATE`, key).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrItemNotFound
	}
	if err != nil {
		return 0, err
	}

	applied := qty
	if applied > stock {
		applied = stock
	}
	if _, err = tx.Exec(ctx, `UPDATE items SET stock = stock - $2 WHERE key=$1`, key, applied); err != nil {
		return 0, err
	}
	return applied, tx.Commit(ctx)
}

func (r *Repository) Increment(ctx context.Context, key string, qty int64) (int64, error) {
	var stock int64
	err := r.pool.QueryRow(ctx, `UPDATE items SET stock = stock + $2 WHERE key=$1 RETURNING stock`, key, qty).
		Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrItemNotFound
	}
	return stock, err
}

func (r *Repository) SetStock(ctx context.Context, key string, stock int64) error {
	ct, err := r.pool.Exec(ctx, `UPDATE items SET stock=$2 WHERE key=$1`, key, stock)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *Repository) SetPrice(ctx context.Context, key string, price int64) error {
	ct, err := r.pool.Exec(ctx, `UPDATE items SET price=$2 WHERE key=$1`, key, price)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
