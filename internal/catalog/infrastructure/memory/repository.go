// Package memory holds an in-process ItemRepository used by tests and by
// deployments that do not need durability.
package memory

import (
	"context"
	"sync"

	"github.com/dmehra2102/smart-inventory/internal/catalog/domain"
)

type Repository struct {
	mu    sync.Mutex
	items map[string]domain.Item
	order []string // insertion order, keeps List stable
}

func NewRepository() *Repository {
	return &Repository{items: make(map[string]domain.Item)}
}

func (r *Repository) Get(ctx context.Context, key string) (domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[key]
	if !ok {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return item, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Item, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.items[key])
	}
	return out, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *Repository) Create(ctx context.Context, item domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.Key]; ok {
		return domain.ErrItemExists
	}
	r.items[item.Key] = item
	r.order = append(r.order, item.Key)
	return nil
}

func (r *Repository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[key]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.items, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Repository) Decrement(ctx context.Context, key string, qty int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[key]
	if !ok {
		return 0, domain.ErrItemNotFound
	}
	applied := qty
	if applied > item.Stock {
		applied = item.Stock
	}
	item.Stock -= applied
	r.items[key] = item
	return applied, nil
}

func (r *Repository) Increment(ctx context.Context, key string, qty int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[key]
	if !ok {
		return 0, domain.ErrItemNotFound
	}
	item.Stock += qty
	r.items[key] = item
	return item.Stock, nil
}

func (r *Repository) SetStock(ctx context.Context, key string, stock int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[key]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.Stock = stock
	r.items[key] = item
	return nil
}

func (r *Repository) SetPrice(ctx context.Context, key string, price int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[key]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.Price = price
	r.items[key] = item
	return nil
}
