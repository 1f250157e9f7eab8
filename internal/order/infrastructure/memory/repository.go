package memory

import (
	"context"
	"sync"

	"github.com/dmehra2102/smart-inventory/internal/order/domain"
)

type Repository struct {
	mu     sync.Mutex
	orders []domain.Order
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{nextID: 1}
}

func (r *Repository) Append(ctx context.Context, o domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.nextID
	r.nextID++
	r.orders = append(r.orders, o)
	return o, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *Repository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = nil
	return nil
}
