package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmehra2102/smart-inventory/internal/catalog/domain"
)

// Service is the stock ledger: the single owner of item stock mutations.
type Service struct {
	log  *slog.Logger
	repo ItemRepository
}

func NewService(log *slog.Logger, repo ItemRepository) *Service {
	return &Service{log: log, repo: repo}
}

func (s *Service) Get(ctx context.Context, key string) (domain.Item, error) {
	return s.repo.Get(ctx, key)
}

func (s *Service) List(ctx context.Context) ([]domain.Item, error) {
	return s.repo.List(ctx)
}

// Decrement removes up to qty from the item's stock and reports how much was
// actually removed. Insufficient stock clamps, it does not fail.
func (s *Service) Decrement(ctx context.Context, key string, qty int64) (int64, error) {
	if qty < 0 {
		return 0, domain.ErrNegativeValue
	}
	return s.repo.Decrement(ctx, key, qty)
}

func (s *Service) Increment(ctx context.Context, key string, qty int64) (int64, error) {
	if qty < 0 {
		return 0, domain.ErrNegativeValue
	}
	return s.repo.Increment(ctx, key, qty)
}

func (s *Service) SetStock(ctx context.Context, key string, stock int64) error {
	if stock < 0 {
		return domain.ErrNegativeValue
	}
	return s.repo.SetStock(ctx, key, stock)
}

func (s *Service) SetPrice(ctx context.Context, key string, price int64) error {
	if price < 0 {
		return domain.ErrNegativeValue
	}
	return s.repo.SetPrice(ctx, key, price)
}

// AddItem creates a catalog entry with a key derived from the name.
func (s *Service) AddItem(ctx context.Context, name string, stock, price int64) (domain.Item, error) {
	item, err := domain.NewItem(name, stock, price)
	if err != nil {
		return domain.Item{}, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return domain.Item{}, err
	}
	s.log.Info("item added", "key", item.Key, "stock", item.Stock, "price", item.Price)
	return item, nil
}

func (s *Service) RemoveItem(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		return err
	}
	s.log.Info("item removed", "key", key)
	return nil
}

// SeedIfEmpty installs the starter catalog on first boot.
func (s *Service) SeedIfEmpty(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, item := range domain.SeedCatalog() {
		if err := s.repo.Create(ctx, item); err != nil {
			return fmt.Errorf("seed %s: %w", item.Key, err)
		}
	}
	s.log.Info("catalog seeded", "items", len(domain.SeedCatalog()))
	return nil
}

// RestoreSeedStock puts every seeded item back to its starter stock level.
// Items added after seeding are left untouched.
func (s *Service) RestoreSeedStock(ctx context.Context) error {
	for _, item := range domain.SeedCatalog() {
		if err := s.repo.SetStock(ctx, item.Key, item.Stock); err != nil {
			return fmt.Errorf("restore %s: %w", item.Key, err)
		}
	}
	return nil
}
