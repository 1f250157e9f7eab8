package application

import (
	"context"
	"log/slog"
	"testing"

	"github.com/dmehra2102/smart-inventory/internal/catalog/domain"
	"github.com/dmehra2102/smart-inventory/internal/catalog/infrastructure/memory"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(slog.New(slog.DiscardHandler), memory.NewRepository())
}

func seeded(t *testing.T) *Service {
	t.Helper()
	svc := newService(t)
	if err := svc.SeedIfEmpty(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return svc
}

func TestSeedIfEmptyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := seeded(t)

	if _, err := svc.Decrement(ctx, "chips", 2); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if err := svc.SeedIfEmpty(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	item, err := svc.Get(ctx, "chips")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item.Stock != 4 {
		t.Errorf("second seed overwrote stock: got %d, want 4", item.Stock)
	}
}

func TestDecrementClampsAtZero(t *testing.T) {
	ctx := context.Background()
	svc := seeded(t)

	tests := []struct {
		name        string
		key         string
		qty         int64
		wantApplied int64
		wantStock   int64
	}{
		{"within stock", "chips", 2, 2, 4},
		{"exact remaining", "chips", 4, 4, 0},
		{"over empty stock", "chips", 5, 0, 0},
		{"over available", "canned-food", 100, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applied, err := svc.Decrement(ctx, tt.key, tt.qty)
			if err != nil {
				t.Fatalf("Decrement: %v", err)
			}
			if applied != tt.wantApplied {
				t.Errorf("applied = %d, want %d", applied, tt.wantApplied)
			}
			item, _ := svc.Get(ctx, tt.key)
			if item.Stock != tt.wantStock {
				t.Errorf("stock = %d, want %d", item.Stock, tt.wantStock)
			}
		})
	}
}

func TestDecrementUnknownItem(t *testing.T) {
	svc := seeded(t)
	if _, err := svc.Decrement(context.Background(), "ghost", 1); err != domain.ErrItemNotFound {
		t.Errorf("error = %v, want ErrItemNotFound", err)
	}
}

func TestSetStockRejectsNegative(t *testing.T) {
	svc := seeded(t)
	if err := svc.SetStock(context.Background(), "chips", -1); err != domain.ErrNegativeValue {
		t.Errorf("SetStock(-1) error = %v, want ErrNegativeValue", err)
	}
	if err := svc.SetPrice(context.Background(), "chips", -1); err != domain.ErrNegativeValue {
		t.Errorf("SetPrice(-1) error = %v, want ErrNegativeValue", err)
	}
}

func TestAddItemRejectsDuplicateKey(t *testing.T) {
	ctx := context.Background()
	svc := seeded(t)

	if _, err := svc.AddItem(ctx, "Energy Bars", 12, 35); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.AddItem(ctx, "energy  bars", 1, 1); err != domain.ErrItemExists {
		t.Errorf("duplicate AddItem error = %v, want ErrItemExists", err)
	}
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	svc := seeded(t)

	if err := svc.RemoveItem(ctx, "salt"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if err := svc.RemoveItem(ctx, "salt"); err != domain.ErrItemNotFound {
		t.Errorf("second RemoveItem error = %v, want ErrItemNotFound", err)
	}
}

func TestRestoreSeedStock(t *testing.T) {
	ctx := context.Background()
	svc := seeded(t)

	if _, err := svc.Decrement(ctx, "chips", 6); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if err := svc.SetStock(ctx, "salt", 0); err != nil {
		t.Fatalf("set stock: %v", err)
	}
	if err := svc.RestoreSeedStock(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}

	for _, want := range domain.SeedCatalog() {
		got, err := svc.Get(ctx, want.Key)
		if err != nil {
			t.Fatalf("get %s: %v", want.Key, err)
		}
		if got.Stock != want.Stock {
			t.Errorf("%s stock = %d, want %d", want.Key, got.Stock, want.Stock)
		}
	}
}
