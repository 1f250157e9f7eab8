package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	catalogdomain "github.com/dmehra2102/smart-inventory/internal/catalog/domain"
	"github.com/dmehra2102/smart-inventory/internal/order/domain"
)

// Customer is the caller identity snapshotted onto the order.
type Customer struct {
	Name  string
	Email string
}

// Service reconciles requested carts against live stock and appends the
// resulting orders to the ledger.
type Service struct {
	log    *slog.Logger
	orders OrderRepository
	stocks StockLedger
	events EventPublisher
	tracer trace.Tracer
}

func NewService(log *slog.Logger, orders OrderRepository, stocks StockLedger, events EventPublisher) *Service {
	return &Service{
		log:    log,
		orders: orders,
		stocks: stocks,
		events: events,
		tracer: otel.Tracer("checkout"),
	}
}

// Checkout allocates the cart item by item. Unknown keys are skipped,
// over-requests are clamped to the available stock with a shortage notice,
// and each item's allocation is final once applied: a later failure does not
// roll earlier decrements back.
func (s *Service) Checkout(ctx context.Context, customer Customer, cart map[string]int64) (domain.Order, []string, error) {
	ctx, span := s.tracer.Start(ctx, "Checkout")
	defer span.End()

	if len(cart) == 0 {
		return domain.Order{}, nil, domain.ErrEmptyCart
	}
	keys := make([]string, 0, len(cart))
	for key, qty := range cart {
		if qty <= 0 {
			return domain.Order{}, nil, domain.ErrInvalidQuantity
		}
		keys = append(keys, key)
	}
	// A JSON cart has no inherent order; sorting keeps allocation and
	// notice order stable across requests.
	sort.Strings(keys)

	var lines []domain.LineItem
	var notices []string
	for _, key := range keys {
		requested := cart[key]

		item, err := s.stocks.Get(ctx, key)
		if errors.Is(err, catalogdomain.ErrItemNotFound) {
			continue
		}
		if err != nil {
			return domain.Order{}, nil, fmt.Errorf("look up %s: %w", key, err)
		}

		allocated, err := s.stocks.Decrement(ctx, key, requested)
		if errors.Is(err, catalogdomain.ErrItemNotFound) {
			// Removed between lookup and allocation.
			continue
		}
		if err != nil {
			return domain.Order{}, nil, fmt.Errorf("allocate %s: %w", key, err)
		}
		if allocated < requested {
			notices = append(notices, fmt.Sprintf("%s: only %d available", item.Name, allocated))
		}
		lines = append(lines, domain.LineItem{
			Key:   key,
			Name:  item.Name,
			Price: item.Price,
			Qty:   allocated,
		})
	}

	order, err := s.orders.Append(ctx, domain.NewOrder(customer.Name, customer.Email, lines))
	if err != nil {
		return domain.Order{}, nil, fmt.Errorf("append order: %w", err)
	}

	if s.events != nil {
		placed := domain.OrderPlaced{
			OrderID:  order.ID,
			Customer: order.CustomerEmail,
			Total:    order.Total,
			Lines:    order.Lines,
		}
		if err := s.events.Publish(ctx, "OrderPlaced", fmt.Sprintf("order-%d", order.ID), placed); err != nil {
			s.log.ErrorContext(ctx, "order event publish failed", "order_id", order.ID, "err", err)
		}
	}

	s.log.InfoContext(ctx, "order placed",
		"order_id", order.ID, "total", order.Total, "notices", len(notices))
	return order, notices, nil
}

// List returns the full ledger in append order.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// ListRecentFirst returns the ledger newest first, for admin views.
func (s *Service) ListRecentFirst(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(orders)-1; i < j; i, j = i+1, j-1 {
		orders[i], orders[j] = orders[j], orders[i]
	}
	return orders, nil
}

// Clear empties the ledger. Used by the admin reset.
func (s *Service) Clear(ctx context.Context) error {
	return s.orders.Clear(ctx)
}
