package domain

import (
	"errors"
	"time"
)

var (
	ErrEmptyCart       = errors.New("order: cart is empty")
	ErrInvalidQuantity = errors.New("order: quantity must be positive")
)

type OrderStatus string

// Payment is modeled as immediately settled; there is no pending state.
const StatusPaid OrderStatus = "PAID"

// LineItem snapshots the item at time of purchase. Price is never
// recomputed, even if the catalog price changes later.
type LineItem struct {
	Key      string
	Name     string
	Price    int64
	Qty      int64
	Subtotal int64
}

// Order is one fulfilled checkout. ID is assigned by the ledger in append
// order and the record is immutable once created.
type Order struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	Lines         []LineItem
	Total         int64
	Status        OrderStatus
	CreatedAt     time.Time
}

// NewOrder computes subtotals and the total from the allocated lines.
func NewOrder(customerName, customerEmail string, lines []LineItem) Order {
	var total int64
	for i := range lines {
		lines[i].Subtotal = lines[i].Qty * lines[i].Price
		total += lines[i].Subtotal
	}
	return Order{
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		Lines:         lines,
		Total:         total,
		Status:        StatusPaid,
		CreatedAt:     time.Now().UTC(),
	}
}
