package domain

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrItemNotFound  = errors.New("catalog: item not found")
	ErrItemExists    = errors.New("catalog: item already exists")
	ErrNegativeValue = errors.New("catalog: negative value")
	ErrEmptyName     = errors.New("catalog: name is required")
)

// Item is one catalog entry. Key is immutable and derived from the display
// name; Stock and Price are mutated only through ledger operations.
type Item struct {
	Key   string
	Name  string
	Stock int64
	Price int64
}

var whitespace = regexp.MustCompile(`\s+`)

// KeyFor derives the item key: lowercase, whitespace runs collapsed to "-".
func KeyFor(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// NewItem validates and builds an item from admin input.
func NewItem(name string, stock, price int64) (Item, error) {
	if strings.TrimSpace(name) == "" {
		return Item{}, ErrEmptyName
	}
	if stock < 0 || price < 0 {
		return Item{}, ErrNegativeValue
	}
	return Item{
		Key:   KeyFor(name),
		Name:  name,
		Stock: stock,
		Price: price,
	}, nil
}
