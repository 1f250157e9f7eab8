package domain

// OrderPlaced is published after a checkout has been recorded.
type OrderPlaced struct {
	OrderID  int64
	Customer string
	Total    int64
	Lines    []LineItem
}
