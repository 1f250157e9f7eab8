package http

import (
	"time"

	agentsdomain "github.com/dmehra2102/smart-inventory/internal/agents/domain"
	catalogdomain "github.com/dmehra2102/smart-inventory/internal/catalog/domain"
	orderdomain "github.com/dmehra2102/smart-inventory/internal/order/domain"
)

type signupReq struct {
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type logoutReq struct {
	Token string `json:"token"`
}

type checkoutReq struct {
	Cart map[string]int64 `json:"cart"`
}

type addItemReq struct {
	Name  string `json:"name"`
	Stock int64  `json:"stock"`
	Price int64  `json:"price"`
}

type setStockReq struct {
	Key   string `json:"key"`
	Stock int64  `json:"stock"`
}

type setPriceReq struct {
	Key   string `json:"key"`
	Price int64  `json:"price"`
}

// shopItemView carries the per-item purchase hints the storefront renders.
// Warning is the stock count when at or below the low-stock threshold,
// otherwise null.
type shopItemView struct {
	Name    string `json:"name"`
	Stock   int64  `json:"stock"`
	Price   int64  `json:"price"`
	CanBuy  bool   `json:"canBuy"`
	Warning *int64 `json:"warning"`
}

type itemView struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Stock int64  `json:"stock"`
	Price int64  `json:"price"`
}

type logEntryView struct {
	Kind  string    `json:"kind"`
	Item  string    `json:"item"`
	Stock int64     `json:"stock"`
	Time  time.Time `json:"time"`
}

type lineItemView struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Qty      int64  `json:"qty"`
	Subtotal int64  `json:"subtotal"`
}

type orderView struct {
	ID            int64          `json:"id"`
	CustomerName  string         `json:"customerName"`
	CustomerEmail string         `json:"customerEmail"`
	Lines         []lineItemView `json:"lines"`
	Total         int64          `json:"total"`
	Status        string         `json:"status"`
	Time          time.Time      `json:"time"`
}

type adminDataResp struct {
	Inventory   []itemView     `json:"inventory"`
	Monitoring  []logEntryView `json:"monitoring"`
	Forecasting []logEntryView `json:"forecasting"`
}

func toItemViews(items []catalogdomain.Item) []itemView {
	out := make([]itemView, 0, len(items))
	for _, it := range items {
		out = append(out, itemView(it))
	}
	return out
}

func toLogViews(entries []agentsdomain.LogEntry) []logEntryView {
	out := make([]logEntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, logEntryView{
			Kind:  string(e.Kind),
			Item:  e.Item,
			Stock: e.Stock,
			Time:  e.At,
		})
	}
	return out
}

func toOrderViews(orders []orderdomain.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		lines := make([]lineItemView, 0, len(o.Lines))
		for _, l := range o.Lines {
			lines = append(lines, lineItemView(l))
		}
		out = append(out, orderView{
			ID:            o.ID,
			CustomerName:  o.CustomerName,
			CustomerEmail: o.CustomerEmail,
			Lines:         lines,
			Total:         o.Total,
			Status:        string(o.Status),
			Time:          o.CreatedAt,
		})
	}
	return out
}
