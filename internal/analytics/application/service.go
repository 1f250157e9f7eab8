package application

import (
	"context"
	"sort"

	"github.com/dmehra2102/smart-inventory/internal/order/domain"
)

// OrderLister is the read-only slice of the order ledger analytics needs.
type OrderLister interface {
	List(ctx context.Context) ([]domain.Order, error)
}

// DailyRevenue is one calendar-date bucket.
type DailyRevenue struct {
	Date    string `json:"date"` // YYYY-MM-DD, UTC
	Revenue int64  `json:"revenue"`
}

// Report aggregates all PAID orders. Daily is sorted ascending by date.
type Report struct {
	TotalRevenue int64          `json:"totalRevenue"`
	OrderCount   int            `json:"orderCount"`
	Daily        []DailyRevenue `json:"daily"`
}

// Service is a pure read aggregation; it is safe to run concurrently with
// checkouts and the agents.
type Service struct {
	orders OrderLister
}

func NewService(orders OrderLister) *Service {
	return &Service{orders: orders}
}

func (s *Service) Report(ctx context.Context) (Report, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return Report{}, err
	}

	var report Report
	buckets := map[string]int64{}
	for _, o := range orders {
		if o.Status != domain.StatusPaid {
			continue
		}
		report.TotalRevenue += o.Total
		report.OrderCount++
		buckets[o.CreatedAt.UTC().Format("2006-01-02")] += o.Total
	}

	report.Daily = make([]DailyRevenue, 0, len(buckets))
	for date, revenue := range buckets {
		report.Daily = append(report.Daily, DailyRevenue{Date: date, Revenue: revenue})
	}
	sort.Slice(report.Daily, func(i, j int) bool {
		return report.Daily[i].Date < report.Daily[j].Date
	})
	return report, nil
}
