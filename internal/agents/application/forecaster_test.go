package application

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	agentsdomain "github.com/dmehra2102/smart-inventory/internal/agents/domain"
	agentsmem "github.com/dmehra2102/smart-inventory/internal/agents/infrastructure/memory"
	catalogapp "github.com/dmehra2102/smart-inventory/internal/catalog/application"
	catalogdomain "github.com/dmehra2102/smart-inventory/internal/catalog/domain"
	catalogmem "github.com/dmehra2102/smart-inventory/internal/catalog/infrastructure/memory"
)

func (f *fixture) forecastingEntries(t *testing.T) []agentsdomain.LogEntry {
	t.Helper()
	entries, err := f.eventLog.ListRecentFirst(context.Background(), agentsdomain.KindForecasting)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	return entries
}

func TestForecasterRestocksExhaustedItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addItem(t, "Chips", 0)
	f.addItem(t, "Rice", 5)

	if err := f.forecast.Cycle(ctx); err != nil {
		t.Fatalf("cycle: %v", err)
	}

	chips, _ := f.catalog.Get(ctx, "chips")
	if chips.Stock != 10 {
		t.Errorf("chips stock = %d, want 10", chips.Stock)
	}
	rice, _ := f.catalog.Get(ctx, "rice")
	if rice.Stock != 5 {
		t.Errorf("rice stock = %d, want untouched 5", rice.Stock)
	}

	entries := f.forecastingEntries(t)
	if len(entries) != 1 {
		t.Fatalf("got %d forecasting entries, want 1", len(entries))
	}
	if entries[0].Item != "Chips" || entries[0].Stock != 10 {
		t.Errorf("entry = %+v, want Chips at post-restock 10", entries[0])
	}
}

func TestForecasterFiresOncePerZeroObservation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addItem(t, "Chips", 0)

	for i := 0; i < 3; i++ {
		if err := f.forecast.Cycle(ctx); err != nil {
			t.Fatalf("cycle %d: %v", i, err)
		}
	}
	if n := len(f.forecastingEntries(t)); n != 1 {
		t.Errorf("got %d entries across repeated cycles, want 1", n)
	}
	chips, _ := f.catalog.Get(ctx, "chips")
	if chips.Stock != 10 {
		t.Errorf("stock = %d, want 10 (restocked exactly once)", chips.Stock)
	}
}

func TestForecasterPrimesMonitoringEdgeState(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.DiscardHandler)
	catalog := catalogapp.NewService(log, catalogmem.NewRepository())
	eventLog := agentsmem.NewEventLog()
	state := NewEdgeState()
	// Restock quantity below the threshold: the replenished item lands
	// inside the low band.
	forecast := NewForecaster(log, catalog, eventLog, state, nil, 2)
	monitor := NewMonitor(log, catalog, eventLog, state, nil, DefaultLowStockThreshold)

	if _, err := catalog.AddItem(ctx, "Chips", 0, 15); err != nil {
		t.Fatal(err)
	}
	if err := forecast.Cycle(ctx); err != nil {
		t.Fatalf("forecast cycle: %v", err)
	}
	if err := monitor.Cycle(ctx); err != nil {
		t.Fatalf("monitor cycle: %v", err)
	}

	entries, _ := eventLog.ListRecentFirst(ctx, agentsdomain.KindMonitoring)
	if len(entries) != 0 {
		t.Errorf("monitoring fired on just-restocked item: %+v", entries)
	}
	if last, ok := state.Last("chips"); !ok || last != 2 {
		t.Errorf("edge state = %d,%v, want post-restock 2", last, ok)
	}
}

type flakyScanner struct {
	StockScanner
	failKey string
}

func (s *flakyScanner) Increment(ctx context.Context, key string, qty int64) (int64, error) {
	if key == s.failKey {
		return 0, errors.New("storage down")
	}
	return s.StockScanner.Increment(ctx, key, qty)
}

func TestForecasterContinuesPastItemFailure(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.DiscardHandler)
	repo := catalogmem.NewRepository()
	catalog := catalogapp.NewService(log, repo)
	eventLog := agentsmem.NewEventLog()
	state := NewEdgeState()

	for _, it := range []catalogdomain.Item{
		{Key: "biscuits", Name: "Biscuits", Stock: 0, Price: 10},
		{Key: "chips", Name: "Chips", Stock: 0, Price: 15},
	} {
		if err := repo.Create(ctx, it); err != nil {
			t.Fatal(err)
		}
	}

	forecast := NewForecaster(log, &flakyScanner{StockScanner: catalog, failKey: "biscuits"}, eventLog, state, nil, DefaultRestockQuantity)
	if err := forecast.Cycle(ctx); err != nil {
		t.Fatalf("cycle: %v", err)
	}

	chips, _ := catalog.Get(ctx, "chips")
	if chips.Stock != 10 {
		t.Errorf("chips stock = %d, want 10 despite earlier item failing", chips.Stock)
	}
	biscuits, _ := catalog.Get(ctx, "biscuits")
	if biscuits.Stock != 0 {
		t.Errorf("biscuits stock = %d, want 0 until retried", biscuits.Stock)
	}

	// Next cycle, storage recovered.
	recovered := NewForecaster(log, catalog, eventLog, state, nil, DefaultRestockQuantity)
	if err := recovered.Cycle(ctx); err != nil {
		t.Fatalf("recovery cycle: %v", err)
	}
	biscuits, _ = catalog.Get(ctx, "biscuits")
	if biscuits.Stock != 10 {
		t.Errorf("biscuits stock = %d, want 10 after retry", biscuits.Stock)
	}
}

// Full scenario from the service's compatibility contract: stock drains to
// zero via checkout-like decrements, monitoring stays quiet at zero, the
// forecaster restocks to 10 and logs once.
func TestZeroStockHandoffBetweenAgents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addItem(t, "Chips", 6)

	if err := f.monitor.Cycle(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := f.catalog.Decrement(ctx, "chips", 8); err != nil {
		t.Fatal(err)
	}
	if err := f.monitor.Cycle(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(f.monitoringEntries(t)); n != 0 {
		t.Errorf("monitoring fired at zero stock: %d entries", n)
	}

	if err := f.forecast.Cycle(ctx); err != nil {
		t.Fatal(err)
	}
	chips, _ := f.catalog.Get(ctx, "chips")
	if chips.Stock != 10 {
		t.Errorf("stock = %d, want 10", chips.Stock)
	}
	if n := len(f.forecastingEntries(t)); n != 1 {
		t.Errorf("got %d forecasting entries, want 1", n)
	}
}
