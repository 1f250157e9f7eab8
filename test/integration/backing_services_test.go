package integration

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	agentsdomain "github.com/dmehra2102/smart-inventory/internal/agents/domain"
	agentspg "github.com/dmehra2102/smart-inventory/internal/agents/infrastructure/postgres"
	catalogdomain "github.com/dmehra2102/smart-inventory/internal/catalog/domain"
	catalogpg "github.com/dmehra2102/smart-inventory/internal/catalog/infrastructure/postgres"
	identitydomain "github.com/dmehra2102/smart-inventory/internal/identity/domain"
	identitypg "github.com/dmehra2102/smart-inventory/internal/identity/infrastructure/postgres"
	identityredis "github.com/dmehra2102/smart-inventory/internal/identity/infrastructure/redis"
	orderdomain "github.com/dmehra2102/smart-inventory/internal/order/domain"
	orderkafka "github.com/dmehra2102/smart-inventory/internal/order/infrastructure/kafka"
	orderpg "github.com/dmehra2102/smart-inventory/internal/order/infrastructure/postgres"
)

// TestBackingServices runs the postgres, redis and kafka adapters against real
// containers. One Setup pays the container cost for all subtests.
func TestBackingServices(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	env, err := Setup(ctx)
	if err != nil {
		t.Fatalf("setup backing services: %v", err)
	}
	t.Cleanup(func() { env.Teardown(context.Background()) })

	log := slog.New(slog.DiscardHandler)

	pool, err := pgxpool.New(ctx, env.PGURL)
	if err != nil {
		t.Fatalf("pg connect: %v", err)
	}
	t.Cleanup(pool.Close)

	rdb := goredis.NewClient(&goredis.Options{Addr: env.RedisAddr})
	t.Cleanup(func() { _ = rdb.Close() })

	t.Run("catalog repository", func(t *testing.T) {
		repo := catalogpg.NewRepository(log, pool)
		if err := repo.Migrate(ctx); err != nil {
			t.Fatalf("migrate: %v", err)
		}

		if err := repo.Create(ctx, catalogdomain.Item{Key: "chips", Name: "Chips", Stock: 6, Price: 15}); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := repo.Create(ctx, catalogdomain.Item{Key: "chips", Name: "Chips", Stock: 1, Price: 1}); !errors.Is(err, catalogdomain.ErrItemExists) {
			t.Fatalf("duplicate create: got %v, want ErrItemExists", err)
		}

		applied, err := repo.Decrement(ctx, "chips", 8)
		if err != nil {
			t.Fatalf("decrement: %v", err)
		}
		if applied != 6 {
			t.Fatalf("decrement applied = %d, want 6", applied)
		}
		it, err := repo.Get(ctx, "chips")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if it.Stock != 0 {
			t.Fatalf("stock after drain = %d, want 0", it.Stock)
		}

		newStock, err := repo.Increment(ctx, "chips", 10)
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		if newStock != 10 {
			t.Fatalf("stock after restock = %d, want 10", newStock)
		}

		if _, err := repo.Get(ctx, "no-such-item"); !errors.Is(err, catalogdomain.ErrItemNotFound) {
			t.Fatalf("get unknown: got %v, want ErrItemNotFound", err)
		}
		if err := repo.Delete(ctx, "chips"); err != nil {
			t.Fatalf("delete: %v", err)
		}
	})

	t.Run("order repository", func(t *testing.T) {
		repo := orderpg.NewRepository(log, pool)
		if err := repo.Migrate(ctx); err != nil {
			t.Fatalf("migrate: %v", err)
		}

		o := orderdomain.NewOrder("Jane Doe", "jane@example.com", []orderdomain.LineItem{
			{Key: "chips", Name: "Chips", Price: 15, Qty: 2},
		})
		first, err := repo.Append(ctx, o)
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		second, err := repo.Append(ctx, o)
		if err != nil {
			t.Fatalf("append second: %v", err)
		}
		if second.ID <= first.ID {
			t.Fatalf("order ids not increasing: %d then %d", first.ID, second.ID)
		}

		got, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("len(orders) = %d, want 2", len(got))
		}
		if got[0].Total != 30 || len(got[0].Lines) != 1 {
			t.Fatalf("order round-trip: total=%d lines=%d", got[0].Total, len(got[0].Lines))
		}

		if err := repo.Clear(ctx); err != nil {
			t.Fatalf("clear: %v", err)
		}
		got, err = repo.List(ctx)
		if err != nil {
			t.Fatalf("list after clear: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("orders remain after clear: %d", len(got))
		}
	})

	t.Run("agent event log", func(t *testing.T) {
		eventLog := agentspg.NewEventLog(log, pool)
		if err := eventLog.Migrate(ctx); err != nil {
			t.Fatalf("migrate: %v", err)
		}

		now := time.Now().UTC()
		for _, e := range []agentsdomain.LogEntry{
			{Kind: agentsdomain.KindMonitoring, Item: "Chips", Stock: 2, At: now},
			{Kind: agentsdomain.KindMonitoring, Item: "Salt", Stock: 1, At: now},
			{Kind: agentsdomain.KindForecasting, Item: "Rice", Stock: 10, At: now},
		} {
			if err := eventLog.Append(ctx, e); err != nil {
				t.Fatalf("append: %v", err)
			}
		}

		monitoring, err := eventLog.ListRecentFirst(ctx, agentsdomain.KindMonitoring)
		if err != nil {
			t.Fatalf("list monitoring: %v", err)
		}
		if len(monitoring) != 2 || monitoring[0].Item != "Salt" {
			t.Fatalf("monitoring order: got %+v", monitoring)
		}

		if err := eventLog.Clear(ctx); err != nil {
			t.Fatalf("clear: %v", err)
		}
		monitoring, err = eventLog.ListRecentFirst(ctx, agentsdomain.KindMonitoring)
		if err != nil {
			t.Fatalf("list after clear: %v", err)
		}
		if len(monitoring) != 0 {
			t.Fatalf("entries remain after clear: %d", len(monitoring))
		}
	})

	t.Run("user repository", func(t *testing.T) {
		users := identitypg.NewUserRepository(log, pool)
		if err := users.Migrate(ctx); err != nil {
			t.Fatalf("migrate: %v", err)
		}

		u := identitydomain.User{
			FirstName:    "Store",
			LastName:     "Admin",
			Email:        "admin",
			PasswordHash: identitydomain.HashPassword("admin123"),
			Role:         identitydomain.RoleAdmin,
		}
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := users.Create(ctx, u); !errors.Is(err, identitydomain.ErrUserExists) {
			t.Fatalf("duplicate create: got %v, want ErrUserExists", err)
		}
		got, err := users.FindByEmail(ctx, "admin")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got.Role != identitydomain.RoleAdmin || got.PasswordHash != u.PasswordHash {
			t.Fatalf("user round-trip mismatch: %+v", got)
		}
		if _, err := users.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, identitydomain.ErrUserNotFound) {
			t.Fatalf("find unknown: got %v, want ErrUserNotFound", err)
		}
	})

	t.Run("redis sessions", func(t *testing.T) {
		sessions := identityredis.NewSessionStore(rdb, time.Minute)
		sess := identitydomain.Session{Token: "tok-1", Role: identitydomain.RoleCustomer, Name: "Jane Doe", Email: "jane@example.com"}
		if err := sessions.Put(ctx, sess); err != nil {
			t.Fatalf("put: %v", err)
		}
		got, err := sessions.Get(ctx, "tok-1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != sess {
			t.Fatalf("session round-trip: got %+v", got)
		}
		if err := sessions.Delete(ctx, "tok-1"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := sessions.Get(ctx, "tok-1"); !errors.Is(err, identitydomain.ErrUnauthorized) {
			t.Fatalf("get after delete: got %v, want ErrUnauthorized", err)
		}
	})

	t.Run("kafka dispatcher", func(t *testing.T) {
		writer := orderkafka.NewWriter(env.KAddr)
		t.Cleanup(func() { _ = writer.Close() })

		dispatch := orderkafka.NewDispatcher(log, writer, "inventory.events.test")
		err := dispatch.Publish(ctx, "StockLow", "chips", map[string]any{"key": "chips", "stock": int64(2)})
		if err != nil {
			t.Fatalf("publish: %v", err)
		}
	})
}
