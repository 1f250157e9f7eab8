package idempotency

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store remembers request keys for a TTL so retried submissions are not
// applied twice. Backed by redis SETNX.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Key(method, path, idempotencyKey string) string {
	return fmt.Sprintf("idem:%s:%s:%s", method, path, idempotencyKey)
}

func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, key, "1", s.ttl).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Middleware rejects repeats of requests carrying an Idempotency-Key header.
// Requests without the header pass through. A nil store disables the check.
func Middleware(log *slog.Logger, store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil {
				next.ServeHTTP(w, r)
				return
			}
			idemKey := r.Header.Get("Idempotency-Key")
			if idemKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := store.Key(r.Method, r.URL.Path, idemKey)
			seen, err := store.Seen(r.Context(), key)
			if err != nil {
				// The check is protective, not load-bearing; fail open.
				log.Error("idempotency check failed", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			if seen {
				log.Info("duplicate request skipped", "key", key)
				http.Error(w, `{"message":"duplicate request"}`, http.StatusConflict)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
