package purchases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/cache"
	"github.com/SonGokuFan1996/NeuroNet/internal/metrics"
	"github.com/SonGokuFan1996/NeuroNet/internal/pkg/log"
)

// Cached — Service со статусом права в кэше.
// Сбой кэша не ломает запрос: статус читается у провайдера.
type Cached struct {
	next  Service
	cache cache.EntitlementCache
	ttl   time.Duration
	now   func() time.Time
}

var _ Service = (*Cached)(nil)

func NewCached(next Service, c cache.EntitlementCache, ttl time.Duration) *Cached {
	return &Cached{next: next, cache: c, ttl: ttl, now: time.Now}
}

// Entitlement отдаёт запись кэша, пока подписка в ней не истекла.
func (c *Cached) Entitlement(ctx context.Context, userID string) (Entitlement, error) {
	const op = "purchases.Cached.Entitlement"

	lg := log.From(ctx)

	entry, ok, err := c.cache.Get(ctx, userID)
	switch {
	case err != nil:
		metrics.EntitlementCache.WithLabelValues("error").Inc()
		lg.Warn("entitlement_cache_get_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	case ok && !c.stale(entry):
		metrics.EntitlementCache.WithLabelValues("hit").Inc()
		return fromEntry(entry), nil
	default:
		metrics.EntitlementCache.WithLabelValues("miss").Inc()
	}

	ent, err := c.next.Entitlement(ctx, userID)
	if err != nil {
		return Entitlement{}, fmt.Errorf("%s: %w", op, err)
	}

	c.store(ctx, userID, ent)

	return ent, nil
}

func (c *Cached) Products(ctx context.Context, userID string, ids []string) ([]Product, error) {
	return c.next.Products(ctx, userID, ids)
}

// Purchase подтверждает покупку и сразу перезаписывает кэш новым статусом.
func (c *Cached) Purchase(ctx context.Context, userID, productID, receipt string) (Entitlement, error) {
	const op = "purchases.Cached.Purchase"

	ent, err := c.next.Purchase(ctx, userID, productID, receipt)
	if err != nil {
		return Entitlement{}, fmt.Errorf("%s: %w", op, err)
	}

	c.store(ctx, userID, ent)

	return ent, nil
}

// store пишет статус с TTL, не превышающим остаток подписки.
func (c *Cached) store(ctx context.Context, userID string, ent Entitlement) {
	now := c.now()
	entry := &cache.EntitlementEntry{Active: ent.Active, CheckedAt: now}

	ttl := c.ttl
	if ent.ExpiresAt != nil {
		entry.ExpiresAt = *ent.ExpiresAt
		if left := ent.ExpiresAt.Sub(now); ent.Active && left < ttl {
			ttl = left
		}
	}
	if ttl <= 0 {
		return
	}

	if err := c.cache.Set(ctx, userID, entry, ttl); err != nil {
		log.From(ctx).Warn("entitlement_cache_set_failed",
			slog.String("op", "purchases.Cached.store"),
			slog.String("err", err.Error()),
		)
	}
}

func (c *Cached) stale(e *cache.EntitlementEntry) bool {
	return e.Active && !e.ExpiresAt.IsZero() && !e.ExpiresAt.After(c.now())
}

func fromEntry(e *cache.EntitlementEntry) Entitlement {
	out := Entitlement{Active: e.Active}
	if !e.ExpiresAt.IsZero() {
		exp := e.ExpiresAt
		out.ExpiresAt = &exp
	}

	return out
}
