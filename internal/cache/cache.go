package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// EntitlementEntry — закэшированный статус подписки пользователя.
type EntitlementEntry struct {
	Active bool
	// ExpiresAt — окончание подписки; нулевое значение — бессрочно или неизвестно.
	ExpiresAt time.Time
	CheckedAt time.Time
}

// EntitlementCache — минимальный контракт кэша статуса подписки.
type EntitlementCache interface {
	// Get возвращает запись и признак её наличия в кэше.
	Get(ctx context.Context, userID string) (*EntitlementEntry, bool, error)
	// Set сохраняет запись с TTL.
	Set(ctx context.Context, userID string, e *EntitlementEntry, ttl time.Duration) error
	// Invalidate удаляет запись (после покупки статус надо перечитать).
	Invalidate(ctx context.Context, userID string) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "neuronet:ent:".
func NewRedisCache(ctx context.Context, redisURL, prefix string) (EntitlementCache, error) {
	if prefix == "" {
		prefix = "neuronet:ent:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(userID string) string { return c.prefix + userID }

// Храним как Redis Hash с полями: act (0/1), exp (unix, 0 — нет), chk (unix).
func (c *redisCache) Get(ctx context.Context, userID string) (*EntitlementEntry, bool, error) {
	m, err := c.rdb.HGetAll(ctx, c.key(userID)).Result()
	if err != nil {
		return nil, false, err
	}

	if len(m) == 0 {
		return nil, false, nil
	}

	expUnix, err := strconv.ParseInt(m["exp"], 10, 64)
	if err != nil {
		return nil, false, err
	}

	chkUnix, err := strconv.ParseInt(m["chk"], 10, 64)
	if err != nil {
		return nil, false, err
	}

	e := &EntitlementEntry{
		Active:    m["act"] == "1",
		CheckedAt: time.Unix(chkUnix, 0).UTC(),
	}
	if expUnix > 0 {
		e.ExpiresAt = time.Unix(expUnix, 0).UTC()
	}

	return e, true, nil
}

func (c *redisCache) Set(ctx context.Context, userID string, e *EntitlementEntry, ttl time.Duration) error {
	var exp int64
	if !e.ExpiresAt.IsZero() {
		exp = e.ExpiresAt.Unix()
	}

	kv := map[string]string{
		"act": boolTo01(e.Active),
		"exp": strconv.FormatInt(exp, 10),
		"chk": strconv.FormatInt(e.CheckedAt.Unix(), 10),
	}

	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, c.key(userID), kv)
	pipe.Expire(ctx, c.key(userID), ttl)

	_, err := pipe.Exec(ctx)
	return err
}

func (c *redisCache) Invalidate(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, c.key(userID)).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }

func boolTo01(b bool) string {
	if b {
		return "1"
	}

	return "0"
}
