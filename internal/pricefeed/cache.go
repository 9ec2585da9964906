package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// QuoteCache stores quotes by symbol.
type QuoteCache interface {
	Get(ctx context.Context, symbol string) (model.PriceQuote, error)
	Set(ctx context.Context, q model.PriceQuote, ttl time.Duration) error
}

// RedisCache keeps each quote in a hash at "quote:{symbol}" with fields
// "price", "currency" and "ts" (Unix nanoseconds).
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}

// NewRedisCache creates a RedisCache on rdb.
func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func quoteKey(symbol string) string {
	return "quote:" + symbol
}

// Set stores q and lets it expire after ttl.
func (c *RedisCache) Set(ctx context.Context, q model.PriceQuote, ttl time.Duration) error {
	key := quoteKey(q.Symbol)
	fields := map[string]interface{}{
		"price":    strconv.FormatFloat(q.Price, 'f', -1, 64),
		"currency": q.Currency,
		"ts":       strconv.FormatInt(q.AsOf.UnixNano(), 10),
	}

	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: set quote %s: %w", q.Symbol, err)
	}
	return nil
}

// Get returns the cached quote or apperrors.ErrQuoteNotCached.
func (c *RedisCache) Get(ctx context.Context, symbol string) (model.PriceQuote, error) {
	vals, err := c.rdb.HGetAll(ctx, quoteKey(symbol)).Result()
	if err != nil {
		return model.PriceQuote{}, fmt.Errorf("redis: get quote %s: %w", symbol, err)
	}
	return decodeQuote(symbol, vals)
}

func decodeQuote(symbol string, vals map[string]string) (model.PriceQuote, error) {
	priceStr, ok := vals["price"]
	if !ok {
		return model.PriceQuote{}, apperrors.ErrQuoteNotCached
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return model.PriceQuote{}, fmt.Errorf("redis: parse price %s: %w", symbol, err)
	}

	tsStr, ok := vals["ts"]
	if !ok {
		return model.PriceQuote{}, apperrors.ErrQuoteNotCached
	}
	tsNano, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return model.PriceQuote{}, fmt.Errorf("redis: parse ts %s: %w", symbol, err)
	}

	return model.PriceQuote{
		Symbol:   symbol,
		Price:    price,
		Currency: vals["currency"],
		AsOf:     time.Unix(0, tsNano).UTC(),
	}, nil
}

// CachedProvider serves quotes from a cache and falls back to the wrapped
// provider on a miss. Cache failures are logged and never fail a quote.
type CachedProvider struct {
	next   Provider
	cache  QuoteCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedProvider wraps next with cache.
func NewCachedProvider(next Provider, cache QuoteCache, ttl time.Duration, logger *slog.Logger) *CachedProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedProvider{next: next, cache: cache, ttl: ttl, logger: logger}
}

// Quote implements Provider.
func (p *CachedProvider) Quote(ctx context.Context, symbol string) (model.PriceQuote, error) {
	q, err := p.cache.Get(ctx, symbol)
	if err == nil {
		return q, nil
	}
	if !errors.Is(err, apperrors.ErrQuoteNotCached) {
		p.logger.Warn("quote cache read failed", "symbol", symbol, "error", err)
	}

	q, err = p.next.Quote(ctx, symbol)
	if err != nil {
		return model.PriceQuote{}, err
	}

	if err := p.cache.Set(ctx, q, p.ttl); err != nil {
		p.logger.Warn("quote cache write failed", "symbol", symbol, "error", err)
	}
	return q, nil
}
