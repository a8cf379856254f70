package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"supplyledger/internal/ledger/models"
	"supplyledger/pkg/domain"
	"supplyledger/pkg/platform/circuit"
)

const tokenClassKeyPrefix = "ledger:token_class:"

// TokenClassStore is the store being fronted by the cache.
type TokenClassStore interface {
	Create(ctx context.Context, tc *models.TokenClass) error
	FindByID(ctx context.Context, id domain.TokenClassID) (*models.TokenClass, error)
}

// CachedTokenClasses is a read-through Redis cache over a token class store.
// Token classes never change after minting, so entries are only populated
// on reads and never invalidated. Redis failures fall back to the store, and
// a run of them trips a breaker that keeps reads off Redis until a probe
// succeeds.
type CachedTokenClasses struct {
	next    TokenClassStore
	client  *redis.Client
	ttl     time.Duration
	breaker *circuit.Breaker
	logger  *slog.Logger
}

type Option func(*CachedTokenClasses)

func WithLogger(logger *slog.Logger) Option {
	return func(c *CachedTokenClasses) {
		c.logger = logger
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *CachedTokenClasses) {
		c.breaker = b
	}
}

func NewCachedTokenClasses(next TokenClassStore, client *redis.Client, ttl time.Duration, opts ...Option) *CachedTokenClasses {
	c := &CachedTokenClasses{
		next:    next,
		client:  client,
		ttl:     ttl,
		breaker: circuit.New("token_class_cache"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Create goes straight to the store. The class is cached on first read,
// after its transaction has had the chance to commit.
func (c *CachedTokenClasses) Create(ctx context.Context, tc *models.TokenClass) error {
	return c.next.Create(ctx, tc)
}

func (c *CachedTokenClasses) FindByID(ctx context.Context, id domain.TokenClassID) (*models.TokenClass, error) {
	if !c.breaker.Allow() {
		return c.next.FindByID(ctx, id)
	}

	key := tokenClassKeyPrefix + id.String()
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		c.recordSuccess(ctx)
		var tc models.TokenClass
		if jsonErr := json.Unmarshal(raw, &tc); jsonErr == nil {
			return &tc, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable token class cache entry", "token_class_id", id)
	case errors.Is(err, redis.Nil):
		c.recordSuccess(ctx)
	default:
		c.recordFailure(ctx, "token class cache read failed", id, err)
		return c.next.FindByID(ctx, id)
	}

	tc, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(tc); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.recordFailure(ctx, "token class cache write failed", id, err)
		}
	}
	return tc, nil
}

func (c *CachedTokenClasses) recordSuccess(ctx context.Context) {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "token class cache recovered", "breaker", c.breaker.Name())
	}
}

func (c *CachedTokenClasses) recordFailure(ctx context.Context, msg string, id domain.TokenClassID, err error) {
	c.logger.WarnContext(ctx, msg, "token_class_id", id, "error", err)
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "token class cache disabled after repeated redis failures", "breaker", c.breaker.Name())
	}
}
