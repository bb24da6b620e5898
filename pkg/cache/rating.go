// Package cache keeps computed title ratings in Redis so rating lookups do
// not aggregate the reviews table on every request.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"yamdb/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix     = "title:rating:"
	versionPrefix = "title:rating-version:"
	noRating      = "none"
	defaultTTL    = 5 * time.Minute
	versionTTL    = 24 * time.Hour
)

var errStale = errors.New("rating invalidated since read")

// RatingCache stores the mean score of a title. A cached nil rating means the
// title has no reviews yet.
//
// Every Invalidate bumps the title's version. Get reports the version it saw
// and Set only stores a rating computed under that same version, so a
// rating read before a concurrent review write is never cached.
type RatingCache interface {
	Get(ctx context.Context, titleID uuid.UUID) (rating *int, version int64, ok bool)
	Set(ctx context.Context, titleID uuid.UUID, version int64, rating *int)
	Invalidate(ctx context.Context, titleID uuid.UUID)
}

type redisRatingCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisRatingCache(client *redis.Client, ttl time.Duration, log *zap.Logger) RatingCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &redisRatingCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "rating")),
	}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

func key(titleID uuid.UUID) string {
	return keyPrefix + titleID.String()
}

func versionKey(titleID uuid.UUID) string {
	return versionPrefix + titleID.String()
}

func (c *redisRatingCache) Get(ctx context.Context, titleID uuid.UUID) (*int, int64, bool) {
	values, err := c.client.MGet(ctx, key(titleID), versionKey(titleID)).Result()
	if err != nil {
		c.log.Warn("Rating cache get failed", zap.Error(err), zap.String("title_id", titleID.String()))
		return nil, 0, false
	}

	var version int64
	if raw, isString := values[1].(string); isString {
		version, _ = strconv.ParseInt(raw, 10, 64)
	}

	raw, isString := values[0].(string)
	if !isString {
		return nil, version, false
	}

	if raw == noRating {
		return nil, version, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		c.log.Warn("Corrupt rating cache entry", zap.String("title_id", titleID.String()), zap.String("value", raw))
		return nil, version, false
	}

	return &value, version, true
}

func (c *redisRatingCache) Set(ctx context.Context, titleID uuid.UUID, version int64, rating *int) {
	value := noRating
	if rating != nil {
		value = strconv.Itoa(*rating)
	}

	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey(titleID)).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStale
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key(titleID), value, c.ttl)
			return nil
		})
		return err
	}, versionKey(titleID))

	switch {
	case err == nil:
	case errors.Is(err, errStale), errors.Is(err, redis.TxFailedErr):
		c.log.Debug("Skipped caching stale rating", zap.String("title_id", titleID.String()))
	default:
		c.log.Warn("Rating cache set failed", zap.Error(err), zap.String("title_id", titleID.String()))
	}
}

func (c *redisRatingCache) Invalidate(ctx context.Context, titleID uuid.UUID) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(titleID))
		pipe.Expire(ctx, versionKey(titleID), versionTTL)
		pipe.Del(ctx, key(titleID))
		return nil
	})
	if err != nil {
		c.log.Warn("Rating cache invalidate failed", zap.Error(err), zap.String("title_id", titleID.String()))
	}
}

type nopRatingCache struct{}

// NewNopRatingCache is used when Redis is not configured.
func NewNopRatingCache() RatingCache {
	return nopRatingCache{}
}

func (nopRatingCache) Get(context.Context, uuid.UUID) (*int, int64, bool) { return nil, 0, false }
func (nopRatingCache) Set(context.Context, uuid.UUID, int64, *int)        {}
func (nopRatingCache) Invalidate(context.Context, uuid.UUID)              {}
