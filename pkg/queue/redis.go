package queue

import (
	"context"
	"errors"
	"time"

	"github.com/alim08/stockpush/pkg/logger"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisBackend = "redis"

// RedisStream appends messages to a Redis Stream.
type RedisStream struct {
	rdb    *redis.Client
	stream string
}

// NewRedisStream parses redisURL and returns a producer for stream.
func NewRedisStream(redisURL, stream string) (*RedisStream, error) {
	if stream == "" {
		return nil, errors.New("redis stream name is empty")
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	// One producer per request: keep the pool small
	opt.PoolSize = 2
	opt.MinIdleConns = 0
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second
	return &RedisStream{rdb: redis.NewClient(opt), stream: stream}, nil
}

func (r *RedisStream) NewBatch(context.Context) (Batch, error) {
	return &memoryBatch{}, nil
}

// SendBatch writes every message with XADD inside one MULTI/EXEC so the batch
// lands entirely or not at all.
func (r *RedisStream) SendBatch(ctx context.Context, b Batch) error {
	mb, err := asMemoryBatch(redisBackend, b)
	if err != nil {
		return err
	}
	if mb.Len() == 0 {
		logger.Log.Debug("empty batch, nothing to send", zap.String("backend", redisBackend))
		return nil
	}
	return withMetrics(redisBackend, mb.Len(), func() error {
		_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, msg := range mb.msgs {
				pipe.XAdd(ctx, &redis.XAddArgs{
					Stream: r.stream,
					Values: msg.ToFields(),
				})
			}
			return nil
		})
		return err
	})
}

// Close closes the underlying connection pool
func (r *RedisStream) Close(context.Context) error {
	return r.rdb.Close()
}
