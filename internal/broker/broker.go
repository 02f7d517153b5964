package broker

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrEmpty is returned by Pop when no message arrived before the timeout.
var ErrEmpty = errors.New("queue is empty")

type Config struct {
	Addr     string
	Username string
	Password string
	DB       int
	UseTLS   bool
}

// Broker is a thin Redis wrapper for lists (queues), sorted sets (delayed messages) and sets (results).
type Broker struct {
	client *redis.Client
}

func New(cfg Config) *Broker {
	opts := &redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return &Broker{client: redis.NewClient(opts)}
}

// NewFromClient wraps an existing client.
func NewFromClient(client *redis.Client) *Broker {
	return &Broker{client: client}
}

func (b *Broker) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *Broker) Close() error {
	return b.client.Close()
}

// Push appends a message to a queue (LPUSH, consumed from the right).
func (b *Broker) Push(ctx context.Context, queue string, payload []byte) error {
	if err := b.client.LPush(ctx, queue, payload).Err(); err != nil {
		return fmt.Errorf("push to %s: %w", queue, err)
	}
	return nil
}

// Pop blocks up to timeout for a message on any of queues.
func (b *Broker) Pop(ctx context.Context, timeout time.Duration, queues ...string) (string, []byte, error) {
	result, err := b.client.BRPop(ctx, timeout, queues...).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil, ErrEmpty
		}
		return "", nil, err
	}
	if len(result) != 2 {
		return "", nil, fmt.Errorf("unexpected BRPOP reply: %v", result)
	}
	return result[0], []byte(result[1]), nil
}

// PushDelayed stores a message in a sorted set scored by its due time in unix milliseconds.
func (b *Broker) PushDelayed(ctx context.Context, key string, payload []byte, due time.Time) error {
	err := b.client.ZAdd(ctx, key, redis.Z{
		Score:  float64(due.UnixMilli()),
		Member: payload,
	}).Err()
	if err != nil {
		return fmt.Errorf("schedule on %s: %w", key, err)
	}
	return nil
}

// PromoteDue moves up to limit due messages from the delayed set to queue.
// ZREM decides which caller owns a message, so concurrent promoters never duplicate it.
func (b *Broker) PromoteDue(ctx context.Context, delayedKey, queue string, now time.Time, limit int64) (int, error) {
	members, err := b.client.ZRangeByScore(ctx, delayedKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.UnixMilli(), 10),
		Count: limit,
	}).Result()
	if err != nil {
		return 0, err
	}

	promoted := 0
	for _, member := range members {
		removed, err := b.client.ZRem(ctx, delayedKey, member).Result()
		if err != nil {
			return promoted, err
		}
		if removed == 0 {
			continue
		}
		if err := b.client.LPush(ctx, queue, member).Err(); err != nil {
			return promoted, err
		}
		promoted++
	}
	return promoted, nil
}

// AddToSet stores a message in a set (SADD).
func (b *Broker) AddToSet(ctx context.Context, key string, payload []byte) error {
	if err := b.client.SAdd(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("add to %s: %w", key, err)
	}
	return nil
}

// PopFromSet removes and returns up to count random members (SPOP count).
func (b *Broker) PopFromSet(ctx context.Context, key string, count int64) ([][]byte, error) {
	members, err := b.client.SPopN(ctx, key, count).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	out := make([][]byte, 0, len(members))
	for _, m := range members {
		out = append(out, []byte(m))
	}
	return out, nil
}
