package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/sangkips/pos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
)

const idempotencyPrefix = "idempotency:"

// RedisIdempotencyRepository keeps idempotency records in redis with a TTL
// matching their expiry.
type RedisIdempotencyRepository struct {
	client *redis.Client
	now    func() time.Time
}

var _ domainRepo.IdempotencyRepository = (*RedisIdempotencyRepository)(nil)

// NewRedisClient creates a redis client
func NewRedisClient(addr string, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedisIdempotencyRepository creates a redis backed idempotency repository
func NewRedisIdempotencyRepository(client *redis.Client) *RedisIdempotencyRepository {
	return &RedisIdempotencyRepository{client: client, now: time.Now}
}

func (c *RedisIdempotencyRepository) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisIdempotencyRepository) Close() error {
	return c.client.Close()
}

func (c *RedisIdempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyRecord, error) {
	val, err := c.client.Get(ctx, redisKey(key, userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record entity.IdempotencyRecord
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create stores the record only if the key is not taken yet
func (c *RedisIdempotencyRepository) Create(ctx context.Context, record *entity.IdempotencyRecord) error {
	if record == nil {
		return nil
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = c.now().UTC()
	}
	ttl := record.ExpiresAt.Sub(c.now())
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return c.client.SetNX(ctx, redisKey(record.Key, record.UserID), payload, ttl).Err()
}

// DeleteExpired is a no-op; redis drops the keys when their TTL runs out
func (c *RedisIdempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	return nil
}

func redisKey(key string, userID uuid.UUID) string {
	return idempotencyPrefix + userID.String() + ":" + key
}
