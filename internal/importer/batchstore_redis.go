package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/inventorypulse/inventory-service/internal/model"
	"github.com/inventorypulse/inventory-service/pkg/cache"
)

const batchKeyPrefix = "import:batch:"

// RedisBatchStore stores pending batches in redis with a native TTL, so
// expiry needs no sweeping at all.
type RedisBatchStore struct {
	client *cache.RedisClient
	ttl    time.Duration
}

func NewRedisBatchStore(client *cache.RedisClient, ttl time.Duration) *RedisBatchStore {
	return &RedisBatchStore{client: client, ttl: ttl}
}

func (s *RedisBatchStore) Put(ctx context.Context, batch *model.ImportBatch) (string, error) {
	now := time.Now()
	id := uuid.NewString()

	batch.BatchID = id
	batch.CreatedAt = now
	batch.ExpiresAt = now.Add(s.ttl)

	data, err := json.Marshal(batch)
	if err != nil {
		return "", fmt.Errorf("marshal batch: %w", err)
	}

	if err := s.client.Client.Set(ctx, batchKeyPrefix+id, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store batch: %w", err)
	}
	return id, nil
}

func (s *RedisBatchStore) Get(ctx context.Context, batchID string) (*model.ImportBatch, error) {
	data, err := s.client.Client.Get(ctx, batchKeyPrefix+batchID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}

	var batch model.ImportBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	if batch.Expired(time.Now()) {
		// Redis TTL should have evicted it already; treat as gone either way.
		_ = s.client.Client.Del(ctx, batchKeyPrefix+batchID).Err()
		return nil, ErrBatchNotFound
	}
	return &batch, nil
}

func (s *RedisBatchStore) Discard(ctx context.Context, batchID string) error {
	return s.client.Client.Del(ctx, batchKeyPrefix+batchID).Err()
}
