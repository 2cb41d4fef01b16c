package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/unclebandit/campaign-studio-backend/internal/errors"
	"github.com/unclebandit/campaign-studio-backend/internal/model"
)

// RedisBatchRepository shares session batches across server instances.
type RedisBatchRepository struct {
	Client *redis.Client
	TTL    time.Duration
}

func batchKey(id string) string {
	return fmt.Sprintf("campaign_cards:batch:%s", id)
}

func (r *RedisBatchRepository) Save(ctx context.Context, b *model.Batch) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal batch %s: %w", b.ID, err)
	}
	if err := r.Client.Set(ctx, batchKey(b.ID), payload, r.TTL).Err(); err != nil {
		return fmt.Errorf("store batch %s: %w", b.ID, err)
	}
	return nil
}

func (r *RedisBatchRepository) GetByID(ctx context.Context, id string) (*model.Batch, error) {
	payload, err := r.Client.Get(ctx, batchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.NewBatchNotFound(id)
		}
		return nil, fmt.Errorf("load batch %s: %w", id, err)
	}

	var b model.Batch
	if err := json.Unmarshal(payload, &b); err != nil {
		return nil, fmt.Errorf("decode batch %s: %w", id, err)
	}
	return &b, nil
}
