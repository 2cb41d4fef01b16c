package repository

import (
	"context"
	"sync"
	"time"

	appErrors "github.com/unclebandit/campaign-studio-backend/internal/errors"
	"github.com/unclebandit/campaign-studio-backend/internal/model"
)

// BatchRepositoryInterface keeps generated batches for the length of a UI session.
type BatchRepositoryInterface interface {
	Save(ctx context.Context, b *model.Batch) error
	GetByID(ctx context.Context, id string) (*model.Batch, error)
}

type memoryEntry struct {
	batch     model.Batch
	expiresAt time.Time
}

// MemoryBatchRepository is the default store when no Redis URL is configured.
type MemoryBatchRepository struct {
	TTL time.Duration
	Now func() time.Time

	mu      sync.Mutex
	batches map[string]memoryEntry
}

func NewMemoryBatchRepository(ttl time.Duration) *MemoryBatchRepository {
	return &MemoryBatchRepository{
		TTL:     ttl,
		Now:     time.Now,
		batches: make(map[string]memoryEntry),
	}
}

// ====================== Batch storage ======================

func (r *MemoryBatchRepository) Save(_ context.Context, b *model.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.Now()
	r.evictExpired(now)

	stored := *b
	stored.Cards = append([]model.CampaignCard(nil), b.Cards...)
	r.batches[b.ID] = memoryEntry{batch: stored, expiresAt: now.Add(r.TTL)}
	return nil
}

func (r *MemoryBatchRepository) GetByID(_ context.Context, id string) (*model.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.batches[id]
	if !ok || !r.Now().Before(entry.expiresAt) {
		delete(r.batches, id)
		return nil, appErrors.NewBatchNotFound(id)
	}

	b := entry.batch
	b.Cards = append([]model.CampaignCard(nil), entry.batch.Cards...)
	return &b, nil
}

// evictExpired must be called with mu held.
func (r *MemoryBatchRepository) evictExpired(now time.Time) {
	for id, entry := range r.batches {
		if !now.Before(entry.expiresAt) {
			delete(r.batches, id)
		}
	}
}
