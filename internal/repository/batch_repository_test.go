package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/campaign-studio-backend/internal/errors"
	"github.com/unclebandit/campaign-studio-backend/internal/model"
	"github.com/unclebandit/campaign-studio-backend/internal/repository"
)

func TestMemoryBatchRepository_SaveAndGet(t *testing.T) {
	repo := repository.NewMemoryBatchRepository(time.Hour)
	batch := &model.Batch{
		ID:          "b-1",
		ProductName: "iPhone 15 Pro",
		Cards:       []model.CampaignCard{{ID: "1_0", Subject: "Hello"}},
	}

	require.NoError(t, repo.Save(context.Background(), batch))

	// Mutating the caller's copy must not leak into the store.
	batch.Cards[0].Subject = "changed"

	got, err := repo.GetByID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Cards[0].Subject)
	assert.Equal(t, "iPhone 15 Pro", got.ProductName)
}

func TestMemoryBatchRepository_RoundTripsWholeBatch(t *testing.T) {
	generatedAt := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	want := &model.Batch{
		ID:          "b-2",
		ProductName: "PlayStation 5",
		Brand:       "Sony",
		GeneratedAt: generatedAt,
		Cards: []model.CampaignCard{
			{ID: "1_0", Day: "Monday", Type: model.CampaignTypePrimary, Source: model.SourceGenerated, Status: model.StatusScheduled, DateScheduled: "2026-10-19"},
			{ID: "1_1", Day: "late_month", Type: model.CampaignTypeWeeklyRecap, Source: model.SourceFallback, Status: model.StatusDraft, DateScheduled: "2026-10-22"},
		},
	}

	repo := repository.NewMemoryBatchRepository(time.Hour)
	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.GetByID(context.Background(), "b-2")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("batch mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryBatchRepository_Expires(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryBatchRepository(time.Hour)
	repo.Now = func() time.Time { return now }

	require.NoError(t, repo.Save(context.Background(), &model.Batch{ID: "b-1"}))

	now = now.Add(59 * time.Minute)
	_, err := repo.GetByID(context.Background(), "b-1")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = repo.GetByID(context.Background(), "b-1")
	var notFound *appErrors.ErrBatchNotFound
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "b-1", notFound.BatchID)
}

func TestMemoryBatchRepository_Unknown(t *testing.T) {
	repo := repository.NewMemoryBatchRepository(time.Hour)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.EqualError(t, err, "campaign card batch nope not found")
}
