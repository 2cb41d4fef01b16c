package queue_test

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/unclebandit/campaign-studio-backend/internal/model"
	"github.com/unclebandit/campaign-studio-backend/internal/queue"
)

// Every delivery goroutine must be finished once Wait returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestInMemoryQueue_PublishWithoutSubscribers(t *testing.T) {
	q := queue.NewInMemoryQueue(zap.NewNop())

	err := q.Publish(queue.TopicCardsGenerated, model.CardsGeneratedEvent{BatchID: "b-1"})
	assert.Error(t, err)
}

func TestInMemoryQueue_DeliversJSON(t *testing.T) {
	q := queue.NewInMemoryQueue(zap.NewNop())

	var mu sync.Mutex
	var got []model.CardsGeneratedEvent
	require.NoError(t, q.Subscribe(queue.TopicCardsGenerated, func(body []byte) error {
		var e model.CardsGeneratedEvent
		if err := json.Unmarshal(body, &e); err != nil {
			return err
		}
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
		return nil
	}))

	require.NoError(t, q.Publish(queue.TopicCardsGenerated, model.CardsGeneratedEvent{BatchID: "b-1", CardCount: 3}))
	q.Wait()

	require.Len(t, got, 1)
	assert.Equal(t, "b-1", got[0].BatchID)
	assert.Equal(t, 3, got[0].CardCount)
}

func TestInMemoryQueue_RetriesFailedHandler(t *testing.T) {
	q := queue.NewInMemoryQueue(zap.NewNop())

	var mu sync.Mutex
	attempts := 0
	require.NoError(t, q.Subscribe("retry", func(body []byte) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		return nil
	}))

	require.NoError(t, q.Publish("retry", map[string]int{"n": 1}))
	q.Wait()

	assert.Equal(t, 2, attempts)
}

func TestStartCardsGeneratedSubscriber(t *testing.T) {
	q := queue.NewInMemoryQueue(zap.NewNop())
	require.NoError(t, queue.StartCardsGeneratedSubscriber(q, zap.NewNop()))

	assert.NoError(t, q.Publish(queue.TopicCardsGenerated, model.CardsGeneratedEvent{BatchID: "b-2"}))
	assert.NoError(t, q.Publish(queue.TopicCardsGenerated, "not an event"))
	q.Wait()
}
