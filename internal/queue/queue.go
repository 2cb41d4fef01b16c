package queue

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/campaign-studio-backend/internal/model"
)

// TopicCardsGenerated carries a model.CardsGeneratedEvent for every generation call.
const TopicCardsGenerated = "campaign_cards.generated"

// Handler receives the JSON-encoded payload of a published message.
type Handler func(body []byte) error

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler Handler) error
}

// InMemoryQueue delivers to subscribers of the same process, retrying failed handlers
type InMemoryQueue struct {
	mu         sync.Mutex
	handlers   map[string][]Handler
	logger     *zap.Logger
	maxRetries int
	backoff    time.Duration
	wg         sync.WaitGroup
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue(logger *zap.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]Handler),
		logger:     logger,
		maxRetries: 3,
		backoff:    500 * time.Millisecond,
	}
}

// job wraps a message payload with retry info
type job struct {
	topic      string
	body       []byte
	retryCount int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", topic, err)
	}

	q.mu.Lock()
	handlers := append([]Handler(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		q.wg.Add(1)
		go q.processJob(handler, job{topic: topic, body: body})
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler Handler, j job) {
	defer q.wg.Done()

	for {
		err := handler(j.body)
		if err == nil {
			return
		}

		j.retryCount++
		q.logger.Warn("job failed",
			zap.String("topic", j.topic),
			zap.Int("attempt", j.retryCount),
			zap.Error(err))

		if j.retryCount > q.maxRetries {
			q.logger.Error("job permanently failed", zap.String("topic", j.topic), zap.Int("attempts", j.retryCount))
			return
		}

		// Linear backoff before retry
		time.Sleep(time.Duration(j.retryCount) * q.backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler Handler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// Wait blocks until every in-flight job has finished.
func (q *InMemoryQueue) Wait() {
	q.wg.Wait()
}

// StartCardsGeneratedSubscriber logs a summary of every generated batch.
func StartCardsGeneratedSubscriber(q Queue, logger *zap.Logger) error {
	return q.Subscribe(TopicCardsGenerated, func(body []byte) error {
		var event model.CardsGeneratedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			logger.Warn("invalid cards generated payload", zap.Error(err))
			return nil // no retry
		}

		logger.Info("campaign cards generated",
			zap.String("batch_id", event.BatchID),
			zap.String("product", event.ProductName),
			zap.String("brand", event.Brand),
			zap.Int("cards", event.CardCount),
			zap.Int("generated", event.GeneratedCount),
			zap.Int("fallback", event.FallbackCount))
		return nil
	})
}
