package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/unclebandit/campaign-studio-backend/internal/generator"
	"github.com/unclebandit/campaign-studio-backend/internal/model"
	"github.com/unclebandit/campaign-studio-backend/internal/queue"
	"github.com/unclebandit/campaign-studio-backend/internal/repository"
)

// CardService turns a strategy and weekly schedule into campaign cards.
// BatchRepo and Queue are optional.
type CardService struct {
	Generator generator.Generator
	Templates *TemplateEngine
	BatchRepo repository.BatchRepositoryInterface
	Queue     queue.Queue
	Logger    *zap.Logger
	Options   GenerationOptions
	Now       func() time.Time
}

// GenerateResult is the outcome of one generation call.
type GenerateResult struct {
	BatchID string
	Cards   []model.CampaignCard
}

// BatchDetails is a stored batch with statuses recomputed at read time.
type BatchDetails struct {
	ID          string               `json:"id"`
	ProductName string               `json:"productName"`
	Brand       string               `json:"brand"`
	GeneratedAt time.Time            `json:"generatedAt"`
	Cards       []model.CampaignCard `json:"cards"`
	Stats       map[string]int       `json:"stats"`
}

// GenerationOutcome is either generated content for the batch or the reason it failed.
type GenerationOutcome struct {
	Content []CardContent
	Reason  string
}

func generatedOutcome(content []CardContent) GenerationOutcome {
	return GenerationOutcome{Content: content}
}

func failedOutcome(format string, args ...any) GenerationOutcome {
	return GenerationOutcome{Reason: fmt.Sprintf(format, args...)}
}

// Failed reports whether the whole batch must fall back.
func (o GenerationOutcome) Failed() bool {
	return o.Reason != ""
}

// ContentFor returns the generated content for slot i, or false when that slot falls back.
func (o GenerationOutcome) ContentFor(i int) (CardContent, bool) {
	if o.Failed() || i >= len(o.Content) {
		return CardContent{}, false
	}
	c := o.Content[i]
	if !c.Complete() {
		return CardContent{}, false
	}
	return c, true
}

func (s *CardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *CardService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

var defaultTemplates = NewTemplateEngine()

func (s *CardService) templates() *TemplateEngine {
	if s.Templates != nil {
		return s.Templates
	}
	return defaultTemplates
}

// Generate returns exactly one card per slot, in slot order. Generator failures
// are logged and recovered with template content; they never reach the caller.
func (s *CardService) Generate(ctx context.Context, product model.Product, strategy model.CampaignStrategy, slots []model.ScheduleSlot) *GenerateResult {
	now := s.now()
	batchID := uuid.NewString()
	log := s.logger().With(zap.String("batch_id", batchID), zap.String("product", product.Name))

	req := BuildGenerationRequest(strategy, product, slots, s.Options)

	var outcome GenerationOutcome
	if len(slots) == 0 {
		outcome = failedOutcome("empty schedule")
	} else {
		outcome = s.requestContent(ctx, req, log)
	}

	brand := ResolveBrand(product.BrandCandidates())
	batchStamp := now.UnixMilli()

	cards := make([]model.CampaignCard, len(slots))
	generatedCount := 0
	for i, slot := range slots {
		content, ok := outcome.ContentFor(i)
		source := model.SourceGenerated
		if ok {
			generatedCount++
		} else {
			content = s.templates().Render(slot.Type, product.Name, slot.Audience, slot.Theme)
			source = model.SourceFallback
		}

		scheduled := ResolveDate(slot.Day, i, now)

		cards[i] = model.CampaignCard{
			ID:            fmt.Sprintf("%d_%d", batchStamp, i),
			Day:           slot.Day,
			Time:          slot.Time,
			Type:          slot.Type,
			Audience:      slot.Audience,
			Theme:         slot.Theme,
			Subject:       content.Subject,
			PreviewText:   content.PreviewText,
			PromptUsed:    req.User,
			Content:       content.Content,
			ImagePrompt:   content.ImagePrompt,
			Brand:         brand,
			Source:        source,
			Status:        ClassifyStatus(scheduled, now),
			DateScheduled: FormatDate(scheduled),
		}
	}

	if !outcome.Failed() && generatedCount < len(slots) {
		log.Warn("generator returned incomplete content, falling back per slot",
			zap.Int("slots", len(slots)),
			zap.Int("parsed", len(outcome.Content)),
			zap.Int("generated", generatedCount))
	}

	batch := &model.Batch{
		ID:          batchID,
		ProductName: product.Name,
		Brand:       brand,
		GeneratedAt: now,
		Cards:       cards,
	}
	s.saveBatch(ctx, batch, log)
	s.publishGenerated(batch, generatedCount, log)

	return &GenerateResult{BatchID: batchID, Cards: cards}
}

// requestContent makes the single generator attempt for a batch.
func (s *CardService) requestContent(ctx context.Context, req generator.Request, log *zap.Logger) GenerationOutcome {
	if s.Generator == nil {
		return failedOutcome("no generator configured")
	}

	start := time.Now()
	text, err := s.Generator.Complete(ctx, req)
	if err != nil {
		if errors.Is(err, generator.ErrDisabled) {
			log.Debug("generator disabled, using templates")
		} else {
			log.Warn("generator request failed, using templates",
				zap.String("generator", s.Generator.Name()),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err))
		}
		return failedOutcome("transport: %v", err)
	}

	content, err := ParseGeneratedContent(text)
	if err != nil {
		log.Warn("generator response unparsable, using templates",
			zap.String("generator", s.Generator.Name()),
			zap.Int("response_len", len(text)),
			zap.Error(err))
		return failedOutcome("parse: %v", err)
	}

	log.Debug("generator responded",
		zap.String("generator", s.Generator.Name()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("items", len(content)))
	return generatedOutcome(content)
}

func (s *CardService) saveBatch(ctx context.Context, b *model.Batch, log *zap.Logger) {
	if s.BatchRepo == nil {
		return
	}
	if err := s.BatchRepo.Save(ctx, b); err != nil {
		log.Warn("failed to store batch", zap.Error(err))
	}
}

func (s *CardService) publishGenerated(b *model.Batch, generatedCount int, log *zap.Logger) {
	if s.Queue == nil {
		return
	}
	event := model.CardsGeneratedEvent{
		BatchID:        b.ID,
		ProductName:    b.ProductName,
		Brand:          b.Brand,
		CardCount:      len(b.Cards),
		GeneratedCount: generatedCount,
		FallbackCount:  len(b.Cards) - generatedCount,
		GeneratedAt:    b.GeneratedAt,
	}
	if err := s.Queue.Publish(queue.TopicCardsGenerated, event); err != nil {
		log.Warn("failed to publish cards generated event", zap.Error(err))
	}
}

// GetBatchDetails loads a stored batch and recomputes every card's status against now.
func (s *CardService) GetBatchDetails(ctx context.Context, batchID string) (*BatchDetails, error) {
	if s.BatchRepo == nil {
		return nil, fmt.Errorf("batch storage not configured")
	}

	batch, err := s.BatchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats := map[string]int{
		"total":                       0,
		string(model.StatusDraft):     0,
		string(model.StatusScheduled): 0,
		string(model.StatusActive):    0,
		string(model.SourceGenerated): 0,
		string(model.SourceFallback):  0,
	}

	cards := make([]model.CampaignCard, len(batch.Cards))
	for i, card := range batch.Cards {
		if scheduled, err := ParseDate(card.DateScheduled, now.Location()); err == nil {
			card.Status = ClassifyStatus(scheduled, now)
		} else {
			s.logger().Warn("stored card has invalid date",
				zap.String("batch_id", batchID),
				zap.String("card_id", card.ID),
				zap.String("date", card.DateScheduled))
		}
		cards[i] = card

		stats["total"]++
		stats[string(card.Status)]++
		stats[string(card.Source)]++
	}

	return &BatchDetails{
		ID:          batch.ID,
		ProductName: batch.ProductName,
		Brand:       batch.Brand,
		GeneratedAt: batch.GeneratedAt,
		Cards:       cards,
		Stats:       stats,
	}, nil
}
