package service

import (
	"fmt"
	"strings"

	"github.com/unclebandit/campaign-studio-backend/internal/generator"
	"github.com/unclebandit/campaign-studio-backend/internal/model"
)

const generationSystemPrompt = `You are a marketing copywriter generating scheduled campaign content.
Respond with a JSON array only, no prose and no markdown. The array must contain exactly one
object per schedule line, in the same order as the schedule. Each object has these string fields:
  "subject":      email subject line or popup headline
  "previewText":  one-sentence inbox preview
  "emailContent": full email body or popup copy, ending with a call to action
  "imagePrompt":  image generation prompt describing product, lighting, background and mood`

// GenerationOptions tunes the completion request.
type GenerationOptions struct {
	Temperature float32
	MaxTokens   int
}

// BuildGenerationRequest assembles the generator request for a batch. It performs no I/O.
func BuildGenerationRequest(strategy model.CampaignStrategy, product model.Product, slots []model.ScheduleSlot, opts GenerationOptions) generator.Request {
	return generator.Request{
		System:      generationSystemPrompt,
		User:        buildUserPrompt(strategy, product, slots),
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
}

func buildUserPrompt(strategy model.CampaignStrategy, product model.Product, slots []model.ScheduleSlot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Strategy: %s\n", strategy.Description)
	if strategy.PrimaryAudience != "" {
		fmt.Fprintf(&b, "Primary audience: %s\n", strategy.PrimaryAudience)
	}
	if strategy.ContentType != "" {
		fmt.Fprintf(&b, "Content type: %s\n", strategy.ContentType)
	}
	fmt.Fprintf(&b, "Product: %s\n", product.Name)
	if product.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", product.Category)
	}

	b.WriteString("Schedule:\n")
	for _, slot := range slots {
		b.WriteString(ScheduleLine(slot))
		b.WriteString("\n")
	}

	if strategy.CustomInstructions != nil && strings.TrimSpace(*strategy.CustomInstructions) != "" {
		fmt.Fprintf(&b, "Additional instructions: %s\n", strings.TrimSpace(*strategy.CustomInstructions))
	}

	return b.String()
}

// ScheduleLine renders one slot as "{day} {time}: {type} for {audience}".
func ScheduleLine(slot model.ScheduleSlot) string {
	return fmt.Sprintf("%s %s: %s for %s", slot.Day, slot.Time, slot.Type, slot.Audience)
}
