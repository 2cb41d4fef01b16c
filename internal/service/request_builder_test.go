package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unclebandit/campaign-studio-backend/internal/model"
	"github.com/unclebandit/campaign-studio-backend/internal/service"
)

func scenarioSlots() []model.ScheduleSlot {
	return []model.ScheduleSlot{
		{Day: "Monday", Time: "9:00 AM", Type: model.CampaignTypePrimary, Audience: "Window Shoppers", Theme: "Discovery"},
		{Day: "Thursday", Time: "6:00 PM", Type: model.CampaignTypeFollowUp, Audience: "Cart Abandoners", Theme: "Urgency"},
	}
}

func scenarioStrategy() model.CampaignStrategy {
	return model.CampaignStrategy{
		Description:     "Convert browsers into buyers ahead of the holiday season",
		PrimaryAudience: "Window Shoppers",
		ContentType:     "email",
	}
}

func TestBuildGenerationRequest(t *testing.T) {
	product := model.Product{Name: "iPhone 15 Pro", Category: "Smartphones"}

	req := service.BuildGenerationRequest(scenarioStrategy(), product, scenarioSlots(), service.GenerationOptions{Temperature: 0.7, MaxTokens: 1024})

	assert.Contains(t, req.System, "JSON array")
	assert.Contains(t, req.System, "imagePrompt")
	assert.Contains(t, req.User, "Strategy: Convert browsers into buyers ahead of the holiday season")
	assert.Contains(t, req.User, "Product: iPhone 15 Pro")
	assert.Contains(t, req.User, "Monday 9:00 AM: Primary Campaign for Window Shoppers\n")
	assert.Contains(t, req.User, "Thursday 6:00 PM: Follow-up for Cart Abandoners\n")
	assert.NotContains(t, req.User, "Additional instructions")
	assert.Equal(t, float32(0.7), req.Temperature)
	assert.Equal(t, 1024, req.MaxTokens)
}

func TestBuildGenerationRequest_CustomInstructions(t *testing.T) {
	strategy := scenarioStrategy()
	extra := "  Keep subject lines under 40 characters. "
	strategy.CustomInstructions = &extra

	req := service.BuildGenerationRequest(strategy, model.Product{Name: "Pixel 9"}, nil, service.GenerationOptions{})

	assert.Contains(t, req.User, "Additional instructions: Keep subject lines under 40 characters.\n")
	assert.Contains(t, req.User, "Schedule:\n")
}

func TestScheduleLine(t *testing.T) {
	line := service.ScheduleLine(model.ScheduleSlot{Day: "today", Time: "noon", Type: model.CampaignTypePopup, Audience: "Visitors"})
	assert.Equal(t, "today noon: Popup Campaign for Visitors", line)
}
