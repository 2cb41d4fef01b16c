package model

import "time"

// Status is the lifecycle label derived from a card's scheduled date.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
)

// ContentSource tells whether card copy came from the external generator or the templates.
type ContentSource string

const (
	SourceGenerated ContentSource = "generated"
	SourceFallback  ContentSource = "fallback"
)

// DateLayout is the ISO 8601 calendar date format used for DateScheduled.
const DateLayout = "2006-01-02"

type CampaignCard struct {
	ID            string        `json:"id"`
	Day           string        `json:"day"`
	Time          string        `json:"time"`
	Type          CampaignType  `json:"type"`
	Audience      string        `json:"audience"`
	Theme         string        `json:"theme"`
	Subject       string        `json:"subject"`
	PreviewText   string        `json:"previewText"`
	PromptUsed    string        `json:"promptUsed"`
	Content       string        `json:"emailContent"`
	ImagePrompt   string        `json:"imagePrompt"`
	Brand         string        `json:"brand"`
	Source        ContentSource `json:"source"`
	Status        Status        `json:"status"`
	DateScheduled string        `json:"dateScheduled"`
}

// Batch is one generation call's output, kept for the session TTL.
type Batch struct {
	ID          string         `json:"id"`
	ProductName string         `json:"productName"`
	Brand       string         `json:"brand"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Cards       []CampaignCard `json:"cards"`
}

// CardsGeneratedEvent is published after every generation call.
type CardsGeneratedEvent struct {
	BatchID        string    `json:"batchId"`
	ProductName    string    `json:"productName"`
	Brand          string    `json:"brand"`
	CardCount      int       `json:"cardCount"`
	GeneratedCount int       `json:"generatedCount"`
	FallbackCount  int       `json:"fallbackCount"`
	GeneratedAt    time.Time `json:"generatedAt"`
}
