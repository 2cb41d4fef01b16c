// internal/service/template_service.go
package service

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/unclebandit/campaign-studio-backend/internal/model"
)

// RenderTemplate substitutes every {key} in template with data[key].
func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		result = replace(result, "{"+k+"}", v)
	}
	return result
}

func replace(template, placeholder, value string) string {
	return strings.ReplaceAll(template, placeholder, value)
}

// CardContent is the creative copy for one campaign card.
type CardContent struct {
	Subject     string `json:"subject"`
	PreviewText string `json:"previewText"`
	Content     string `json:"emailContent"`
	ImagePrompt string `json:"imagePrompt"`
}

// Complete reports whether the content carries every field a card requires.
func (c CardContent) Complete() bool {
	return strings.TrimSpace(c.Subject) != "" &&
		strings.TrimSpace(c.Content) != "" &&
		strings.TrimSpace(c.ImagePrompt) != ""
}

type contentTemplate struct {
	Subjects    []string
	Preview     string
	Body        string
	ImagePrompt string
}

var contentTemplates = map[model.CampaignType]contentTemplate{
	model.CampaignTypePrimary: {
		Subjects: []string{
			"Discover the all-new {product}",
			"Meet {product}: made for you",
			"Your next upgrade is here: {product}",
			"Introducing {product}, built for {audience}",
		},
		Preview:     "{theme}: see what makes {product} stand out.",
		Body:        "Hi there,\n\nWe picked {product} with {audience} in mind. It brings the features you have been looking for, backed by our best service.\n\nExplore {product} today and find out why it belongs in your everyday routine.\n\nShop now",
		ImagePrompt: "Hero product shot of {product} on a clean white background, soft studio lighting, premium and inviting mood, centered composition",
	},
	model.CampaignTypeFollowUp: {
		Subjects: []string{
			"Still thinking about {product}?",
			"Your {product} is waiting for you",
			"Don't miss out on {product}",
			"A quick reminder about {product}",
		},
		Preview:     "{theme}: {product} is still available, but not for long.",
		Body:        "Hi again,\n\nWe noticed you were looking at {product}. It is popular with {audience}, and you can still pick up where you left off.\n\nStock moves fast, so complete your order while {product} is available.\n\nReturn to your cart",
		ImagePrompt: "Close-up of {product} with a subtle countdown motif, warm lighting, gentle urgency, minimal background",
	},
	model.CampaignTypePremiumDrop: {
		Subjects: []string{
			"Exclusive: {product} just dropped",
			"Limited release: {product}",
			"Be the first to own {product}",
			"Members only: early access to {product}",
		},
		Preview:     "{theme}: a limited {product} release for {audience}.",
		Body:        "Hello,\n\nA limited run of {product} is now available, and {audience} get first access.\n\nQuantities are limited and this release will not be restocked.\n\nClaim yours",
		ImagePrompt: "Luxury presentation of {product} on a dark marble surface, dramatic rim lighting, exclusive high-end mood",
	},
	model.CampaignTypeWeeklyRecap: {
		Subjects: []string{
			"Your weekly roundup: {product} and more",
			"This week's highlights featuring {product}",
			"What you missed this week: {product}",
		},
		Preview:     "{theme}: the week's best picks, starting with {product}.",
		Body:        "Hi,\n\nHere is what happened this week. {product} was a favourite among {audience}, and we collected the best deals and stories in one place.\n\nCatch up on everything you missed.\n\nSee the recap",
		ImagePrompt: "Flat-lay collage featuring {product} among lifestyle accessories, bright natural daylight, friendly editorial mood",
	},
	model.CampaignTypePopup: {
		Subjects: []string{
			"Special offer on {product}",
			"Wait! {product} deal inside",
			"Unlock savings on {product}",
		},
		Preview:     "{theme}: an instant offer on {product}.",
		Body:        "Limited-time offer for {audience}: save on {product} today only. Tap below to claim your discount before it expires.\n\nClaim offer",
		ImagePrompt: "Bold promotional banner of {product} with vibrant gradient background, high-contrast lighting, energetic mood",
	},
	model.CampaignTypeContentGeneration: {
		Subjects: []string{
			"The story behind {product}",
			"How {audience} use {product}",
			"Getting the most out of {product}",
		},
		Preview:     "{theme}: tips and ideas for {product}.",
		Body:        "Hi,\n\nWe put together ideas from {audience} on getting more out of {product}, from everyday tricks to features you may have missed.\n\nRead the full guide",
		ImagePrompt: "Lifestyle scene of {product} in everyday use, natural window light, authentic and relaxed mood",
	},
}

// TemplateEngine produces deterministic fallback copy from fixed per-type templates.
// Only the subject choice is random.
type TemplateEngine struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewTemplateEngine returns an engine seeded from the clock.
func NewTemplateEngine() *TemplateEngine {
	return NewTemplateEngineWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewTemplateEngineWithRand returns an engine drawing subject choices from rnd.
func NewTemplateEngineWithRand(rnd *rand.Rand) *TemplateEngine {
	return &TemplateEngine{rnd: rnd}
}

func templateFor(campaignType model.CampaignType) contentTemplate {
	if t, ok := contentTemplates[campaignType]; ok {
		return t
	}
	return contentTemplates[model.CampaignTypePrimary]
}

// Neutral wording for slots that leave a field blank.
const (
	defaultProduct  = "our latest product"
	defaultAudience = "our customers"
	defaultTheme    = "New this week"
)

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func templateData(product, audience, theme string) map[string]string {
	return map[string]string{
		"product":  orDefault(product, defaultProduct),
		"audience": orDefault(audience, defaultAudience),
		"theme":    orDefault(theme, defaultTheme),
	}
}

// SubjectCandidates lists every subject Render may choose for the given inputs.
func SubjectCandidates(campaignType model.CampaignType, product, audience string) []string {
	t := templateFor(campaignType)
	data := templateData(product, audience, "")
	out := make([]string, len(t.Subjects))
	for i, s := range t.Subjects {
		out[i] = RenderTemplate(s, data)
	}
	return out
}

// Render builds fallback content for one slot. It never fails; unknown campaign
// types use the Primary Campaign templates.
func (e *TemplateEngine) Render(campaignType model.CampaignType, product, audience, theme string) CardContent {
	t := templateFor(campaignType)
	data := templateData(product, audience, theme)

	e.mu.Lock()
	pick := e.rnd.Intn(len(t.Subjects))
	e.mu.Unlock()

	return CardContent{
		Subject:     RenderTemplate(t.Subjects[pick], data),
		PreviewText: RenderTemplate(t.Preview, data),
		Content:     RenderTemplate(t.Body, data),
		ImagePrompt: RenderTemplate(t.ImagePrompt, data),
	}
}
