package service

import (
	"encoding/json"
	"fmt"
	"strings"
)

// generatedItem accepts the field spellings providers commonly return.
type generatedItem struct {
	Subject      string `json:"subject"`
	PreviewText  string `json:"previewText"`
	EmailContent string `json:"emailContent"`
	Content      string `json:"content"`
	PopupContent string `json:"popupContent"`
	ImagePrompt  string `json:"imagePrompt"`
}

func (it generatedItem) toContent() CardContent {
	body := it.EmailContent
	if strings.TrimSpace(body) == "" {
		body = it.Content
	}
	if strings.TrimSpace(body) == "" {
		body = it.PopupContent
	}
	return CardContent{
		Subject:     strings.TrimSpace(it.Subject),
		PreviewText: strings.TrimSpace(it.PreviewText),
		Content:     strings.TrimSpace(body),
		ImagePrompt: strings.TrimSpace(it.ImagePrompt),
	}
}

// ParseGeneratedContent decodes generator text into per-slot content in response order.
// It accepts a bare array, a single card object, or an object wrapping the array under
// "cards" or "campaigns", optionally inside a markdown code fence. Incomplete items are
// returned as-is; callers decide per slot whether to fall back.
func ParseGeneratedContent(text string) ([]CardContent, error) {
	cleaned := []byte(cleanJSONResponse(text))
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty response")
	}

	var items []generatedItem
	switch cleaned[0] {
	case '[':
		if err := json.Unmarshal(cleaned, &items); err != nil {
			return nil, fmt.Errorf("decode card array: %w", err)
		}
	case '{':
		var wrapper struct {
			Cards     []generatedItem `json:"cards"`
			Campaigns []generatedItem `json:"campaigns"`
		}
		if err := json.Unmarshal(cleaned, &wrapper); err != nil {
			return nil, fmt.Errorf("decode card object: %w", err)
		}
		switch {
		case wrapper.Cards != nil:
			items = wrapper.Cards
		case wrapper.Campaigns != nil:
			items = wrapper.Campaigns
		default:
			var single generatedItem
			if err := json.Unmarshal(cleaned, &single); err != nil {
				return nil, fmt.Errorf("decode card object: %w", err)
			}
			if single == (generatedItem{}) {
				return nil, fmt.Errorf("object has no card fields")
			}
			items = []generatedItem{single}
		}
	default:
		return nil, fmt.Errorf("response is not JSON")
	}

	out := make([]CardContent, len(items))
	for i, it := range items {
		out[i] = it.toContent()
	}
	return out, nil
}

// cleanJSONResponse strips markdown code fences and surrounding whitespace.
func cleanJSONResponse(response string) string {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}
