package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/campaign-studio-backend/internal/service"
)

func TestParseGeneratedContent_Accepted(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"bare array", `[{"subject":"A","emailContent":"B","imagePrompt":"C"},{"subject":"D","emailContent":"E","imagePrompt":"F"}]`, 2},
		{"code fenced", "```json\n[{\"subject\":\"A\",\"emailContent\":\"B\",\"imagePrompt\":\"C\"}]\n```", 1},
		{"plain fence", "```\n[{\"subject\":\"A\",\"emailContent\":\"B\",\"imagePrompt\":\"C\"}]\n```", 1},
		{"cards wrapper", `{"cards":[{"subject":"A","emailContent":"B","imagePrompt":"C"}]}`, 1},
		{"campaigns wrapper", `{"campaigns":[{"subject":"A","content":"B","imagePrompt":"C"},{"subject":"A"}]}`, 2},
		{"single object", `{"subject":"A","popupContent":"B","imagePrompt":"C"}`, 1},
		{"empty array", `[]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.ParseGeneratedContent(tt.text)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			if tt.want > 0 {
				assert.Equal(t, "A", got[0].Subject)
				assert.Equal(t, "B", got[0].Content)
				assert.Equal(t, "C", got[0].ImagePrompt)
			}
		})
	}
}

func TestParseGeneratedContent_Rejected(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"prose", "Sure! Here are your campaigns: subject one..."},
		{"empty", "   "},
		{"truncated", `[{"subject":"A","emailContent":"B"`},
		{"wrong object shape", `{"foo":[1,2,3]}`},
		{"number", `42`},
		{"array of strings", `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ParseGeneratedContent(tt.text)
			assert.Error(t, err)
		})
	}
}

func TestParseGeneratedContent_IncompleteItemsAreKept(t *testing.T) {
	got, err := service.ParseGeneratedContent(`[{"subject":"only a subject"}]`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].Complete())
}
