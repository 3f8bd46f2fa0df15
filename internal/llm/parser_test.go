package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifebase/lifebase/internal/common"
	"github.com/lifebase/lifebase/internal/model"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "bare object",
			content: `{"category": "diet"}`,
			want:    `{"category": "diet"}`,
		},
		{
			name:    "json fence",
			content: "```json\n{\"category\": \"diet\"}\n```",
			want:    `{"category": "diet"}`,
		},
		{
			name:    "plain fence",
			content: "```\n{\"category\": \"diet\"}\n```",
			want:    `{"category": "diet"}`,
		},
		{
			name:    "prose around object",
			content: `Sure, here is the analysis: {"category": "diet"} Hope that helps!`,
			want:    `{"category": "diet"}`,
		},
		{
			name:    "array",
			content: `The list: [1, 2, 3]`,
			want:    `[1, 2, 3]`,
		},
		{
			name:    "array before object",
			content: `[{"a": 1}] trailing`,
			want:    `[{"a": 1}]`,
		},
		{
			name:    "no json",
			content: "抱歉，我不明白你的意思。",
			wantErr: true,
		},
		{
			name:    "unterminated object",
			content: `{"category": "diet"`,
			wantErr: true,
		},
		{
			name:    "empty",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.content)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyzeEntry(t *testing.T) {
	ctx := context.Background()

	client := &MockClient{
		Reply: "```json\n{\"category\": \"diet\", \"subcategory\": \"lunch\", \"amount\": -38, \"content\": \"午餐牛肉面\", \"suggested_module\": \"diet\", \"confidence\": 0.85}\n```",
	}
	analyzer := NewAnalyzer(client)

	analysis := analyzer.AnalyzeEntry(ctx, "午餐花了38元")

	assert.Equal(t, "diet", analysis.Category)
	assert.Equal(t, "lunch", analysis.Subcategory)
	require.NotNil(t, analysis.Amount)
	assert.InDelta(t, -38, *analysis.Amount, 0.001)
	assert.Equal(t, "diet", analysis.SuggestedModule)
	assert.InDelta(t, 0.85, analysis.Confidence, 0.001)

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "午餐花了38元", calls[0].Message)
	assert.NotEmpty(t, calls[0].SystemPrompt)
}

func TestAnalyzeEntry_DefaultsOnFailure(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		client *MockClient
		name   string
	}{
		{
			name:   "client error",
			client: &MockClient{Err: errors.New("connection refused")},
		},
		{
			name:   "no json in reply",
			client: &MockClient{Reply: "好的，我记下了！"},
		},
		{
			name:   "invalid json span",
			client: &MockClient{Reply: `{"category": diet}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := NewAnalyzer(tt.client).AnalyzeEntry(ctx, "午餐花了38元")
			assert.Equal(t, DefaultEntryAnalysis(), analysis)
		})
	}
}

func TestAnalyzeEntry_ClampsAndDefaults(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name           string
		reply          string
		wantCategory   string
		wantConfidence float64
	}{
		{
			name:           "missing category defaults to other",
			reply:          `{"confidence": 0.5}`,
			wantCategory:   model.CategoryOther,
			wantConfidence: 0.5,
		},
		{
			name:           "confidence above one clamps",
			reply:          `{"category": "diet", "confidence": 3.2}`,
			wantCategory:   "diet",
			wantConfidence: 1,
		},
		{
			name:           "negative confidence clamps",
			reply:          `{"category": "diet", "confidence": -0.4}`,
			wantCategory:   "diet",
			wantConfidence: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := NewAnalyzer(&MockClient{Reply: tt.reply}).AnalyzeEntry(ctx, "text")
			assert.Equal(t, tt.wantCategory, analysis.Category)
			assert.InDelta(t, tt.wantConfidence, analysis.Confidence, 0.001)
		})
	}
}
