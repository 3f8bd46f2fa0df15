package classifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifebase/lifebase/internal/model"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := New(DefaultRules())
	require.NoError(t, err)
	return c
}

func TestClassifyText(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name            string
		text            string
		wantCategory    string
		wantSubcategory string
		wantConfidence  float64
		wantSource      model.ClassificationSource
	}{
		{
			name:            "lunch keyword matches diet",
			text:            "午餐吃了牛肉面",
			wantCategory:    "diet",
			wantSubcategory: "lunch",
			wantConfidence:  0.9,
			wantSource:      model.SourceTextMatching,
		},
		{
			name:            "english keyword matches case-insensitively",
			text:            "Morning GYM session",
			wantCategory:    "exercise",
			wantSubcategory: "fitness",
			wantConfidence:  0.9,
			wantSource:      model.SourceTextMatching,
		},
		{
			name:            "shopping keyword matches spending",
			text:            "买了一双鞋",
			wantCategory:    "spending",
			wantSubcategory: "shopping",
			wantConfidence:  0.9,
			wantSource:      model.SourceTextMatching,
		},
		{
			name:            "no match falls back to default",
			text:            "随便写点什么",
			wantCategory:    model.CategoryOther,
			wantSubcategory: model.SubcategoryUncategorized,
			wantConfidence:  0.3,
			wantSource:      model.SourceDefault,
		},
		{
			name:            "empty text falls back to default",
			text:            "",
			wantCategory:    model.CategoryOther,
			wantSubcategory: model.SubcategoryUncategorized,
			wantConfidence:  0.3,
			wantSource:      model.SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.ClassifyText(tt.text)
			assert.Equal(t, tt.wantCategory, result.Category)
			assert.Equal(t, tt.wantSubcategory, result.Subcategory)
			assert.InDelta(t, tt.wantConfidence, result.Confidence, 0.001)
			assert.Equal(t, tt.wantSource, result.Source)
		})
	}
}

func TestClassifyText_FirstMatchWins(t *testing.T) {
	c := newTestClassifier(t)

	// "午餐" (diet) and "买" (spending) both appear; the diet rule is
	// registered first so it must win.
	result := c.ClassifyText("午餐买了便当")
	assert.Equal(t, "diet", result.Category)
	assert.Equal(t, "lunch", result.Subcategory)
}

func TestClassifyText_Idempotent(t *testing.T) {
	c := newTestClassifier(t)

	first := c.ClassifyText("跑步5公里")
	second := c.ClassifyText("跑步5公里")
	assert.Equal(t, first, second)
}

func TestClassifyAmount(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name            string
		description     string
		wantCategory    string
		wantSubcategory string
		amount          float64
		wantConfidence  float64
	}{
		{
			name:            "description match overrides amount",
			amount:          500,
			description:     "晚餐请客",
			wantCategory:    "diet",
			wantSubcategory: "dinner",
			wantConfidence:  0.9,
		},
		{
			name:            "small amount",
			amount:          20,
			description:     "没写清楚",
			wantCategory:    "spending",
			wantSubcategory: "small expense",
			wantConfidence:  0.6,
		},
		{
			name:            "boundary 50 is daily",
			amount:          50,
			description:     "",
			wantCategory:    "spending",
			wantSubcategory: "daily expense",
			wantConfidence:  0.6,
		},
		{
			name:            "mid amount",
			amount:          120,
			description:     "",
			wantCategory:    "spending",
			wantSubcategory: "daily expense",
			wantConfidence:  0.6,
		},
		{
			name:            "boundary 200 is large",
			amount:          200,
			description:     "",
			wantCategory:    "spending",
			wantSubcategory: "large expense",
			wantConfidence:  0.6,
		},
		{
			name:            "large amount",
			amount:          3000,
			description:     "",
			wantCategory:    "spending",
			wantSubcategory: "large expense",
			wantConfidence:  0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.ClassifyAmount(tt.amount, tt.description)
			assert.Equal(t, tt.wantCategory, result.Category)
			assert.Equal(t, tt.wantSubcategory, result.Subcategory)
			assert.InDelta(t, tt.wantConfidence, result.Confidence, 0.001)
		})
	}
}

func TestClassifyTime(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name            string
		description     string
		wantCategory    string
		wantSubcategory string
		wantSource      model.ClassificationSource
		hour            int
		wantConfidence  float64
	}{
		{
			name:            "description match overrides hour",
			hour:            3,
			description:     "夜宵吃了泡面",
			wantCategory:    "diet",
			wantSubcategory: "dinner",
			wantConfidence:  0.9,
			wantSource:      model.SourceTextMatching,
		},
		{
			name:            "morning is breakfast",
			hour:            8,
			description:     "",
			wantCategory:    "diet",
			wantSubcategory: "breakfast",
			wantConfidence:  0.7,
			wantSource:      model.SourceTime,
		},
		{
			name:            "noon is lunch",
			hour:            12,
			description:     "",
			wantCategory:    "diet",
			wantSubcategory: "lunch",
			wantConfidence:  0.7,
			wantSource:      model.SourceTime,
		},
		{
			name:            "evening is dinner",
			hour:            19,
			description:     "",
			wantCategory:    "diet",
			wantSubcategory: "dinner",
			wantConfidence:  0.7,
			wantSource:      model.SourceTime,
		},
		{
			name:            "hour 14 is outside every bucket",
			hour:            14,
			description:     "",
			wantCategory:    model.CategoryOther,
			wantSubcategory: model.SubcategoryUncategorized,
			wantConfidence:  0.7,
			wantSource:      model.SourceDefault,
		},
		{
			name:            "hour 21 is outside dinner",
			hour:            21,
			description:     "",
			wantCategory:    model.CategoryOther,
			wantSubcategory: model.SubcategoryUncategorized,
			wantConfidence:  0.7,
			wantSource:      model.SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.ClassifyTime(tt.hour, tt.description)
			assert.Equal(t, tt.wantCategory, result.Category)
			assert.Equal(t, tt.wantSubcategory, result.Subcategory)
			assert.InDelta(t, tt.wantConfidence, result.Confidence, 0.001)
			assert.Equal(t, tt.wantSource, result.Source)
		})
	}
}

func TestClassifyComprehensive(t *testing.T) {
	c := newTestClassifier(t)

	ptr := func(f float64) *float64 { return &f }
	at := func(hour int) *time.Time {
		ts := time.Date(2026, 8, 30, hour, 0, 0, 0, time.UTC)
		return &ts
	}

	tests := []struct {
		in             Input
		name           string
		wantCategory   string
		wantSource     model.ClassificationSource
		wantConfidence float64
	}{
		{
			name:           "text match beats everything",
			in:             Input{Text: "午餐花了38元", Amount: ptr(38), Time: at(12)},
			wantCategory:   "diet",
			wantSource:     model.SourceTextMatching,
			wantConfidence: 0.9,
		},
		{
			name:           "time beats amount when text is unmatched",
			in:             Input{Text: "花了点钱在乱七八糟上", Amount: ptr(30), Time: at(8)},
			wantCategory:   "diet",
			wantSource:     model.SourceTime,
			wantConfidence: 0.7,
		},
		{
			name:           "amount wins without a time signal",
			in:             Input{Text: "乱七八糟", Amount: ptr(30)},
			wantCategory:   "spending",
			wantSource:     model.SourceAmount,
			wantConfidence: 0.6,
		},
		{
			name:           "unmatched text alone yields the default",
			in:             Input{Text: "乱七八糟"},
			wantCategory:   model.CategoryOther,
			wantSource:     model.SourceDefault,
			wantConfidence: 0.3,
		},
		{
			name:           "empty input yields zero confidence",
			in:             Input{},
			wantCategory:   model.CategoryOther,
			wantSource:     model.SourceNone,
			wantConfidence: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.ClassifyComprehensive(tt.in)
			assert.Equal(t, tt.wantCategory, result.Category)
			assert.Equal(t, tt.wantSource, result.Source)
			assert.InDelta(t, tt.wantConfidence, result.Confidence, 0.001)
		})
	}
}

func TestClassifyComprehensive_OffBucketTimeBeatsAmount(t *testing.T) {
	c := newTestClassifier(t)

	// Off-bucket hour: time still returns 0.7 while amount returns 0.6,
	// so the time result must win over the amount fallback.
	amount := 30.0
	ts := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	result := c.ClassifyComprehensive(Input{Text: "乱七八糟", Amount: &amount, Time: &ts})
	assert.InDelta(t, 0.7, result.Confidence, 0.001)
	assert.Equal(t, model.CategoryOther, result.Category)
}

func TestAddRule(t *testing.T) {
	c := newTestClassifier(t)

	require.NoError(t, c.AddRule(model.ClassificationRule{
		Pattern:     `遛狗|walk the dog`,
		Category:    "pet",
		Subcategory: "walk",
		Tags:        []string{"pet"},
	}))

	result := c.ClassifyText("今天遛狗半小时")
	assert.Equal(t, "pet", result.Category)
	assert.Equal(t, "walk", result.Subcategory)

	// Appended rules rank below existing ones.
	result = c.ClassifyText("遛狗前先吃午餐")
	assert.Equal(t, "diet", result.Category)
}

func TestAddRule_InvalidPattern(t *testing.T) {
	c := newTestClassifier(t)

	err := c.AddRule(model.ClassificationRule{Pattern: `([unclosed`, Category: "x"})
	require.Error(t, err)
}

func TestCategories(t *testing.T) {
	c := newTestClassifier(t)

	cats := c.Categories()
	assert.Equal(t, []string{"diet", "spending", "exercise", "work", "learning", "social"}, cats)

	subs := c.Subcategories("diet")
	assert.Equal(t, []string{"breakfast", "lunch", "dinner"}, subs)
}
