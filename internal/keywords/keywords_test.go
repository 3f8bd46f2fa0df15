package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifebase/lifebase/internal/model"
)

func detectedTypes(text string) []model.ModuleType {
	detected := DetectModules(text)
	var types []model.ModuleType
	for _, d := range detected {
		types = append(types, d.Type)
	}
	return types
}

func TestDetectModules(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []model.ModuleType
	}{
		{
			name: "single module",
			text: "今天跑步5公里",
			want: []model.ModuleType{model.ModuleTypeExercise},
		},
		{
			name: "lunch with amount spans spending and diet",
			text: "午餐花了38元",
			want: []model.ModuleType{model.ModuleTypeSpending, model.ModuleTypeDiet},
		},
		{
			name: "salary is income only",
			text: "收到工资5000",
			want: []model.ModuleType{model.ModuleTypeIncome},
		},
		{
			name: "dinner with friends spans diet and social",
			text: "和朋友吃晚饭",
			want: []model.ModuleType{model.ModuleTypeDiet, model.ModuleTypeSocial},
		},
		{
			name: "no keywords",
			text: "哈哈哈哈",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectedTypes(tt.text))
		})
	}
}

func TestDetectModules_TableOrder(t *testing.T) {
	// Detection order follows table order regardless of keyword position
	// in the message.
	types := detectedTypes("看完电影去健身")
	assert.Equal(t, []model.ModuleType{model.ModuleTypeExercise, model.ModuleTypeEntertainment}, types)
}

func TestExtractAmount(t *testing.T) {
	ptr := func(f float64) *float64 { return &f }

	tests := []struct {
		want *float64
		name string
		text string
	}{
		{name: "integer with yuan", text: "花了38元", want: ptr(38)},
		{name: "decimal", text: "咖啡 25.5 块", want: ptr(25.5)},
		{name: "bare number", text: "工资5000", want: ptr(5000)},
		{name: "currency symbol", text: "充值￥100", want: ptr(100)},
		{name: "rmb suffix", text: "200RMB", want: ptr(200)},
		{name: "first number wins", text: "38元买了2个", want: ptr(38)},
		{name: "no number", text: "吃了午饭", want: nil},
		{name: "empty", text: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAmount(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 0.001)
		})
	}
}

func TestIsIncome(t *testing.T) {
	assert.True(t, IsIncome("收到工资5000"))
	assert.True(t, IsIncome("年终奖金到账"))
	assert.True(t, IsIncome("抢到红包"))
	assert.False(t, IsIncome("午餐花了38元"))
	assert.False(t, IsIncome(""))
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		want *float64
		name string
		text string
	}{
		{name: "expense is negative", text: "午餐花了38元", want: ptrFloat(-38)},
		{name: "income is positive", text: "收到工资5000", want: ptrFloat(5000)},
		{name: "no amount", text: "吃了午饭", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SignedAmount(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 0.001)
		})
	}
}

func TestModuleTable_CoversAllBuiltinTypes(t *testing.T) {
	seen := make(map[model.ModuleType]bool)
	for _, cfg := range ModuleTable() {
		assert.NotEmpty(t, cfg.Keywords, "module %s has no keywords", cfg.Type)
		assert.NotEmpty(t, cfg.Name)
		assert.False(t, seen[cfg.Type], "module %s appears twice", cfg.Type)
		seen[cfg.Type] = true
	}
}

func ptrFloat(f float64) *float64 { return &f }
