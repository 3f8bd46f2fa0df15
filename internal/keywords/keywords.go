// Package keywords holds the shared module-keyword table and the amount and
// polarity extraction rules. Both the classifier-side amount path and the
// conversational assistant consume this single table, so an input cannot
// classify one way in one path and another way in the other.
package keywords

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lifebase/lifebase/internal/model"
)

// ModuleKeywords binds a module type to the keywords that activate it.
type ModuleKeywords struct {
	Type     model.ModuleType
	Name     string
	Icon     string
	Keywords []string
}

// moduleTable is the fixed detection table, evaluated in order. Order only
// affects the order of detected modules, not whether a module matches:
// detection is multi-label.
var moduleTable = []ModuleKeywords{
	{Type: model.ModuleTypeSpending, Name: "消费", Icon: "💸", Keywords: []string{"花", "买", "消费", "支出", "付", "元", "块", "购物", "购买", "花费", "开销"}},
	{Type: model.ModuleTypeIncome, Name: "收入", Icon: "💰", Keywords: []string{"收入", "工资", "赚", "收到", "进账", "到账", "入账", "薪水", "奖金", "红包", "转账收到"}},
	{Type: model.ModuleTypeDiet, Name: "饮食", Icon: "🍱", Keywords: []string{"吃", "喝", "餐", "饭", "食", "早餐", "午餐", "晚餐", "零食", "外卖", "做饭", "烹饪", "菜", "水果"}},
	{Type: model.ModuleTypeExercise, Name: "运动", Icon: "🏃", Keywords: []string{"运动", "健身", "跑步", "游泳", "锻炼", "走路", "步数", "瑜伽", "球", "骑车", "爬山"}},
	{Type: model.ModuleTypeSleep, Name: "睡眠", Icon: "😴", Keywords: []string{"睡", "觉", "失眠", "早起", "熬夜", "起床", "醒", "做梦", "午休", "休息"}},
	{Type: model.ModuleTypeMood, Name: "情绪", Icon: "💭", Keywords: []string{"开心", "难过", "焦虑", "压力", "心情", "情绪", "快乐", "悲伤", "烦", "累", "疲惫", "兴奋", "郁闷", "吵架", "生气", "愤怒", "感动", "委屈"}},
	{Type: model.ModuleTypeSocial, Name: "社交", Icon: "👥", Keywords: []string{"朋友", "聚会", "约会", "见面", "社交", "聊天", "派对", "同事", "家人", "对象", "男朋友", "女朋友", "老婆", "老公", "父母", "孩子"}},
	{Type: model.ModuleTypeWork, Name: "工作", Icon: "💼", Keywords: []string{"工作", "上班", "会议", "项目", "任务", "加班", "出差", "汇报", "客户", "开会", "办公"}},
	{Type: model.ModuleTypeLearning, Name: "学习", Icon: "📚", Keywords: []string{"学习", "看书", "读书", "课程", "考试", "培训", "技能", "知识", "教程", "练习"}},
	{Type: model.ModuleTypeEntertainment, Name: "娱乐", Icon: "🎮", Keywords: []string{"电影", "游戏", "看剧", "音乐", "演唱会", "旅游", "玩", "度假", "放松", "娱乐"}},
	{Type: model.ModuleTypeHealth, Name: "健康", Icon: "❤️", Keywords: []string{"医院", "看病", "药", "体检", "生病", "症状", "头疼", "发烧", "感冒", "不舒服", "养生"}},
	{Type: model.ModuleTypePet, Name: "宠物", Icon: "🐾", Keywords: []string{"猫", "狗", "宠物", "遛狗", "喂食", "铲屎", "宠物医院", "猫粮", "狗粮"}},
}

var (
	// amountPattern captures the first numeric quantity, optionally followed
	// by a currency token.
	amountPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(元|块|￥|¥|[rR][mM][bB])?`)

	// incomePattern flips polarity to income when it matches.
	incomePattern = regexp.MustCompile(`收入|工资|赚|收到|进账|到账|入账|薪水|奖金|红包|转账收到`)
)

// ModuleTable returns the fixed detection table.
func ModuleTable() []ModuleKeywords {
	return moduleTable
}

// DetectModules returns every module whose keyword list matches the text.
// Unlike single-label rule classification, a message may legitimately span
// categories (a social dinner with a cost), so all matches are returned.
func DetectModules(text string) []ModuleKeywords {
	lower := strings.ToLower(text)

	var detected []ModuleKeywords
	for _, cfg := range moduleTable {
		for _, kw := range cfg.Keywords {
			if strings.Contains(lower, kw) {
				detected = append(detected, cfg)
				break
			}
		}
	}
	return detected
}

// ExtractAmount returns the first numeric quantity found in the text, or
// nil when none is present.
func ExtractAmount(text string) *float64 {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &amount
}

// IsIncome reports whether the text matches an income keyword.
func IsIncome(text string) bool {
	return incomePattern.MatchString(text)
}

// SignedAmount extracts the first amount and applies the polarity
// convention: positive for income, negative for expense. Returns nil when
// no amount is present.
func SignedAmount(text string) *float64 {
	amount := ExtractAmount(text)
	if amount == nil {
		return nil
	}
	signed := -math.Abs(*amount)
	if IsIncome(text) {
		signed = math.Abs(*amount)
	}
	return &signed
}
