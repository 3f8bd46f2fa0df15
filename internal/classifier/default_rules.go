package classifier

import "github.com/lifebase/lifebase/internal/model"

// DefaultRules returns the built-in classification rule list. Order matters:
// earlier rules win over later ones when keywords overlap.
func DefaultRules() []model.ClassificationRule {
	return []model.ClassificationRule{
		// Diet rules come first so meal mentions beat generic spending words.
		{
			Pattern:     `早餐|breakfast|早饭`,
			Category:    "diet",
			Subcategory: "breakfast",
			Tags:        []string{"breakfast", "diet"},
		},
		{
			Pattern:     `午餐|lunch|中饭`,
			Category:    "diet",
			Subcategory: "lunch",
			Tags:        []string{"lunch", "diet"},
		},
		{
			Pattern:     `晚餐|dinner|晚饭|夜宵`,
			Category:    "diet",
			Subcategory: "dinner",
			Tags:        []string{"dinner", "diet"},
		},
		{
			Pattern:     `购物|买|消费|支出|花钱|payment|shopping`,
			Category:    "spending",
			Subcategory: "shopping",
			Tags:        []string{"spending", "shopping"},
		},
		{
			Pattern:     `运动|健身|跑步|瑜伽|游泳|exercise|gym`,
			Category:    "exercise",
			Subcategory: "fitness",
			Tags:        []string{"exercise", "fitness"},
		},
		{
			Pattern:     `工作|项目|任务|会议|work|project|meeting`,
			Category:    "work",
			Subcategory: "task",
			Tags:        []string{"work", "task"},
		},
		{
			Pattern:     `学习|读书|课程|教程|study|learning|course`,
			Category:    "learning",
			Subcategory: "study",
			Tags:        []string{"learning", "knowledge"},
		},
		{
			Pattern:     `聚会|朋友|家人|社交|party|friend|family`,
			Category:    "social",
			Subcategory: "activity",
			Tags:        []string{"social", "activity"},
		},
	}
}
