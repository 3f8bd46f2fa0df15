// Package model defines the core domain models used throughout the application.
package model

import "time"

// ModuleType identifies a life-domain bucket that groups records.
type ModuleType string

// Module type constants. The set is closed; unrecognized input maps to
// ModuleTypeCustom rather than minting new types at runtime.
const (
	ModuleTypeSpending      ModuleType = "spending"
	ModuleTypeIncome        ModuleType = "income"
	ModuleTypeDiet          ModuleType = "diet"
	ModuleTypeIngredients   ModuleType = "ingredients"
	ModuleTypePet           ModuleType = "pet"
	ModuleTypeSleep         ModuleType = "sleep"
	ModuleTypeExercise      ModuleType = "exercise"
	ModuleTypeMood          ModuleType = "mood"
	ModuleTypeSocial        ModuleType = "social"
	ModuleTypeWork          ModuleType = "work"
	ModuleTypeLearning      ModuleType = "learning"
	ModuleTypeEntertainment ModuleType = "entertainment"
	ModuleTypeHealth        ModuleType = "health"
	ModuleTypeCustom        ModuleType = "custom"
)

// ValidModuleTypes returns every member of the closed module type enum.
func ValidModuleTypes() []ModuleType {
	return []ModuleType{
		ModuleTypeSpending,
		ModuleTypeIncome,
		ModuleTypeDiet,
		ModuleTypeIngredients,
		ModuleTypePet,
		ModuleTypeSleep,
		ModuleTypeExercise,
		ModuleTypeMood,
		ModuleTypeSocial,
		ModuleTypeWork,
		ModuleTypeLearning,
		ModuleTypeEntertainment,
		ModuleTypeHealth,
		ModuleTypeCustom,
	}
}

// IsValid reports whether the module type is a member of the closed enum.
func (t ModuleType) IsValid() bool {
	for _, v := range ValidModuleTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// Module represents a user-scoped life-domain bucket.
// At most one module exists per (owner, type) pair; the storage layer
// enforces this with a uniqueness constraint.
type Module struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	UserID      string
	Type        ModuleType
	DisplayName string
	Icon        string
	RecordCount int
	IsActive    bool
	IsHidden    bool
}

// defaultModuleNames holds the display name shown when a module is first
// created. Names follow the original product copy.
var defaultModuleNames = map[ModuleType]string{
	ModuleTypeSpending:      "消费",
	ModuleTypeIncome:        "收入",
	ModuleTypeDiet:          "饮食",
	ModuleTypeIngredients:   "食材库",
	ModuleTypePet:           "宠物",
	ModuleTypeSleep:         "睡眠",
	ModuleTypeExercise:      "运动",
	ModuleTypeMood:          "情绪",
	ModuleTypeSocial:        "社交",
	ModuleTypeWork:          "工作",
	ModuleTypeLearning:      "学习",
	ModuleTypeEntertainment: "娱乐",
	ModuleTypeHealth:        "健康",
}

var defaultModuleIcons = map[ModuleType]string{
	ModuleTypeSpending:      "💸",
	ModuleTypeIncome:        "💰",
	ModuleTypeDiet:          "🍱",
	ModuleTypeIngredients:   "🛒",
	ModuleTypePet:           "🐾",
	ModuleTypeSleep:         "😴",
	ModuleTypeExercise:      "🏃",
	ModuleTypeMood:          "💭",
	ModuleTypeSocial:        "👥",
	ModuleTypeWork:          "💼",
	ModuleTypeLearning:      "📚",
	ModuleTypeEntertainment: "🎮",
	ModuleTypeHealth:        "❤️",
}

// DefaultDisplayName returns the display name used when a module of this
// type is lazily created. Custom modules fall back to the raw type string.
func (t ModuleType) DefaultDisplayName() string {
	if name, ok := defaultModuleNames[t]; ok {
		return name
	}
	return string(t)
}

// DefaultIcon returns the icon used when a module of this type is lazily created.
func (t ModuleType) DefaultIcon() string {
	if icon, ok := defaultModuleIcons[t]; ok {
		return icon
	}
	return "📦"
}
