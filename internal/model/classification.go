package model

// ClassificationRule is an immutable pattern-to-category mapping.
// Rules are evaluated in registration order; the first match wins.
type ClassificationRule struct {
	Pattern     string // regular expression, matched case-insensitively
	Category    string
	Subcategory string
	Tags        []string
}

// ClassificationSource records which signal produced a result.
type ClassificationSource string

// Classification source constants.
const (
	SourceTextMatching ClassificationSource = "text_matching"
	SourceAmount       ClassificationSource = "amount"
	SourceTime         ClassificationSource = "time"
	SourceDefault      ClassificationSource = "default"
	SourceNone         ClassificationSource = "none"
)

// Default category values returned when no rule matches.
const (
	CategoryOther            = "other"
	SubcategoryUncategorized = "uncategorized"
)

// ClassificationResult is the closed result shape produced by every
// classifier entry point. Results are values, produced fresh per call and
// never mutated after return.
type ClassificationResult struct {
	Metadata    map[string]string
	Category    string
	Subcategory string
	Source      ClassificationSource
	Tags        []string
	Confidence  float64
}
