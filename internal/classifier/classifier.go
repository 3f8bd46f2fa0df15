// Package classifier provides rule-based classification of life-log entries.
package classifier

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/lifebase/lifebase/internal/model"
)

// Confidence constants for each classification path.
const (
	confidenceRuleMatch = 0.9
	confidenceDefault   = 0.3
	confidenceAmount    = 0.6
	confidenceTime      = 0.7
)

// Amount thresholds for the spending fallback buckets.
const (
	smallExpenseLimit = 50.0
	dailyExpenseLimit = 200.0
)

// compiledRule holds a compiled regex pattern with its rule metadata.
type compiledRule struct {
	compiledRegex *regexp.Regexp
	rule          model.ClassificationRule
}

// Classifier classifies free-text entries against an ordered rule list.
// Rule order is significant and fixed at construction: earlier rules take
// precedence over later ones covering overlapping keywords. The rule set is
// append-only; existing rules are never mutated.
type Classifier struct {
	rules []compiledRule
	mu    sync.RWMutex
}

// New creates a classifier from the given ordered rule list.
func New(rules []model.ClassificationRule) (*Classifier, error) {
	c := &Classifier{
		rules: make([]compiledRule, 0, len(rules)),
	}
	for _, r := range rules {
		if err := c.appendRule(r); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddRule appends a rule after the existing ones. Appended rules rank below
// every rule already registered.
func (c *Classifier) AddRule(rule model.ClassificationRule) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appendRule(rule)
}

func (c *Classifier) appendRule(rule model.ClassificationRule) error {
	regexStr := rule.Pattern
	if !strings.HasPrefix(regexStr, "(?i)") {
		regexStr = "(?i)" + regexStr // Case-insensitive by default
	}

	regex, err := regexp.Compile(regexStr)
	if err != nil {
		return fmt.Errorf("failed to compile rule pattern %q: %w", rule.Pattern, err)
	}

	c.rules = append(c.rules, compiledRule{
		rule:          rule,
		compiledRegex: regex,
	})
	return nil
}

// ClassifyText classifies text against the rule list. The first matching
// rule wins; with no match the default "other/uncategorized" result is
// returned with low confidence. Never fails.
func (c *Classifier) ClassifyText(text string) model.ClassificationResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, cr := range c.rules {
		if cr.compiledRegex.MatchString(text) {
			return model.ClassificationResult{
				Category:    cr.rule.Category,
				Subcategory: cr.rule.Subcategory,
				Tags:        append([]string(nil), cr.rule.Tags...),
				Confidence:  confidenceRuleMatch,
				Source:      model.SourceTextMatching,
			}
		}
	}

	return defaultResult()
}

// ClassifyAmount classifies by description first, then falls back to amount
// threshold buckets when the description matched nothing.
func (c *Classifier) ClassifyAmount(amount float64, description string) model.ClassificationResult {
	result := c.ClassifyText(description)
	if result.Category != model.CategoryOther {
		return result
	}

	result.Category = string(model.ModuleTypeSpending)
	switch {
	case amount < smallExpenseLimit:
		result.Subcategory = "small expense"
		result.Tags = []string{"spending", "small"}
	case amount < dailyExpenseLimit:
		result.Subcategory = "daily expense"
		result.Tags = []string{"spending", "daily"}
	default:
		result.Subcategory = "large expense"
		result.Tags = []string{"spending", "large"}
	}
	result.Confidence = confidenceAmount
	result.Source = model.SourceAmount

	return result
}

// ClassifyTime classifies by description first, then falls back to
// hour-of-day meal buckets when the description matched nothing. Hours
// outside every bucket keep the default category but still carry the time
// path's confidence, matching long-standing behavior downstream consumers
// tie-break on.
func (c *Classifier) ClassifyTime(hour int, description string) model.ClassificationResult {
	result := c.ClassifyText(description)
	if result.Category != model.CategoryOther {
		return result
	}

	switch {
	case hour >= 6 && hour < 12:
		result.Category = string(model.ModuleTypeDiet)
		result.Subcategory = "breakfast"
		result.Tags = []string{"breakfast", "diet"}
		result.Source = model.SourceTime
	case hour >= 12 && hour < 14:
		result.Category = string(model.ModuleTypeDiet)
		result.Subcategory = "lunch"
		result.Tags = []string{"lunch", "diet"}
		result.Source = model.SourceTime
	case hour >= 18 && hour < 21:
		result.Category = string(model.ModuleTypeDiet)
		result.Subcategory = "dinner"
		result.Tags = []string{"dinner", "diet"}
		result.Source = model.SourceTime
	}
	result.Confidence = confidenceTime

	return result
}

// Input carries the optional signals for comprehensive classification.
type Input struct {
	Time   *time.Time
	Amount *float64
	Text   string
}

// ClassifyComprehensive runs each available sub-classifier independently
// and returns the single result with the highest confidence. Ties resolve
// by evaluation order (text, amount, time): the first maximal result wins.
func (c *Classifier) ClassifyComprehensive(in Input) model.ClassificationResult {
	var results []model.ClassificationResult

	if in.Text != "" {
		results = append(results, c.ClassifyText(in.Text))
	}
	if in.Amount != nil {
		results = append(results, c.ClassifyAmount(*in.Amount, in.Text))
	}
	if in.Time != nil {
		results = append(results, c.ClassifyTime(in.Time.Hour(), in.Text))
	}

	if len(results) == 0 {
		return model.ClassificationResult{
			Category:    model.CategoryOther,
			Subcategory: model.SubcategoryUncategorized,
			Tags:        []string{"other"},
			Confidence:  0,
			Source:      model.SourceNone,
		}
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.Confidence > best.Confidence {
			best = r
		}
	}
	return best
}

// Categories returns the distinct categories covered by the rule list, in
// rule order.
func (c *Classifier) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var categories []string
	for _, cr := range c.rules {
		if !seen[cr.rule.Category] {
			seen[cr.rule.Category] = true
			categories = append(categories, cr.rule.Category)
		}
	}
	return categories
}

// Subcategories returns the distinct subcategories registered under a
// category, in rule order.
func (c *Classifier) Subcategories(category string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var subcategories []string
	for _, cr := range c.rules {
		if cr.rule.Category != category {
			continue
		}
		if !seen[cr.rule.Subcategory] {
			seen[cr.rule.Subcategory] = true
			subcategories = append(subcategories, cr.rule.Subcategory)
		}
	}
	return subcategories
}

func defaultResult() model.ClassificationResult {
	return model.ClassificationResult{
		Category:    model.CategoryOther,
		Subcategory: model.SubcategoryUncategorized,
		Tags:        []string{"other"},
		Confidence:  confidenceDefault,
		Source:      model.SourceDefault,
	}
}
