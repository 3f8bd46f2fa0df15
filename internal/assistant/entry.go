package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lifebase/lifebase/internal/classifier"
	"github.com/lifebase/lifebase/internal/common"
	"github.com/lifebase/lifebase/internal/keywords"
	"github.com/lifebase/lifebase/internal/llm"
	"github.com/lifebase/lifebase/internal/model"
)

// EntryResult is the outcome of logging one direct data entry.
type EntryResult struct {
	Classification model.ClassificationResult
	Record         *model.RecordEntry
	Module         *model.Module
}

// LogEntry classifies a direct data entry (the non-conversational path),
// ensures its module, and persists the record. Unlike HandleMessage this
// path reports failures: direct entries are explicit user actions, and a
// silent drop would be worse than an error.
func (o *Orchestrator) LogEntry(ctx context.Context, userID string, in classifier.Input, inputType model.InputType) (*EntryResult, error) {
	if userID == "" {
		return nil, common.ErrAuthenticationRequired
	}

	result := o.classifier.ClassifyComprehensive(in)

	moduleType := moduleTypeForCategory(result.Category)
	module, err := o.storage.EnsureModule(ctx, userID, moduleType)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure module: %w", err)
	}

	// Explicit amounts arrive signed by the caller (negative for expense,
	// positive for income); only text-derived amounts need polarity applied.
	signedAmount := in.Amount
	if signedAmount == nil && in.Text != "" {
		signedAmount = keywords.SignedAmount(in.Text)
	}

	record := &model.RecordEntry{
		UserID:      userID,
		ModuleID:    module.ID,
		InputType:   inputType,
		Content:     in.Text,
		Category:    result.Category,
		Subcategory: result.Subcategory,
		Amount:      signedAmount,
		Tags:        result.Tags,
	}

	written, err := o.storage.CreateRecord(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to write record: %w", err)
	}

	if o.memories != nil {
		o.memories.AddMemory(userID, model.MemoryTypeUserData, in.Text, result.Confidence, result.Tags)
	}

	return &EntryResult{
		Classification: result,
		Module:         module,
		Record:         written,
	}, nil
}

// AnalyzeAndLog asks the model for a structured analysis of the text before
// persisting. When the analysis beats the rule classifier's confidence, its
// category, subcategory, and amount win; the raw analysis is stored on the
// record either way. Analysis itself never fails (it degrades to a default),
// so the error surface is the same as LogEntry's.
func (o *Orchestrator) AnalyzeAndLog(ctx context.Context, userID, text string, inputType model.InputType) (*EntryResult, error) {
	if userID == "" {
		return nil, common.ErrAuthenticationRequired
	}

	analysis := llm.NewAnalyzer(o.client).AnalyzeEntry(ctx, text)

	in := classifier.Input{Text: text, Amount: analysis.Amount}
	result := o.classifier.ClassifyComprehensive(in)

	moduleType := moduleTypeForCategory(result.Category)
	if analysis.Confidence > result.Confidence {
		result.Category = analysis.Category
		result.Subcategory = analysis.Subcategory
		result.Confidence = analysis.Confidence
		moduleType = moduleTypeForCategory(analysis.SuggestedModule)
	}

	module, err := o.storage.EnsureModule(ctx, userID, moduleType)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure module: %w", err)
	}

	// Analysis amounts come back unsigned, so they take the same polarity
	// rule as keyword extraction: expense unless the text reads as income.
	var signedAmount *float64
	if analysis.Amount != nil {
		signed := -abs(*analysis.Amount)
		if keywords.IsIncome(text) {
			signed = abs(*analysis.Amount)
		}
		signedAmount = &signed
	} else {
		signedAmount = keywords.SignedAmount(text)
	}

	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	content := text
	if analysis.Content != "" {
		content = analysis.Content
	}

	record := &model.RecordEntry{
		UserID:      userID,
		ModuleID:    module.ID,
		InputType:   inputType,
		Content:     content,
		Category:    result.Category,
		Subcategory: result.Subcategory,
		Amount:      signedAmount,
		AIAnalysis:  string(analysisJSON),
		Tags:        result.Tags,
	}

	written, err := o.storage.CreateRecord(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to write record: %w", err)
	}

	if o.memories != nil {
		o.memories.AddMemory(userID, model.MemoryTypeUserData, content, result.Confidence, result.Tags)
	}

	return &EntryResult{
		Classification: result,
		Module:         module,
		Record:         written,
	}, nil
}

// moduleTypeForCategory maps a classifier category onto the closed module
// type enum. Unrecognized categories land in the custom module.
func moduleTypeForCategory(category string) model.ModuleType {
	t := model.ModuleType(category)
	if t.IsValid() {
		return t
	}
	return model.ModuleTypeCustom
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
