package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lifebase/lifebase/internal/common"
	"github.com/lifebase/lifebase/internal/model"
)

// ExtractJSON locates the first JSON object or array span in free-form LLM
// text. Models frequently wrap JSON in prose or markdown fences; this scans
// for the outermost {...} or [...] span after stripping fences. Returns
// ErrMalformedResponse when no span is found.
func ExtractJSON(content string) (string, error) {
	content = cleanMarkdownWrapper(content)

	objStart := strings.Index(content, "{")
	arrStart := strings.Index(content, "[")

	start, closer := objStart, "}"
	if start < 0 || (arrStart >= 0 && arrStart < start) {
		start, closer = arrStart, "]"
	}
	if start < 0 {
		return "", fmt.Errorf("%w: no JSON span found", common.ErrMalformedResponse)
	}

	end := strings.LastIndex(content, closer)
	if end < start {
		return "", fmt.Errorf("%w: unterminated JSON span", common.ErrMalformedResponse)
	}

	return content[start : end+1], nil
}

// cleanMarkdownWrapper strips markdown code fences around a response.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// EntryAnalysis is the structured analysis of one life-log entry.
type EntryAnalysis struct {
	Amount          *float64 `json:"amount"`
	Category        string   `json:"category"`
	Subcategory     string   `json:"subcategory"`
	Content         string   `json:"content"`
	SuggestedModule string   `json:"suggested_module"`
	Confidence      float64  `json:"confidence"`
}

// DefaultEntryAnalysis is the fixed result returned when the model's reply
// cannot be parsed.
func DefaultEntryAnalysis() EntryAnalysis {
	return EntryAnalysis{
		Category:        model.CategoryOther,
		Subcategory:     model.SubcategoryUncategorized,
		SuggestedModule: string(model.ModuleTypeSpending),
		Confidence:      0,
	}
}

const analyzeSystemPrompt = `你是生活记录分析助手。分析用户输入的文字，提取消费、饮食等信息。
返回JSON格式：
{
  "category": "类别",
  "subcategory": "子类",
  "amount": 金额数字或null,
  "content": "整理后的描述",
  "suggested_module": "spending|income|diet|ingredients|pet|sleep|exercise|mood|social|work|learning|entertainment|health",
  "confidence": 0.0-1.0
}
只返回JSON。`

// Analyzer wraps a Client with the parse-or-default analysis contract.
type Analyzer struct {
	client Client
}

// NewAnalyzer creates an analyzer over the given client.
func NewAnalyzer(client Client) *Analyzer {
	return &Analyzer{client: client}
}

// AnalyzeEntry asks the model for a structured analysis of the text. It
// never fails: any call or parse failure degrades to DefaultEntryAnalysis.
func (a *Analyzer) AnalyzeEntry(ctx context.Context, text string) EntryAnalysis {
	reply, err := a.client.Chat(ctx, analyzeSystemPrompt, nil, text)
	if err != nil {
		slog.Warn("entry analysis call failed, using default", "error", err)
		return DefaultEntryAnalysis()
	}

	span, err := ExtractJSON(reply)
	if err != nil {
		slog.Warn("entry analysis reply had no JSON, using default", "error", err)
		return DefaultEntryAnalysis()
	}

	var analysis EntryAnalysis
	if err := json.Unmarshal([]byte(span), &analysis); err != nil {
		slog.Warn("entry analysis JSON did not parse, using default", "error", err)
		return DefaultEntryAnalysis()
	}

	if analysis.Category == "" {
		analysis.Category = model.CategoryOther
	}
	if analysis.Confidence < 0 {
		analysis.Confidence = 0
	} else if analysis.Confidence > 1 {
		analysis.Confidence = 1
	}

	return analysis
}
