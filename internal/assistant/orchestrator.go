// Package assistant implements the conversational orchestrator: it detects
// life-domain modules in a message, extracts amount and polarity, obtains a
// reply from the LLM, and persists one record per detected module.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lifebase/lifebase/internal/classifier"
	"github.com/lifebase/lifebase/internal/common"
	"github.com/lifebase/lifebase/internal/keywords"
	"github.com/lifebase/lifebase/internal/llm"
	"github.com/lifebase/lifebase/internal/memory"
	"github.com/lifebase/lifebase/internal/model"
	"github.com/lifebase/lifebase/internal/service"
)

// FallbackReply is returned whenever the LLM call fails or times out. Raw
// failures never reach the end user.
const FallbackReply = "抱歉，我遇到了一点问题。不过你说的我记住了，稍后再试试吧！"

// DefaultLLMTimeout bounds each LLM call.
const DefaultLLMTimeout = 30 * time.Second

// Response is the outcome of one conversational turn.
type Response struct {
	Amount          *float64
	Text            string
	NewModuleName   string
	DetectedModules []string
}

// Orchestrator coordinates detection, LLM reply generation, and persistence
// side effects for one conversational turn.
type Orchestrator struct {
	storage    service.Storage
	client     llm.Client
	memories   memory.Store
	classifier *classifier.Classifier
	retryOpts  service.RetryOptions
	llmTimeout time.Duration
}

// Config holds orchestrator options.
type Config struct {
	RetryOpts  service.RetryOptions
	LLMTimeout time.Duration
}

// New creates an orchestrator with the given dependencies.
func New(storage service.Storage, client llm.Client, memories memory.Store, cls *classifier.Classifier, cfg Config) *Orchestrator {
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = DefaultLLMTimeout
	}
	return &Orchestrator{
		storage:    storage,
		client:     client,
		memories:   memories,
		classifier: cls,
		retryOpts:  cfg.RetryOpts,
		llmTimeout: cfg.LLMTimeout,
	}
}

// HandleMessage processes one conversational turn. It never returns an
// error: internal failures degrade to the fallback reply plus whatever
// structured data was successfully computed. Steps run in fixed order:
// detect, extract, compose and call the LLM, then persist per module.
func (o *Orchestrator) HandleMessage(ctx context.Context, message string, history []llm.Message, userID string) Response {
	detected := keywords.DetectModules(message)
	signedAmount := keywords.SignedAmount(message)

	common.LogDebug("handling message", common.Fields{
		"user_id":          userID,
		"detected_modules": len(detected),
		"has_amount":       signedAmount != nil,
	})

	detectedNames := make([]string, 0, len(detected))
	for _, cfg := range detected {
		detectedNames = append(detectedNames, cfg.Name)
	}

	resp := Response{
		Text:            FallbackReply,
		DetectedModules: detectedNames,
		Amount:          signedAmount,
	}

	systemPrompt := o.buildSystemPrompt(userID, detected, signedAmount)

	replyText, err := o.callLLM(ctx, systemPrompt, history, message)
	if err != nil {
		common.LogError(err, "LLM call failed, using fallback reply", common.Fields{
			"user_id": userID,
		})
	} else {
		resp.Text = replyText
	}

	// Persistence is best effort per module: one module failing must not
	// block the others, and must not suppress the reply already obtained.
	if userID != "" {
		for _, cfg := range detected {
			wasNew, persistErr := o.persistDetection(ctx, userID, cfg, message, signedAmount)
			// A failed record write can still have created the module.
			if wasNew {
				resp.NewModuleName = cfg.Name
			}
			if persistErr != nil {
				common.LogError(persistErr, "failed to persist detected module", common.Fields{
					"user_id":     userID,
					"module_type": cfg.Type,
				})
			}
		}

		o.remember(userID, message, resp.Text)
	}

	return resp
}

// callLLM invokes the client with a bounded timeout and retry.
func (o *Orchestrator) callLLM(ctx context.Context, systemPrompt string, history []llm.Message, message string) (string, error) {
	var reply string
	err := common.WithRetry(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, o.llmTimeout)
		defer cancel()

		var chatErr error
		reply, chatErr = o.client.Chat(callCtx, systemPrompt, history, message)
		return chatErr
	}, o.retryOpts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrLLMUnavailable, err)
	}
	return reply, nil
}

// persistDetection ensures the module exists and writes one record under
// it. Returns whether the module was created or reactivated by this turn.
func (o *Orchestrator) persistDetection(ctx context.Context, userID string, cfg keywords.ModuleKeywords, message string, signedAmount *float64) (bool, error) {
	prior, err := o.storage.GetModule(ctx, userID, cfg.Type)
	wasNew := errors.Is(err, common.ErrNotFound)
	if prior != nil && (!prior.IsActive || prior.IsHidden) {
		wasNew = true
	}

	module, err := o.storage.EnsureModule(ctx, userID, cfg.Type)
	if err != nil {
		return false, err
	}

	record := &model.RecordEntry{
		UserID:    userID,
		ModuleID:  module.ID,
		InputType: model.InputTypeText,
		Content:   message,
		Category:  string(cfg.Type),
		Amount:    signedAmount,
		Tags:      []string{cfg.Name},
	}

	if _, err := o.storage.CreateRecord(ctx, record); err != nil {
		return wasNew, err
	}

	slog.Debug("persisted detection",
		"user_id", userID,
		"module_type", cfg.Type,
		"new_module", wasNew)
	return wasNew, nil
}

// remember appends the turn to the user's memory log.
func (o *Orchestrator) remember(userID, message, reply string) {
	if o.memories == nil {
		return
	}
	content := fmt.Sprintf("user: %s\nassistant: %s", message, reply)
	o.memories.AddMemory(userID, model.MemoryTypeConversation, content, 0.8, []string{"chat", "conversation"})
}
