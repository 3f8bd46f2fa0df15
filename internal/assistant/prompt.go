package assistant

import (
	"fmt"
	"strings"

	"github.com/lifebase/lifebase/internal/keywords"
)

// buildSystemPrompt composes the assistant instruction with the detected
// modules and extracted amount as context.
func (o *Orchestrator) buildSystemPrompt(userID string, detected []keywords.ModuleKeywords, signedAmount *float64) string {
	var sb strings.Builder

	sb.WriteString(`你是LifeBase的智能AI助手，帮助用户记录和分析日常生活。你有以下特点：

1. **温暖有同理心**：像朋友一样聊天，理解用户的情绪
2. **智能识别**：从对话中识别用户的活动类型（消费、饮食、运动、情绪、社交等）
3. **主动记录**：发现用户提到具体事件时，主动帮助记录
4. **提供洞察**：基于用户分享的信息给出简短建议

`)

	names := make([]string, 0, len(detected))
	for _, cfg := range detected {
		names = append(names, cfg.Name)
	}
	if len(names) == 0 {
		sb.WriteString("当前识别到的模块: 无\n")
	} else {
		sb.WriteString("当前识别到的模块: " + strings.Join(names, "、") + "\n")
	}

	if signedAmount != nil {
		sign := "-"
		amount := -*signedAmount
		if *signedAmount > 0 {
			sign = "+"
			amount = *signedAmount
		}
		sb.WriteString(fmt.Sprintf("识别到金额: %s%g元\n", sign, amount))
	}

	if o.memories != nil && userID != "" {
		if summary := o.memories.GenerateMemorySummary(userID); summary != "" {
			sb.WriteString(summary + "\n")
		}
	}

	sb.WriteString(`
回复规则：
- 简洁友好，像朋友聊天
- 如果识别到具体事件，确认已帮用户记录
- 如果是情绪相关，表示理解和支持
- 如果有消费/收入，简单总结一下
- 偶尔给出一个小建议或鼓励
- 回复控制在100字以内`)

	return sb.String()
}
