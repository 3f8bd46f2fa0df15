package llm

import (
	"context"
	"sync"
)

// MockClient is a test implementation of the Client interface.
// It records calls and returns scripted replies.
type MockClient struct {
	// Reply is returned for every Chat call when ReplyFn is nil.
	Reply string
	// Err, when set, is returned instead of a reply.
	Err error
	// ReplyFn, when set, computes the reply per call.
	ReplyFn func(systemPrompt string, history []Message, message string) (string, error)

	calls []MockChatCall
	mu    sync.Mutex
}

// MockChatCall records the arguments of one Chat invocation.
type MockChatCall struct {
	SystemPrompt string
	Message      string
	History      []Message
}

// Chat returns the scripted reply and records the call.
func (m *MockClient) Chat(_ context.Context, systemPrompt string, history []Message, message string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockChatCall{
		SystemPrompt: systemPrompt,
		History:      append([]Message(nil), history...),
		Message:      message,
	})
	m.mu.Unlock()

	if m.ReplyFn != nil {
		return m.ReplyFn(systemPrompt, history, message)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

// Calls returns a copy of the recorded calls.
func (m *MockClient) Calls() []MockChatCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockChatCall(nil), m.calls...)
}
