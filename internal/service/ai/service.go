// Package ai generates MovieBot replies through the upstream chat
// completion service.
package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/movix/backend/internal/config"
	"github.com/movix/backend/internal/model/chat"
)

// historyLimit caps the conversation window forwarded upstream.
const historyLimit = 10

// defaultReply is returned when the upstream payload carries no usable text.
const defaultReply = "Sorry, I am unable to respond at the moment."

// Service encapsulates the completion call behind a fixed persona prompt.
// It is stateless: every invocation is independent and makes exactly one
// upstream attempt.
type Service struct {
	cfg   config.AIConfig
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the chat chain. It fails when the completion
// credential is missing or the model cannot be constructed.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{cfg: cfg, chain: runnable}, nil
}

// Respond forwards one user message plus its conversation window and returns
// the completion text. The window is truncated to the most recent ten
// entries; relative order is preserved.
func (s *Service) Respond(ctx context.Context, history []chat.Message, userMessage string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	input := map[string]any{
		"system":  systemPrompt,
		"history": buildHistoryMessages(history),
		"query":   userMessage,
	}

	response, err := s.chain.Invoke(callCtx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run chat chain: %w", err)
	}

	if response == nil || response.Content == "" {
		log.Printf("[ai] completion payload carried no text, using default reply")
		return defaultReply, nil
	}

	return response.Content, nil
}

// buildHistoryMessages maps the widget's conversation window onto the
// upstream two-party role vocabulary.
func buildHistoryMessages(messages []chat.Message) []*schema.Message {
	window := chat.Window(messages, historyLimit)
	if len(window) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(window))
	for _, msg := range window {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		default:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return history
}
