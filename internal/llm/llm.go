package llm

import "context"

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client abstracts LLM providers for the chat assistant.
type Client interface {
	Complete(ctx context.Context, system string, messages []Message) (string, error)
}
