package llmprovider

import "context"

// Tier is the cost/quality level a provider serves.
type Tier string

const (
	TierMini Tier = "mini"
	TierStd  Tier = "std"
	TierPro  Tier = "pro"
)

// Downgrade returns the next cheaper tier. TierMini downgrades to itself.
func (t Tier) Downgrade() Tier {
	switch t {
	case TierPro:
		return TierStd
	default:
		return TierMini
	}
}

// Provider defines the interface for LLM providers.
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "gemini", "deepseek")
	Name() string

	// Model returns the model being used
	Model() string
}

// Request represents a normalized LLM generation request.
// The engine only generates prose over prepared facts, so requests carry
// plain text parts and no tool declarations.
type Request struct {
	SystemInstruction *Message
	Messages          []Message
	Temperature       float64
	MaxTokens         int
}

// Message represents a conversation message.
type Message struct {
	Role  string // "user", "assistant", "system"
	Parts []Part
}

// Part represents a text part of a message.
type Part struct {
	Text string
}

// Response represents a normalized LLM generation response.
type Response struct {
	Content      Message
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns the concatenated text of the response content.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	var out string
	for _, p := range r.Content.Parts {
		out += p.Text
	}
	return out
}
