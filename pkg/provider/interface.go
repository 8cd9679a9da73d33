package provider

import (
	"context"
	"fmt"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
	"github.com/theailifestyle/mas-a2a/pkg/tools"
)

// maxToolRounds bounds the model/tool back-and-forth inside a single
// completion so a confused model cannot loop forever.
const maxToolRounds = 8

/*
Params carries everything a provider needs for one completion: the
conversation so far, the system instruction, and the tools the model may
call.
*/
type Params struct {
	Model       string
	Instruction string
	History     []a2a.Message
	Tools       []tools.Tool
	MaxTokens   int64
	Temperature float64
}

// Result is the final output of a completion, already converted to A2A
// content parts.
type Result struct {
	Parts []a2a.Part
}

/*
Interface is implemented by every LLM backend.  Complete blocks until the
model produces a final answer, executing any intermediate tool calls.
*/
type Interface interface {
	Complete(ctx context.Context, params *Params) (*Result, error)
}

/*
New builds a provider by name as configured per agent (provider: google |
openai | anthropic).
*/
func New(ctx context.Context, name string) (Interface, error) {
	switch name {
	case "google", "":
		return NewGoogleProvider(ctx)
	case "openai":
		return NewOpenAIProvider(), nil
	case "anthropic":
		return NewAnthropicProvider(), nil
	}

	return nil, fmt.Errorf("unknown provider: %s", name)
}
