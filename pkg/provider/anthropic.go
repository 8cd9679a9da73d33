package provider

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
)

/*
AnthropicProvider is a provider for the Anthropic messages API. It handles
text completions only; agents that need tool calls use another provider.
*/
type AnthropicProvider struct {
	client anthropic.Client
}

type AnthropicProviderOption func(*AnthropicProvider)

func NewAnthropicProvider(options ...AnthropicProviderOption) *AnthropicProvider {
	prvdr := &AnthropicProvider{
		client: anthropic.NewClient(),
	}

	for _, option := range options {
		option(prvdr)
	}

	return prvdr
}

func WithAnthropicClient(client anthropic.Client) AnthropicProviderOption {
	return func(prvdr *AnthropicProvider) {
		prvdr.client = client
	}
}

func (prvdr *AnthropicProvider) Complete(
	ctx context.Context, params *Params,
) (*Result, error) {
	request := anthropic.MessageNewParams{
		Model:     anthropic.Model(params.Model),
		MaxTokens: params.MaxTokens,
		Messages:  prvdr.convertMessages(params.History),
	}

	if request.MaxTokens == 0 {
		request.MaxTokens = 1024
	}

	if params.Instruction != "" {
		request.System = []anthropic.TextBlockParam{
			{Text: params.Instruction},
		}
	}

	if params.Temperature > 0 {
		request.Temperature = anthropic.Float(params.Temperature)
	}

	message, err := prvdr.client.Messages.New(ctx, request)

	if err != nil {
		return nil, err
	}

	parts := make([]a2a.Part, 0, len(message.Content))

	for _, block := range message.Content {
		switch block := block.AsAny().(type) {
		case anthropic.TextBlock:
			parts = append(parts, a2a.NewTextPart(block.Text))
		}
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("empty completion from model %s", params.Model)
	}

	return &Result{Parts: parts}, nil
}

func (prvdr *AnthropicProvider) convertMessages(
	history []a2a.Message,
) []anthropic.MessageParam {
	messages := make([]anthropic.MessageParam, 0, len(history))

	for _, msg := range history {
		text, ok := msg.FirstText()

		if !ok {
			continue
		}

		switch msg.Role {
		case "agent", "assistant":
			messages = append(messages, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(text),
			))
		default:
			messages = append(messages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(text),
			))
		}
	}

	return messages
}
