package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
	"github.com/theailifestyle/mas-a2a/pkg/tools"
)

/*
OpenAIProvider is a provider for the OpenAI chat completions API.
*/
type OpenAIProvider struct {
	client openai.Client
}

type OpenAIProviderOption func(*OpenAIProvider)

func NewOpenAIProvider(options ...OpenAIProviderOption) *OpenAIProvider {
	prvdr := &OpenAIProvider{
		client: openai.NewClient(),
	}

	for _, option := range options {
		option(prvdr)
	}

	return prvdr
}

// WithBaseURL points the client at a compatible endpoint, used by tests.
func WithBaseURL(baseURL string) OpenAIProviderOption {
	return func(prvdr *OpenAIProvider) {
		prvdr.client = openai.NewClient(option.WithBaseURL(baseURL), option.WithAPIKey("test"))
	}
}

func (prvdr *OpenAIProvider) Complete(
	ctx context.Context, params *Params,
) (*Result, error) {
	request := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(params.Model),
		Messages: prvdr.convertMessages(params),
		Tools:    prvdr.convertTools(params.Tools),
	}

	if params.MaxTokens > 0 {
		request.MaxTokens = openai.Int(params.MaxTokens)
	}

	if params.Temperature > 0 {
		request.Temperature = openai.Float(params.Temperature)
	}

	for round := 0; round < maxToolRounds; round++ {
		completion, err := prvdr.client.Chat.Completions.New(ctx, request)

		if err != nil {
			return nil, err
		}

		if len(completion.Choices) == 0 {
			return nil, fmt.Errorf("empty completion from model %s", params.Model)
		}

		choice := completion.Choices[0]

		if len(choice.Message.ToolCalls) == 0 {
			return &Result{Parts: []a2a.Part{a2a.NewTextPart(choice.Message.Content)}}, nil
		}

		request.Messages = append(request.Messages, choice.Message.ToParam())

		for _, call := range choice.Message.ToolCalls {
			request.Messages = append(
				request.Messages,
				openai.ToolMessage(prvdr.executeCall(ctx, params.Tools, call), call.ID),
			)
		}
	}

	return nil, fmt.Errorf("model %s exceeded %d tool rounds", params.Model, maxToolRounds)
}

func (prvdr *OpenAIProvider) executeCall(
	ctx context.Context, available []tools.Tool, call openai.ChatCompletionMessageToolCall,
) string {
	log.Info("tool call", "tool", call.Function.Name)

	tool, ok := tools.Find(available, call.Function.Name)

	if !ok {
		return fmt.Sprintf("Error: unknown tool: %s", call.Function.Name)
	}

	var args map[string]any

	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return fmt.Sprintf("Error: invalid tool arguments: %v", err)
	}

	out, err := tool.Execute(ctx, args)

	if err != nil {
		log.Error("tool execution failed", "tool", call.Function.Name, "error", err)
		return fmt.Sprintf("Error: %s", err.Error())
	}

	return out
}

func (prvdr *OpenAIProvider) convertMessages(params *Params) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(params.History)+1)

	if params.Instruction != "" {
		messages = append(messages, openai.SystemMessage(params.Instruction))
	}

	for _, msg := range params.History {
		// Chat completions carry text only; file parts stay on the task.
		text, ok := msg.FirstText()

		if !ok {
			continue
		}

		switch msg.Role {
		case "system":
			messages = append(messages, openai.SystemMessage(text))
		case "agent", "assistant":
			messages = append(messages, openai.AssistantMessage(text))
		default:
			messages = append(messages, openai.UserMessage(text))
		}
	}

	return messages
}

func (prvdr *OpenAIProvider) convertTools(available []tools.Tool) []openai.ChatCompletionToolParam {
	if len(available) == 0 {
		return nil
	}

	out := make([]openai.ChatCompletionToolParam, 0, len(available))

	for _, tool := range available {
		out = append(out, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        tool.Schema.Name,
				Description: openai.String(tool.Schema.Description),
				Parameters: openai.FunctionParameters{
					"type":       tool.Schema.InputSchema.Type,
					"properties": tool.Schema.InputSchema.Properties,
					"required":   tool.Schema.InputSchema.Required,
				},
			},
		})
	}

	return out
}
