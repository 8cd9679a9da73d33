package provider

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
	"github.com/theailifestyle/mas-a2a/pkg/tools"
)

/*
googleRoleMap compresses convertMessages' switch.
*/
var googleRoleMap = map[string]string{
	"user":      "user",
	"agent":     "model",
	"assistant": "model",
}

/*
GoogleProvider is a provider for the Gemini API.
*/
type GoogleProvider struct {
	client *genai.Client
}

type GoogleProviderOption func(*GoogleProvider)

func NewGoogleProvider(ctx context.Context, options ...GoogleProviderOption) (*GoogleProvider, error) {
	prvdr := &GoogleProvider{}

	for _, option := range options {
		option(prvdr)
	}

	if prvdr.client == nil {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  os.Getenv("GOOGLE_API_KEY"),
			Backend: genai.BackendGeminiAPI,
		})

		if err != nil {
			return nil, err
		}

		prvdr.client = client
	}

	return prvdr, nil
}

// WithGoogleClient injects a preconfigured genai client.
func WithGoogleClient(client *genai.Client) GoogleProviderOption {
	return func(prvdr *GoogleProvider) {
		prvdr.client = client
	}
}

func (prvdr *GoogleProvider) Complete(
	ctx context.Context, params *Params,
) (*Result, error) {
	contents := prvdr.convertMessages(params.History)

	config := &genai.GenerateContentConfig{
		Tools: prvdr.convertTools(params.Tools),
	}

	if params.Instruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: params.Instruction}},
		}
	}

	if params.MaxTokens > 0 {
		config.MaxOutputTokens = int32(params.MaxTokens)
	}

	if params.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(params.Temperature))
	}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := prvdr.client.Models.GenerateContent(
			ctx, params.Model, contents, config,
		)

		if err != nil {
			return nil, err
		}

		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return nil, fmt.Errorf("empty completion from model %s", params.Model)
		}

		candidate := resp.Candidates[0]
		calls := functionCalls(candidate)

		if len(calls) == 0 {
			return &Result{Parts: convertGenaiParts(candidate.Content.Parts)}, nil
		}

		// Tool round: feed the call and its result back and ask again.
		contents = append(contents, candidate.Content)

		for _, call := range calls {
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{prvdr.executeCall(ctx, params.Tools, call)},
			})
		}
	}

	return nil, fmt.Errorf("model %s exceeded %d tool rounds", params.Model, maxToolRounds)
}

func functionCalls(candidate *genai.Candidate) []*genai.FunctionCall {
	var calls []*genai.FunctionCall

	for _, part := range candidate.Content.Parts {
		if part.FunctionCall != nil {
			calls = append(calls, part.FunctionCall)
		}
	}

	return calls
}

func (prvdr *GoogleProvider) executeCall(
	ctx context.Context, available []tools.Tool, call *genai.FunctionCall,
) *genai.Part {
	log.Info("tool call", "tool", call.Name)

	response := map[string]any{}

	tool, ok := tools.Find(available, call.Name)

	if !ok {
		response["error"] = fmt.Sprintf("unknown tool: %s", call.Name)
	} else if out, err := tool.Execute(ctx, call.Args); err != nil {
		log.Error("tool execution failed", "tool", call.Name, "error", err)
		response["error"] = err.Error()
	} else {
		response["content"] = out
	}

	return &genai.Part{
		FunctionResponse: &genai.FunctionResponse{
			Name:     call.Name,
			Response: response,
		},
	}
}

func (prvdr *GoogleProvider) convertMessages(history []a2a.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))

	for _, msg := range history {
		role, ok := googleRoleMap[msg.Role]

		if !ok {
			role = "user"
		}

		parts := make([]*genai.Part, 0, len(msg.Parts))

		for _, part := range msg.Parts {
			if converted := convertA2APart(part); converted != nil {
				parts = append(parts, converted)
			}
		}

		if len(parts) == 0 {
			continue
		}

		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}

	return contents
}

// convertA2APart matches on the part union explicitly.  File parts carry
// either a URI reference or inline bytes.
func convertA2APart(part a2a.Part) *genai.Part {
	switch part.Kind {
	case a2a.PartKindText:
		return &genai.Part{Text: part.Text}
	case a2a.PartKindFile:
		if part.File == nil {
			return nil
		}
		if part.File.ByReference() {
			return &genai.Part{
				FileData: &genai.FileData{
					FileURI:  part.File.URI,
					MIMEType: part.File.MimeType,
				},
			}
		}
		data, err := base64.StdEncoding.DecodeString(part.File.Bytes)
		if err != nil {
			log.Error("invalid file part bytes", "name", part.File.Name, "error", err)
			return nil
		}
		return &genai.Part{
			InlineData: &genai.Blob{
				Data:     data,
				MIMEType: part.File.MimeType,
			},
		}
	}

	return nil
}

// convertGenaiParts converts model output back to the A2A part union.
func convertGenaiParts(parts []*genai.Part) []a2a.Part {
	out := make([]a2a.Part, 0, len(parts))

	for _, part := range parts {
		switch {
		case part.Text != "":
			out = append(out, a2a.NewTextPart(part.Text))
		case part.FileData != nil:
			out = append(out, a2a.NewFileRefPart("", part.FileData.MIMEType, part.FileData.FileURI))
		case part.InlineData != nil:
			out = append(out, a2a.NewFilePart("", part.InlineData.MIMEType, part.InlineData.Data))
		}
	}

	return out
}

func (prvdr *GoogleProvider) convertTools(available []tools.Tool) []*genai.Tool {
	if len(available) == 0 {
		return nil
	}

	declarations := make([]*genai.FunctionDeclaration, 0, len(available))

	for _, tool := range available {
		declarations = append(declarations, &genai.FunctionDeclaration{
			Name:        tool.Schema.Name,
			Description: tool.Schema.Description,
			Parameters:  convertSchema(tool.Schema.InputSchema.Properties, tool.Schema.InputSchema.Required),
		})
	}

	return []*genai.Tool{{FunctionDeclarations: declarations}}
}

func convertSchema(properties map[string]any, required []string) *genai.Schema {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: map[string]*genai.Schema{},
		Required:   required,
	}

	for name, raw := range properties {
		prop, ok := raw.(map[string]any)

		if !ok {
			continue
		}

		field := &genai.Schema{Type: genai.TypeString}

		if typ, ok := prop["type"].(string); ok {
			switch typ {
			case "number":
				field.Type = genai.TypeNumber
			case "integer":
				field.Type = genai.TypeInteger
			case "boolean":
				field.Type = genai.TypeBoolean
			}
		}

		if description, ok := prop["description"].(string); ok {
			field.Description = description
		}

		schema.Properties[name] = field
	}

	return schema
}
