package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
	"github.com/theailifestyle/mas-a2a/pkg/tools"
)

// completionStub returns canned chat completion bodies in order.
func completionStub(t *testing.T, bodies []string) *httptest.Server {
	t.Helper()

	calls := 0

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Less(t, calls, len(bodies), "more completion calls than expected")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(bodies[calls]))
		calls++
	}))
}

func TestOpenAIComplete(t *testing.T) {
	srv := completionStub(t, []string{
		`{"choices":[{"message":{"role":"assistant","content":"Hola Mundo"}}]}`,
	})
	defer srv.Close()

	prvdr := NewOpenAIProvider(WithBaseURL(srv.URL))

	result, err := prvdr.Complete(context.Background(), &Params{
		Model:       "gpt-4o-mini",
		Instruction: "Translate to Spanish.",
		History:     []a2a.Message{*a2a.NewTextMessage("user", "Hello World")},
	})

	require.NoError(t, err)
	require.Len(t, result.Parts, 1)
	assert.Equal(t, "Hola Mundo", result.Parts[0].Text)
}

func TestOpenAICompleteToolRound(t *testing.T) {
	srv := completionStub(t, []string{
		`{"choices":[{"message":{"role":"assistant","tool_calls":[
			{"id":"call_1","type":"function","function":{"name":"shout","arguments":"{\"text\":\"hi\"}"}}
		]}}]}`,
		`{"choices":[{"message":{"role":"assistant","content":"done: HI"}}]}`,
	})
	defer srv.Close()

	var gotArgs map[string]any

	shout := tools.Tool{
		Schema: mcp.NewTool("shout", mcp.WithDescription("Uppercase text.")),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			gotArgs = args
			return "HI", nil
		},
	}

	prvdr := NewOpenAIProvider(WithBaseURL(srv.URL))

	result, err := prvdr.Complete(context.Background(), &Params{
		Model:   "gpt-4o-mini",
		History: []a2a.Message{*a2a.NewTextMessage("user", "shout hi")},
		Tools:   []tools.Tool{shout},
	})

	require.NoError(t, err)
	require.Len(t, result.Parts, 1)
	assert.Equal(t, "done: HI", result.Parts[0].Text)
	assert.Equal(t, map[string]any{"text": "hi"}, gotArgs)
}

func TestOpenAIConvertMessages(t *testing.T) {
	prvdr := NewOpenAIProvider()

	messages := prvdr.convertMessages(&Params{
		Instruction: "Translate to Spanish.",
		History: []a2a.Message{
			*a2a.NewTextMessage("user", "Hello"),
			*a2a.NewTextMessage("agent", "Hola"),
			*a2a.NewTextMessage("user", "World"),
		},
	})

	require.Len(t, messages, 4)

	roles := make([]string, 0, len(messages))

	for _, msg := range messages {
		raw, err := json.Marshal(msg)
		require.NoError(t, err)

		var decoded struct {
			Role string `json:"role"`
		}
		require.NoError(t, json.Unmarshal(raw, &decoded))
		roles = append(roles, decoded.Role)
	}

	assert.Equal(t, []string{"system", "user", "assistant", "user"}, roles)
}

func TestOpenAIConvertTools(t *testing.T) {
	prvdr := NewOpenAIProvider()

	converted := prvdr.convertTools([]tools.Tool{{
		Schema: mcp.NewTool(
			"web_search",
			mcp.WithDescription("Search the web."),
			mcp.WithString("query", mcp.Description("Search query."), mcp.Required()),
		),
	}})

	require.Len(t, converted, 1)
	assert.Equal(t, "web_search", converted[0].Function.Name)

	raw, err := json.Marshal(converted[0].Function.Parameters)
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))
	assert.Equal(t, "object", schema["type"])
	assert.Contains(t, schema["properties"], "query")
}
