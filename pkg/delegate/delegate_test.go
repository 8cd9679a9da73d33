package delegate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
	"github.com/theailifestyle/mas-a2a/pkg/jsonrpc"
)

// agentStub serves scripted JSON-RPC responses so tests control the full
// task lifecycle the client observes.
func agentStub(
	t *testing.T, handler func(req jsonrpc.Request) (any, *jsonrpc.Error),
) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req jsonrpc.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, rpcErr := handler(req)

		response := jsonrpc.Response{
			Message: jsonrpc.Message{
				MessageIdentifier: jsonrpc.MessageIdentifier{ID: req.ID},
				JSONRPC:           "2.0",
			},
			Error: rpcErr,
		}

		if result != nil {
			buf, err := json.Marshal(result)
			require.NoError(t, err)
			response.Result = buf
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
}

func taskInState(id string, state a2a.TaskState) *a2a.Task {
	task := &a2a.Task{ID: id}
	task.ToStatus(state, nil)
	return task
}

func completedTask(id string, text string) *a2a.Task {
	task := taskInState(id, a2a.TaskStateCompleted)
	task.AddArtifact(a2a.NewTextArtifact("result", text))
	return task
}

func fastClient(options ...ClientOption) *Client {
	base := []ClientOption{WithPollInterval(time.Millisecond), WithMaxPolls(10)}
	return NewClient(append(base, options...)...)
}

func TestCallImmediateCompletion(t *testing.T) {
	srv := agentStub(t, func(req jsonrpc.Request) (any, *jsonrpc.Error) {
		return completedTask("task-1", "Bonjour"), nil
	})
	defer srv.Close()

	out := fastClient().Call(context.Background(), srv.URL, "french_translator", "Hello")

	assert.Equal(t, "Bonjour", out)
}

func TestCallPollsUntilCompleted(t *testing.T) {
	polls := 0

	srv := agentStub(t, func(req jsonrpc.Request) (any, *jsonrpc.Error) {
		switch req.Method {
		case "message/send":
			return taskInState("task-2", a2a.TaskStateSubmitted), nil
		case "tasks/get":
			polls++
			if polls <= 2 {
				return taskInState("task-2", a2a.TaskStateWorking), nil
			}
			return completedTask("task-2", "Hola"), nil
		}
		return nil, &jsonrpc.Error{Code: -32601, Message: "Method not found"}
	})
	defer srv.Close()

	out := fastClient().Call(context.Background(), srv.URL, "spanish_translator", "Hello")

	assert.Equal(t, "Hola", out)
	assert.Equal(t, 3, polls, "two working polls then one extraction")
}

func TestCallTaskFailure(t *testing.T) {
	srv := agentStub(t, func(req jsonrpc.Request) (any, *jsonrpc.Error) {
		if req.Method == "message/send" {
			return taskInState("task-3", a2a.TaskStateSubmitted), nil
		}

		task := taskInState("task-3", a2a.TaskStateFailed)
		task.Status.Message = a2a.NewTextMessage("agent", "quota exceeded")
		return task, nil
	})
	defer srv.Close()

	out := fastClient().Call(context.Background(), srv.URL, "spanish_translator", "Hello")

	assert.Contains(t, out, "quota exceeded")
}

func TestCallSendError(t *testing.T) {
	polls := 0

	srv := agentStub(t, func(req jsonrpc.Request) (any, *jsonrpc.Error) {
		if req.Method == "tasks/get" {
			polls++
		}
		return nil, &jsonrpc.Error{Code: -32603, Message: "agent unreachable"}
	})
	defer srv.Close()

	out := fastClient().Call(context.Background(), srv.URL, "search_agent", "Hello")

	assert.Contains(t, out, "agent unreachable")
	assert.Equal(t, 0, polls, "send errors must not trigger polling")
}

func TestCallTransportFailure(t *testing.T) {
	srv := agentStub(t, func(req jsonrpc.Request) (any, *jsonrpc.Error) {
		return nil, nil
	})
	srv.Close()

	out := fastClient().Call(context.Background(), srv.URL, "search_agent", "Hello")

	assert.NotEmpty(t, out)
	assert.Contains(t, out, "search_agent")
}

func TestCallCompletedWithoutText(t *testing.T) {
	srv := agentStub(t, func(req jsonrpc.Request) (any, *jsonrpc.Error) {
		return taskInState("task-4", a2a.TaskStateCompleted), nil
	})
	defer srv.Close()

	out := fastClient().Call(context.Background(), srv.URL, "search_agent", "Hello")

	assert.Equal(t, "Task completed but no text artifact found.", out)
}

func TestCallSynchronousMessage(t *testing.T) {
	srv := agentStub(t, func(req jsonrpc.Request) (any, *jsonrpc.Error) {
		return a2a.NewTextMessage("agent", "direct answer"), nil
	})
	defer srv.Close()

	out := fastClient().Call(context.Background(), srv.URL, "search_agent", "Hello")

	assert.Equal(t, "direct answer", out)
}

func TestCallUnexpectedShape(t *testing.T) {
	srv := agentStub(t, func(req jsonrpc.Request) (any, *jsonrpc.Error) {
		return map[string]any{"foo": 1}, nil
	})
	defer srv.Close()

	out := fastClient().Call(context.Background(), srv.URL, "search_agent", "Hello")

	assert.Equal(t, "Unexpected response from search_agent.", out)
}

func TestCallBoundedPolling(t *testing.T) {
	srv := agentStub(t, func(req jsonrpc.Request) (any, *jsonrpc.Error) {
		if req.Method == "message/send" {
			return taskInState("task-5", a2a.TaskStateSubmitted), nil
		}
		return taskInState("task-5", a2a.TaskStateWorking), nil
	})
	defer srv.Close()

	out := fastClient(WithMaxPolls(3)).Call(context.Background(), srv.URL, "search_agent", "Hello")

	assert.Contains(t, out, "3 polls")
}

func TestCallIdempotence(t *testing.T) {
	srv := agentStub(t, func(req jsonrpc.Request) (any, *jsonrpc.Error) {
		return completedTask("task-6", "stable output"), nil
	})
	defer srv.Close()

	client := fastClient()
	first := client.Call(context.Background(), srv.URL, "search_agent", "Hello")
	second := client.Call(context.Background(), srv.URL, "search_agent", "Hello")

	assert.Equal(t, first, second)
	assert.Equal(t, "stable output", first)
}

func TestSearchAndTranslateNews(t *testing.T) {
	searchStub := agentStub(t, func(req jsonrpc.Request) (any, *jsonrpc.Error) {
		return a2a.NewTextMessage("agent", "AI breakthroughs"), nil
	})
	defer searchStub.Close()

	translateStub := agentStub(t, func(req jsonrpc.Request) (any, *jsonrpc.Error) {
		var params a2a.MessageSendParams
		require.NoError(t, json.Unmarshal(req.Params, &params))

		text, ok := params.Message.FirstText()
		require.True(t, ok)

		return a2a.NewTextMessage("agent", strings.ToUpper(text)), nil
	})
	defer translateStub.Close()

	set := NewToolset(fastClient(), Targets{
		Spanish: Target{URL: translateStub.URL, AgentID: "spanish_translator"},
		French:  Target{URL: translateStub.URL, AgentID: "french_translator"},
		Search:  Target{URL: searchStub.URL, AgentID: "search_agent"},
	})

	out := set.SearchAndTranslateNews(context.Background(), "AI news", "Spanish")

	assert.Equal(t, strings.ToUpper("News results for 'AI news': AI breakthroughs"), out)
}

func TestSearchAndTranslateNewsSearchFailure(t *testing.T) {
	searchStub := agentStub(t, func(req jsonrpc.Request) (any, *jsonrpc.Error) {
		return nil, &jsonrpc.Error{Code: -32603, Message: "search backend down"}
	})
	defer searchStub.Close()

	set := NewToolset(fastClient(), Targets{
		Search: Target{URL: searchStub.URL, AgentID: "search_agent"},
	})

	out := set.SearchAndTranslateNews(context.Background(), "AI news", "Spanish")

	assert.True(t, strings.HasPrefix(out, "Failed to get news:"), out)
	assert.Contains(t, out, "search backend down")
}

func TestSearchAndTranslateNewsUnsupportedLanguage(t *testing.T) {
	searchStub := agentStub(t, func(req jsonrpc.Request) (any, *jsonrpc.Error) {
		return a2a.NewTextMessage("agent", "AI breakthroughs"), nil
	})
	defer searchStub.Close()

	set := NewToolset(fastClient(), Targets{
		Search: Target{URL: searchStub.URL, AgentID: "search_agent"},
	})

	out := set.SearchAndTranslateNews(context.Background(), "AI news", "German")

	assert.Equal(t, "Unsupported translation language: German. Only Spanish and French are supported.", out)
}

func TestToolsetSchemas(t *testing.T) {
	set := NewToolset(fastClient(), Targets{})

	toolset := set.Tools()
	require.Len(t, toolset, 3)

	names := make([]string, 0, len(toolset))
	for _, tool := range toolset {
		names = append(names, tool.Schema.Name)
	}

	assert.ElementsMatch(t, names, []string{
		"translate_to_spanish", "translate_to_french", "search_and_translate_news",
	})
}
