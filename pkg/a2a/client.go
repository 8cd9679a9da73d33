package a2a

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	fiberClient "github.com/gofiber/fiber/v3/client"

	"github.com/theailifestyle/mas-a2a/pkg/jsonrpc"
)

// DefaultTimeout bounds each individual network call the client makes. It
// does not bound how long a caller keeps polling.
const DefaultTimeout = 60 * time.Second

/*
Client represents an A2A protocol client bound to a single agent endpoint.
*/
type Client struct {
	baseURL string
	conn    *fiberClient.Client
}

type ClientOption func(*Client)

// NewClient creates a new A2A client for the agent at baseURL.
func NewClient(baseURL string, options ...ClientOption) *Client {
	client := &Client{
		baseURL: baseURL,
		conn: fiberClient.New().
			SetBaseURL(baseURL).
			SetTimeout(DefaultTimeout),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(client *Client) {
		client.conn.SetTimeout(timeout)
	}
}

// SendMessageResponse wraps the message/send JSON-RPC response.
type SendMessageResponse struct {
	Result *SendResult
	Error  *jsonrpc.Error
}

// GetTaskResponse wraps the tasks/get JSON-RPC response.
type GetTaskResponse struct {
	Result *Task
	Error  *jsonrpc.Error
}

// CancelTaskResponse wraps the tasks/cancel JSON-RPC response.
type CancelTaskResponse struct {
	Result *Task
	Error  *jsonrpc.Error
}

/*
doRequest posts a JSON-RPC request to the agent's /rpc endpoint and decodes
the envelope.  The result stays raw for the typed wrappers to unmarshal.
*/
func (client *Client) doRequest(method string, params any) (*jsonrpc.Response, error) {
	req, err := jsonrpc.NewRequest(method, params)

	if err != nil {
		log.Error("failed to build rpc request", "method", method, "error", err)
		return nil, err
	}

	res, err := client.conn.Post(
		"/rpc",
		fiberClient.Config{
			Header: map[string]string{
				"Content-Type": "application/json",
			},
			Body: req,
		},
	)

	if err != nil {
		return nil, err
	}

	var resp jsonrpc.Response

	if err := json.Unmarshal(res.Body(), &resp); err != nil {
		return nil, fmt.Errorf("malformed response (HTTP %d): %w", res.StatusCode(), err)
	}

	// Error responses to unparseable requests legitimately carry no id.
	if resp.ID != nil && resp.ID != req.ID {
		log.Warn("response id does not match request", "method", method, "want", req.ID, "got", resp.ID)
	}

	return &resp, nil
}

/*
SendMessage sends a message to the agent.  The response wraps either a Task
to poll or a synchronously completed Message.
*/
func (client *Client) SendMessage(params MessageSendParams) (*SendMessageResponse, error) {
	resp, err := client.doRequest("message/send", params)

	if err != nil {
		return nil, err
	}

	out := &SendMessageResponse{Error: resp.Error}

	if resp.Error == nil && len(resp.Result) > 0 {
		var result SendResult
		if err := json.Unmarshal(resp.Result, &result); err != nil {
			return nil, err
		}
		out.Result = &result
	}

	return out, nil
}

/*
GetTask retrieves the current state of a task.
*/
func (client *Client) GetTask(params TaskQueryParams) (*GetTaskResponse, error) {
	resp, err := client.doRequest("tasks/get", params)

	if err != nil {
		return nil, err
	}

	out := &GetTaskResponse{Error: resp.Error}

	if resp.Error == nil && len(resp.Result) > 0 {
		var task Task
		if err := json.Unmarshal(resp.Result, &task); err != nil {
			return nil, err
		}
		out.Result = &task
	}

	return out, nil
}

/*
CancelTask asks the agent to cancel a task.  Every agent in this repository
answers with the unsupported operation error.
*/
func (client *Client) CancelTask(params TaskIDParams) (*CancelTaskResponse, error) {
	resp, err := client.doRequest("tasks/cancel", params)

	if err != nil {
		return nil, err
	}

	out := &CancelTaskResponse{Error: resp.Error}

	if resp.Error == nil && len(resp.Result) > 0 {
		var task Task
		if err := json.Unmarshal(resp.Result, &task); err != nil {
			return nil, err
		}
		out.Result = &task
	}

	return out, nil
}

/*
AgentCard fetches the published card from the well-known path.
*/
func (client *Client) AgentCard() (*AgentCard, error) {
	res, err := client.conn.Get("/.well-known/agent.json")

	if err != nil {
		return nil, err
	}

	if res.StatusCode() != 200 {
		return nil, fmt.Errorf("failed to fetch agent card: HTTP %d", res.StatusCode())
	}

	var card AgentCard

	if err := json.Unmarshal(res.Body(), &card); err != nil {
		return nil, err
	}

	return &card, nil
}
