package delegate

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
)

const (
	// DefaultPollInterval is the wait between task status polls.
	DefaultPollInterval = time.Second

	// DefaultMaxPolls bounds the poll loop so a remote task that never
	// terminates cannot pin the caller forever.
	DefaultMaxPolls = 120

	// DefaultUserID identifies this caller to remote agents.
	DefaultUserID = "orchestrator_user_id"
)

/*
Client performs one synchronous-looking "call a remote agent and get back
text" operation, hiding the asynchronous task lifecycle behind polling.

Every failure mode is absorbed into the returned string so the LLM driving
the orchestrator can relay it verbatim; Call never returns an error.
*/
type Client struct {
	pollInterval time.Duration
	maxPolls     int
	userID       string
}

type ClientOption func(*Client)

func NewClient(options ...ClientOption) *Client {
	client := &Client{
		pollInterval: DefaultPollInterval,
		maxPolls:     DefaultMaxPolls,
		userID:       DefaultUserID,
	}

	if interval := viper.GetDuration("delegate.pollInterval"); interval > 0 {
		client.pollInterval = interval
	}

	if maxPolls := viper.GetInt("delegate.maxPolls"); maxPolls > 0 {
		client.maxPolls = maxPolls
	}

	if userID := viper.GetString("delegate.userID"); userID != "" {
		client.userID = userID
	}

	for _, option := range options {
		option(client)
	}

	return client
}

func WithPollInterval(interval time.Duration) ClientOption {
	return func(client *Client) {
		client.pollInterval = interval
	}
}

func WithMaxPolls(maxPolls int) ClientOption {
	return func(client *Client) {
		client.maxPolls = maxPolls
	}
}

func WithUserID(userID string) ClientOption {
	return func(client *Client) {
		client.userID = userID
	}
}

/*
Call sends message text to the agent at agentURL and blocks until the
resulting task reaches a terminal state, returning the first text part of
the result.  Polls run strictly sequentially with one send per call.
*/
func (client *Client) Call(
	ctx context.Context, agentURL string, agentID string, messageText string,
) string {
	conn := a2a.NewClient(agentURL)

	response, err := conn.SendMessage(a2a.MessageSendParams{
		Message: *a2a.NewTextMessage("user", messageText),
		AgentID: agentID,
		UserID:  client.userID,
	})

	if err != nil {
		log.Error("failed to send message", "agent", agentID, "error", err)
		return fmt.Sprintf("Exception calling %s: %s", agentID, err.Error())
	}

	if response.Error != nil {
		log.Error("agent returned error",
			"agent", agentID, "code", response.Error.Code, "message", response.Error.Message,
		)
		return fmt.Sprintf("Error calling %s: %s", agentID, response.Error.Message)
	}

	if response.Result == nil {
		return fmt.Sprintf("Unexpected response from %s.", agentID)
	}

	// Some agents answer synchronously with a bare message instead of a task.
	if message := response.Result.Message; message != nil {
		if text, ok := message.FirstText(); ok {
			return text
		}
		return "Task completed but no text artifact found."
	}

	task := response.Result.Task

	if task == nil {
		return fmt.Sprintf("Unexpected response from %s.", agentID)
	}

	return client.poll(ctx, conn, agentID, task.ID)
}

func (client *Client) poll(
	ctx context.Context, conn *a2a.Client, agentID string, taskID string,
) string {
	for poll := 0; poll < client.maxPolls; poll++ {
		select {
		case <-ctx.Done():
			return fmt.Sprintf("Exception calling %s: %s", agentID, ctx.Err())
		case <-time.After(client.pollInterval):
		}

		response, err := conn.GetTask(a2a.TaskQueryParams{
			TaskIDParams: a2a.TaskIDParams{ID: taskID},
		})

		if err != nil {
			log.Error("failed to poll task", "agent", agentID, "task_id", taskID, "error", err)
			return fmt.Sprintf("Error polling %s task: %s", agentID, err.Error())
		}

		if response.Error != nil {
			return fmt.Sprintf("Error polling %s task: %s", agentID, response.Error.Message)
		}

		task := response.Result

		if task == nil {
			return fmt.Sprintf("Unexpected polling response from %s.", agentID)
		}

		switch {
		case task.Status.State == a2a.TaskStateCompleted:
			// First text part wins; any further parts, including files,
			// are dropped on purpose.
			if text, ok := task.FirstText(); ok {
				return text
			}
			return "Task completed but no text artifact found."
		case task.Status.State.Failure():
			reason, ok := task.StatusText()
			if !ok {
				reason = "Task failed without specific error."
			}
			return fmt.Sprintf("%s task failed: %s", agentID, reason)
		}
	}

	return fmt.Sprintf("%s task did not reach a terminal state after %d polls.", agentID, client.maxPolls)
}
