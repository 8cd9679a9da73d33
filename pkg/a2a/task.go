package a2a

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

type Task struct {
	ID        string         `json:"id"`
	ContextID string         `json:"contextId,omitempty"`
	Status    TaskStatus     `json:"status"`
	History   []Message      `json:"history,omitempty"`
	Artifacts []Artifact     `json:"artifacts,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewTask returns a freshly submitted task with a unique id.
func NewTask(contextID string) *Task {
	return &Task{
		ID:        uuid.NewString(),
		ContextID: contextID,
		Status: TaskStatus{
			State:     TaskStateSubmitted,
			Timestamp: time.Now().UTC(),
		},
	}
}

func (task *Task) ToStatus(state TaskState, message *Message) {
	task.Status.State = state
	task.Status.Timestamp = time.Now().UTC()
	task.Status.Message = message
}

func (task *Task) AddArtifact(artifact Artifact) {
	artifact.Index = len(task.Artifacts)
	task.Artifacts = append(task.Artifacts, artifact)
}

/*
FirstText scans the task's artifacts in order and, within each artifact, its
parts in order, returning the text of the first text-typed part.

This is a deliberate truncation policy: everything after the first text part
(including file parts and further artifacts) is discarded by callers that
only want a plain text outcome.
*/
func (task *Task) FirstText() (string, bool) {
	for _, artifact := range task.Artifacts {
		for _, part := range artifact.Parts {
			if part.Kind == PartKindText {
				return part.Text, true
			}
		}
	}
	return "", false
}

// StatusText returns the text carried on the current status message, if any.
func (task *Task) StatusText() (string, bool) {
	if task.Status.Message == nil {
		return "", false
	}
	return task.Status.Message.FirstText()
}

// MessageSendParams are the parameters for the message/send method.
type MessageSendParams struct {
	// Message is the content to send to the agent for processing.
	Message Message `json:"message"`
	// AgentID is the logical name the remote agent expects to be addressed as.
	AgentID string `json:"agentId,omitempty"`
	// UserID identifies the caller on whose behalf the message is sent.
	UserID string `json:"userId,omitempty"`
	// Metadata is optional metadata associated with sending this message.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// TaskIDParams are the base parameters for task id based operations.
type TaskIDParams struct {
	ID       string         `json:"id"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// TaskQueryParams are the parameters for the tasks/get method.
type TaskQueryParams struct {
	TaskIDParams
	HistoryLength *int `json:"historyLength,omitempty"`
}

/*
SendResult is the union of the two success shapes a message/send call may
produce: a Task to be polled, or a terminal Message answered synchronously.
Exactly one of the two fields is set; when neither is, the response had an
unexpected shape and the caller must treat it as such.
*/
type SendResult struct {
	Task    *Task
	Message *Message
}

func (result *SendResult) UnmarshalJSON(data []byte) error {
	var probe struct {
		Status *TaskStatus `json:"status"`
		Role   string      `json:"role"`
	}

	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch {
	case probe.Status != nil:
		var task Task
		if err := json.Unmarshal(data, &task); err != nil {
			return err
		}
		result.Task = &task
	case probe.Role != "":
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			return err
		}
		result.Message = &message
	}

	return nil
}

func (result SendResult) MarshalJSON() ([]byte, error) {
	switch {
	case result.Task != nil:
		return json.Marshal(result.Task)
	case result.Message != nil:
		return json.Marshal(result.Message)
	}
	return []byte("null"), nil
}

func (task *Task) String() string {
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	sectionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("99")).
		Bold(true)

	bullet := "│ "

	sb.WriteString(headerStyle.Render("Task") + "\n")
	sb.WriteString(bullet + labelStyle.Render("ID: ") + valueStyle.Render(task.ID) + "\n")
	sb.WriteString(bullet + labelStyle.Render("State: ") + valueStyle.Render(string(task.Status.State)) + "\n")

	if text, ok := task.StatusText(); ok {
		sb.WriteString(bullet + labelStyle.Render("Status: ") + valueStyle.Render(text) + "\n")
	}

	sb.WriteString(bullet + labelStyle.Render("Timestamp: ") + valueStyle.Render(task.Status.Timestamp.Format(time.RFC3339)) + "\n")

	if len(task.Artifacts) > 0 {
		sb.WriteString("\n" + sectionStyle.Render("Artifacts") + "\n")
		for i, artifact := range task.Artifacts {
			sb.WriteString(bullet + labelStyle.Render(fmt.Sprintf("Artifact %d", i+1)) + "\n")
			if artifact.Name != nil {
				sb.WriteString(bullet + "   " + labelStyle.Render("Name: ") + valueStyle.Render(*artifact.Name) + "\n")
			}
			for j, part := range artifact.Parts {
				if part.Kind != PartKindText {
					continue
				}
				sb.WriteString(bullet + "   " + labelStyle.Render(fmt.Sprintf("Part %d: ", j+1)) + valueStyle.Render(part.Text) + "\n")
			}
		}
	}

	return sb.String()
}
