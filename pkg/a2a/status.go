package a2a

import "time"

/*
TaskState enumerates the mutually-exclusive states a task may be in.
Unknown covers states this implementation does not recognize.
*/
type TaskState string

const (
	TaskStateSubmitted TaskState = "submitted"
	TaskStateWorking   TaskState = "working"
	TaskStateCompleted TaskState = "completed"
	TaskStateFailed    TaskState = "failed"
	TaskStateCanceled  TaskState = "canceled"
	TaskStateRejected  TaskState = "rejected"
	TaskStateUnknown   TaskState = "unknown"
)

// Terminal reports whether the state ends the task lifecycle. Completed is
// the sole success terminal; failed, canceled and rejected are failure
// terminals.
func (state TaskState) Terminal() bool {
	switch state {
	case TaskStateCompleted, TaskStateFailed, TaskStateCanceled, TaskStateRejected:
		return true
	}
	return false
}

// Failure reports whether the state is a failure terminal.
func (state TaskState) Failure() bool {
	return state.Terminal() && state != TaskStateCompleted
}

type TaskStatus struct {
	State     TaskState `json:"state"`
	Message   *Message  `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}
