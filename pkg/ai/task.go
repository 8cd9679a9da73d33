package ai

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
	"github.com/theailifestyle/mas-a2a/pkg/errors"
	"github.com/theailifestyle/mas-a2a/pkg/provider"
	"github.com/theailifestyle/mas-a2a/pkg/stores"
)

// taskDeadline bounds how long a single task may spend in the provider.
const taskDeadline = 5 * time.Minute

/*
TaskManager owns the task lifecycle for one agent. SendMessage stores the
task in the submitted state and returns immediately; a background
goroutine drives it through working to a terminal state, so clients
observe progress by polling tasks/get.
*/
type TaskManager struct {
	agent     *Agent
	taskStore stores.TaskStore
	provider  provider.Interface
}

type TaskManagerOption func(*TaskManager)

func NewTaskManager(
	agent *Agent, options ...TaskManagerOption,
) (*TaskManager, error) {
	taskManager := &TaskManager{
		agent: agent,
	}

	for _, option := range options {
		option(taskManager)
	}

	if taskManager.taskStore == nil {
		log.Error("missing task store")
		return nil, errors.ErrMissingTaskStore{}
	}

	if taskManager.provider == nil {
		log.Error("missing provider")
		return nil, errors.ErrMissingProvider{}
	}

	return taskManager, nil
}

/*
SendMessage creates a task for the incoming message and schedules it for
execution. The returned snapshot is always in the submitted state.
*/
func (manager *TaskManager) SendMessage(
	ctx context.Context, params a2a.MessageSendParams,
) (*a2a.Task, *errors.RpcError) {
	task := a2a.NewTask(manager.agent.Card.Name)
	task.History = append(task.History, params.Message)
	task.ToStatus(a2a.TaskStateSubmitted,
		a2a.NewTextMessage(manager.agent.Card.Name, "task created and submitted"),
	)

	if createErr := manager.taskStore.Create(ctx, task); createErr != nil {
		log.Error("failed to create task in store", "task_id", task.ID, "error", createErr)
		return nil, createErr
	}

	log.Info("task submitted", "task_id", task.ID, "agent", manager.agent.Card.Name)

	// Hand the goroutine its own copy so the returned snapshot stays stable.
	snapshot, getErr := manager.taskStore.Get(ctx, task.ID)

	if getErr != nil {
		return nil, getErr
	}

	go manager.run(task)

	return snapshot, nil
}

// run executes the task against the provider and records the outcome.
func (manager *TaskManager) run(task *a2a.Task) {
	ctx, cancel := context.WithTimeout(context.Background(), taskDeadline)
	defer cancel()

	task.ToStatus(a2a.TaskStateWorking,
		a2a.NewTextMessage(manager.agent.Card.Name, "starting task"),
	)

	if updateErr := manager.taskStore.Update(ctx, task); updateErr != nil {
		log.Error("failed to mark task working", "task_id", task.ID, "error", updateErr)
		return
	}

	result, err := manager.provider.Complete(ctx, &provider.Params{
		Model:       manager.agent.Model,
		Instruction: manager.agent.Instruction,
		History:     task.History,
		Tools:       manager.agent.Tools,
	})

	if err != nil {
		log.Error("task failed", "task_id", task.ID, "error", err)
		task.ToStatus(a2a.TaskStateFailed,
			a2a.NewTextMessage(manager.agent.Card.Name, err.Error()),
		)
	} else {
		task.AddArtifact(a2a.Artifact{Parts: result.Parts})

		if text, ok := task.FirstText(); ok {
			task.History = append(task.History, *a2a.NewTextMessage("agent", text))
		}

		task.ToStatus(a2a.TaskStateCompleted, nil)
	}

	if updateErr := manager.taskStore.Update(ctx, task); updateErr != nil {
		log.Error("failed to store task outcome", "task_id", task.ID, "error", updateErr)
	}
}

/*
GetTask retrieves the current state of a task.
*/
func (manager *TaskManager) GetTask(
	ctx context.Context, params a2a.TaskQueryParams,
) (*a2a.Task, *errors.RpcError) {
	task, err := manager.taskStore.Get(ctx, params.ID)

	if err != nil {
		return nil, err
	}

	if params.HistoryLength != nil && len(task.History) > *params.HistoryLength {
		task.History = task.History[len(task.History)-*params.HistoryLength:]
	}

	return task, nil
}

/*
CancelTask rejects cancellation. Tasks here run a single provider round
with no safe interruption point, so the method reports the operation as
unsupported rather than pretending to cancel.
*/
func (manager *TaskManager) CancelTask(
	ctx context.Context, params a2a.TaskIDParams,
) (*a2a.Task, *errors.RpcError) {
	if _, err := manager.taskStore.Get(ctx, params.ID); err != nil {
		return nil, err
	}

	return nil, errors.ErrUnsupportedOperation
}

func WithTaskStore(taskStore stores.TaskStore) TaskManagerOption {
	return func(manager *TaskManager) {
		manager.taskStore = taskStore
	}
}

func WithProvider(prvdr provider.Interface) TaskManagerOption {
	return func(manager *TaskManager) {
		manager.provider = prvdr
	}
}
