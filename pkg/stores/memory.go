package stores

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
	"github.com/theailifestyle/mas-a2a/pkg/errors"
)

/*
InMemoryTaskStore keeps tasks in process memory.  Task state is lost on
restart, which is fine for the demo agents; the s3 store covers persistence.
*/
type InMemoryTaskStore struct {
	tasks sync.Map
}

func NewInMemoryTaskStore() *InMemoryTaskStore {
	return &InMemoryTaskStore{}
}

// clone round-trips a task through JSON so callers never share memory with
// the stored copy.
func clone(task *a2a.Task) (*a2a.Task, error) {
	buf, err := json.Marshal(task)

	if err != nil {
		return nil, err
	}

	var out a2a.Task

	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (store *InMemoryTaskStore) Get(
	ctx context.Context, id string,
) (*a2a.Task, *errors.RpcError) {
	value, ok := store.tasks.Load(id)

	if !ok {
		return nil, errors.ErrTaskNotFound
	}

	task, err := clone(value.(*a2a.Task))

	if err != nil {
		log.Error("failed to copy task", "task_id", id, "error", err)
		return nil, errors.ErrInternal.WithMessagef("failed to copy task: %v", err)
	}

	return task, nil
}

func (store *InMemoryTaskStore) Create(
	ctx context.Context, task *a2a.Task,
) *errors.RpcError {
	return store.put(task)
}

func (store *InMemoryTaskStore) Update(
	ctx context.Context, task *a2a.Task,
) *errors.RpcError {
	if _, ok := store.tasks.Load(task.ID); !ok {
		return errors.ErrTaskNotFound
	}

	return store.put(task)
}

func (store *InMemoryTaskStore) Delete(
	ctx context.Context, id string,
) *errors.RpcError {
	store.tasks.Delete(id)
	return nil
}

func (store *InMemoryTaskStore) put(task *a2a.Task) *errors.RpcError {
	copied, err := clone(task)

	if err != nil {
		log.Error("failed to copy task", "task_id", task.ID, "error", err)
		return errors.ErrInternal.WithMessagef("failed to copy task: %v", err)
	}

	store.tasks.Store(task.ID, copied)
	return nil
}
