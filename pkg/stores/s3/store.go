package s3

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
	"github.com/theailifestyle/mas-a2a/pkg/errors"
)

/*
Store provides an S3 implementation of the TaskStore interface so task state
survives agent restarts.  Objects live under tasks/<id>.
*/
type Store struct {
	conn *Conn
}

/*
NewStore creates a new S3-backed task store with the given connection.
*/
func NewStore(conn *Conn) *Store {
	return &Store{conn: conn}
}

func key(id string) string {
	return "tasks/" + id
}

func (store *Store) Get(
	ctx context.Context, id string,
) (*a2a.Task, *errors.RpcError) {
	buf, err := store.conn.Get(ctx, key(id))

	if err != nil {
		log.Debug("failed to get task", "task_id", id, "error", err)
		return nil, errors.ErrTaskNotFound
	}

	var task a2a.Task

	if err := json.Unmarshal(buf, &task); err != nil {
		log.Error("failed to unmarshal task", "task_id", id, "error", err)
		return nil, errors.ErrInternal.WithMessagef("failed to unmarshal task: %v", err)
	}

	return &task, nil
}

func (store *Store) Create(
	ctx context.Context, task *a2a.Task,
) *errors.RpcError {
	return store.put(ctx, task)
}

func (store *Store) Update(
	ctx context.Context, task *a2a.Task,
) *errors.RpcError {
	return store.put(ctx, task)
}

func (store *Store) Delete(
	ctx context.Context, id string,
) *errors.RpcError {
	if err := store.conn.Remove(ctx, key(id)); err != nil {
		log.Error("failed to delete task", "task_id", id, "error", err)
		return errors.ErrInternal.WithMessagef("failed to delete task: %v", err)
	}

	return nil
}

func (store *Store) put(ctx context.Context, task *a2a.Task) *errors.RpcError {
	data, err := json.Marshal(task)

	if err != nil {
		log.Error("failed to marshal task", "task_id", task.ID, "error", err)
		return errors.ErrInternal.WithMessagef("failed to marshal task: %v", err)
	}

	if err := store.conn.Put(ctx, key(task.ID), data); err != nil {
		log.Error("failed to store task", "task_id", task.ID, "error", err)
		return errors.ErrInternal.WithMessagef("failed to store task: %v", err)
	}

	return nil
}
