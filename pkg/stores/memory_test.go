package stores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
	"github.com/theailifestyle/mas-a2a/pkg/errors"
)

func TestInMemoryTaskStoreCreateGet(t *testing.T) {
	store := NewInMemoryTaskStore()
	ctx := context.Background()

	task := a2a.NewTask("session-1")
	task.History = append(task.History, *a2a.NewTextMessage("user", "hello"))

	assert.Nil(t, store.Create(ctx, task))

	got, rpcErr := store.Get(ctx, task.ID)
	assert.Nil(t, rpcErr)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, a2a.TaskStateSubmitted, got.Status.State)
	assert.Len(t, got.History, 1)
}

func TestInMemoryTaskStoreGetMissing(t *testing.T) {
	store := NewInMemoryTaskStore()

	_, rpcErr := store.Get(context.Background(), "nope")
	assert.Equal(t, errors.ErrTaskNotFound, rpcErr)
}

func TestInMemoryTaskStoreUpdate(t *testing.T) {
	store := NewInMemoryTaskStore()
	ctx := context.Background()

	task := a2a.NewTask("session-1")
	assert.Nil(t, store.Create(ctx, task))

	task.ToStatus(a2a.TaskStateCompleted, a2a.NewTextMessage("agent", "done"))
	task.AddArtifact(a2a.NewTextArtifact("result", "42"))
	assert.Nil(t, store.Update(ctx, task))

	got, rpcErr := store.Get(ctx, task.ID)
	assert.Nil(t, rpcErr)
	assert.Equal(t, a2a.TaskStateCompleted, got.Status.State)

	text, ok := got.FirstText()
	assert.True(t, ok)
	assert.Equal(t, "42", text)
}

func TestInMemoryTaskStoreUpdateMissing(t *testing.T) {
	store := NewInMemoryTaskStore()

	task := a2a.NewTask("session-1")
	rpcErr := store.Update(context.Background(), task)
	assert.Equal(t, errors.ErrTaskNotFound, rpcErr)
}

func TestInMemoryTaskStoreReturnsCopies(t *testing.T) {
	store := NewInMemoryTaskStore()
	ctx := context.Background()

	task := a2a.NewTask("session-1")
	assert.Nil(t, store.Create(ctx, task))

	// Mutating what Get returned must not leak into the stored task.
	first, _ := store.Get(ctx, task.ID)
	first.Status.State = a2a.TaskStateFailed

	second, _ := store.Get(ctx, task.ID)
	assert.Equal(t, a2a.TaskStateSubmitted, second.Status.State)
}
