package stores

import (
	"context"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
	"github.com/theailifestyle/mas-a2a/pkg/errors"
)

/*
TaskStore persists tasks between the send and the polls that follow it.
Implementations must be safe for concurrent use: each incoming request is
served on its own goroutine.
*/
type TaskStore interface {
	Get(ctx context.Context, id string) (*a2a.Task, *errors.RpcError)
	Create(ctx context.Context, task *a2a.Task) *errors.RpcError
	Update(ctx context.Context, task *a2a.Task) *errors.RpcError
	Delete(ctx context.Context, id string) *errors.RpcError
}
