package tools

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theailifestyle/mas-a2a/pkg/tools/docker"
)

func TestCodeExecutorRun(t *testing.T) {
	executor := NewCodeExecutor(WithRunner(
		func(ctx context.Context, image string, cmd []string, timeout time.Duration) (*docker.Result, error) {
			assert.Equal(t, DefaultCodeImage, image)
			assert.Equal(t, []string{"python3", "-c", "print(2+2)"}, cmd)
			return &docker.Result{Stdout: "4"}, nil
		},
	))

	out, err := executor.Run(context.Background(), "print(2+2)")
	require.NoError(t, err)
	assert.Equal(t, "4", out)
}

func TestCodeExecutorNonZeroExit(t *testing.T) {
	executor := NewCodeExecutor(WithRunner(
		func(ctx context.Context, image string, cmd []string, timeout time.Duration) (*docker.Result, error) {
			return &docker.Result{ExitCode: 1, Stderr: "SyntaxError"}, nil
		},
	))

	_, err := executor.Run(context.Background(), "print(")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SyntaxError")
}

func TestCodeExecutorRunnerFailure(t *testing.T) {
	executor := NewCodeExecutor(WithRunner(
		func(ctx context.Context, image string, cmd []string, timeout time.Duration) (*docker.Result, error) {
			return nil, errors.New("docker not installed")
		},
	))

	_, err := executor.Run(context.Background(), "print(1)")
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	executor := NewCodeExecutor(WithRunner(
		func(ctx context.Context, image string, cmd []string, timeout time.Duration) (*docker.Result, error) {
			return &docker.Result{}, nil
		},
	))

	list := []Tool{executor.Tool()}

	_, ok := Find(list, "execute_code")
	assert.True(t, ok)

	_, ok = Find(list, "missing")
	assert.False(t, ok)
}
