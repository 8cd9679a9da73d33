package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/viper"

	"github.com/theailifestyle/mas-a2a/pkg/tools/docker"
)

// DefaultCodeImage runs the interpreter's Python snippets.
const DefaultCodeImage = "python:3.12-slim"

type exechook func(ctx context.Context, image string, cmd []string, timeout time.Duration) (*docker.Result, error)

/*
CodeExecutor runs short Python snippets inside a throwaway Docker container,
standing in for a hosted code execution sandbox.
*/
type CodeExecutor struct {
	image string
	run   exechook
}

type CodeExecutorOption func(*CodeExecutor)

func NewCodeExecutor(options ...CodeExecutorOption) *CodeExecutor {
	executor := &CodeExecutor{
		image: viper.GetString("tools.code.image"),
		run:   docker.Exec,
	}

	if executor.image == "" {
		executor.image = DefaultCodeImage
	}

	for _, option := range options {
		option(executor)
	}

	return executor
}

// WithCodeImage overrides the container image.
func WithCodeImage(image string) CodeExecutorOption {
	return func(executor *CodeExecutor) {
		executor.image = image
	}
}

// WithRunner injects the container runner, used by tests.
func WithRunner(run exechook) CodeExecutorOption {
	return func(executor *CodeExecutor) {
		executor.run = run
	}
}

func (executor *CodeExecutor) Run(ctx context.Context, code string) (string, error) {
	result, err := executor.run(
		ctx, executor.image, []string{"python3", "-c", code}, 30*time.Second,
	)

	if err != nil {
		return "", err
	}

	if result.ExitCode != 0 {
		return "", fmt.Errorf("code exited with %d: %s", result.ExitCode, result.Stderr)
	}

	return result.Stdout, nil
}

// Tool exposes code execution as a model-callable tool.
func (executor *CodeExecutor) Tool() Tool {
	schema := mcp.NewTool(
		"execute_code",
		mcp.WithDescription("Execute a short Python snippet and return its stdout."),
		mcp.WithString(
			"code",
			mcp.Description("The Python code to execute. Print the final result."),
			mcp.Required(),
		),
	)

	return Tool{
		Schema: schema,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			code := StringArg(args, "code")
			log.Info("executing code", "bytes", len(code))
			return executor.Run(ctx, code)
		},
	}
}
