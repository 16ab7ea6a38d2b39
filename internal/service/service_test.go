package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pecan/internal/judge"
	"pecan/internal/sandboxpool"
)

type fakeInner struct{ boxID int }

func (f fakeInner) BoxID() int   { return f.boxID }
func (f fakeInner) Path() string { return fmt.Sprintf("/fake/%d", f.boxID) }

type fakeTool struct {
	counter int
	stdout  string
	status  sandboxpool.ExecutionStatus
}

func (t *fakeTool) BuildInner(ctx context.Context) (sandboxpool.ToolInner, error) {
	t.counter++
	return fakeInner{boxID: t.counter}, nil
}
func (t *fakeTool) DestroyInner(ctx context.Context, inner sandboxpool.ToolInner) error { return nil }
func (t *fakeTool) Execute(ctx context.Context, inner sandboxpool.ToolInner, opts sandboxpool.ExecutionOptions) (sandboxpool.ExecutionResult, error) {
	return sandboxpool.ExecutionResult{Status: t.status, Stdout: t.stdout}, nil
}
func (t *fakeTool) AddFileWD(ctx context.Context, inner sandboxpool.ToolInner, fileName, content string) error {
	return nil
}
func (t *fakeTool) ReadFileWD(ctx context.Context, inner sandboxpool.ToolInner, fileName string) (string, error) {
	return "", nil
}
func (t *fakeTool) RemoveFileWD(ctx context.Context, inner sandboxpool.ToolInner, fileName string) error {
	return nil
}

func TestServiceRunGradesAccepted(t *testing.T) {
	tool := &fakeTool{stdout: "7\n", status: sandboxpool.Success}
	s, err := New(context.Background(), Spec{MaxQueueSize: 8, MaxConcurrentExecutions: 1, Tool: tool})
	require.NoError(t, err)

	resp, err := s.Run(context.Background(), judge.Request{Language: "python", Code: "print(7)", ExpectedStdout: "7"})
	require.NoError(t, err)
	assert.Equal(t, judge.Accepted, resp.Verdict)
}

func TestServiceStatusCountersReflectPoolSize(t *testing.T) {
	tool := &fakeTool{status: sandboxpool.Success}
	s, err := New(context.Background(), Spec{MaxQueueSize: 8, MaxConcurrentExecutions: 3, Tool: tool})
	require.NoError(t, err)

	assert.Equal(t, 3, s.AvailableSandboxesCount())
	assert.Equal(t, 3, s.IdleSandboxesCount())
}

func TestServiceShutdownTeardownsSandboxes(t *testing.T) {
	tool := &fakeTool{status: sandboxpool.Success}
	s, err := New(context.Background(), Spec{MaxQueueSize: 8, MaxConcurrentExecutions: 2, Tool: tool})
	require.NoError(t, err)

	require.NoError(t, s.Shutdown(context.Background()))
	assert.Equal(t, 0, s.AvailableSandboxesCount())
}

func TestNewRequiresTool(t *testing.T) {
	_, err := New(context.Background(), Spec{MaxQueueSize: 1, MaxConcurrentExecutions: 1})
	require.Error(t, err)
}
