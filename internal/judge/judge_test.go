package judge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pecan/internal/sandboxpool"
)

type stubExecutor struct {
	result sandboxpool.ExecutionResult
	err    error
}

func (s stubExecutor) Execute(ctx context.Context, opts sandboxpool.ExecutionOptions) (sandboxpool.ExecutionResult, error) {
	return s.result, s.err
}

func TestRunAcceptedWhenStdoutMatches(t *testing.T) {
	j := New(stubExecutor{result: sandboxpool.ExecutionResult{Status: sandboxpool.Success, Stdout: "3\n"}})
	resp, err := j.Run(context.Background(), Request{Language: "python", Code: "print(3)", ExpectedStdout: "3"})
	require.NoError(t, err)
	assert.Equal(t, Accepted, resp.Verdict)
}

func TestRunWrongAnswerWhenStdoutDiffers(t *testing.T) {
	j := New(stubExecutor{result: sandboxpool.ExecutionResult{Status: sandboxpool.Success, Stdout: "4\n"}})
	resp, err := j.Run(context.Background(), Request{Language: "python", Code: "print(4)", ExpectedStdout: "3"})
	require.NoError(t, err)
	assert.Equal(t, WrongAnswer, resp.Verdict)
}

func TestRunPassesThroughNonSuccessStatuses(t *testing.T) {
	cases := []struct {
		status sandboxpool.ExecutionStatus
		want   Verdict
	}{
		{sandboxpool.CompileError, CompileError},
		{sandboxpool.RuntimeError, RuntimeError},
		{sandboxpool.TimeLimitExceeded, TimeLimitExceeded},
		{sandboxpool.MemoryLimitExceeded, MemoryLimitExceeded},
	}
	for _, c := range cases {
		j := New(stubExecutor{result: sandboxpool.ExecutionResult{Status: c.status}})
		resp, err := j.Run(context.Background(), Request{Language: "python", Code: "x", ExpectedStdout: "anything"})
		require.NoError(t, err)
		assert.Equal(t, c.want, resp.Verdict)
	}
}

func TestRunRejectsUnknownLanguage(t *testing.T) {
	j := New(stubExecutor{})
	_, err := j.Run(context.Background(), Request{Language: "cobol", Code: "x"})
	require.Error(t, err)
}

func TestRunPropagatesExecutorError(t *testing.T) {
	j := New(stubExecutor{err: assertErr{}})
	_, err := j.Run(context.Background(), Request{Language: "python", Code: "x"})
	require.Error(t, err)
}

type assertErr struct{}

func (assertErr) Error() string { return "executor failed" }
