package judge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pecan/internal/language"
	"pecan/internal/metrics"
	"pecan/internal/sandboxpool"
	"pecan/internal/toolchain"
)

// Executor is the subset of the sandbox manager the judge needs: run one
// compile→run cycle and report the graded outcome.
type Executor interface {
	Execute(ctx context.Context, opts sandboxpool.ExecutionOptions) (sandboxpool.ExecutionResult, error)
}

// Judge turns a language/source/stdin request into a graded Verdict by
// running it through an Executor and comparing stdout against the expected
// output.
type Judge struct {
	executor Executor
}

// New builds a Judge backed by executor.
func New(executor Executor) *Judge {
	return &Judge{executor: executor}
}

// Run executes req and grades the result. A non-nil error means the run
// itself could not be carried out (bad language, sandbox failure); it is
// distinct from a graded non-Accepted Verdict, which is returned as a
// normal Response.
func (j *Judge) Run(ctx context.Context, req Request) (Response, error) {
	start := time.Now()

	lang := language.Parse(req.Language)
	if lang == language.Unknown {
		return Response{}, fmt.Errorf("judge: unsupported language %q", req.Language)
	}

	opts, err := toolchain.BuildExecutionOptions(lang, req.Code, req.Stdin, req.TimeLimitS, req.MemoryLimitKB)
	if err != nil {
		return Response{}, fmt.Errorf("judge: %w", err)
	}

	m := metrics.Get()
	m.ExecutionsInFlight.Inc()
	result, err := j.executor.Execute(ctx, opts)
	m.ExecutionsInFlight.Dec()
	if err != nil {
		return Response{}, fmt.Errorf("judge: %w", err)
	}

	verdict := fromExecutionStatus(result.Status)
	if verdict == Accepted && !stdoutMatches(result.Stdout, req.ExpectedStdout) {
		verdict = WrongAnswer
	}

	m.RecordCodeExecution(lang.String(), verdict.String(), time.Since(start))

	return Response{
		Verdict:  verdict,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
		TimeS:    result.TimeS,
		MemoryKB: result.MemoryKB,
	}, nil
}

// stdoutMatches compares produced and expected stdout modulo a single
// trailing newline, since most toolchains unconditionally emit one.
func stdoutMatches(got, want string) bool {
	return strings.TrimSuffix(got, "\n") == strings.TrimSuffix(want, "\n")
}
