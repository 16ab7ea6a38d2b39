// Package judge maps a raw sandbox execution result onto a graded verdict
// by comparing produced stdout against the expected output.
package judge

import "pecan/internal/sandboxpool"

// Verdict is the graded outcome of a judge request.
type Verdict int

const (
	Accepted Verdict = iota
	WrongAnswer
	CompileError
	RuntimeError
	TimeLimitExceeded
	MemoryLimitExceeded
)

// String returns the wire identifier for a Verdict.
func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case WrongAnswer:
		return "wrong_answer"
	case CompileError:
		return "compile_error"
	case RuntimeError:
		return "runtime_error"
	case TimeLimitExceeded:
		return "time_limit_exceeded"
	case MemoryLimitExceeded:
		return "memory_limit_exceeded"
	default:
		return "unknown"
	}
}

// StatusCode maps a Verdict onto a small stable integer, independent of the
// transport layer's HTTP status code.
func (v Verdict) StatusCode() int {
	switch v {
	case Accepted:
		return 0
	case WrongAnswer:
		return 1
	case CompileError:
		return 2
	case RuntimeError:
		return 3
	case TimeLimitExceeded:
		return 4
	case MemoryLimitExceeded:
		return 5
	default:
		return 6
	}
}

// Request is a single judge request: source, stdin, the expected stdout to
// compare against, and resource limits.
type Request struct {
	Language      string
	Code          string
	Stdin         string
	ExpectedStdout string
	TimeLimitS    float64
	MemoryLimitKB float64
}

// Response is the graded result of one judge request.
type Response struct {
	Verdict  Verdict
	Stdout   string
	Stderr   string
	TimeS    float64
	MemoryKB float64
}

func fromExecutionStatus(status sandboxpool.ExecutionStatus) Verdict {
	switch status {
	case sandboxpool.CompileError:
		return CompileError
	case sandboxpool.RuntimeError:
		return RuntimeError
	case sandboxpool.TimeLimitExceeded:
		return TimeLimitExceeded
	case sandboxpool.MemoryLimitExceeded:
		return MemoryLimitExceeded
	default:
		return Accepted
	}
}
