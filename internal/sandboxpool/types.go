// Package sandboxpool implements the sandbox pool and execution pipeline:
// the isolation tool adapter, the sandbox entity, and the manager that
// pre-warms, hands out, drives, repairs, and tears down sandboxes.
package sandboxpool

// ExecutionStatus is the graded outcome of one sandboxed run.
type ExecutionStatus int

const (
	Success ExecutionStatus = iota
	CompileError
	RuntimeError
	TimeLimitExceeded
	MemoryLimitExceeded
)

// AdditionalFile is written into the sandbox working directory before
// compile/run and removed again once the run completes.
type AdditionalFile struct {
	FileName    string
	FileContent string
}

// CompileOptions describes a host-side compiler invocation run with the
// sandbox working directory as its current directory.
type CompileOptions struct {
	CompilerPath string
	Env          map[string]string
	Args         []string
}

// DirMount attaches a host directory at a path inside the sandbox.
type DirMount struct {
	DirectoryPath string
	MountPoint    string
}

// ExecutionOptions is the pure, I/O-free request produced by the toolchain
// options builder and consumed by the isolation tool adapter.
type ExecutionOptions struct {
	AdditionalFiles []AdditionalFile
	Compile         *CompileOptions
	Mounts          []DirMount
	BinaryPath      string
	Args            []string
	Stdin           string
	TimeLimitS      float64
	MemoryLimitKB   float64
}

// ExecutionResult is what the manager hands back to callers.
type ExecutionResult struct {
	Status   ExecutionStatus
	Stdout   string
	Stderr   string
	TimeS    float64
	MemoryKB float64
}
