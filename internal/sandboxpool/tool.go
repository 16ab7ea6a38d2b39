package sandboxpool

import "context"

// ToolInner is the tool-specific handle carried inside a Sandbox: for the
// isolate adapter, a box id and its working-directory path.
type ToolInner interface {
	BoxID() int
	Path() string
}

// Tool wraps the external isolation binary: box lifecycle, working
// directory file I/O, and sandboxed execution with accounting.
type Tool interface {
	BuildInner(ctx context.Context) (ToolInner, error)
	DestroyInner(ctx context.Context, inner ToolInner) error
	Execute(ctx context.Context, inner ToolInner, opts ExecutionOptions) (ExecutionResult, error)
	AddFileWD(ctx context.Context, inner ToolInner, fileName, content string) error
	ReadFileWD(ctx context.Context, inner ToolInner, fileName string) (string, error)
	RemoveFileWD(ctx context.Context, inner ToolInner, fileName string) error
}
