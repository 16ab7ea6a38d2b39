package sandboxpool

import "errors"

// Sentinel errors surfaced by the manager, matching the original error
// kinds one for one. Wrap with fmt.Errorf("...: %w", ErrX) to add detail
// and still satisfy errors.Is against these values.
var (
	ErrSandboxCreationFailed    = errors.New("sandbox creation failed")
	ErrSandboxDestructionFailed = errors.New("sandbox destruction failed")
	ErrToolInitializationFailed = errors.New("tool initialization failed")
	ErrNoSandboxAvailable       = errors.New("no sandbox available from idle queue")
	ErrSemaphoreClosed          = errors.New("semaphore closed")
	ErrFileOperationFailed      = errors.New("file operation failed")
	ErrCommandExecutionFailed   = errors.New("command execution failed")
	ErrExecutionFailed          = errors.New("sandbox execution failed")
	ErrQueueFull                = errors.New("failed to return sandbox to idle queue")
)
