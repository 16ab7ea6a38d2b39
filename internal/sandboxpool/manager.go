package sandboxpool

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"

	"pecan/internal/logging"
)

// ManagerConfig configures a Manager at construction time.
type ManagerConfig struct {
	// Tool is the isolation tool adapter to drive. Required.
	Tool Tool
	// Prewarm is the number of sandboxes created eagerly at construction.
	Prewarm int
	// MaxPrewarmed caps the total live sandbox count reachable via
	// scale-up; read once at construction (MAX_PREWARMED_SANDBOXES).
	MaxPrewarmed int
}

// Manager owns the set of sandboxes, the idle-id channel, the concurrency
// semaphore, and the janitor loop. It is the only owner of the Tool.
type Manager struct {
	tool Tool

	mu        sync.RWMutex
	sandboxes map[uuid.UUID]*Sandbox

	idleCh chan uuid.UUID

	permits *semaphore

	maxPrewarmed int
}

// NewManager builds the tool-backed pool and prewarms it with cfg.Prewarm
// sandboxes. Any failure during prewarm aborts construction.
func NewManager(ctx context.Context, cfg ManagerConfig) (*Manager, error) {
	if cfg.Tool == nil {
		return nil, fmt.Errorf("sandboxpool: %w: tool is required", ErrToolInitializationFailed)
	}
	maxPrewarmed := cfg.MaxPrewarmed
	if maxPrewarmed <= 0 {
		maxPrewarmed = 1000
	}

	m := &Manager{
		tool:         cfg.Tool,
		sandboxes:    make(map[uuid.UUID]*Sandbox, cfg.Prewarm),
		idleCh:       make(chan uuid.UUID, maxPrewarmed),
		permits:      newSemaphore(cfg.Prewarm, maxPrewarmed),
		maxPrewarmed: maxPrewarmed,
	}

	for i := 0; i < cfg.Prewarm; i++ {
		sb, err := m.createSandbox(ctx)
		if err != nil {
			return nil, fmt.Errorf("sandboxpool: %w: %v", ErrSandboxCreationFailed, err)
		}
		m.mu.Lock()
		m.sandboxes[sb.ID] = sb
		m.mu.Unlock()
		m.idleCh <- sb.ID
	}

	return m, nil
}

func (m *Manager) createSandbox(ctx context.Context) (*Sandbox, error) {
	inner, err := m.tool.BuildInner(ctx)
	if err != nil {
		return nil, err
	}
	return NewSandbox(inner), nil
}

// Execute runs one compile→run→measure cycle against a claimed sandbox.
func (m *Manager) Execute(ctx context.Context, opts ExecutionOptions) (ExecutionResult, error) {
	if err := m.permits.Acquire(ctx); err != nil {
		return ExecutionResult{}, fmt.Errorf("sandboxpool: %w", err)
	}
	defer m.permits.Release()

	sb, err := m.claimIdleSandbox(ctx)
	if err != nil {
		return ExecutionResult{}, err
	}

	sb.SetRunning()

	for _, f := range opts.AdditionalFiles {
		if err := m.tool.AddFileWD(ctx, sb.Inner, f.FileName, f.FileContent); err != nil {
			sb.SetError()
			return ExecutionResult{}, fmt.Errorf("sandboxpool: %w: %v", ErrFileOperationFailed, err)
		}
	}

	if opts.Compile != nil {
		result, compileErr := m.compile(ctx, sb, *opts.Compile)
		if compileErr != nil {
			return ExecutionResult{}, compileErr
		}
		if result != nil {
			return *result, nil
		}
	}

	execResult, execErr := m.tool.Execute(ctx, sb.Inner, opts)

	for _, f := range opts.AdditionalFiles {
		if err := m.tool.RemoveFileWD(ctx, sb.Inner, f.FileName); err != nil {
			sb.SetError()
			return ExecutionResult{}, fmt.Errorf("sandboxpool: %w: %v", ErrFileOperationFailed, err)
		}
	}

	if execErr != nil {
		sb.SetError()
		return ExecutionResult{}, fmt.Errorf("sandboxpool: %w: %v", ErrExecutionFailed, execErr)
	}

	sb.SetIdle()
	if !m.enqueueIdle(sb.ID) {
		sb.SetError()
		return ExecutionResult{}, fmt.Errorf("sandboxpool: %w", ErrQueueFull)
	}

	return execResult, nil
}

// compile runs the configured compiler as a host subprocess. A non-zero
// exit is not an error: it returns a graded CompileError result (after
// the sandbox has already been returned to Idle). A nil result with a nil
// error means compilation succeeded and the caller should proceed to run.
func (m *Manager) compile(ctx context.Context, sb *Sandbox, opts CompileOptions) (*ExecutionResult, error) {
	cmd := exec.CommandContext(ctx, opts.CompilerPath, opts.Args...)
	cmd.Dir = sb.Inner.Path()
	if len(opts.Env) > 0 {
		env := cmd.Environ()
		for k, v := range opts.Env {
			env = append(env, k+"="+v)
		}
		cmd.Env = env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runErr == nil {
		return nil, nil
	}

	if _, ok := runErr.(*exec.ExitError); !ok {
		sb.SetError()
		return nil, fmt.Errorf("sandboxpool: %w: %v", ErrCommandExecutionFailed, runErr)
	}

	sb.SetIdle()
	if !m.enqueueIdle(sb.ID) {
		logging.S().Warnw("failed to requeue sandbox after compile error", "sandbox_id", sb.ID)
	}

	return &ExecutionResult{
		Status: CompileError,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}, nil
}

// claimIdleSandbox repeatedly receives an id from the idle channel,
// skipping ids whose sandbox has been destroyed or is no longer Idle. A Go
// channel already serializes concurrent receives, which is the guarantee
// the original design needed an explicit receiver lock for.
func (m *Manager) claimIdleSandbox(ctx context.Context) (*Sandbox, error) {
	for {
		var id uuid.UUID
		select {
		case v, ok := <-m.idleCh:
			if !ok {
				return nil, fmt.Errorf("sandboxpool: %w", ErrNoSandboxAvailable)
			}
			id = v
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		m.mu.RLock()
		sb, present := m.sandboxes[id]
		m.mu.RUnlock()
		if !present {
			continue
		}
		if sb.Status() != StatusIdle {
			continue
		}
		return sb, nil
	}
}

// enqueueIdle pushes an id back onto the idle channel without blocking.
// A full channel (which the generous capacity should make unreachable in
// practice) is reported as a failed re-queue. The channel is never closed.
func (m *Manager) enqueueIdle(id uuid.UUID) bool {
	select {
	case m.idleCh <- id:
		return true
	default:
		return false
	}
}

// AddNewPrewarmedSandbox creates up to n sandboxes, clamped to
// MaxPrewarmed-currentTotal, and adds that many permits.
func (m *Manager) AddNewPrewarmedSandbox(ctx context.Context, n int) error {
	m.mu.RLock()
	total := len(m.sandboxes)
	m.mu.RUnlock()

	target := n
	if room := m.maxPrewarmed - total; room < target {
		target = room
	}
	if target <= 0 {
		return nil
	}

	for i := 0; i < target; i++ {
		sb, err := m.createSandbox(ctx)
		if err != nil {
			return fmt.Errorf("sandboxpool: %w: %v", ErrSandboxCreationFailed, err)
		}
		m.mu.Lock()
		m.sandboxes[sb.ID] = sb
		m.mu.Unlock()
		m.idleCh <- sb.ID
	}

	m.permits.AddPermits(target)
	return nil
}

// RemoveIdleSandbox destroys up to n idle sandboxes, clamped to the
// current idle count, and forgets that many permits.
func (m *Manager) RemoveIdleSandbox(ctx context.Context, n int) error {
	target := n
	if idle := m.IdleSandboxesCount(); idle < target {
		target = idle
	}

	removed := 0
	for i := 0; i < target; i++ {
		var id uuid.UUID
		select {
		case v, ok := <-m.idleCh:
			if !ok {
				return fmt.Errorf("sandboxpool: %w", ErrNoSandboxAvailable)
			}
			id = v
		case <-ctx.Done():
			m.permits.ForgetPermits(removed)
			return ctx.Err()
		}

		m.mu.RLock()
		_, present := m.sandboxes[id]
		m.mu.RUnlock()
		if !present {
			continue
		}
		if err := m.DestroySandbox(ctx, id); err != nil {
			return err
		}
		removed++
	}

	m.permits.ForgetPermits(removed)
	return nil
}

// DestroySandbox removes id from the map and destroys its tool handle. A
// no-op if the id is absent.
func (m *Manager) DestroySandbox(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	sb, present := m.sandboxes[id]
	if present {
		delete(m.sandboxes, id)
	}
	m.mu.Unlock()

	if !present {
		return nil
	}
	if err := m.tool.DestroyInner(ctx, sb.Inner); err != nil {
		return fmt.Errorf("sandboxpool: %w: %v", ErrSandboxDestructionFailed, err)
	}
	return nil
}

// RunLoop wakes every 100ms until ctx is canceled. Each tick it destroys
// every Error-status sandbox, then replaces exactly that many (destroy
// first, await success, only then scale up — the ordering the original
// design calls out as correct, since add-back is clamped by total count
// and an unnoticed destroy failure would otherwise undercount it).
func (m *Manager) RunLoop(ctx context.Context) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

func (m *Manager) tick(ctx context.Context) {
	m.mu.RLock()
	var errored []uuid.UUID
	for id, sb := range m.sandboxes {
		if sb.Status() == StatusError {
			errored = append(errored, id)
		}
	}
	m.mu.RUnlock()

	destroyed := 0
	for _, id := range errored {
		if err := m.DestroySandbox(ctx, id); err != nil {
			logging.S().Warnw("janitor: failed to destroy errored sandbox", "sandbox_id", id, "error", err)
			continue
		}
		destroyed++
	}

	if destroyed > 0 {
		if err := m.AddNewPrewarmedSandbox(ctx, destroyed); err != nil {
			logging.S().Warnw("janitor: failed to replace destroyed sandboxes", "error", err)
		}
	}
}

// Teardown destroys every live sandbox, ignoring individual errors.
// Subsequent operations other than the read-only counters are undefined.
func (m *Manager) Teardown(ctx context.Context) {
	m.mu.RLock()
	ids := make([]uuid.UUID, 0, len(m.sandboxes))
	for id := range m.sandboxes {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		_ = m.DestroySandbox(ctx, id)
	}
}

// AvailableSandboxesCount returns the current map size.
func (m *Manager) AvailableSandboxesCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sandboxes)
}

func (m *Manager) countByStatus(want Status) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, sb := range m.sandboxes {
		if sb.Status() == want {
			n++
		}
	}
	return n
}

func (m *Manager) IdleSandboxesCount() int    { return m.countByStatus(StatusIdle) }
func (m *Manager) RunningSandboxesCount() int { return m.countByStatus(StatusRunning) }
func (m *Manager) ErrorSandboxesCount() int   { return m.countByStatus(StatusError) }
