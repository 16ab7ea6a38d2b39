package sandboxpool

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a Sandbox, encoded as an int32 so it
// can be read and written atomically without a lock.
type Status int32

const (
	StatusIdle Status = iota
	StatusRunning
	StatusError
)

// Sandbox is a handle to one isolated execution environment: a stable
// identity, an atomically mutable status, and a tool-specific inner handle
// (box id plus working-directory path for the isolate adapter).
type Sandbox struct {
	ID     uuid.UUID
	status atomic.Int32
	Inner  ToolInner
}

// NewSandbox wraps a freshly built tool inner handle as an Idle sandbox.
func NewSandbox(inner ToolInner) *Sandbox {
	sb := &Sandbox{
		ID:    uuid.New(),
		Inner: inner,
	}
	sb.status.Store(int32(StatusIdle))
	return sb
}

// Status loads the current status. An unrecognized stored value (which
// cannot happen through SetIdle/SetRunning/SetError, but which the type
// system does not itself rule out) decodes fail-closed to Error.
func (sb *Sandbox) Status() Status {
	switch Status(sb.status.Load()) {
	case StatusIdle:
		return StatusIdle
	case StatusRunning:
		return StatusRunning
	default:
		return StatusError
	}
}

func (sb *Sandbox) SetIdle()    { sb.status.Store(int32(StatusIdle)) }
func (sb *Sandbox) SetRunning() { sb.status.Store(int32(StatusRunning)) }
func (sb *Sandbox) SetError()   { sb.status.Store(int32(StatusError)) }
