package core

import (
	"sync"

	"github.com/sliink/chaincore/internal/model"
)

// Component represents a system component with lifecycle management
type Component interface {
	// Initialize moves the component to ready. Calling it on a ready component is a no-op success.
	Initialize() bool

	// Shutdown returns the component to uninitialized. Calling it twice is a no-op success.
	Shutdown() bool

	// Name returns the component's unique, stable name
	Name() string
}

// StatusReporter is implemented by components that expose their lifecycle state
type StatusReporter interface {
	Status() model.ComponentStatus
}

// BaseComponent provides the lifecycle state machine shared by all components.
// The mutex serializes lifecycle transitions and guarded operations of one instance.
type BaseComponent struct {
	name   string
	status model.ComponentStatus
	mutex  sync.Mutex
}

// NewBaseComponent creates a new base component
func NewBaseComponent(name string) BaseComponent {
	return BaseComponent{
		name:   name,
		status: model.StatusUninitialized,
	}
}

// Name returns the component's name
func (c *BaseComponent) Name() string {
	return c.name
}

// Status returns the current lifecycle status
func (c *BaseComponent) Status() model.ComponentStatus {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.status
}

// IsReady reports whether guarded operations are currently permitted
func (c *BaseComponent) IsReady() bool {
	return c.Status() == model.StatusReady
}

// Initialize marks the component ready
func (c *BaseComponent) Initialize() bool {
	return c.InitializeWith(nil)
}

// Shutdown marks the component uninitialized
func (c *BaseComponent) Shutdown() bool {
	return c.ShutdownWith(nil)
}

// InitializeWith runs setup and marks the component ready if it succeeds.
// An already ready component is left untouched and setup is not run.
func (c *BaseComponent) InitializeWith(setup func() bool) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.status == model.StatusReady {
		return true
	}
	if setup != nil && !setup() {
		return false
	}
	c.status = model.StatusReady
	return true
}

// ShutdownWith runs teardown and marks the component uninitialized.
// An uninitialized component is left untouched and teardown is not run.
func (c *BaseComponent) ShutdownWith(teardown func()) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.status != model.StatusReady {
		return true
	}
	if teardown != nil {
		teardown()
	}
	c.status = model.StatusUninitialized
	return true
}

// Guard runs op while holding the component lock, failing with
// NotInitialized when the component is not ready.
func (c *BaseComponent) Guard(op func() error) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.status != model.StatusReady {
		return model.NotInitialized(c.name)
	}
	return op()
}
