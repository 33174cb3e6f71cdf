package core

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/sliink/chaincore/internal/model"
)

// RegistryOptionFunc modifies a Registry at construction time
type RegistryOptionFunc func(*Registry)

// WithLogger specifies the logger used for lifecycle diagnostics
func WithLogger(logger *slog.Logger) RegistryOptionFunc {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithEventPublisher specifies where lifecycle events are published
func WithEventPublisher(publisher EventPublisher) RegistryOptionFunc {
	return func(r *Registry) {
		r.events = publisher
	}
}

// Registry owns the set of named components and the shared configuration
type Registry struct {
	components  map[string]Component
	order       []string
	config      model.Config
	initialized bool
	logger      *slog.Logger
	events      EventPublisher
	mutex       sync.RWMutex
}

// NewRegistry creates a new, uninitialized component registry
func NewRegistry(opts ...RegistryOptionFunc) *Registry {
	r := &Registry{
		components: make(map[string]Component),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Initialize validates and stores cfg and marks the registry ready.
// Calling it again replaces the stored configuration.
func (r *Registry) Initialize(cfg model.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mutex.Lock()
	wasInitialized := r.initialized
	r.config = cfg.Clone()
	r.initialized = true
	r.mutex.Unlock()

	if wasInitialized {
		r.logger.Debug("registry configuration replaced", "network", cfg.NetworkID)
		r.publish(model.EventConfigChange, "registry", cfg.NetworkID)
	} else {
		r.logger.Debug("registry initialized", "network", cfg.NetworkID, "endpoint", cfg.APIEndpoint)
	}
	return nil
}

// IsInitialized reports whether the registry is ready
func (r *Registry) IsInitialized() bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.initialized
}

// RegisterComponent adds a component under its name
func (r *Registry) RegisterComponent(c Component) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.initialized {
		return model.RegistryNotInitialized()
	}
	if c == nil {
		return model.InvalidInput("registry", "component is nil")
	}
	name := c.Name()
	if strings.TrimSpace(name) == "" {
		return model.InvalidInput("registry", "component name is empty")
	}
	if _, exists := r.components[name]; exists {
		return model.DuplicateComponent(name)
	}

	r.components[name] = c
	r.order = append(r.order, name)
	r.logger.Debug("component registered", "component", name)
	return nil
}

// UnregisterComponent removes a component by name. The component's own
// lifecycle state is not changed.
func (r *Registry) UnregisterComponent(name string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.initialized {
		return model.RegistryNotInitialized()
	}
	if _, exists := r.components[name]; !exists {
		return model.ComponentNotFound(name)
	}

	delete(r.components, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.logger.Debug("component unregistered", "component", name)
	return nil
}

// Component retrieves a registered component by name
func (r *Registry) Component(name string) (Component, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	c, exists := r.components[name]
	return c, exists
}

// ComponentCount returns the number of registered components
func (r *Registry) ComponentCount() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.components)
}

// ComponentNames returns the registered names in registration order
func (r *Registry) ComponentNames() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Components returns the registered components in registration order
func (r *Registry) Components() []Component {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]Component, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.components[name])
	}
	return result
}

// Config returns a copy of the stored configuration
func (r *Registry) Config() model.Config {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.config.Clone()
}

// UpdateConfig replaces the stored configuration on a ready registry
func (r *Registry) UpdateConfig(cfg model.Config) error {
	r.mutex.Lock()
	if !r.initialized {
		r.mutex.Unlock()
		return model.RegistryNotInitialized()
	}
	if err := cfg.Validate(); err != nil {
		r.mutex.Unlock()
		return err
	}
	r.config = cfg.Clone()
	r.mutex.Unlock()

	r.publish(model.EventConfigChange, "registry", cfg.NetworkID)
	return nil
}

// InitializeComponents initializes every component in registration order.
// The first failure stops the sweep; components already initialized stay ready.
func (r *Registry) InitializeComponents() error {
	components, err := r.snapshot(false)
	if err != nil {
		return err
	}

	for _, c := range components {
		if !c.Initialize() {
			r.logger.Error("component initialization failed", "component", c.Name())
			r.publish(model.EventComponentFailed, c.Name(), "initialize")
			return model.OperationFailed(c.Name(), nil, "initialize failed")
		}
		r.logger.Debug("component ready", "component", c.Name())
		r.publish(model.EventComponentReady, c.Name(), nil)
	}
	return nil
}

// ShutdownComponents shuts every component down in reverse registration order.
// The first failure stops the sweep.
func (r *Registry) ShutdownComponents() error {
	components, err := r.snapshot(true)
	if err != nil {
		return err
	}

	for _, c := range components {
		// published before the call so the event bus can still deliver its own shutdown
		r.publish(model.EventComponentShutdown, c.Name(), nil)
		if !c.Shutdown() {
			r.logger.Error("component shutdown failed", "component", c.Name())
			r.publish(model.EventComponentFailed, c.Name(), "shutdown")
			return model.OperationFailed(c.Name(), nil, "shutdown failed")
		}
		r.logger.Debug("component shut down", "component", c.Name())
	}
	return nil
}

// Shutdown shuts all components down and returns the registry to the
// uninitialized state. Registered components are kept.
func (r *Registry) Shutdown() error {
	if !r.IsInitialized() {
		return nil
	}
	if err := r.ShutdownComponents(); err != nil {
		return err
	}

	r.mutex.Lock()
	r.initialized = false
	r.mutex.Unlock()
	r.logger.Debug("registry shut down")
	return nil
}

func (r *Registry) snapshot(reverse bool) ([]Component, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if !r.initialized {
		return nil, model.RegistryNotInitialized()
	}

	result := make([]Component, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.components[name])
	}
	if reverse {
		for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
			result[i], result[j] = result[j], result[i]
		}
	}
	return result, nil
}

func (r *Registry) publish(eventType model.EventType, source string, data interface{}) {
	if r.events == nil {
		return
	}
	r.events.Publish(NewEvent(eventType, source, data))
}
