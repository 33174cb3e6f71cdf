package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/sliink/chaincore/internal/model"
)

// HealthMonitor reports the lifecycle state of every registered component
type HealthMonitor struct {
	registry   *Registry
	bus        *EventBus
	lastErrors map[string]string
	mutex      sync.RWMutex
	BaseComponent
}

// NewHealthMonitor creates a new health monitor over registry
func NewHealthMonitor(registry *Registry) *HealthMonitor {
	return &HealthMonitor{
		registry:      registry,
		lastErrors:    make(map[string]string),
		BaseComponent: NewBaseComponent("health_monitor"),
	}
}

// Initialize fails when no registry was supplied. An attached bus is
// subscribed to here so that a restarted bus is picked up again.
func (h *HealthMonitor) Initialize() bool {
	return h.InitializeWith(func() bool {
		if h.registry == nil {
			return false
		}
		if h.bus != nil {
			h.bus.Subscribe(model.EventComponentFailed, h.Name(), h.RecordFailure)
			h.bus.Subscribe(model.EventComponentReady, h.Name(), h.clearFailure)
		}
		return true
	})
}

// Shutdown clears the recorded failures and leaves the bus
func (h *HealthMonitor) Shutdown() bool {
	return h.ShutdownWith(func() {
		if h.bus != nil {
			h.bus.Unsubscribe(model.EventComponentFailed, h.Name())
			h.bus.Unsubscribe(model.EventComponentReady, h.Name())
		}
		h.mutex.Lock()
		h.lastErrors = make(map[string]string)
		h.mutex.Unlock()
	})
}

// Attach makes the monitor follow component failure events on bus from its
// next Initialize on
func (h *HealthMonitor) Attach(bus *EventBus) {
	h.bus = bus
}

// RecordFailure stores the most recent failure reported for a component
func (h *HealthMonitor) RecordFailure(event Event) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.lastErrors[event.Source] = fmt.Sprintf("%v failed at %s", event.Data, event.Timestamp.Format(time.RFC3339))
}

func (h *HealthMonitor) clearFailure(event Event) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.lastErrors, event.Source)
}

// HealthStatus builds the system health report. It is not a guarded
// operation so that an uninitialized system can still be inspected.
func (h *HealthMonitor) HealthStatus() model.HealthStatus {
	now := time.Now()
	components := make(map[string]model.HealthStatus)

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	ready := 0
	total := 0
	if h.registry != nil {
		for _, c := range h.registry.Components() {
			total++
			status := model.StatusUninitialized
			if reporter, ok := c.(StatusReporter); ok {
				status = reporter.Status()
			}
			if status == model.StatusReady {
				ready++
			}
			components[c.Name()] = model.HealthStatus{
				Status:    status,
				Timestamp: now,
				LastError: h.lastErrors[c.Name()],
			}
		}
	}

	systemStatus := model.StatusUninitialized
	var message string
	switch {
	case h.registry == nil || !h.registry.IsInitialized():
		message = "registry is not initialized"
	case total == 0:
		systemStatus = model.StatusReady
		message = "no components registered"
	case ready == total:
		systemStatus = model.StatusReady
		message = "all components ready"
	default:
		message = fmt.Sprintf("%d of %d components ready", ready, total)
	}

	return model.HealthStatus{
		Status:     systemStatus,
		Timestamp:  now,
		Message:    message,
		Components: components,
	}
}
