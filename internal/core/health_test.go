package core

import (
	"testing"

	"github.com/sliink/chaincore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthMonitorLifecycle(t *testing.T) {
	t.Run("Initialize fails without a registry", func(t *testing.T) {
		monitor := NewHealthMonitor(nil)
		assert.False(t, monitor.Initialize())
		assert.Equal(t, model.StatusUninitialized, monitor.Status())
	})

	t.Run("Initialize succeeds with a registry", func(t *testing.T) {
		monitor := NewHealthMonitor(NewRegistry())
		assert.Equal(t, "health_monitor", monitor.Name())
		assert.True(t, monitor.Initialize())
		assert.True(t, monitor.Shutdown())
	})
}

func TestHealthStatus(t *testing.T) {
	t.Run("Uninitialized registry is reported", func(t *testing.T) {
		monitor := NewHealthMonitor(NewRegistry())
		health := monitor.HealthStatus()
		assert.Equal(t, model.StatusUninitialized, health.Status)
		assert.Equal(t, "registry is not initialized", health.Message)
	})

	t.Run("Empty registry is ready", func(t *testing.T) {
		monitor := NewHealthMonitor(newReadyRegistry(t))
		health := monitor.HealthStatus()
		assert.Equal(t, model.StatusReady, health.Status)
		assert.Equal(t, "no components registered", health.Message)
		assert.Empty(t, health.Components)
	})

	registry := newReadyRegistry(t)
	a := newMock("a", nil)
	b := newMock("b", nil)
	require.NoError(t, registry.RegisterComponent(a))
	require.NoError(t, registry.RegisterComponent(b))
	monitor := NewHealthMonitor(registry)

	t.Run("Partially initialized system is not ready", func(t *testing.T) {
		require.True(t, a.Initialize())
		health := monitor.HealthStatus()
		assert.Equal(t, model.StatusUninitialized, health.Status)
		assert.Equal(t, "1 of 2 components ready", health.Message)
		assert.Equal(t, model.StatusReady, health.Components["a"].Status)
		assert.Equal(t, model.StatusUninitialized, health.Components["b"].Status)
	})

	t.Run("Fully initialized system is ready", func(t *testing.T) {
		require.NoError(t, registry.InitializeComponents())
		health := monitor.HealthStatus()
		assert.Equal(t, model.StatusReady, health.Status)
		assert.Equal(t, "all components ready", health.Message)
		assert.Len(t, health.Components, 2)
	})
}

func TestHealthMonitorFailures(t *testing.T) {
	bus := NewEventBus()
	require.True(t, bus.Initialize())
	registry := newReadyRegistry(t, WithEventPublisher(bus))
	monitor := NewHealthMonitor(registry)
	monitor.Attach(bus)
	require.True(t, monitor.Initialize())

	failing := newMock("flaky", nil)
	failing.failInit = true
	require.NoError(t, registry.RegisterComponent(failing))

	t.Run("Failures are recorded per component", func(t *testing.T) {
		assert.Error(t, registry.InitializeComponents())
		health := monitor.HealthStatus()
		assert.Contains(t, health.Components["flaky"].LastError, "initialize")
	})

	t.Run("A later success clears the failure", func(t *testing.T) {
		failing.failInit = false
		require.NoError(t, registry.InitializeComponents())
		health := monitor.HealthStatus()
		assert.Empty(t, health.Components["flaky"].LastError)
		assert.Equal(t, model.StatusReady, health.Status)
	})

	t.Run("Shutdown stops following the bus", func(t *testing.T) {
		require.True(t, monitor.Shutdown())
		bus.Publish(NewEvent(model.EventComponentFailed, "flaky", "initialize"))
		assert.Empty(t, monitor.HealthStatus().Components["flaky"].LastError)
	})
}
