package node

import (
	"fmt"
	"sort"

	"github.com/sliink/chaincore/internal/core"
	"github.com/sliink/chaincore/internal/network"
	"github.com/sliink/chaincore/internal/pipeline"
	"github.com/sliink/chaincore/internal/processor"
	"github.com/sliink/chaincore/internal/security"
)

// Creator builds a component for n. Creators may read the node's shared
// collaborators (logger, event bus, ledger opener) but must not register anything.
type Creator func(n *Node) core.Component

// ComponentFactory creates components by name
type ComponentFactory struct {
	creators map[string]Creator
}

// NewComponentFactory creates an empty component factory
func NewComponentFactory() *ComponentFactory {
	return &ComponentFactory{
		creators: make(map[string]Creator),
	}
}

// Register registers a component creator under name
func (f *ComponentFactory) Register(name string, creator Creator) {
	f.creators[name] = creator
}

// Create builds the component registered under name
func (f *ComponentFactory) Create(name string, n *Node) (core.Component, error) {
	creator, exists := f.creators[name]
	if !exists {
		return nil, fmt.Errorf("unknown component: %s", name)
	}
	return creator(n), nil
}

// Names returns the registered component names, sorted
func (f *ComponentFactory) Names() []string {
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultComponents lists the standard components in registration order
var DefaultComponents = []string{
	"health_monitor",
	"config_manager",
	"block_processor",
	"transaction_processor",
	"network_manager",
	"security_manager",
	"transaction_validator",
	"transaction_signer",
	"transaction_broadcaster",
}

// RegisterStandardComponents registers every standard component with the factory
func RegisterStandardComponents(f *ComponentFactory) {
	f.Register("config_manager", func(*Node) core.Component {
		return core.NewConfigManager(nil)
	})
	f.Register("health_monitor", func(n *Node) core.Component {
		monitor := core.NewHealthMonitor(n.registry)
		monitor.Attach(n.events)
		return monitor
	})
	f.Register("block_processor", func(*Node) core.Component {
		return processor.NewBlockProcessor(nil)
	})
	f.Register("transaction_processor", func(*Node) core.Component {
		return processor.NewTransactionProcessor(nil)
	})
	f.Register("network_manager", func(n *Node) core.Component {
		return network.NewManager(network.WithLogger(n.logger))
	})
	f.Register("security_manager", func(*Node) core.Component {
		return security.NewManager(nil)
	})
	f.Register("transaction_validator", func(*Node) core.Component {
		return pipeline.NewValidator()
	})
	f.Register("transaction_signer", func(*Node) core.Component {
		return pipeline.NewSigner(nil)
	})
	f.Register("transaction_broadcaster", func(n *Node) core.Component {
		return pipeline.NewBroadcaster(
			pipeline.WithLedger(n.ledger),
			pipeline.WithEvents(n.events),
			pipeline.WithBroadcasterLogger(n.logger),
		)
	})
}
