// Package node assembles a registry with the standard components. A Node is
// an explicitly constructed value; several can coexist in one process.
package node

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sliink/chaincore/internal/core"
	"github.com/sliink/chaincore/internal/ledger"
	"github.com/sliink/chaincore/internal/model"
	"github.com/sliink/chaincore/internal/network"
	"github.com/sliink/chaincore/internal/pipeline"
	"github.com/sliink/chaincore/internal/processor"
	"github.com/sliink/chaincore/internal/retry"
	"github.com/sliink/chaincore/internal/security"
)

// Options configures a Node
type Options struct {
	Config model.Config
	// LedgerType selects the broadcast ledger backend: memory, level or badger
	LedgerType string
	// LedgerPath is the on-disk location for level and badger; empty keeps them in memory
	LedgerPath string
	// Components overrides DefaultComponents
	Components []string
	Factory    *ComponentFactory
	Logger     *slog.Logger
}

// Node owns a registry, its event bus and the components registered in it
type Node struct {
	registry *core.Registry
	events   *core.EventBus
	ledger   ledger.Opener
	logger   *slog.Logger

	configManager *core.ConfigManager
	health        *core.HealthMonitor
	blocks        *processor.BlockProcessor
	transactions  *processor.TransactionProcessor
	network       *network.Manager
	security      *security.Manager
	validator     *pipeline.Validator
	signer        *pipeline.Signer
	broadcaster   *pipeline.Broadcaster
}

// New builds a node, initializes its registry with opts.Config and registers
// the event bus followed by the requested components. Components are not
// initialized until Start.
func New(opts Options) (*Node, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	open, err := ledger.NewOpener(opts.LedgerType, opts.LedgerPath)
	if err != nil {
		return nil, model.InvalidInput("node", "%v", err)
	}

	n := &Node{
		events: core.NewEventBus(),
		ledger: open,
		logger: logger,
	}
	n.registry = core.NewRegistry(core.WithLogger(logger), core.WithEventPublisher(n.events))
	if err := n.registry.Initialize(opts.Config); err != nil {
		return nil, err
	}
	if err := n.registry.RegisterComponent(n.events); err != nil {
		return nil, err
	}

	factory := opts.Factory
	if factory == nil {
		factory = NewComponentFactory()
		RegisterStandardComponents(factory)
	}
	names := opts.Components
	if names == nil {
		names = DefaultComponents
	}
	for _, name := range names {
		c, err := factory.Create(name, n)
		if err != nil {
			return nil, model.InvalidInput("node", "%v", err)
		}
		if err := n.registry.RegisterComponent(c); err != nil {
			return nil, err
		}
		n.bind(c)
	}
	return n, nil
}

func (n *Node) bind(c core.Component) {
	switch c := c.(type) {
	case *core.ConfigManager:
		n.configManager = c
	case *core.HealthMonitor:
		n.health = c
	case *processor.BlockProcessor:
		n.blocks = c
	case *processor.TransactionProcessor:
		n.transactions = c
	case *network.Manager:
		n.network = c
	case *security.Manager:
		n.security = c
	case *pipeline.Validator:
		n.validator = c
	case *pipeline.Signer:
		n.signer = c
	case *pipeline.Broadcaster:
		n.broadcaster = c
	}
}

// Start initializes every registered component in registration order
func (n *Node) Start() error {
	if !n.registry.IsInitialized() {
		if err := n.registry.Initialize(n.registry.Config()); err != nil {
			return err
		}
	}
	if err := n.registry.InitializeComponents(); err != nil {
		return err
	}
	n.logger.Info("node started",
		"network", n.registry.Config().NetworkID,
		"components", n.registry.ComponentCount())
	return nil
}

// Stop shuts every component down in reverse registration order
func (n *Node) Stop() error {
	if err := n.registry.Shutdown(); err != nil {
		return err
	}
	n.logger.Info("node stopped")
	return nil
}

// LoadConfig reads a configuration document through the config manager and
// re-initializes the registry with it, replacing the current configuration.
func (n *Node) LoadConfig(path string) (model.Config, error) {
	if n.configManager == nil {
		return model.Config{}, model.ComponentNotFound("config_manager")
	}
	if _, err := n.configManager.LoadConfig(path); err != nil {
		return model.Config{}, err
	}
	cfg, err := n.configManager.RegistryConfig()
	if err != nil {
		return model.Config{}, err
	}
	if err := n.registry.Initialize(cfg); err != nil {
		return model.Config{}, err
	}
	return n.registry.Config(), nil
}

// ConnectPeer connects to a peer, retrying transient failures according to
// the configured max_retries and timeout.
func (n *Node) ConnectPeer(ctx context.Context, host string, port int) error {
	if n.network == nil {
		return model.ComponentNotFound("network_manager")
	}
	policy := retry.FromConfig(n.registry.Config())
	return retry.Do(ctx, policy, func(ctx context.Context) error {
		_, err := n.network.Connect(ctx, host, port)
		if err != nil {
			n.logger.Debug("peer connection attempt failed", "peer", fmt.Sprintf("%s:%d", host, port), "error", err)
		}
		return err
	})
}

// Pipeline returns an orchestrator over the node's transaction stages
func (n *Node) Pipeline() (*pipeline.Pipeline, error) {
	if n.validator == nil || n.signer == nil || n.broadcaster == nil {
		return nil, model.ComponentNotFound("transaction pipeline")
	}
	return pipeline.New(n.validator, n.signer, n.broadcaster), nil
}

// Registry returns the node's component registry
func (n *Node) Registry() *core.Registry {
	return n.registry
}

// Events returns the node's event bus
func (n *Node) Events() *core.EventBus {
	return n.events
}

// ConfigManager returns the configuration manager, or nil when not registered
func (n *Node) ConfigManager() *core.ConfigManager {
	return n.configManager
}

// Health returns the health monitor, or nil when not registered
func (n *Node) Health() *core.HealthMonitor {
	return n.health
}

// Blocks returns the block processor, or nil when not registered
func (n *Node) Blocks() *processor.BlockProcessor {
	return n.blocks
}

// Transactions returns the transaction processor, or nil when not registered
func (n *Node) Transactions() *processor.TransactionProcessor {
	return n.transactions
}

// Network returns the network manager, or nil when not registered
func (n *Node) Network() *network.Manager {
	return n.network
}

// Security returns the security manager, or nil when not registered
func (n *Node) Security() *security.Manager {
	return n.security
}

// Validator returns the transaction validator, or nil when not registered
func (n *Node) Validator() *pipeline.Validator {
	return n.validator
}

// Signer returns the transaction signer, or nil when not registered
func (n *Node) Signer() *pipeline.Signer {
	return n.signer
}

// Broadcaster returns the transaction broadcaster, or nil when not registered
func (n *Node) Broadcaster() *pipeline.Broadcaster {
	return n.broadcaster
}
