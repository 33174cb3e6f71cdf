// Package network manages outbound peer connections for the node.
package network

import (
	"context"
	"log/slog"
	"net"
	"sort"
	"strconv"
	"strings"

	"github.com/sliink/chaincore/internal/core"
	"github.com/sliink/chaincore/internal/model"
)

// Dialer opens a connection to a peer
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// ManagerOptionFunc modifies a Manager at construction time
type ManagerOptionFunc func(*Manager)

// WithDialer specifies the dialer used to reach peers
func WithDialer(dialer Dialer) ManagerOptionFunc {
	return func(m *Manager) {
		m.dialer = dialer
	}
}

// WithLogger specifies the logger
func WithLogger(logger *slog.Logger) ManagerOptionFunc {
	return func(m *Manager) {
		m.logger = logger
	}
}

// Manager keeps one connection per peer address
type Manager struct {
	dialer      Dialer
	connections map[string]net.Conn
	logger      *slog.Logger
	core.BaseComponent
}

// NewManager creates a new network manager. The default dialer is a plain TCP net.Dialer.
func NewManager(opts ...ManagerOptionFunc) *Manager {
	m := &Manager{
		connections:   make(map[string]net.Conn),
		BaseComponent: core.NewBaseComponent("network_manager"),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.dialer == nil {
		m.dialer = &net.Dialer{}
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// Shutdown closes every held connection
func (m *Manager) Shutdown() bool {
	return m.ShutdownWith(func() {
		for addr, conn := range m.connections {
			if err := conn.Close(); err != nil {
				m.logger.Warn("failed to close peer connection", "component", m.Name(), "peer", addr, "error", err)
			}
		}
		m.connections = make(map[string]net.Conn)
	})
}

// Connect dials host:port. Connecting to a peer that is already connected is a no-op success.
// The dial runs without holding the component lock; a connection that turns out
// to be redundant, or that completes after Shutdown, is closed again.
func (m *Manager) Connect(ctx context.Context, host string, port int) (bool, error) {
	var (
		addr      string
		connected bool
	)
	err := m.Guard(func() error {
		var err error
		if addr, err = m.address(host, port); err != nil {
			return err
		}
		_, connected = m.connections[addr]
		return nil
	})
	if err != nil {
		return false, err
	}
	if connected {
		return true, nil
	}

	conn, err := m.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false, model.OperationFailed(m.Name(), err, "connect to %s", addr)
	}

	var redundant bool
	err = m.Guard(func() error {
		if _, redundant = m.connections[addr]; redundant {
			return nil
		}
		m.connections[addr] = conn
		m.logger.Debug("peer connected", "component", m.Name(), "peer", addr)
		return nil
	})
	if err != nil || redundant {
		conn.Close()
	}
	return err == nil, err
}

// Disconnect closes the connection to host:port
func (m *Manager) Disconnect(host string, port int) (bool, error) {
	err := m.Guard(func() error {
		addr, err := m.address(host, port)
		if err != nil {
			return err
		}
		conn, ok := m.connections[addr]
		if !ok {
			return model.InvalidInput(m.Name(), "peer %s is not connected", addr)
		}
		delete(m.connections, addr)
		if err := conn.Close(); err != nil {
			return model.OperationFailed(m.Name(), err, "disconnect from %s", addr)
		}
		m.logger.Debug("peer disconnected", "component", m.Name(), "peer", addr)
		return nil
	})
	return err == nil, err
}

// IsConnected reports whether a connection to host:port is held
func (m *Manager) IsConnected(host string, port int) (bool, error) {
	var connected bool
	err := m.Guard(func() error {
		addr, err := m.address(host, port)
		if err != nil {
			return err
		}
		_, connected = m.connections[addr]
		return nil
	})
	return connected, err
}

// ConnectionCount returns the number of held connections
func (m *Manager) ConnectionCount() (int, error) {
	var n int
	err := m.Guard(func() error {
		n = len(m.connections)
		return nil
	})
	return n, err
}

// ConnectedPeers returns the sorted addresses of connected peers
func (m *Manager) ConnectedPeers() ([]string, error) {
	var peers []string
	err := m.Guard(func() error {
		peers = make([]string, 0, len(m.connections))
		for addr := range m.connections {
			peers = append(peers, addr)
		}
		sort.Strings(peers)
		return nil
	})
	return peers, err
}

func (m *Manager) address(host string, port int) (string, error) {
	if strings.TrimSpace(host) == "" {
		return "", model.InvalidInput(m.Name(), "host is empty")
	}
	if port <= 0 || port > 65535 {
		return "", model.InvalidInput(m.Name(), "port %d out of range", port)
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}
