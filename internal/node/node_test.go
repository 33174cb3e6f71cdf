package node

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sliink/chaincore/internal/core"
	"github.com/sliink/chaincore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig() model.Config {
	return model.Config{
		NetworkID:   "testnet",
		APIEndpoint: "http://localhost:7777",
		MaxRetries:  1,
		Timeout:     time.Second,
	}
}

func startNode(t *testing.T, opts Options) *Node {
	t.Helper()
	if opts.Config.NetworkID == "" {
		opts.Config = testConfig()
	}
	n, err := New(opts)
	require.NoError(t, err)
	require.NoError(t, n.Start())
	t.Cleanup(func() { n.Stop() })
	return n
}

func TestNew(t *testing.T) {
	t.Run("Registers the event bus and every standard component", func(t *testing.T) {
		n, err := New(Options{Config: testConfig()})
		require.NoError(t, err)

		expected := append([]string{"event_bus"}, DefaultComponents...)
		assert.Equal(t, expected, n.Registry().ComponentNames())
		assert.NotNil(t, n.Blocks())
		assert.NotNil(t, n.Transactions())
		assert.NotNil(t, n.Network())
		assert.NotNil(t, n.Security())
		assert.NotNil(t, n.ConfigManager())
		assert.NotNil(t, n.Health())
		assert.NotNil(t, n.Validator())
		assert.NotNil(t, n.Signer())
		assert.NotNil(t, n.Broadcaster())
	})

	t.Run("Invalid configuration is rejected", func(t *testing.T) {
		_, err := New(Options{Config: model.Config{NetworkID: "testnet"}})
		assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
	})

	t.Run("Unknown ledger type is rejected", func(t *testing.T) {
		_, err := New(Options{Config: testConfig(), LedgerType: "sqlite"})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("Unknown component is rejected", func(t *testing.T) {
		_, err := New(Options{Config: testConfig(), Components: []string{"miner"}})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("Components can be selected", func(t *testing.T) {
		n, err := New(Options{Config: testConfig(), Components: []string{"transaction_validator"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"event_bus", "transaction_validator"}, n.Registry().ComponentNames())
		assert.Nil(t, n.Network())

		_, err = n.Pipeline()
		assert.ErrorIs(t, err, model.ErrComponentNotFound)
	})

	t.Run("Nodes are independent", func(t *testing.T) {
		a, err := New(Options{Config: testConfig()})
		require.NoError(t, err)
		b, err := New(Options{Config: testConfig()})
		require.NoError(t, err)
		assert.NotSame(t, a.Registry(), b.Registry())
	})
}

func TestNodeLifecycle(t *testing.T) {
	n, err := New(Options{Config: testConfig()})
	require.NoError(t, err)

	t.Run("Start makes every component ready", func(t *testing.T) {
		require.NoError(t, n.Start())
		health := n.Health().HealthStatus()
		assert.Equal(t, model.StatusReady, health.Status)
		assert.Len(t, health.Components, len(DefaultComponents)+1)
	})

	t.Run("Stop returns every component to uninitialized", func(t *testing.T) {
		require.NoError(t, n.Stop())
		assert.False(t, n.Registry().IsInitialized())
		for _, c := range n.Registry().Components() {
			assert.Equal(t, model.StatusUninitialized, c.(core.StatusReporter).Status(), c.Name())
		}
	})

	t.Run("Node can be started again with an empty ledger", func(t *testing.T) {
		require.NoError(t, n.Start())
		defer n.Stop()

		all, err := n.Broadcaster().Transactions()
		require.NoError(t, err)
		assert.Empty(t, all)
		assert.Equal(t, "testnet", n.Registry().Config().NetworkID)
	})
}

func TestComponentLifecycleIdempotence(t *testing.T) {
	n, err := New(Options{Config: testConfig()})
	require.NoError(t, err)

	for _, c := range n.Registry().Components() {
		c := c
		t.Run(c.Name(), func(t *testing.T) {
			name := c.Name()
			require.NotEmpty(t, name)
			reporter, ok := c.(core.StatusReporter)
			require.True(t, ok)

			assert.True(t, c.Shutdown(), "shutdown before initialize")
			assert.True(t, c.Initialize())
			assert.True(t, c.Initialize())
			assert.Equal(t, model.StatusReady, reporter.Status())
			assert.Equal(t, name, c.Name())

			assert.True(t, c.Shutdown())
			assert.True(t, c.Shutdown())
			assert.Equal(t, model.StatusUninitialized, reporter.Status())
			assert.Equal(t, name, c.Name())

			assert.True(t, c.Initialize())
			assert.True(t, c.Shutdown())
		})
	}
}

func TestNodeSubmit(t *testing.T) {
	for _, ledgerType := range []string{"memory", "level"} {
		t.Run("Transaction is confirmed with the "+ledgerType+" ledger", func(t *testing.T) {
			n := startNode(t, Options{LedgerType: ledgerType})
			p, err := n.Pipeline()
			require.NoError(t, err)

			pair, err := n.Security().GenerateKeyPair()
			require.NoError(t, err)

			tx := model.NewTransaction("A", "B", 100)
			broadcast, err := p.Submit(tx, pair.PrivateKey)
			require.NoError(t, err)
			assert.Equal(t, model.TxStatusBroadcast, broadcast.Status)

			ok, err := n.Signer().Verify(broadcast, pair.PublicKey)
			require.NoError(t, err)
			assert.True(t, ok)

			confirmed, err := p.Confirm(tx.ID)
			require.NoError(t, err)
			assert.Equal(t, model.TxStatusConfirmed, confirmed.Status)
		})
	}
}

func TestNodeLoadConfig(t *testing.T) {
	n := startNode(t, Options{})

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"network": {"id": "mainnet"},
		"api": {"endpoint": "https://api.example.org"},
		"max_retries": 2,
		"timeout": "5s"
	}`), 0644))

	cfg, err := n.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "mainnet", cfg.NetworkID)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "mainnet", n.Registry().Config().NetworkID)

	t.Run("Incomplete document leaves the configuration unchanged", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{"network": {"id": "devnet"}}`), 0644))

		_, err := n.LoadConfig(bad)
		assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
		assert.Equal(t, "mainnet", n.Registry().Config().NetworkID)
	})
}

func TestNodeConnectPeer(t *testing.T) {
	n := startNode(t, Options{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan struct{})
	go func() {
		defer close(accepted)
		if conn, err := ln.Accept(); err == nil {
			conn.Close()
		}
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, n.ConnectPeer(context.Background(), "127.0.0.1", port))
	<-accepted

	connected, err := n.Network().IsConnected("127.0.0.1", port)
	require.NoError(t, err)
	assert.True(t, connected)

	t.Run("Invalid peer is not retried", func(t *testing.T) {
		err := n.ConnectPeer(context.Background(), "", port)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestComponentFactory(t *testing.T) {
	factory := NewComponentFactory()
	RegisterStandardComponents(factory)

	assert.Len(t, factory.Names(), len(DefaultComponents))

	custom := NewComponentFactory()
	custom.Register("custom", func(*Node) core.Component { return core.NewEventBus() })
	_, err := custom.Create("missing", nil)
	assert.Error(t, err)
	c, err := custom.Create("custom", nil)
	require.NoError(t, err)
	assert.Equal(t, "event_bus", c.Name())
}
