package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sliink/chaincore/internal/api"
	"github.com/sliink/chaincore/internal/core"
	"github.com/sliink/chaincore/internal/model"
	"github.com/sliink/chaincore/internal/node"
	"github.com/sliink/chaincore/internal/security"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type options struct {
	configFile string
	network    string
	endpoint   string
	apiKey     string
	debug      bool
	maxRetries int
	timeout    time.Duration
	ledger     string
	ledgerPath string
	apiHost    string
	apiPort    int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "chaincore",
		Short:         "Chaincore - component registry and transaction pipeline node",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Path to configuration file")
	flags.StringVar(&opts.network, "network", "", "Network identifier")
	flags.StringVar(&opts.endpoint, "endpoint", "", "API endpoint of the network")
	flags.StringVar(&opts.apiKey, "api-key", "", "API key for the network endpoint")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.IntVar(&opts.maxRetries, "max-retries", 3, "Retries for outbound operations")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "Timeout per outbound attempt")
	flags.StringVar(&opts.ledger, "ledger", "memory", "Ledger backend (memory, level, badger)")
	flags.StringVar(&opts.ledgerPath, "ledger-path", "", "Ledger directory; empty keeps the ledger in memory")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newKeygenCmd(opts),
		newSubmitCmd(opts),
		newConnectCmd(opts),
		newCheckConfigCmd(opts),
	)
	return rootCmd
}

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the node and its REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.apiHost, "api-host", "localhost", "API server host")
	cmd.Flags().IntVar(&opts.apiPort, "api-port", 8080, "API server port")
	return cmd
}

func serve(ctx context.Context, cmd *cobra.Command, opts *options) error {
	n, logger, err := startNode(cmd, opts)
	if err != nil {
		return err
	}

	server := api.NewAPI(n, opts.apiHost, opts.apiPort, api.WithLogger(logger))
	g, ctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Stop(shutdownCtx)
	})

	err = g.Wait()
	if stopErr := n.Stop(); stopErr != nil && err == nil {
		err = stopErr
	}
	return err
}

func newKeygenCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair and its address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := security.NewManager(nil)
			if !manager.Initialize() {
				return fmt.Errorf("failed to initialize %s", manager.Name())
			}
			defer manager.Shutdown()

			pair, err := manager.GenerateKeyPair()
			if err != nil {
				return err
			}
			address, err := manager.Address(pair.PublicKey)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), api.KeyResponse{KeyPair: pair, Address: address})
		},
	}
}

func newSubmitCmd(opts *options) *cobra.Command {
	var (
		sender    string
		recipient string
		amount    int64
		key       string
		confirm   bool
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate, sign and broadcast a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _, err := startNode(cmd, opts)
			if err != nil {
				return err
			}
			defer n.Stop()

			p, err := n.Pipeline()
			if err != nil {
				return err
			}
			tx, err := p.Submit(model.NewTransaction(sender, recipient, amount), key)
			if err != nil {
				return err
			}
			if confirm {
				if tx, err = p.Confirm(tx.ID); err != nil {
					return err
				}
			}
			return writeJSON(cmd.OutOrStdout(), tx)
		},
	}
	cmd.Flags().StringVar(&sender, "sender", "", "Sender address")
	cmd.Flags().StringVar(&recipient, "recipient", "", "Recipient address")
	cmd.Flags().Int64Var(&amount, "amount", 0, "Amount to transfer")
	cmd.Flags().StringVar(&key, "key", "", "Private key used to sign")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm the broadcast immediately")
	cmd.MarkFlagRequired("key")
	return cmd
}

func newConnectCmd(opts *options) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "connect HOST",
		Short: "Connect to a peer, retrying transient failures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _, err := startNode(cmd, opts)
			if err != nil {
				return err
			}
			defer n.Stop()

			if err := n.ConnectPeer(cmd.Context(), args[0], port); err != nil {
				return err
			}
			peers, err := n.Network().ConnectedPeers()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), peers)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Peer port")
	return cmd
}

func newCheckConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Resolve and validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.APIKey != "" {
				cfg.APIKey = "***"
			}
			return writeJSON(cmd.OutOrStdout(), cfg)
		},
	}
}

// resolveConfig loads the configuration file, if any, and lets explicitly set flags override it
func resolveConfig(cmd *cobra.Command, opts *options) (model.Config, error) {
	cfg := model.Config{
		MaxRetries: opts.maxRetries,
		Timeout:    opts.timeout,
	}
	if opts.configFile != "" {
		manager := core.NewConfigManager(nil)
		manager.Initialize()
		defer manager.Shutdown()

		if _, err := manager.LoadConfig(opts.configFile); err != nil {
			return model.Config{}, err
		}
		loaded, err := manager.RegistryConfig()
		if err != nil {
			return model.Config{}, err
		}
		if found, _ := manager.HasKey("max_retries"); !found {
			loaded.MaxRetries = cfg.MaxRetries
		}
		if found, _ := manager.HasKey("timeout"); !found {
			loaded.Timeout = cfg.Timeout
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("network") || cfg.NetworkID == "" {
		cfg.NetworkID = opts.network
	}
	if flags.Changed("endpoint") || cfg.APIEndpoint == "" {
		cfg.APIEndpoint = opts.endpoint
	}
	if flags.Changed("api-key") {
		cfg.APIKey = opts.apiKey
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if flags.Changed("max-retries") {
		cfg.MaxRetries = opts.maxRetries
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	return cfg, nil
}

func startNode(cmd *cobra.Command, opts *options) (*node.Node, *slog.Logger, error) {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cfg.Debug)

	n, err := node.New(node.Options{
		Config:     cfg,
		LedgerType: opts.ledger,
		LedgerPath: opts.ledgerPath,
		Logger:     logger,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := n.Start(); err != nil {
		n.Stop()
		return nil, nil, err
	}
	return n, logger, nil
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
