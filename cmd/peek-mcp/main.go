// Package main implements the peek MCP server executable.
// It serves bounded-cost filesystem exploration tools over the Model Context
// Protocol and exposes the same tools as CLI subcommands.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/d-kuro/peek-mcp/internal/config"
	"github.com/d-kuro/peek-mcp/internal/logging"
	"github.com/d-kuro/peek-mcp/internal/server"
	"github.com/d-kuro/peek-mcp/pkg/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errExploreFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configFile string
	logLevel   string
	noColor    bool
}

// load reads the configuration, applying the --log-level override.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, nil
}

// newRootCmd builds the command tree. Running it without a subcommand serves MCP over stdio.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "peek-mcp",
		Short: "Bounded-cost filesystem exploration over MCP",
		Long: `peek-mcp serves five frugal filesystem exploration tools over the Model Context
Protocol: ListFiles, FindFiles, ReadPreview, GrepSearch and GrepRecursive.
Every tool caps its output, so exploring a large tree never floods the caller.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
				fmt.Fprintln(cmd.OutOrStdout(), version.GetVersion().String())
				return nil
			}
			return runServer(cmd, opts)
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Print version information and exit")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/peek-mcp/config.yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")
	pf.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newListCmd(opts),
		newFindCmd(opts),
		newPreviewCmd(opts),
		newGrepCmd(opts),
		newGrepRecursiveCmd(opts),
		newPolicyCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the exploration tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, opts)
		},
	}
}

// runServer starts the MCP server
func runServer(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.LogLevel)

	policy, err := cfg.Policy()
	if err != nil {
		logger.Error("Invalid policy", slog.Any("error", err))
		return fmt.Errorf("invalid policy: %w", err)
	}

	srv, err := server.New(&server.Options{
		Logger:    logger,
		Validator: cfg.Validator(),
		Policy:    &policy,
	})
	if err != nil {
		logger.Error("Failed to create server", slog.Any("error", err))
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		logger.Error("Failed to start server", slog.Any("error", err))
		return fmt.Errorf("failed to start server: %w", err)
	}

	transport := mcp.NewStdioTransport()

	logger.Info("Peek MCP Server starting",
		slog.String("version", version.GetVersion().Version),
		slog.String("transport", fmt.Sprintf("%T", transport)),
		slog.Int("tools_available", srv.Registry().Count()))

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Serve(ctx, transport)
	}()

	select {
	case err := <-serverDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Server error", slog.Any("error", err))
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Error stopping server", slog.Any("error", err))
	}

	logger.Info("Peek MCP Server stopped")
	return nil
}
