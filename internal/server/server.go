// Package server implements the MCP server exposing the exploration tools.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/afero"

	"github.com/d-kuro/peek-mcp/internal/explore"
	"github.com/d-kuro/peek-mcp/internal/logging"
	"github.com/d-kuro/peek-mcp/internal/security"
	"github.com/d-kuro/peek-mcp/internal/tools"
	exploretools "github.com/d-kuro/peek-mcp/internal/tools/explore"
	"github.com/d-kuro/peek-mcp/pkg/version"
)

// Name is the implementation name advertised to MCP clients.
const Name = "peek-mcp"

// Server represents the exploration MCP server.
type Server struct {
	mcpServer *mcp.Server
	registry  *tools.Registry
	explorer  *explore.Explorer
	logger    *logging.Logger
}

// Options configures the server instance. Nil fields fall back to defaults.
type Options struct {
	Logger    *logging.Logger
	Validator security.Validator
	Policy    *explore.Policy
	Fs        afero.Fs
}

// New creates a new MCP server with the given options.
func New(opts *Options) (*Server, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger("info")
	}
	if opts.Validator == nil {
		opts.Validator = security.NewDefaultValidator()
	}

	policy := explore.DefaultPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}

	explorerOpts := []explore.Option{
		explore.WithLogger(opts.Logger),
		explore.WithLinkGuard(opts.Validator.ValidatePath),
	}
	if opts.Fs != nil {
		explorerOpts = append(explorerOpts, explore.WithFs(opts.Fs))
	}

	server := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    Name,
			Version: version.GetVersion().Version,
		}, nil),
		registry: tools.NewRegistry(),
		explorer: explore.New(policy, explorerOpts...),
		logger:   opts.Logger,
	}

	toolCtx := &tools.Context{
		Logger:    tools.AdaptLogger(opts.Logger),
		Validator: opts.Validator,
	}
	if err := server.registerTools(toolCtx); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return server, nil
}

// Start validates the registered tools and logs the effective policy.
func (s *Server) Start(ctx context.Context) error {
	limits := s.explorer.Policy().Limits()
	s.logger.Info("Starting peek MCP server",
		slog.String("version", version.GetVersion().Version),
		slog.Int("tools", s.registry.Count()),
		slog.Int("max_files", limits.MaxFiles),
		slog.Int("max_matches", limits.MaxMatches),
		slog.Int64("max_search_bytes", limits.MaxSearchBytes),
	)

	if err := s.registry.Validate(); err != nil {
		return fmt.Errorf("tool registry validation failed: %w", err)
	}

	return nil
}

// Stop stops the MCP server gracefully. Tool calls hold no state, so there is
// nothing to drain.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping peek MCP server")

	select {
	case <-ctx.Done():
		s.logger.Warn("Server stop timed out")
		return ctx.Err()
	default:
		s.logger.Info("Server stopped successfully")
		return nil
	}
}

// Registry returns the tool registry.
func (s *Server) Registry() *tools.Registry {
	return s.registry
}

// Explorer returns the explorer backing the tools.
func (s *Server) Explorer() *explore.Explorer {
	return s.explorer
}

func (s *Server) registerTools(toolCtx *tools.Context) error {
	s.logger.Debug("Registering tools with MCP server")

	if err := s.registry.RegisterAll(exploretools.CreateExploreTools(toolCtx, s.explorer)...); err != nil {
		return err
	}
	if err := s.registry.Validate(); err != nil {
		return err
	}
	s.registry.Install(s.mcpServer)

	s.logger.Info("Successfully registered tools",
		slog.Int("count", s.registry.Count()),
		slog.Any("tools", s.registry.List()),
	)

	return nil
}

// Serve runs the MCP server with the specified transport.
// It connects the MCP server to the transport and waits for either
// the session to complete or the context to be cancelled.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("Starting MCP server transport",
		slog.String("transport", fmt.Sprintf("%T", transport)),
	)

	session, err := s.mcpServer.Connect(ctx, transport)
	if err != nil {
		return fmt.Errorf("failed to connect MCP server: %w", err)
	}

	sessionDone := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("MCP session goroutine panicked",
					slog.Any("panic", r))
				sessionDone <- fmt.Errorf("session panicked: %v", r)
			}
		}()
		sessionDone <- session.Wait()
	}()

	select {
	case err := <-sessionDone:
		s.logger.Info("MCP session finished")
		return err
	case <-ctx.Done():
		s.logger.Info("MCP server shutting down due to context cancellation")
		return ctx.Err()
	}
}
