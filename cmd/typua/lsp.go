package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"

	"github.com/typua-lang/typua/internal/annotation"
	"github.com/typua-lang/typua/internal/lspserver"
	"github.com/typua-lang/typua/internal/types"
	"github.com/typua-lang/typua/internal/workspace"
	"github.com/typua-lang/typua/internal/workspaceconfig"
)

// discoverRegistry scans root for ---@class/---@enum declarations to
// seed the LSP session's shared registry, the same per-file extraction
// internal/workspace.Check runs before any file is checked — cheaper
// here since the server doesn't need each file's CheckResult up front,
// only the merged class/enum table cross-file references resolve
// against.
func discoverRegistry(root string, cfg *workspaceconfig.Config) (*types.Registry, error) {
	paths, err := workspace.Discover(root, cfg)
	if err != nil {
		return nil, err
	}
	merged := types.NewRegistry()
	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		_, registry := annotation.FromSource(string(source))
		merged.Extend(registry)
	}
	return merged, nil
}

func lspCmd() *cobra.Command {
	var (
		root      string
		debug     bool
		cacheSize int
	)

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLSP(root, debug, cacheSize)
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "workspace root to seed the shared class/enum registry from")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug-level logging")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 256, "maximum number of open documents kept cached")

	return cmd
}

// runLSP wires the JSON-RPC transport the way
// dingo/cmd/dingo-lsp/main.go does: a ReadWriteCloser over
// stdin/stdout, jsonrpc2.NewStream + jsonrpc2.NewConn, then
// conn.Go(ctx, handler) and block on conn.Done().
func runLSP(root string, debug bool, cacheSize int) error {
	sessionID := uuid.NewString()
	logger := newLogger(debug).With(zap.String("session_id", sessionID))
	defer logger.Sync()

	cfg, err := loadConfig(root, "")
	if err != nil {
		return err
	}
	registry := types.NewRegistry()
	if discovered, err := discoverRegistry(root, cfg); err != nil {
		logger.Warn("failed to seed registry from workspace root", zap.Error(err))
	} else {
		registry = discovered
	}

	srv, err := lspserver.NewServer(logger, unconfiguredParser, registry, cacheSize)
	if err != nil {
		return fmt.Errorf("creating language server: %w", err)
	}

	stream := jsonrpc2.NewStream(stdio{})
	conn := jsonrpc2.NewConn(stream)
	srv.SetConn(conn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("lsp server starting", zap.String("root", root))
	conn.Go(ctx, srv.Handler())
	<-conn.Done()
	return conn.Err()
}

// stdio adapts os.Stdin/os.Stdout as an io.ReadWriteCloser for
// jsonrpc2.NewStream, matching dingo/cmd/dingo-lsp/main.go's
// stdinoutCloser (Close is a no-op: the process owns stdin/stdout).
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdio) Close() error                { return nil }

var _ io.ReadWriteCloser = stdio{}
