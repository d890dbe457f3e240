// Package lspserver is the language-server surface described in
// spec.md §6.4: text-document-sync (open/change/close) with FULL
// synchronization, publishing diagnostics derived from typua.Analyze
// on every update. Server capabilities advertise only
// textDocumentSync; hover/definition/completion/inlay-hint hooks are
// reserved but unimplemented (spec.md §6.4, SPEC_FULL.md §6.4).
//
// Grounded on funxy/cmd/lsp/server.go's request/notification dispatch
// shape, rebuilt on top of go.lsp.dev/jsonrpc2 + go.lsp.dev/protocol
// (the pack's LSP transport library) the way
// dingo/pkg/lsp/server.go wraps the same two libraries, instead of
// funxy's own hand-rolled Content-Length framing.
package lspserver

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/typua-lang/typua/internal/diagnostics"
	"github.com/typua-lang/typua/internal/types"
	"github.com/typua-lang/typua/internal/workspace"
)

const serverName = "typua"

// document is one open file's last-known text and check result,
// cached by URI.
type document struct {
	version int32
	text    string
	result  *diagnostics.CheckResult
}

// Server implements the LSP surface over a single, shared, read-only
// workspace registry (spec.md §5: "The workspace registry is read-only
// during a check"). One Server serves one client connection.
type Server struct {
	logger   *zap.Logger
	parse    workspace.ParseFunc
	registry *types.Registry

	docs *lru.Cache[protocol.DocumentURI, *document]

	connMu sync.RWMutex
	conn   jsonrpc2.Conn
}

// NewServer builds a Server. registry is the merged workspace registry
// (internal/workspace.Check's Result.Registry, or an empty registry
// for single-file sessions); parse adapts the external Lua parser the
// same way internal/workspace does. cacheSize bounds the number of
// open documents kept in memory at once.
func NewServer(logger *zap.Logger, parse workspace.ParseFunc, registry *types.Registry, cacheSize int) (*Server, error) {
	if registry == nil {
		registry = types.NewRegistry()
	}
	cache, err := lru.New[protocol.DocumentURI, *document](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating document cache: %w", err)
	}
	return &Server{logger: logger, parse: parse, registry: registry, docs: cache}, nil
}

// SetConn stores the connection used to push publishDiagnostics
// notifications, mirroring dingo/pkg/lsp/server.go's SetConn/GetConn
// pair — the connection is only available once jsonrpc2.NewConn has
// wrapped the transport, after the Server itself is constructed.
func (s *Server) SetConn(conn jsonrpc2.Conn) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	s.conn = conn
}

func (s *Server) getConn() jsonrpc2.Conn {
	s.connMu.RLock()
	defer s.connMu.RUnlock()
	return s.conn
}

// Handler returns a jsonrpc2.Handler that dispatches every request and
// notification this server understands.
func (s *Server) Handler() jsonrpc2.Handler {
	return jsonrpc2.ReplyHandler(s.handle)
}

func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case "initialize":
		return s.handleInitialize(ctx, reply, req)
	case "initialized":
		return reply(ctx, nil, nil)
	case "shutdown":
		return s.handleShutdown(ctx, reply, req)
	case "exit":
		return reply(ctx, nil, nil)
	case "textDocument/didOpen":
		return s.handleDidOpen(ctx, reply, req)
	case "textDocument/didChange":
		return s.handleDidChange(ctx, reply, req)
	case "textDocument/didClose":
		return s.handleDidClose(ctx, reply, req)
	default:
		s.logger.Debug("method not implemented", zap.String("method", req.Method()))
		return reply(ctx, nil, fmt.Errorf("method not found: %s", req.Method()))
	}
}

func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, fmt.Errorf("invalid initialize params: %w", err))
	}
	s.logger.Info("lsp session initializing", zap.String("root", params.RootURI.Filename()))

	result := protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
		},
		ServerInfo: &protocol.ServerInfo{Name: serverName},
	}
	return reply(ctx, result, nil)
}

func (s *Server) handleShutdown(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.logger.Info("lsp session shutting down")
	return reply(ctx, nil, nil)
}
