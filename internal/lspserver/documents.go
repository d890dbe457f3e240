package lspserver

import (
	"context"
	"encoding/json"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/typua-lang/typua"
	"github.com/typua-lang/typua/internal/diagnostics"
	"github.com/typua-lang/typua/internal/position"

	"go.lsp.dev/jsonrpc2"
)

func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}
	s.checkAndPublish(ctx, params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}
	// FULL sync (spec.md §6.4): the client always sends the whole new
	// text as a single change event, never a range-delta.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.checkAndPublish(ctx, params.TextDocument.URI, params.TextDocument.Version, text)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}
	s.docs.Remove(params.TextDocument.URI)
	return reply(ctx, nil, nil)
}

// checkAndPublish re-runs the pipeline over a document's full text and
// publishes the resulting diagnostics, caching the CheckResult for
// reuse once hover/inlay-hint handlers exist.
func (s *Server) checkAndPublish(ctx context.Context, uri protocol.DocumentURI, version int32, text string) {
	path := uri.Filename()
	program, parseDiags, err := s.parse(path, text)
	if err != nil {
		s.logger.Warn("parse failed", zap.String("uri", string(uri)), zap.Error(err))
		return
	}

	result, _ := typua.Analyze(path, text, program, s.registry)
	if len(parseDiags) > 0 {
		result.Diagnostics = append(append([]diagnostics.Diagnostic{}, parseDiags...), result.Diagnostics...)
	}

	s.docs.Add(uri, &document{version: version, text: text, result: result})
	s.publishDiagnostics(ctx, uri, result.Diagnostics)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri protocol.DocumentURI, diags []diagnostics.Diagnostic) {
	conn := s.getConn()
	if conn == nil {
		return
	}
	params := protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: toProtocolDiagnostics(diags),
	}
	if err := conn.Notify(ctx, "textDocument/publishDiagnostics", params); err != nil {
		s.logger.Warn("publishDiagnostics notify failed", zap.Error(err))
	}
}

func toProtocolDiagnostics(diags []diagnostics.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = protocol.Diagnostic{
			Range:    toProtocolRange(d.Range),
			Severity: toProtocolSeverity(d.Severity),
			Code:     string(d.Code),
			Source:   serverName,
			Message:  d.Message,
		}
	}
	return out
}

// toProtocolRange converts the core's 1-based position.Range to the
// wire's 0-based protocol.Range (spec.md §6.5), saturating at zero
// rather than wrapping negative for positions at line/column 1.
func toProtocolRange(r position.Range) protocol.Range {
	return protocol.Range{
		Start: toProtocolPosition(r.Start),
		End:   toProtocolPosition(r.End),
	}
}

func toProtocolPosition(p position.Position) protocol.Position {
	return protocol.Position{
		Line:      saturatingDec(p.Line),
		Character: saturatingDec(p.Column),
	}
}

func saturatingDec(n int) uint32 {
	if n <= 0 {
		return 0
	}
	return uint32(n - 1)
}

func toProtocolSeverity(sev diagnostics.Severity) protocol.DiagnosticSeverity {
	if sev == diagnostics.Warning {
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityError
}
